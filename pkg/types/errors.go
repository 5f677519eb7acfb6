package types

import (
	"fmt"
	"strings"
)

// ParseError reports sampler output that does not match the expected format.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %s %q", e.Reason, e.Input)
}

// CommandError reports a sampler command that could not start or exited
// abnormally.
type CommandError struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	cmd := strings.TrimSpace(e.Name + " " + strings.Join(e.Args, " "))
	if e.Stderr != "" {
		return fmt.Sprintf("running %s: %v: %s", cmd, e.Err, e.Stderr)
	}
	return fmt.Sprintf("running %s: %v", cmd, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// CycleError reports a PID reached twice while summing one subtree.
type CycleError struct {
	PID PID
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("process tree cycle at pid %s", e.PID)
}
