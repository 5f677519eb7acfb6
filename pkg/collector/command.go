package collector

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/srodi/hog/pkg/types"
)

// runCommand allows tests to stub process execution.
var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, &types.CommandError{
			Name:   name,
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return out, nil
}

// CommandSampler shells out to ps and the macOS top.
type CommandSampler struct {
	log *zap.Logger
}

// NewCommandSampler returns a sampler backed by external commands.
func NewCommandSampler(log *zap.Logger) *CommandSampler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CommandSampler{log: log}
}

// Listing runs `ps ax`.
func (s *CommandSampler) Listing(ctx context.Context) ([]byte, error) {
	return s.run(ctx, "ps", "ax")
}

// Table runs top in logging mode for the requested number of samples.
func (s *CommandSampler) Table(ctx context.Context, samples int) ([]byte, error) {
	if samples < 1 {
		samples = 1
	}
	return s.run(ctx, "top", "-stats", "ppid,pid,mem,cpu", "-a", "-l", strconv.Itoa(samples))
}

func (s *CommandSampler) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	s.log.Debug("running sampler command", zap.String("cmd", name), zap.Strings("args", args))
	out, err := runCommand(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	s.log.Debug("sampler command finished", zap.String("cmd", name), zap.Int("bytes", len(out)))
	return out, nil
}
