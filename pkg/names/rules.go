package names

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule tries to turn a full command line into a short application name.
type Rule interface {
	Resolve(cmdline string) (string, bool)
}

// PatternRule returns the first capture group of its expression.
type PatternRule struct {
	Pattern *regexp.Regexp
}

// NewPatternRule compiles expr, which must contain at least one capture group.
func NewPatternRule(expr string) (PatternRule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return PatternRule{}, fmt.Errorf("compiling name pattern %q: %w", expr, err)
	}
	if re.NumSubexp() < 1 {
		return PatternRule{}, fmt.Errorf("name pattern %q has no capture group", expr)
	}
	return PatternRule{Pattern: re}, nil
}

func mustPattern(expr string) PatternRule {
	rule, err := NewPatternRule(expr)
	if err != nil {
		panic(err)
	}
	return rule
}

// Resolve implements Rule.
func (r PatternRule) Resolve(cmdline string) (string, bool) {
	match := r.Pattern.FindStringSubmatch(cmdline)
	if match == nil {
		return "", false
	}
	return match[1], true
}

func (r PatternRule) String() string { return "pattern " + r.Pattern.String() }

// SubstringRule maps any command line containing Marker to a fixed Name.
type SubstringRule struct {
	Marker string
	Name   string
}

// Resolve implements Rule.
func (r SubstringRule) Resolve(cmdline string) (string, bool) {
	if r.Marker == "" || !strings.Contains(cmdline, r.Marker) {
		return "", false
	}
	return r.Name, true
}

func (r SubstringRule) String() string { return fmt.Sprintf("substring %q -> %s", r.Marker, r.Name) }

// DefaultRules returns the built-in rules in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		mustPattern(`^/Applications/(.*?)(?:\.app)?/`),
		mustPattern(`^/System/Applications/Utilities/(.*?)(?:\.app)?/`),
		mustPattern(`^/System/Library/[^ ]*/([^ ]*)`),
		mustPattern(`^/opt/homebrew/bin/([^ ]*)`),
		mustPattern(`^/usr/[^ ]*/([^ ]*)`),
		mustPattern(`^/Library/.*/(.*?)(?:\.app)/`),
		SubstringRule{Marker: ".vscode/extensions", Name: "Visual Studio Code"},
		SubstringRule{Marker: "Meeting Center.app", Name: "Webex Meetings"},
	}
}

// Merge orders user rules ahead of defaults while keeping every pattern rule
// before every substring rule.
func Merge(user, defaults []Rule) []Rule {
	merged := make([]Rule, 0, len(user)+len(defaults))
	for _, set := range [][]Rule{user, defaults} {
		for _, rule := range set {
			if !isSubstring(rule) {
				merged = append(merged, rule)
			}
		}
	}
	for _, set := range [][]Rule{user, defaults} {
		for _, rule := range set {
			if isSubstring(rule) {
				merged = append(merged, rule)
			}
		}
	}
	return merged
}

func isSubstring(rule Rule) bool {
	_, ok := rule.(SubstringRule)
	return ok
}
