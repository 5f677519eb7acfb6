package names

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type ruleFile struct {
	Rules []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	Pattern   string `yaml:"pattern,omitempty"`
	Substring string `yaml:"substring,omitempty"`
	Name      string `yaml:"name,omitempty"`
}

func (s ruleEntry) rule() (Rule, error) {
	switch {
	case s.Pattern != "" && s.Substring != "":
		return nil, errors.New("rule sets both pattern and substring")
	case s.Pattern != "":
		return NewPatternRule(s.Pattern)
	case s.Substring != "":
		if s.Name == "" {
			return nil, fmt.Errorf("substring rule %q has no name", s.Substring)
		}
		return SubstringRule{Marker: s.Substring, Name: s.Name}, nil
	default:
		return nil, errors.New("rule needs a pattern or a substring")
	}
}

// LoadRules decodes a YAML rule list:
//
//	rules:
//	  - pattern: '^/opt/([^/]+)/'
//	  - substring: 'Meeting Center.app'
//	    name: Webex Meetings
func LoadRules(r io.Reader) ([]Rule, error) {
	var file ruleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding rules: %w", err)
	}
	rules := make([]Rule, 0, len(file.Rules))
	for i, entry := range file.Rules {
		rule, err := entry.rule()
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// LoadRulesFile reads LoadRules input from path.
func LoadRulesFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	rules, err := LoadRules(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// MarshalRules encodes rules in the LoadRules format.
func MarshalRules(rules []Rule) ([]byte, error) {
	file := ruleFile{Rules: make([]ruleEntry, 0, len(rules))}
	for _, rule := range rules {
		switch r := rule.(type) {
		case PatternRule:
			file.Rules = append(file.Rules, ruleEntry{Pattern: r.Pattern.String()})
		case SubstringRule:
			file.Rules = append(file.Rules, ruleEntry{Substring: r.Marker, Name: r.Name})
		default:
			return nil, fmt.Errorf("cannot encode rule of type %T", rule)
		}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
