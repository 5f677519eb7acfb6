package names

// Resolver evaluates an ordered rule list; the first rule that matches wins.
type Resolver struct {
	rules []Rule
}

// NewResolver returns a resolver over rules, or over DefaultRules when rules
// is empty.
func NewResolver(rules []Rule) *Resolver {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Resolver{rules: rules}
}

// Resolve returns the short name for cmdline, or cmdline itself when no rule
// matches.
func (r *Resolver) Resolve(cmdline string) string {
	for _, rule := range r.rules {
		if name, ok := rule.Resolve(cmdline); ok {
			return name
		}
	}
	return cmdline
}

// Rules returns the rules in evaluation order.
func (r *Resolver) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}
