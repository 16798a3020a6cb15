package rules

import (
	"fmt"
	"slices"
)

// Registry is the immutable rule catalog for one process. It is built once
// and passed explicitly to the selector and the engine.
type Registry struct {
	rules  []Rule
	byCode map[Code]Rule
}

// NewRegistry creates a registry from rules. It fails on duplicate or zero
// codes.
func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{
		rules:  make([]Rule, 0, len(rules)),
		byCode: make(map[Code]Rule, len(rules)),
	}
	for _, rule := range rules {
		code := rule.Metadata().Code
		if code.IsZero() {
			return nil, fmt.Errorf("rule %T has no code", rule)
		}
		if _, exists := r.byCode[code]; exists {
			return nil, fmt.Errorf("rule %s already registered", code)
		}
		r.byCode[code] = rule
		r.rules = append(r.rules, rule)
	}
	slices.SortFunc(r.rules, func(a, b Rule) int {
		return a.Metadata().Code.Compare(b.Metadata().Code)
	})
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(rules ...Rule) *Registry {
	r, err := NewRegistry(rules...)
	if err != nil {
		panic(err)
	}
	return r
}

// Get retrieves a rule by its code.
func (r *Registry) Get(code Code) (Rule, bool) {
	rule, ok := r.byCode[code]
	return rule, ok
}

// Has returns true if a rule with the given code is registered.
func (r *Registry) Has(code Code) bool {
	_, ok := r.byCode[code]
	return ok
}

// All returns all registered rules sorted by code.
func (r *Registry) All() []Rule {
	return slices.Clone(r.rules)
}

// Codes returns all registered rule codes in order.
func (r *Registry) Codes() []Code {
	codes := make([]Code, len(r.rules))
	for i, rule := range r.rules {
		codes[i] = rule.Metadata().Code
	}
	return codes
}

// ByCategory returns the rules of one category in order.
func (r *Registry) ByCategory(category Category) []Rule {
	var out []Rule
	for _, rule := range r.rules {
		if rule.Metadata().Code.Category == category {
			out = append(out, rule)
		}
	}
	return out
}

// ByName looks a rule up by its kebab-case name.
func (r *Registry) ByName(name string) (Rule, bool) {
	for _, rule := range r.rules {
		if rule.Metadata().Name == name {
			return rule, true
		}
	}
	return nil, false
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}
