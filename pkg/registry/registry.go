package registry

import (
	"fmt"

	"github.com/aretw0/parlor/pkg/domain"
)

// Registry holds the rules in registration order.
// Order is the tie-break for event firing and for choice display within a
// topic. It is used from the single control thread.
type Registry struct {
	rules []domain.Rule
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register validates and appends rules. Nothing is registered if any rule
// is malformed.
func (r *Registry) Register(rules ...domain.Rule) error {
	for i, rule := range rules {
		if err := domain.Validate(rule); err != nil {
			return fmt.Errorf("rule #%d: %w", len(r.rules)+i, err)
		}
	}
	base := len(r.rules)
	for i, rule := range rules {
		r.rules = append(r.rules, named(rule, base+i))
	}
	return nil
}

// MustRegister is like Register but panics on malformed rules.
func (r *Registry) MustRegister(rules ...domain.Rule) {
	if err := r.Register(rules...); err != nil {
		panic(err)
	}
}

// Rules returns a snapshot of the registered rules. Rules registered while
// iterating a snapshot are not visited.
func (r *Registry) Rules() []domain.Rule {
	out := make([]domain.Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// Events returns the snapshot of event rules, in order.
func (r *Registry) Events() []domain.EventRule {
	var out []domain.EventRule
	for _, rule := range r.rules {
		if ev, ok := rule.(domain.EventRule); ok {
			out = append(out, ev)
		}
	}
	return out
}

// Choices returns the snapshot of choice rules, in order.
func (r *Registry) Choices() []domain.ChoiceRule {
	var out []domain.ChoiceRule
	for _, rule := range r.rules {
		if ch, ok := rule.(domain.ChoiceRule); ok {
			out = append(out, ch)
		}
	}
	return out
}

// named gives anonymous rules a positional name for logs and errors.
func named(rule domain.Rule, index int) domain.Rule {
	switch r := rule.(type) {
	case domain.EventRule:
		if r.Name == "" {
			r.Name = fmt.Sprintf("event#%d", index)
		}
		return r
	case domain.ChoiceRule:
		if r.Name == "" {
			r.Name = fmt.Sprintf("choice#%d", index)
		}
		return r
	}
	return rule
}
