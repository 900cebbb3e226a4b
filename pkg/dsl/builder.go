package dsl

import (
	"context"
	"fmt"

	"github.com/aretw0/parlor/pkg/domain"
	"github.com/aretw0/parlor/pkg/registry"
)

// Builder manages rule construction. Rules keep the order in which they were
// first added.
type Builder struct {
	order []*RuleBuilder
	index map[string]*RuleBuilder
}

// New creates a new rule builder.
func New() *Builder {
	return &Builder{
		index: make(map[string]*RuleBuilder),
	}
}

// Rule starts (or resumes) the rule with the given name.
// If the rule already exists, it returns the existing builder.
func (b *Builder) Rule(name string) *RuleBuilder {
	if rb, ok := b.index[name]; ok {
		return rb
	}
	rb := &RuleBuilder{name: name}
	b.index[name] = rb
	b.order = append(b.order, rb)
	return rb
}

// Build compiles the rules in order.
func (b *Builder) Build() ([]domain.Rule, error) {
	rules := make([]domain.Rule, 0, len(b.order))
	for _, rb := range b.order {
		rule := rb.rule()
		if err := domain.Validate(rule); err != nil {
			return nil, fmt.Errorf("failed to build rule %q: %w", rb.name, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// RegisterTo builds the rules and appends them to reg.
func (b *Builder) RegisterTo(reg *registry.Registry) error {
	rules, err := b.Build()
	if err != nil {
		return err
	}
	return reg.Register(rules...)
}

// RuleBuilder provides a fluent API for configuring one rule.
// A rule without a label becomes an event; a rule with one becomes a choice.
type RuleBuilder struct {
	name  string
	when  []domain.Predicate
	label domain.LabelFunc
	do    []domain.Action
}

// When adds conditions; all of them must hold.
func (r *RuleBuilder) When(preds ...domain.Predicate) *RuleBuilder {
	r.when = append(r.when, preds...)
	return r
}

// Offer turns the rule into a choice with a fixed topic and label.
func (r *RuleBuilder) Offer(topic, label string) *RuleBuilder {
	r.label = func() (string, string) { return topic, label }
	return r
}

// OfferFunc turns the rule into a choice whose label is computed each turn.
func (r *RuleBuilder) OfferFunc(fn domain.LabelFunc) *RuleBuilder {
	r.label = fn
	return r
}

// Do appends an action. Actions run in order and stop at the first error.
func (r *RuleBuilder) Do(actions ...domain.Action) *RuleBuilder {
	r.do = append(r.do, actions...)
	return r
}

func (r *RuleBuilder) rule() domain.Rule {
	var when domain.Predicate
	switch len(r.when) {
	case 0:
		when = Always
	case 1:
		when = r.when[0]
	default:
		when = All(r.when...)
	}

	var do domain.Action
	switch len(r.do) {
	case 0:
	case 1:
		do = r.do[0]
	default:
		do = Seq(r.do...)
	}

	if r.label == nil {
		return domain.EventRule{Name: r.name, When: when, Do: do}
	}
	return domain.ChoiceRule{Name: r.name, When: when, Label: r.label, Do: do}
}

// Seq runs actions in order, stopping at the first error.
func Seq(actions ...domain.Action) domain.Action {
	return func(ctx context.Context) error {
		for _, act := range actions {
			if act == nil {
				continue
			}
			if err := act(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

// Exec adapts a function without a result into an action.
func Exec(fn func()) domain.Action {
	return func(context.Context) error {
		fn()
		return nil
	}
}
