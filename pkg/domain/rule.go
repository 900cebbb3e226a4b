package domain

import (
	"context"
	"fmt"
)

// Predicate is evaluated fresh every turn against the current world.
// It must not mutate state except through a decaying trigger.
type Predicate func() bool

// Action runs when a rule fires. It may mutate the world, narrate, or run
// another turn before returning.
type Action func(ctx context.Context) error

// LabelFunc produces the topic and label under which a choice is displayed.
type LabelFunc func() (topic, label string)

// Rule is either an EventRule or a ChoiceRule.
type Rule interface {
	// RuleName identifies the rule in logs, metrics and errors.
	RuleName() string
	// Condition returns the rule's predicate.
	Condition() Predicate

	isRule()
}

// EventRule fires autonomously whenever its predicate holds.
type EventRule struct {
	Name string
	When Predicate
	Do   Action
}

// ChoiceRule surfaces as a player-selectable choice whenever its predicate
// holds.
type ChoiceRule struct {
	Name  string
	When  Predicate
	Label LabelFunc
	Do    Action
}

func (r EventRule) RuleName() string     { return r.Name }
func (r EventRule) Condition() Predicate { return r.When }
func (EventRule) isRule()                {}

func (r ChoiceRule) RuleName() string     { return r.Name }
func (r ChoiceRule) Condition() Predicate { return r.When }
func (ChoiceRule) isRule()                {}

// Validate reports malformed rules.
func Validate(r Rule) error {
	switch rule := r.(type) {
	case EventRule:
		if rule.When == nil {
			return fmt.Errorf("%w: event %q has no predicate", ErrInvalidRule, rule.Name)
		}
		if rule.Do == nil {
			return fmt.Errorf("%w: event %q has no action", ErrInvalidRule, rule.Name)
		}
	case ChoiceRule:
		if rule.When == nil {
			return fmt.Errorf("%w: choice %q has no predicate", ErrInvalidRule, rule.Name)
		}
		if rule.Label == nil {
			return fmt.Errorf("%w: choice %q has no label producer", ErrInvalidRule, rule.Name)
		}
		if rule.Do == nil {
			return fmt.Errorf("%w: choice %q has no action", ErrInvalidRule, rule.Name)
		}
	case nil:
		return fmt.Errorf("%w: nil rule", ErrInvalidRule)
	default:
		return fmt.Errorf("%w: unknown rule type %T", ErrInvalidRule, r)
	}
	return nil
}
