package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurnStart        EventType = "turn_start"
	EventTurnEnd          EventType = "turn_end"
	EventRuleFire         EventType = "rule_fire"
	EventChoicesPublished EventType = "choices_published"
	EventChoiceSelected   EventType = "choice_selected"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	// Turn is the logical time at which the event happened.
	Turn int `json:"turn"`
	// Depth is the turn re-entry depth (1 for a top-level turn).
	Depth int `json:"depth"`
}

// TurnEvent marks the start or end of a turn.
type TurnEvent struct {
	EventBase
	EventsFired int `json:"events_fired,omitempty"`
	Choices     int `json:"choices,omitempty"`
}

// RuleEvent represents an event rule firing.
type RuleEvent struct {
	EventBase
	Rule string `json:"rule"`
}

// ChoiceEvent represents a published choice list or a player selection.
type ChoiceEvent struct {
	EventBase
	Topics []string `json:"topics,omitempty"`
	Count  int      `json:"count,omitempty"`
	Rule   string   `json:"rule,omitempty"`
	Topic  string   `json:"topic,omitempty"`
	Label  string   `json:"label,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnTurnStart        func(context.Context, *TurnEvent)
	OnTurnEnd          func(context.Context, *TurnEvent)
	OnEventFire        func(context.Context, *RuleEvent)
	OnChoicesPublished func(context.Context, *ChoiceEvent)
	OnChoiceSelected   func(context.Context, *ChoiceEvent)
}

// MergeHooks combines hooks so that each callback runs in argument order.
func MergeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range hooks {
		out.OnTurnStart = chain(out.OnTurnStart, h.OnTurnStart)
		out.OnTurnEnd = chain(out.OnTurnEnd, h.OnTurnEnd)
		out.OnEventFire = chain(out.OnEventFire, h.OnEventFire)
		out.OnChoicesPublished = chain(out.OnChoicesPublished, h.OnChoicesPublished)
		out.OnChoiceSelected = chain(out.OnChoiceSelected, h.OnChoiceSelected)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
