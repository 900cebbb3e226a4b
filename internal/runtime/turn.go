package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/parlor/pkg/domain"
	"github.com/aretw0/parlor/pkg/state"
)

// RunTurn executes one turn:
//
//  1. Event pass: every event rule whose predicate holds, in registration
//     order, is paced and fired. Later predicates see the effects of earlier
//     actions.
//  2. Choice pass: every choice rule whose predicate holds contributes its
//     (topic, label, action).
//  3. The choices are published grouped by ascending topic, registration
//     order within a topic.
//  4. The logical clock advances by exactly one.
//
// Actions may call RunTurn again before returning. There is no recursion
// guard: an action that re-enters from a predicate that stays true without
// changing state recurses forever. Errors from actions, label
// producers or the presenter abort the turn and are returned as is, wrapped
// with the rule name.
func (e *Engine) RunTurn(ctx context.Context) error {
	e.depth++
	e.maxDepth = max(e.maxDepth, e.depth)
	defer func() { e.depth-- }()

	debug := e.logger.Enabled(ctx, slog.LevelDebug)
	var before map[string]any
	if debug {
		before = e.world.Store().Snapshot()
	}

	start := e.world.Now()
	e.logger.Debug("turn start", "turn", start, "depth", e.depth)
	if e.hooks.OnTurnStart != nil {
		e.hooks.OnTurnStart(ctx, &domain.TurnEvent{EventBase: e.base(domain.EventTurnStart)})
	}

	fired, err := e.eventPass(ctx)
	if err != nil {
		return err
	}

	choices, err := e.choicePass(ctx)
	if err != nil {
		return err
	}

	groups := domain.GroupChoices(choices)
	if err := e.presenter.PresentChoices(groups); err != nil {
		return fmt.Errorf("failed to present choices: %w", err)
	}
	if e.hooks.OnChoicesPublished != nil {
		topics := make([]string, 0, len(groups))
		for _, g := range groups {
			topics = append(topics, g.Topic)
		}
		e.hooks.OnChoicesPublished(ctx, &domain.ChoiceEvent{
			EventBase: e.base(domain.EventChoicesPublished),
			Topics:    topics,
			Count:     len(choices),
		})
	}

	now := e.world.Tick()

	if debug {
		delta := state.Diff(before, e.world.Store().Snapshot())
		e.logger.Debug("turn end",
			"turn", start,
			"now", now,
			"depth", e.depth,
			"events_fired", fired,
			"choices", len(choices),
			"changed", delta.Keys(),
		)
	}
	if e.hooks.OnTurnEnd != nil {
		e.hooks.OnTurnEnd(ctx, &domain.TurnEvent{
			EventBase:   e.base(domain.EventTurnEnd),
			EventsFired: fired,
			Choices:     len(choices),
		})
	}
	return nil
}

func (e *Engine) eventPass(ctx context.Context) (int, error) {
	fired := 0
	for _, ev := range e.rules.Events() {
		if !ev.When() {
			continue
		}
		if err := e.pace(); err != nil {
			return fired, fmt.Errorf("event %q: %w", ev.Name, err)
		}

		e.logger.Debug("event fired", "rule", ev.Name, "turn", e.world.Now(), "depth", e.depth)
		if e.hooks.OnEventFire != nil {
			e.hooks.OnEventFire(ctx, &domain.RuleEvent{
				EventBase: e.base(domain.EventRuleFire),
				Rule:      ev.Name,
			})
		}

		fired++
		if err := ev.Do(ctx); err != nil {
			return fired, fmt.Errorf("event %q: %w", ev.Name, err)
		}
	}
	return fired, nil
}

func (e *Engine) choicePass(ctx context.Context) ([]domain.Choice, error) {
	var choices []domain.Choice
	for _, ch := range e.rules.Choices() {
		if !ch.When() {
			continue
		}
		topic, label := ch.Label()
		if topic == "" || label == "" {
			return nil, fmt.Errorf("%w: rule %q produced topic=%q label=%q",
				domain.ErrInvalidChoice, ch.Name, topic, label)
		}
		choices = append(choices, domain.Choice{
			Topic:  topic,
			Label:  label,
			Rule:   ch.Name,
			Invoke: e.bind(ch, topic, label),
		})
	}
	return choices, nil
}

// bind wraps a choice action so that selections are observable.
func (e *Engine) bind(ch domain.ChoiceRule, topic, label string) domain.Callback {
	return func(ctx context.Context) error {
		e.logger.Debug("choice selected", "rule", ch.Name, "topic", topic, "label", label)
		if e.hooks.OnChoiceSelected != nil {
			e.hooks.OnChoiceSelected(ctx, &domain.ChoiceEvent{
				EventBase: e.base(domain.EventChoiceSelected),
				Rule:      ch.Name,
				Topic:     topic,
				Label:     label,
			})
		}
		if err := ch.Do(ctx); err != nil {
			return fmt.Errorf("choice %q: %w", ch.Name, err)
		}
		return nil
	}
}
