package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/parlor/pkg/domain"
)

// Presenter implements ports.Presenter in memory.
// It records every call so tests and headless runs can inspect what a
// player would have seen.
type Presenter struct {
	log         []string
	groups      []domain.TopicGroup
	interactive bool
	redraws     int
	calls       []string
}

// NewPresenter creates an interactive presenter with an empty log.
func NewPresenter() *Presenter {
	return &Presenter{interactive: true}
}

// Narrate appends fragment to the log.
func (p *Presenter) Narrate(fragment string) error {
	p.log = append(p.log, fragment)
	p.calls = append(p.calls, "narrate")
	return nil
}

// PresentChoices replaces the displayed choices.
func (p *Presenter) PresentChoices(groups []domain.TopicGroup) error {
	p.groups = append([]domain.TopicGroup(nil), groups...)
	p.calls = append(p.calls, "present")
	return nil
}

// SetInteractive toggles whether Select accepts input.
func (p *Presenter) SetInteractive(enabled bool) error {
	p.interactive = enabled
	if enabled {
		p.calls = append(p.calls, "enable")
	} else {
		p.calls = append(p.calls, "disable")
	}
	return nil
}

// RedrawNow counts the redraw.
func (p *Presenter) RedrawNow() error {
	p.redraws++
	p.calls = append(p.calls, "redraw")
	return nil
}

// Log returns a copy of the narration log.
func (p *Presenter) Log() []string {
	return append([]string(nil), p.log...)
}

// Groups returns the currently displayed choices.
func (p *Presenter) Groups() []domain.TopicGroup {
	return p.groups
}

// Labels flattens the displayed choices into "Topic/Label" entries.
func (p *Presenter) Labels() []string {
	var out []string
	for _, g := range p.groups {
		for _, c := range g.Choices {
			out = append(out, g.Topic+"/"+c.Label)
		}
	}
	return out
}

// Interactive reports whether choices are enabled.
func (p *Presenter) Interactive() bool {
	return p.interactive
}

// Redraws returns how many times RedrawNow was called.
func (p *Presenter) Redraws() int {
	return p.redraws
}

// Calls returns the presenter calls in order: narrate, present, enable,
// disable or redraw.
func (p *Presenter) Calls() []string {
	return append([]string(nil), p.calls...)
}

// ResetCalls clears the call journal.
func (p *Presenter) ResetCalls() {
	p.calls = nil
}

// Select invokes the displayed choice with the given topic and label.
func (p *Presenter) Select(ctx context.Context, topic, label string) error {
	if !p.interactive {
		return domain.ErrInputDisabled
	}
	for _, g := range p.groups {
		if g.Topic != topic {
			continue
		}
		for _, c := range g.Choices {
			if c.Label == label {
				return c.Invoke(ctx)
			}
		}
	}
	return fmt.Errorf("%w: %s/%s", domain.ErrChoiceNotFound, topic, label)
}

// Choices returns the displayed choices flattened in display order.
// Pick numbers them from 1.
func (p *Presenter) Choices() []domain.Choice {
	var out []domain.Choice
	for _, g := range p.groups {
		out = append(out, g.Choices...)
	}
	return out
}

// Pick invokes the n-th displayed choice, counting from 1.
func (p *Presenter) Pick(ctx context.Context, n int) error {
	if !p.interactive {
		return domain.ErrInputDisabled
	}
	choices := p.Choices()
	if n < 1 || n > len(choices) {
		return fmt.Errorf("%w: #%d", domain.ErrChoiceNotFound, n)
	}
	return choices[n-1].Invoke(ctx)
}
