package runtime

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/parlor/internal/logging"
	"github.com/aretw0/parlor/pkg/domain"
	"github.com/aretw0/parlor/pkg/ports"
	"github.com/aretw0/parlor/pkg/registry"
	"github.com/aretw0/parlor/pkg/world"
)

// DefaultPacing is the pause taken before each event rule fires.
const DefaultPacing = 400 * time.Millisecond

// Engine is the turn loop. It evaluates the rule registry against the world
// and drives the presenter. It is single-threaded: every call, including
// re-entrant RunTurn calls from rule actions, happens on the control thread.
type Engine struct {
	rules     *registry.Registry
	world     *world.World
	presenter ports.Presenter
	logger    *slog.Logger
	hooks     domain.LifecycleHooks

	pacing time.Duration
	sleep  func(time.Duration)
	clock  func() time.Time

	depth    int
	maxDepth int
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithPacing sets the pause taken before each event rule fires.
// Zero keeps the disable/redraw/enable sequence but skips the wait.
func WithPacing(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d >= 0 {
			e.pacing = d
		}
	}
}

// WithSleep replaces the blocking wait used for pacing.
func WithSleep(sleep func(time.Duration)) EngineOption {
	return func(e *Engine) {
		if sleep != nil {
			e.sleep = sleep
		}
	}
}

// WithClock replaces the wall clock used to timestamp lifecycle events.
func WithClock(clock func() time.Time) EngineOption {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// NewEngine creates an engine over the given rules, world and presenter.
func NewEngine(rules *registry.Registry, w *world.World, presenter ports.Presenter, opts ...EngineOption) *Engine {
	e := &Engine{
		rules:     rules,
		world:     w,
		presenter: presenter,
		logger:    logging.NewNop(),
		pacing:    DefaultPacing,
		sleep:     time.Sleep,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// World returns the world the engine evaluates.
func (e *Engine) World() *world.World {
	return e.world
}

// Rules returns the rule registry.
func (e *Engine) Rules() *registry.Registry {
	return e.rules
}

// Presenter returns the presentation layer.
func (e *Engine) Presenter() ports.Presenter {
	return e.presenter
}

// Depth returns the number of turns currently running, counting re-entrant
// ones. It is 0 between turns.
func (e *Engine) Depth() int {
	return e.depth
}

// MaxDepth returns the deepest re-entry observed so far.
func (e *Engine) MaxDepth() int {
	return e.maxDepth
}

// Narrate appends a fragment to the presenter's log.
func (e *Engine) Narrate(fragment string) error {
	if err := e.presenter.Narrate(fragment); err != nil {
		return fmt.Errorf("failed to narrate: %w", err)
	}
	return nil
}

// pace disables input, forces a redraw, waits, then re-enables input.
func (e *Engine) pace() error {
	if err := e.presenter.SetInteractive(false); err != nil {
		return fmt.Errorf("failed to disable input: %w", err)
	}
	if err := e.presenter.RedrawNow(); err != nil {
		return fmt.Errorf("failed to redraw: %w", err)
	}
	if e.pacing > 0 {
		e.sleep(e.pacing)
	}
	if err := e.presenter.SetInteractive(true); err != nil {
		return fmt.Errorf("failed to enable input: %w", err)
	}
	return nil
}

func (e *Engine) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: e.clock(),
		Type:      t,
		Turn:      e.world.Now(),
		Depth:     e.depth,
	}
}
