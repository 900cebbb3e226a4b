package parlor

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/aretw0/parlor/internal/logging"
	"github.com/aretw0/parlor/internal/runtime"
	"github.com/aretw0/parlor/pkg/domain"
	"github.com/aretw0/parlor/pkg/dsl"
	"github.com/aretw0/parlor/pkg/ports"
	"github.com/aretw0/parlor/pkg/registry"
	"github.com/aretw0/parlor/pkg/state"
	"github.com/aretw0/parlor/pkg/trigger"
	"github.com/aretw0/parlor/pkg/world"
)

// Engine is the high-level entry point for the Parlor library.
// It wires the world, the rule registry, the decaying trigger and the turn
// loop around a presenter.
type Engine struct {
	runtime *runtime.Engine
	world   *world.World
	rules   *registry.Registry
	trigger *trigger.Decaying

	store           *state.Store
	sampler         ports.Sampler
	hooks           domain.LifecycleHooks
	logger          *slog.Logger
	triggerDefaults *trigger.Params
	runtimeOpts     []runtime.EngineOption
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSampler injects the uniform random source used by decaying triggers.
func WithSampler(s ports.Sampler) Option {
	return func(e *Engine) {
		e.sampler = s
	}
}

// WithSeed seeds the default random source.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.sampler = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithStore starts the engine over an existing state tree.
func WithStore(store *state.Store) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithPacing sets the pause taken before each event fires.
func WithPacing(d time.Duration) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithPacing(d))
	}
}

// WithSleep replaces the blocking wait used for pacing.
func WithSleep(sleep func(time.Duration)) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithSleep(sleep))
	}
}

// WithTriggerDefaults sets the parameters of polls that pass no options.
func WithTriggerDefaults(p trigger.Params) Option {
	return func(e *Engine) {
		e.triggerDefaults = &p
	}
}

// New creates an engine that drives presenter.
func New(presenter ports.Presenter, opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.sampler == nil {
		eng.sampler = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if eng.store == nil {
		eng.store = state.New()
	}

	eng.world = world.New(eng.store)
	eng.rules = registry.NewRegistry()
	eng.trigger = trigger.New(eng.store, eng.sampler, eng.world.Now)
	if eng.triggerDefaults != nil {
		eng.trigger.SetDefaults(*eng.triggerDefaults)
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	}
	runtimeOpts = append(runtimeOpts, eng.runtimeOpts...)
	eng.runtime = runtime.NewEngine(eng.rules, eng.world, presenter, runtimeOpts...)
	return eng
}

// World returns the actor and location model.
func (e *Engine) World() *world.World {
	return e.world
}

// Store returns the state tree.
func (e *Engine) Store() *state.Store {
	return e.store
}

// Rules returns the rule registry.
func (e *Engine) Rules() *registry.Registry {
	return e.rules
}

// Trigger returns the decaying trigger poller.
func (e *Engine) Trigger() *trigger.Decaying {
	return e.trigger
}

// Register appends rules in order.
func (e *Engine) Register(rules ...domain.Rule) error {
	return e.rules.Register(rules...)
}

// Define builds rules with the DSL and registers them.
func (e *Engine) Define(fn func(b *dsl.Builder)) error {
	b := dsl.New()
	fn(b)
	return b.RegisterTo(e.rules)
}

// RunTurn runs one turn. Rule actions may call it again.
func (e *Engine) RunTurn(ctx context.Context) error {
	return e.runtime.RunTurn(ctx)
}

// Narrate appends a fragment to the presenter's log.
func (e *Engine) Narrate(fragment string) error {
	return e.runtime.Narrate(fragment)
}

// Notice polls the decaying trigger at path. It is meant for predicates.
func (e *Engine) Notice(path state.Path, opts ...trigger.Option) bool {
	return e.trigger.Poll(path, opts...)
}

// Now returns the logical time.
func (e *Engine) Now() int {
	return e.world.Now()
}

// Depth returns the number of turns currently running.
func (e *Engine) Depth() int {
	return e.runtime.Depth()
}

// Snapshot returns the state tree as nested maps.
func (e *Engine) Snapshot() map[string]any {
	return e.store.Snapshot()
}
