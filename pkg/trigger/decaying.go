// Package trigger implements decaying-probability checks whose state lives in
// the world tree.
package trigger

import (
	"math"

	"github.com/aretw0/parlor/pkg/ports"
	"github.com/aretw0/parlor/pkg/state"
)

// Default parameters of a decaying trigger.
const (
	DefaultInitial = 0.5
	DefaultDecay   = 0.9
	DefaultFloor   = 0.0
)

// Record field names, relative to the trigger address.
const (
	KeyProbability  = "probability"
	KeyLastFireTime = "last_fire_time"
)

// Params configures one poll.
type Params struct {
	Initial float64
	Decay   float64
	Floor   float64
}

// DefaultParams returns the stock 0.5 / 0.9 / 0 parameters.
func DefaultParams() Params {
	return Params{Initial: DefaultInitial, Decay: DefaultDecay, Floor: DefaultFloor}
}

// Option overrides a parameter for a single poll.
type Option func(*Params)

// WithInitial sets the probability seeded on first use of an address.
func WithInitial(p float64) Option {
	return func(params *Params) { params.Initial = p }
}

// WithDecay sets the factor applied to the probability after every draw.
func WithDecay(f float64) Option {
	return func(params *Params) { params.Decay = f }
}

// WithFloor sets the minimum the probability can decay to.
func WithFloor(f float64) Option {
	return func(params *Params) { params.Floor = f }
}

// Decaying polls trigger records stored in a state tree.
type Decaying struct {
	store    *state.Store
	sampler  ports.Sampler
	now      func() int
	defaults Params
}

// New creates a poller. now supplies the logical time stamped on success.
func New(store *state.Store, sampler ports.Sampler, now func() int) *Decaying {
	if now == nil {
		now = func() int { return 0 }
	}
	return &Decaying{
		store:    store,
		sampler:  sampler,
		now:      now,
		defaults: DefaultParams(),
	}
}

// SetDefaults replaces the parameters used when a poll passes no options.
func (d *Decaying) SetDefaults(p Params) {
	d.defaults = p
}

// Defaults returns the parameters used when a poll passes no options.
func (d *Decaying) Defaults() Params {
	return d.defaults
}

// Poll draws one sample against the record at path and succeeds iff the
// sample is below the stored probability. Whatever the outcome, the stored
// probability then becomes max(floor, probability*decay). The first poll at
// an address seeds the record with the initial probability.
func (d *Decaying) Poll(path state.Path, opts ...Option) bool {
	params := d.defaults
	for _, opt := range opts {
		opt(&params)
	}
	params = params.clamped()

	rec := d.store.Get(path)
	if !rec.Contains(KeyProbability) || !rec.Get(state.P(KeyProbability)).IsLeaf() {
		d.store.Set(path.Child(KeyProbability), params.Initial)
		d.store.Set(path.Child(KeyLastFireTime), -1)
		rec = d.store.Get(path)
	}

	p := clamp01(rec.Get(state.P(KeyProbability)).Float())
	fired := d.sampler.Float64() < p

	d.store.Set(path.Child(KeyProbability), math.Max(params.Floor, p*params.Decay))
	if fired {
		d.store.Set(path.Child(KeyLastFireTime), d.now())
	}
	return fired
}

// Probability returns the stored probability at path and whether the record
// has been seeded. It never seeds the record itself.
func (d *Decaying) Probability(path state.Path) (float64, bool) {
	rec := d.store.Get(path)
	if !rec.Contains(KeyProbability) {
		return 0, false
	}
	return rec.Get(state.P(KeyProbability)).Float(), true
}

// LastFire returns the logical time of the last success at path.
func (d *Decaying) LastFire(path state.Path) (int, bool) {
	rec := d.store.Get(path)
	if !rec.Contains(KeyLastFireTime) {
		return 0, false
	}
	t := rec.Get(state.P(KeyLastFireTime)).Int()
	return t, t >= 0
}

func (p Params) clamped() Params {
	return Params{
		Initial: clamp01(p.Initial),
		Decay:   clamp01(p.Decay),
		Floor:   clamp01(p.Floor),
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}
