package world

import (
	"errors"
	"fmt"

	"github.com/aretw0/parlor/pkg/state"
)

// ErrDuplicateActor is returned when an actor name is registered twice.
var ErrDuplicateActor = errors.New("duplicate actor")

// Reserved addresses in the world tree.
var (
	PathTime          = state.P("time")
	PathLocation      = state.P("location")
	PathLocationSince = state.P("location_since")
	PathPresence      = state.P("presence")
	PathActors        = state.P("actors")
)

// World binds the logical clock, the current location and actor presence to
// a state store. Everything it tracks lives in the store.
type World struct {
	store  *state.Store
	actors map[string]*Actor
	order  []*Actor
}

// New creates a world over store. The clock starts at 0 unless the store
// already carries a time.
func New(store *state.Store) *World {
	if store == nil {
		store = state.New()
	}
	if !store.Get(PathTime).IsLeaf() {
		store.Set(PathTime, 0)
	}
	return &World{
		store:  store,
		actors: make(map[string]*Actor),
	}
}

// Store returns the underlying state store.
func (w *World) Store() *state.Store {
	return w.store
}

// Now returns the current logical time.
func (w *World) Now() int {
	return w.store.Get(PathTime).Int()
}

// Tick advances the logical time by exactly one and returns the new value.
func (w *World) Tick() int {
	next := w.Now() + 1
	w.store.Set(PathTime, next)
	return next
}

// Duration returns the elapsed logical time since the given instant.
func (w *World) Duration(since int) int {
	return w.Now() - since
}

// Location returns the current location, "" before the first move.
func (w *World) Location() string {
	return w.store.Get(PathLocation).String()
}

// MoveTo changes the current location and stamps the arrival time.
func (w *World) MoveTo(location string) {
	w.store.Set(PathLocation, location)
	w.store.Set(PathLocationSince, w.Now())
}

// TimeHere returns how long the current location has been occupied.
func (w *World) TimeHere() int {
	return w.Duration(w.store.Get(PathLocationSince).Int())
}

// NewActor registers a uniquely named actor.
func (w *World) NewActor(name, color string) (*Actor, error) {
	if name == "" {
		return nil, fmt.Errorf("actor name cannot be empty")
	}
	if _, exists := w.actors[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateActor, name)
	}
	a := &Actor{Name: name, Color: color, world: w}
	w.actors[name] = a
	w.order = append(w.order, a)
	return a, nil
}

// Actor looks up a registered actor by name.
func (w *World) Actor(name string) (*Actor, bool) {
	a, ok := w.actors[name]
	return a, ok
}

// Actors returns the registered actors in registration order.
func (w *World) Actors() []*Actor {
	out := make([]*Actor, len(w.order))
	copy(out, w.order)
	return out
}

// Enter adds the actor to the presence set of location. Entering twice is a
// no-op.
func (w *World) Enter(a *Actor, location string) {
	w.store.Set(PathPresence.Child(location, a.Name), true)
}

// IsPresent reports whether the actor is in the current location's presence set.
func (w *World) IsPresent(a *Actor) bool {
	loc := w.Location()
	if loc == "" {
		return false
	}
	set := w.store.Get(PathPresence.Child(loc))
	if !set.Contains(a.Name) {
		return false
	}
	return set.Get(state.P(a.Name)).Bool()
}

// Present returns the names in the presence set of location, in lexical order.
func (w *World) Present(location string) []string {
	set := w.store.Get(PathPresence.Child(location))
	var names []string
	for _, name := range set.Keys() {
		if set.Get(state.P(name)).Bool() {
			names = append(names, name)
		}
	}
	return names
}
