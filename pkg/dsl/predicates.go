package dsl

import (
	"github.com/aretw0/parlor/pkg/domain"
	"github.com/aretw0/parlor/pkg/state"
)

// Always holds on every turn.
func Always() bool { return true }

// All holds when every predicate holds. Evaluation short-circuits left to
// right, so a decaying trigger placed last is only polled when the rest hold.
func All(preds ...domain.Predicate) domain.Predicate {
	return func() bool {
		for _, p := range preds {
			if !p() {
				return false
			}
		}
		return true
	}
}

// Any holds when at least one predicate holds.
func Any(preds ...domain.Predicate) domain.Predicate {
	return func() bool {
		for _, p := range preds {
			if p() {
				return true
			}
		}
		return false
	}
}

// Not negates a predicate.
func Not(p domain.Predicate) domain.Predicate {
	return func() bool { return !p() }
}

// Flag holds when the leaf at path is the boolean true.
func Flag(st *state.Store, path string) domain.Predicate {
	p := state.ParsePath(path)
	return func() bool { return st.Get(p).Bool() }
}

// Unset holds when the leaf at path is the boolean false.
// An unassigned path is neither set nor unset.
func Unset(st *state.Store, path string) domain.Predicate {
	p := state.ParsePath(path)
	return func() bool {
		n := st.Get(p)
		v, ok := n.Value()
		b, isBool := v.(bool)
		return ok && isBool && !b
	}
}
