/*
Package state implements the auto-vivifying world tree.

Every read through a path that was never assigned materializes an empty
container instead of failing, so conditions such as "hall.desk.seen" can be
declared before "hall" exists. An empty container is not a boolean: flags
that a rule tests for false must be initialized explicitly.

	st := state.New()
	st.Set(state.ParsePath("hall.desk.seen"), false)
	st.Get(state.ParsePath("hall.desk.seen")).Bool() // false
	st.Get(state.ParsePath("hall.owl")).IsEmpty()    // true, and now materialized
*/
package state
