package state_test

import (
	"testing"

	"github.com/aretw0/parlor/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetNeverTouched(t *testing.T) {
	st := state.New()

	n := st.Get(state.ParsePath("hall.desk.seen"))
	require.NotNil(t, n)
	assert.True(t, n.IsEmpty())
	assert.False(t, n.IsLeaf())
	assert.False(t, n.Bool())
	assert.False(t, n.Truthy())

	// The read materialized the chain.
	assert.True(t, st.Contains("hall"))
	assert.True(t, st.Get(state.P("hall")).Contains("desk"))
}

func TestStore_SetThenGet(t *testing.T) {
	st := state.New()
	st.Set(state.P("a", "b"), 5)

	assert.Equal(t, 5, st.Get(state.P("a", "b")).Int())

	sibling := st.Get(state.P("a", "c"))
	assert.True(t, sibling.IsEmpty())
	_, ok := sibling.Value()
	assert.False(t, ok)
	assert.Equal(t, 0, sibling.Int())

	// b is still intact after the sibling read.
	v, ok := st.Get(state.P("a", "b")).Value()
	assert.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestStore_ContainsOnlyDirectChildren(t *testing.T) {
	st := state.New()
	assert.False(t, st.Contains("x"))

	st.Set(state.P("x", "y", "z"), true)
	assert.True(t, st.Contains("x"))
	assert.False(t, st.Contains("y"))
	assert.True(t, st.Get(state.P("x")).Contains("y"))
	assert.False(t, st.Get(state.P("x")).Contains("z"))
}

func TestStore_ReadThroughLeaf(t *testing.T) {
	st := state.New()
	st.Set(state.P("door"), "open")

	n := st.Get(state.P("door", "handle"))
	assert.True(t, n.IsEmpty())
	assert.Equal(t, "open", st.Get(state.P("door")).String())
}

func TestStore_SetThroughLeafReplacesIt(t *testing.T) {
	st := state.New()
	st.Set(state.P("door"), "open")
	st.Set(state.P("door", "handle"), "brass")

	door := st.Get(state.P("door"))
	assert.False(t, door.IsLeaf())
	assert.Equal(t, "brass", door.Get(state.P("handle")).String())
}

func TestStore_SetMapExpands(t *testing.T) {
	st := state.New()
	st.Set(state.P("hall"), map[string]any{
		"seen": false,
		"desk": map[string]any{"seen": true},
	})

	hall := st.Get(state.P("hall"))
	assert.Equal(t, []string{"desk", "seen"}, hall.Keys())
	assert.True(t, hall.Get(state.P("seen")).IsLeaf())
	assert.False(t, hall.Get(state.P("seen")).Bool())
	assert.True(t, st.Get(state.ParsePath("hall.desk.seen")).Bool())
}

func TestStore_RootStaysContainer(t *testing.T) {
	st := state.New()
	st.Set(nil, 42)
	assert.NotNil(t, st.Snapshot())
	assert.False(t, st.Root().IsLeaf())
}

func TestNode_NumericAccessors(t *testing.T) {
	st := state.New()
	st.Set(state.P("f"), 0.25)
	st.Set(state.P("i"), int64(3))
	st.Set(state.P("s"), "text")

	assert.Equal(t, 0.25, st.Get(state.P("f")).Float())
	assert.Equal(t, 3, st.Get(state.P("i")).Int())
	assert.Equal(t, 3.0, st.Get(state.P("i")).Float())
	assert.Equal(t, 0.0, st.Get(state.P("s")).Float())
	assert.True(t, st.Get(state.P("s")).Truthy())
}

func TestParsePath(t *testing.T) {
	assert.Nil(t, state.ParsePath(""))
	assert.Equal(t, state.Path{"a", "b"}, state.ParsePath("a.b"))
	assert.Equal(t, "a.b.c", state.P("a").Child("b", "c").String())

	base := state.P("a")
	_ = base.Child("x")
	assert.Equal(t, state.Path{"a"}, base, "Child must not alias the receiver")
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	st := state.New()
	st.Set(state.P("a", "b"), 1)

	snap := st.Snapshot()
	st.Set(state.P("a", "b"), 2)

	inner := snap["a"].(map[string]any)
	assert.Equal(t, 1, inner["b"])
}
