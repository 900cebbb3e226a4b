package state

import (
	"reflect"
	"sort"
)

// Delta maps dotted leaf paths to their new values.
// For deletions, the key is present with a nil value.
type Delta map[string]any

// Keys returns the changed paths in lexical order.
func (d Delta) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsEmpty checks if the delta contains any change.
func (d Delta) IsEmpty() bool {
	return len(d) == 0
}

// Diff calculates the leaf-level difference between two snapshots.
// If old is nil, every leaf of new is reported. Empty containers are not
// leaves, so structure created by reads alone never shows up as a change.
func Diff(old, new map[string]any) Delta {
	oldLeaves := flatten(old)
	newLeaves := flatten(new)

	delta := make(Delta)

	// Added or modified
	for k, newVal := range newLeaves {
		oldVal, exists := oldLeaves[k]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}

	// Deletions
	for k := range oldLeaves {
		if _, exists := newLeaves[k]; !exists {
			delta[k] = nil
		}
	}

	return delta
}

func flatten(tree map[string]any) map[string]any {
	out := make(map[string]any)
	var walk func(prefix Path, v any)
	walk = func(prefix Path, v any) {
		m, ok := v.(map[string]any)
		if !ok {
			out[prefix.String()] = v
			return
		}
		for k, child := range m {
			walk(prefix.Child(k), child)
		}
	}
	if tree != nil {
		walk(nil, tree)
	}
	return out
}
