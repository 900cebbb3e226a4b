package state

import (
	"sort"
	"strings"
)

// Path addresses a node in the tree as a sequence of keys.
type Path []string

// ParsePath splits a dotted address ("hall.desk.seen") into a Path.
// An empty string is the root.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "."))
}

// P is a convenience constructor for Path.
func P(keys ...string) Path {
	return Path(keys)
}

// Child returns a copy of the path extended with keys.
func (p Path) Child(keys ...string) Path {
	out := make(Path, 0, len(p)+len(keys))
	out = append(out, p...)
	return append(out, keys...)
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Node is one slot of the world tree. A node is either a container of named
// children or a leaf holding a value. Reading a missing child materializes an
// empty container in its place.
type Node struct {
	value    any
	leaf     bool
	children map[string]*Node
}

func newNode() *Node {
	return &Node{children: make(map[string]*Node)}
}

// Child returns the direct child named key, creating an empty one if it was
// never touched. Reading through a leaf yields a detached empty node and
// leaves the leaf's value untouched.
func (n *Node) Child(key string) *Node {
	if n.leaf {
		return newNode()
	}
	c, ok := n.children[key]
	if !ok {
		c = newNode()
		n.children[key] = c
	}
	return c
}

// Get walks path from n, materializing every missing step. It never fails.
func (n *Node) Get(path Path) *Node {
	cur := n
	for _, key := range path {
		cur = cur.Child(key)
	}
	return cur
}

// Set assigns value at path, creating intermediate containers and replacing
// any leaf found on the way. A map[string]any value is expanded into a
// subtree.
func (n *Node) Set(path Path, value any) {
	cur := n
	for _, key := range path {
		if cur.leaf {
			cur.reset()
		}
		cur = cur.Child(key)
	}
	cur.assign(value)
}

// Contains reports whether the direct child key was ever materialized,
// either by assignment or by a read at this level.
func (n *Node) Contains(key string) bool {
	if n.leaf {
		return false
	}
	_, ok := n.children[key]
	return ok
}

func (n *Node) reset() {
	n.value = nil
	n.leaf = false
	n.children = make(map[string]*Node)
}

func (n *Node) assign(value any) {
	if m, ok := value.(map[string]any); ok {
		n.reset()
		for k, v := range m {
			n.Child(k).assign(v)
		}
		return
	}
	n.value = value
	n.leaf = true
	n.children = nil
}

// IsLeaf reports whether the node holds an assigned value.
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// IsEmpty reports whether the node is a container with no children.
func (n *Node) IsEmpty() bool {
	return !n.leaf && len(n.children) == 0
}

// Value returns the assigned value; ok is false for containers.
func (n *Node) Value() (any, bool) {
	return n.value, n.leaf
}

// Keys returns the names of the direct children in lexical order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

// Bool returns the leaf value if it is a bool, false otherwise.
func (n *Node) Bool() bool {
	b, _ := n.value.(bool)
	return n.leaf && b
}

// Truthy applies the usual truthiness convention: zero values and empty
// containers are false.
func (n *Node) Truthy() bool {
	if !n.leaf {
		return len(n.children) > 0
	}
	switch v := n.value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}
	if f, ok := toFloat(n.value); ok {
		return f != 0
	}
	return true
}

// Int returns the leaf value as an int, or 0 when it is not numeric.
func (n *Node) Int() int {
	if !n.leaf {
		return 0
	}
	switch v := n.value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	}
	f, _ := toFloat(n.value)
	return int(f)
}

// Float returns the leaf value as a float64, or 0 when it is not numeric.
func (n *Node) Float() float64 {
	if !n.leaf {
		return 0
	}
	f, _ := toFloat(n.value)
	return f
}

// String returns the leaf value if it is a string, "" otherwise.
func (n *Node) String() string {
	s, _ := n.value.(string)
	return s
}

// Snapshot returns a deep copy of the subtree: leaves as their values and
// containers as map[string]any.
func (n *Node) Snapshot() any {
	if n.leaf {
		return n.value
	}
	out := make(map[string]any, len(n.children))
	for k, c := range n.children {
		out[k] = c.Snapshot()
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}
