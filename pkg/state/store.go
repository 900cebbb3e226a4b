package state

// Store is the root of the mutable world tree.
// It is accessed from the single control thread and is not safe for
// concurrent use.
type Store struct {
	root *Node
}

// New creates an empty store.
func New() *Store {
	return &Store{root: newNode()}
}

// Root returns the root container.
func (s *Store) Root() *Node {
	return s.root
}

// Get returns the node at path, creating it (and every missing parent) as an
// empty container.
func (s *Store) Get(path Path) *Node {
	return s.root.Get(path)
}

// Set assigns value at path.
func (s *Store) Set(path Path, value any) {
	if len(path) == 0 {
		if _, ok := value.(map[string]any); !ok {
			// The root always stays a container.
			return
		}
	}
	s.root.Set(path, value)
}

// Contains reports whether a top-level key was ever materialized.
func (s *Store) Contains(key string) bool {
	return s.root.Contains(key)
}

// Snapshot returns a deep copy of the whole tree.
func (s *Store) Snapshot() map[string]any {
	return s.root.Snapshot().(map[string]any)
}
