package traversal

import "github.com/go-md/autopas/config"

// All returns one instance of every grid-based traversal (i.e. every
// Traversal except ClusterColoring, which addresses a ClusterGrid instead
// of a Grid).
func All() []Traversal {
	return []Traversal{C01{}, C08{}, C18{}, Sliced{}}
}

// Lookup returns the grid-based traversal registered for kind, if any.
func Lookup(kind config.TraversalKind) (Traversal, bool) {
	for _, t := range All() {
		if t.Kind() == kind {
			return t, true
		}
	}
	return nil, false
}
