/*Package traversal implements the coloring/slicing schedules over a
container's cells and the cell-pair handlers that drive the interaction
dispatcher. Every Traversal advertises the Newton-3 modes and container
kinds it is compatible with, per §4.2.*/
package traversal

import (
	"github.com/go-md/autopas/cell"
	"github.com/go-md/autopas/config"
	"github.com/go-md/autopas/functor"
)

// Grid is the cell-addressing surface a cell-based container (LinkedCells)
// exposes to traversals. Coordinates range over the full grid
// including the halo layer; InBounds reports whether a coordinate refers to
// a real cell at all (as opposed to outside the allocated grid).
type Grid interface {
	Dims() [3]int
	Cell(x, y, z int) *cell.Cell
	InBounds(x, y, z int) bool
	// IsHalo reports whether the cell at (x, y, z) is a halo cell. Base
	// steps only originate from non-halo cells; they may read from or
	// write into halo cells as neighbors.
	IsHalo(x, y, z int) bool
}

// Traversal is a schedule over a Grid plus a cell-pair handler.
type Traversal interface {
	Kind() config.TraversalKind
	SupportsNewton3() bool
	SupportsNonNewton3() bool
	CompatibleContainers() []config.ContainerKind

	// Applicable reports whether this traversal can run over a grid of the
	// given dimensions with the given worker count. Traversals whose
	// partitioning cannot produce enough independent units (e.g. Sliced
	// with fewer slabs than workers) report false here instead of failing
	// at run time, per §7's DimensionTooSmall policy.
	Applicable(dims [3]int, numWorkers int) bool

	// Execute runs the traversal to completion, blocking until every base
	// step has finished (per §5).
	Execute(d *functor.Dispatcher, g Grid, layout config.Layout, newton3 bool)
}

func compatible(kinds []config.ContainerKind, k config.ContainerKind) bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}

// Compatible reports whether t supports container kind k.
func Compatible(t Traversal, k config.ContainerKind) bool {
	return compatible(t.CompatibleContainers(), k)
}
