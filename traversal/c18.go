package traversal

import (
	"github.com/go-md/autopas/config"
	"github.com/go-md/autopas/functor"
)

// C18 pairs each base cell with itself and its forward-13 neighbors
// (forwardOffsets13) instead of C08's 2x2x2 block, under an 18-class
// coloring. It exists for list-based structures whose neighbor
// storage cannot express the c08 8-coloring directly (e.g. because cells
// are grouped into towers that only expose a flat neighbor list, not an
// addressable 3D grid) — here it is provided as a drop-in, always-safe
// alternative to C08 over a plain Grid.
type C18 struct{}

func (C18) Kind() config.TraversalKind { return config.C18 }
func (C18) SupportsNewton3() bool      { return true }
func (C18) SupportsNonNewton3() bool   { return false }
func (C18) CompatibleContainers() []config.ContainerKind {
	return []config.ContainerKind{config.LinkedCells}
}

func (C18) Applicable(dims [3]int, numWorkers int) bool {
	return dims[0] >= 1 && dims[1] >= 1 && dims[2] >= 1
}

func (C18) Execute(d *functor.Dispatcher, g Grid, layout config.Layout, newton3 bool) {
	offs := forwardOffsets13()
	bases := baseCells(g)

	if layout == config.SoA {
		functor.LoadAll(touchedCells(g, bases, offs))
		defer functor.ExtractAll(touchedCells(g, bases, offs))
	}

	runColored(bases, color18, 18, func(x, y, z int) {
		base := g.Cell(x, y, z)
		dispatchPair(d, base, base, layout, newton3)
		for _, o := range offs {
			nx, ny, nz := x+o[0], y+o[1], z+o[2]
			if !g.InBounds(nx, ny, nz) {
				continue
			}
			dispatchPair(d, base, g.Cell(nx, ny, nz), layout, newton3)
		}
	})
}
