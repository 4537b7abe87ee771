package traversal

import (
	"github.com/go-md/autopas/config"
	"github.com/go-md/autopas/functor"
)

// C01 is the single-color base step: every base cell pairs with itself and
// all 26 neighbors, but accumulates force only into its own particles
// (CellAoSOneWay/CellSoAOneWay). Because writes are confined to the base
// cell, every base cell can run concurrently with no coloring at all. Valid
// only without Newton-3.
type C01 struct{}

func (C01) Kind() config.TraversalKind { return config.C01 }
func (C01) SupportsNewton3() bool      { return false }
func (C01) SupportsNonNewton3() bool   { return true }
func (C01) CompatibleContainers() []config.ContainerKind {
	return []config.ContainerKind{config.LinkedCells}
}

func (C01) Applicable(dims [3]int, numWorkers int) bool {
	return dims[0] >= 1 && dims[1] >= 1 && dims[2] >= 1
}

func (C01) Execute(d *functor.Dispatcher, g Grid, layout config.Layout, newton3 bool) {
	offs := allOffsets26()
	bases := baseCells(g)

	if layout == config.SoA {
		functor.LoadAll(touchedCells(g, bases, offs))
		defer functor.ExtractAll(touchedCells(g, bases, offs))
	}

	runParallel(bases, func(x, y, z int) {
		base := g.Cell(x, y, z)
		if layout == config.SoA {
			d.CellSoA(base, base, true) // self-pairs: one call, both updated
		} else {
			d.CellAoS(base, base, true)
		}
		for _, o := range offs {
			nx, ny, nz := x+o[0], y+o[1], z+o[2]
			if !g.InBounds(nx, ny, nz) {
				continue
			}
			other := g.Cell(nx, ny, nz)
			if layout == config.SoA {
				d.CellSoAOneWay(base, other)
			} else {
				d.CellAoSOneWay(base, other)
			}
		}
	})
}
