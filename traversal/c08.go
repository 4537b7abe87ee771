package traversal

import (
	"github.com/go-md/autopas/config"
	"github.com/go-md/autopas/functor"
)

// C08 is the classical 8-color Linked-Cells base step: each base cell
// processes its own self-pair and the 13 pairs of cells within its 2x2x2
// block (blockOffsets7) whose componentwise minimum is the base cell (see
// dispatchBlock). Every adjacent cell pair has exactly one componentwise
// minimum, so it is attributed to exactly one base cell's block, provided
// that minimum is a base cell (an owned cell). Valid only with Newton-3:
// two base cells of the same color8 class differ by at least 2 along some
// axis, so their blocks never share a cell, which is what makes concurrent
// base cells write-disjoint.
type C08 struct{}

func (C08) Kind() config.TraversalKind { return config.C08 }
func (C08) SupportsNewton3() bool      { return true }
func (C08) SupportsNonNewton3() bool   { return false }
func (C08) CompatibleContainers() []config.ContainerKind {
	return []config.ContainerKind{config.LinkedCells}
}

func (C08) Applicable(dims [3]int, numWorkers int) bool {
	return dims[0] >= 1 && dims[1] >= 1 && dims[2] >= 1
}

func (C08) Execute(d *functor.Dispatcher, g Grid, layout config.Layout, newton3 bool) {
	offs := blockOffsets7()
	bases := baseCells(g)

	if layout == config.SoA {
		functor.LoadAll(touchedCells(g, bases, offs))
		defer functor.ExtractAll(touchedCells(g, bases, offs))
	}

	runColored(bases, color8, 8, func(x, y, z int) {
		dispatchBlock(d, blockCells(g, x, y, z, offs), layout, newton3)
	})
}
