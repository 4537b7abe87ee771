package traversal

import (
	"github.com/go-md/autopas/cell"
	"github.com/go-md/autopas/config"
	"github.com/go-md/autopas/functor"
	"github.com/go-md/autopas/workers"
)

func dispatchPair(d *functor.Dispatcher, a, b *cell.Cell, layout config.Layout, newton3 bool) {
	if layout == config.SoA {
		d.CellSoA(a, b, newton3)
		return
	}
	d.CellAoS(a, b, newton3)
}

// baseCells collects every non-halo cell coordinate in the grid: base
// steps only originate from owned cells, never from halo cells. Halo cells
// only appear as neighbors; c01 reads them without writing them, while the
// Newton-3 traversals also accumulate the reaction force into them.
func baseCells(g Grid) [][3]int {
	dims := g.Dims()
	var out [][3]int
	for z := 0; z < dims[2]; z++ {
		for y := 0; y < dims[1]; y++ {
			for x := 0; x < dims[0]; x++ {
				if !g.IsHalo(x, y, z) {
					out = append(out, [3]int{x, y, z})
				}
			}
		}
	}
	return out
}

// blockCells returns the base cell at (x, y, z) followed by the cell at
// each of offs, for c08's 2x2x2 block. With offs = blockOffsets7 the slot
// index is the offset's bit pattern (bit 0 = dx, bit 1 = dy, bit 2 = dz).
// A slot is nil where the offset falls outside the grid.
func blockCells(g Grid, x, y, z int, offs [][3]int) []*cell.Cell {
	cells := []*cell.Cell{g.Cell(x, y, z)}
	for _, o := range offs {
		nx, ny, nz := x+o[0], y+o[1], z+o[2]
		var c *cell.Cell
		if g.InBounds(nx, ny, nz) {
			c = g.Cell(nx, ny, nz)
		}
		cells = append(cells, c)
	}
	return cells
}

// dispatchBlock runs the base cell's self-pair and every pair of block
// slots i, j whose componentwise minimum is the base cell (i&j == 0: no
// axis where both are offset by 1), skipping nil slots. For a full block
// that is 13 cross pairs, and every adjacent cell pair of the grid has
// exactly one such block. Two calls whose blocks are disjoint are safe to
// run concurrently; that disjointness is the caller's responsibility.
func dispatchBlock(d *functor.Dispatcher, cells []*cell.Cell, layout config.Layout, newton3 bool) {
	for i := 0; i < len(cells); i++ {
		for j := i; j < len(cells); j++ {
			if i&j != 0 || cells[i] == nil || cells[j] == nil {
				continue
			}
			dispatchPair(d, cells[i], cells[j], layout, newton3)
		}
	}
}

// touchedCells returns every cell (base and neighbor, owned and halo) that
// at least one base step of offsets will touch, for SoA load/extract.
func touchedCells(g Grid, bases [][3]int, offsets [][3]int) []*cell.Cell {
	var out []*cell.Cell
	for _, b := range bases {
		out = append(out, g.Cell(b[0], b[1], b[2]))
		for _, o := range offsets {
			nx, ny, nz := b[0]+o[0], b[1]+o[1], b[2]+o[2]
			if g.InBounds(nx, ny, nz) {
				out = append(out, g.Cell(nx, ny, nz))
			}
		}
	}
	return out
}

// runColored partitions bases into color classes with colorFn, then runs
// each class as one workers.RunGroup, executing step for every base cell
// coordinate in that class. Classes run one after another (joined), cells
// within a class run concurrently.
func runColored(bases [][3]int, colorFn func(x, y, z int) int, numColors int, step func(x, y, z int)) {
	groups := make([][]func(), numColors)
	for _, b := range bases {
		c := colorFn(b[0], b[1], b[2])
		x, y, z := b[0], b[1], b[2]
		groups[c] = append(groups[c], func() { step(x, y, z) })
	}
	workers.RunGroups(groups)
}

// runParallel runs step for every base cell coordinate concurrently, with
// no coloring at all (valid only when every step's writes are confined to
// its own base cell, as with c01).
func runParallel(bases [][3]int, step func(x, y, z int)) {
	tasks := make([]func(), len(bases))
	for i, b := range bases {
		x, y, z := b[0], b[1], b[2]
		tasks[i] = func() { step(x, y, z) }
	}
	workers.RunGroup(tasks)
}
