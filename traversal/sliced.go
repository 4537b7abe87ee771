package traversal

import (
	"github.com/go-md/autopas/config"
	"github.com/go-md/autopas/functor"
	"github.com/go-md/autopas/workers"
)

// Sliced splits the grid's longest axis into slabs, one per worker, and
// runs the forward-13 base step (as c18 does) over each slab's cells, in coordinate
// order, on a single goroutine per slab. Slabs are 2-colored by parity of
// their index: all even-indexed slabs run concurrently (one goroutine
// each, each working through its own cells sequentially), join, then all
// odd-indexed slabs run concurrently. Because the forward-13 stencil only
// ever reaches one cell further along the slicing axis, a slab only ever
// writes into its immediate neighbor slab, and the 2-coloring guarantees
// that neighbor is never running at the same time; serializing the cells
// within a slab is what keeps two cells of the *same* slab from racing on
// a shared forward-stencil neighbor.
type Sliced struct{}

func (Sliced) Kind() config.TraversalKind { return config.Sliced }
func (Sliced) SupportsNewton3() bool      { return true }
func (Sliced) SupportsNonNewton3() bool   { return false }
func (Sliced) CompatibleContainers() []config.ContainerKind {
	return []config.ContainerKind{config.LinkedCells}
}

// longestAxis returns the index (0, 1, or 2) of dims' largest dimension.
func longestAxis(dims [3]int) int {
	axis := 0
	for i := 1; i < 3; i++ {
		if dims[i] > dims[axis] {
			axis = i
		}
	}
	return axis
}

func (Sliced) Applicable(dims [3]int, numWorkers int) bool {
	axis := longestAxis(dims)
	return dims[axis] >= numWorkers
}

func (Sliced) Execute(d *functor.Dispatcher, g Grid, layout config.Layout, newton3 bool) {
	offs := forwardOffsets13()
	bases := baseCells(g)
	axis := longestAxis(g.Dims())

	if layout == config.SoA {
		functor.LoadAll(touchedCells(g, bases, offs))
		defer functor.ExtractAll(touchedCells(g, bases, offs))
	}

	numWorkers := workers.Count()
	if numWorkers > g.Dims()[axis] {
		numWorkers = g.Dims()[axis]
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	ranges := workers.Partition(g.Dims()[axis], numWorkers)

	slabOf := func(coord [3]int) int {
		v := coord[axis]
		for i, r := range ranges {
			if v >= r[0] && v < r[1] {
				return i
			}
		}
		return len(ranges) - 1
	}

	step := func(x, y, z int) {
		base := g.Cell(x, y, z)
		dispatchPair(d, base, base, layout, newton3)
		for _, o := range offs {
			nx, ny, nz := x+o[0], y+o[1], z+o[2]
			if !g.InBounds(nx, ny, nz) {
				continue
			}
			dispatchPair(d, base, g.Cell(nx, ny, nz), layout, newton3)
		}
	}

	slabs := make([][][3]int, len(ranges))
	for _, b := range bases {
		slabs[slabOf(b)] = append(slabs[slabOf(b)], b)
	}

	for parity := 0; parity < 2; parity++ {
		var tasks []func()
		for slab := parity; slab < len(ranges); slab += 2 {
			cells := slabs[slab]
			tasks = append(tasks, func() {
				for _, b := range cells {
					step(b[0], b[1], b[2])
				}
			})
		}
		workers.RunGroup(tasks)
	}
}
