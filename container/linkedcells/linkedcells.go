/*Package linkedcells implements the classical Linked-Cells container: a
dense 3D grid of cells sized so that every pair within cutoff+skin is
guaranteed to lie in the same or a neighboring cell, surrounded by a
one-cell halo layer (§4.1). It implements traversal.Grid directly, so every
grid-based traversal in the traversal package (all but ClusterColoring)
can run over it.*/
package linkedcells

import (
	"math"

	"github.com/go-md/autopas/apaerr"
	"github.com/go-md/autopas/cell"
	"github.com/go-md/autopas/cellindex"
	"github.com/go-md/autopas/config"
	"github.com/go-md/autopas/container"
	"github.com/go-md/autopas/functor"
	"github.com/go-md/autopas/particle"
	"github.com/go-md/autopas/traversal"
	"github.com/go-md/autopas/workers"
)

// LinkedCells is a flat array of cells addressed (x, y, z), with the owned
// region at coordinates [1, ownedDims[d]] in every dimension and a one-cell
// halo shell at coordinate 0 and ownedDims[d]+1.
type LinkedCells struct {
	opts      container.Options
	cellLen   [3]float64
	ownedDims [3]int
	dims      [3]int
	cells     []*cell.Cell
}

// New constructs a LinkedCells container, sizing cells so that their side
// length is never smaller than cutoff+skin (§6.2).
func New(opts container.Options) (*LinkedCells, error) {
	if err := opts.Validate("LinkedCells.New"); err != nil {
		return nil, err
	}
	l := opts.InteractionLength()
	lc := &LinkedCells{opts: opts}
	for d := 0; d < 3; d++ {
		extent := opts.BoxMax[d] - opts.BoxMin[d]
		n := int(math.Floor(extent / l))
		if n < 1 {
			n = 1
		}
		lc.ownedDims[d] = n
		lc.cellLen[d] = extent / float64(n)
		lc.dims[d] = n + 2
	}
	lc.cells = make([]*cell.Cell, lc.dims[0]*lc.dims[1]*lc.dims[2])
	for z := 0; z < lc.dims[2]; z++ {
		for y := 0; y < lc.dims[1]; y++ {
			for x := 0; x < lc.dims[0]; x++ {
				kind := cell.OwnedCell
				if x == 0 || y == 0 || z == 0 || x == lc.dims[0]-1 || y == lc.dims[1]-1 || z == lc.dims[2]-1 {
					kind = cell.HaloCell
				}
				lc.cells[lc.flatIndex([3]int{x, y, z})] = cell.New(kind)
			}
		}
	}
	return lc, nil
}

func (lc *LinkedCells) Kind() config.ContainerKind { return config.LinkedCells }

func (lc *LinkedCells) flatIndex(coord [3]int) int {
	return coord[0] + coord[1]*lc.dims[0] + coord[2]*lc.dims[0]*lc.dims[1]
}

// cellCoord maps a position to its grid coordinate, clamping into the
// allocated grid so that a particle anywhere within the halo shell still
// resolves to a real cell rather than overflowing it.
func (lc *LinkedCells) cellCoord(pos [3]float64) [3]int {
	var coord [3]int
	for d := 0; d < 3; d++ {
		c := int(math.Floor((pos[d]-lc.opts.BoxMin[d])/lc.cellLen[d])) + 1
		if c < 0 {
			c = 0
		}
		if c > lc.dims[d]-1 {
			c = lc.dims[d] - 1
		}
		coord[d] = c
	}
	return coord
}

func (lc *LinkedCells) cellAt(coord [3]int) *cell.Cell { return lc.cells[lc.flatIndex(coord)] }

func inBox(pos, lo, hi [3]float64) bool {
	for d := 0; d < 3; d++ {
		if pos[d] < lo[d] || pos[d] >= hi[d] {
			return false
		}
	}
	return true
}

func (lc *LinkedCells) haloShellBounds() (lo, hi [3]float64) {
	l := lc.opts.InteractionLength()
	for d := 0; d < 3; d++ {
		lo[d] = lc.opts.BoxMin[d] - l
		hi[d] = lc.opts.BoxMax[d] + l
	}
	return lo, hi
}

func (lc *LinkedCells) AddOwned(p particle.Particle) error {
	if !inBox(p.Position, lc.opts.BoxMin, lc.opts.BoxMax) {
		return apaerr.New(apaerr.OutOfBounds, "LinkedCells.AddOwned",
			"position %v outside owned box [%v, %v)", p.Position, lc.opts.BoxMin, lc.opts.BoxMax)
	}
	p.Owner = particle.Owned
	lc.cellAt(lc.cellCoord(p.Position)).Add(p)
	return nil
}

func (lc *LinkedCells) AddHalo(p particle.Particle) error {
	lo, hi := lc.haloShellBounds()
	if !inBox(p.Position, lo, hi) || inBox(p.Position, lc.opts.BoxMin, lc.opts.BoxMax) {
		return apaerr.New(apaerr.OutOfBounds, "LinkedCells.AddHalo",
			"position %v outside halo shell", p.Position)
	}
	p.Owner = particle.Halo
	lc.cellAt(lc.cellCoord(p.Position)).Add(p)
	return nil
}

func withinSkin(a, b [3]float64, skin float64) bool {
	var d2 float64
	for d := 0; d < 3; d++ {
		diff := a[d] - b[d]
		d2 += diff * diff
	}
	return d2 <= skin*skin
}

func (lc *LinkedCells) UpdateHalo(p particle.Particle) bool {
	c := lc.cellAt(lc.cellCoord(p.Position))
	ps := c.Particles()
	for i := range ps {
		if withinSkin(ps[i].Position, p.Position, lc.opts.SkinPerTimestep) {
			ps[i] = p
			ps[i].Owner = particle.Halo
			return true
		}
	}
	return false
}

func (lc *LinkedCells) DeleteHaloAll() {
	for _, c := range lc.cells {
		if c.Kind() == cell.HaloCell {
			c.Clear()
		}
	}
}

// wrapPeriodic adds/subtracts the box extent so that a position which left
// through one face re-enters through the opposite one.
func wrapPeriodic(pos, lo, hi [3]float64) [3]float64 {
	out := pos
	for d := 0; d < 3; d++ {
		extent := hi[d] - lo[d]
		for out[d] < lo[d] {
			out[d] += extent
		}
		for out[d] >= hi[d] {
			out[d] -= extent
		}
	}
	return out
}

// Update wraps every owned particle that crossed a periodic boundary,
// re-sorts every particle that stayed (which may still have moved to a
// different cell) between cells in one O(N) bucket pass, and clears the
// halo. Particles that crossed a boundary are reported as leavers unless
// keepNeighborListsValid asks for them to stay in place as dummies.
func (lc *LinkedCells) Update(keepNeighborListsValid bool) []particle.Particle {
	lo, hi := lc.opts.BoxMin, lc.opts.BoxMax

	type kept struct {
		p    particle.Particle
		cell int
	}
	var keptInPlace []kept
	var survivors []particle.Particle
	var leavers []particle.Particle

	for flat, c := range lc.cells {
		if c.Kind() != cell.OwnedCell {
			continue
		}
		for _, p := range c.Particles() {
			orig := p.Position
			wrapped := wrapPeriodic(orig, lo, hi)
			p.Position = wrapped
			switch {
			case wrapped != orig && keepNeighborListsValid:
				p.Owner = particle.Dummy
				keptInPlace = append(keptInPlace, kept{p, flat})
			case wrapped != orig:
				leavers = append(leavers, p)
			default:
				survivors = append(survivors, p)
			}
		}
		c.Clear()
	}

	idx := make([]int, len(survivors))
	for i, p := range survivors {
		idx[i] = lc.flatIndex(lc.cellCoord(p.Position))
	}
	offsets, order := cellindex.Bucket(idx, len(lc.cells))
	for b := 0; b < len(lc.cells); b++ {
		for _, k := range order[offsets[b]:offsets[b+1]] {
			lc.cells[b].Add(survivors[k])
		}
	}
	for _, k := range keptInPlace {
		lc.cells[k.cell].Add(k.p)
	}

	lc.DeleteHaloAll()
	return leavers
}

func (lc *LinkedCells) ForEach(f func(*particle.Particle), behavior particle.Behavior) {
	for _, c := range lc.cells {
		ps := c.Particles()
		for i := range ps {
			if behavior.Matches(ps[i].Owner) {
				f(&ps[i])
			}
		}
	}
}

func (lc *LinkedCells) RegionForEach(f func(*particle.Particle), lo, hi [3]float64, behavior particle.Behavior) {
	lc.ForEach(func(p *particle.Particle) {
		if inBox(p.Position, lo, hi) {
			f(p)
		}
	}, behavior)
}

// RebuildNeighborLists is a no-op: LinkedCells keeps no structure beyond
// the cells themselves, which Update already keeps current.
func (lc *LinkedCells) RebuildNeighborLists(cfg config.Configuration) error { return nil }

// --- traversal.Grid ---

func (lc *LinkedCells) Dims() [3]int { return lc.dims }
func (lc *LinkedCells) Cell(x, y, z int) *cell.Cell {
	return lc.cells[lc.flatIndex([3]int{x, y, z})]
}
func (lc *LinkedCells) InBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < lc.dims[0] && y < lc.dims[1] && z < lc.dims[2]
}
func (lc *LinkedCells) IsHalo(x, y, z int) bool {
	return lc.Cell(x, y, z).Kind() == cell.HaloCell
}

func (lc *LinkedCells) ComputeInteractions(fn functor.Functor, cfg config.Configuration) error {
	t, ok := traversal.Lookup(cfg.Traversal)
	if !ok || !traversal.Compatible(t, config.LinkedCells) {
		return apaerr.New(apaerr.TraversalIncompatible, "LinkedCells.ComputeInteractions",
			"traversal %s is not compatible with LinkedCells", cfg.Traversal)
	}
	if cfg.Newton3 && !t.SupportsNewton3() {
		return apaerr.New(apaerr.TraversalIncompatible, "LinkedCells.ComputeInteractions",
			"traversal %s does not support Newton-3", cfg.Traversal)
	}
	if !cfg.Newton3 && !t.SupportsNonNewton3() {
		return apaerr.New(apaerr.TraversalIncompatible, "LinkedCells.ComputeInteractions",
			"traversal %s requires Newton-3", cfg.Traversal)
	}
	if cfg.Newton3 && !fn.AllowsNewton3() {
		return apaerr.New(apaerr.InvalidCapability, "LinkedCells.ComputeInteractions",
			"functor does not allow Newton-3")
	}
	if !cfg.Newton3 && !fn.AllowsNonNewton3() {
		return apaerr.New(apaerr.InvalidCapability, "LinkedCells.ComputeInteractions",
			"functor does not allow non-Newton-3")
	}
	if !t.Applicable(lc.dims, workers.Count()) {
		return apaerr.New(apaerr.DimensionTooSmall, "LinkedCells.ComputeInteractions",
			"traversal %s is not applicable to a grid of dims %v with %d workers",
			cfg.Traversal, lc.dims, workers.Count())
	}

	t.Execute(functor.New(fn), lc, cfg.Layout, cfg.Newton3)
	return nil
}
