/*Package directsum implements the DirectSum container: one owned cell plus
six halo shells, used as a ground-truth reference (§4.1). It has no
neighbor lists; its single traversal enumerates every particle pair.*/
package directsum

import (
	"github.com/go-md/autopas/apaerr"
	"github.com/go-md/autopas/cell"
	"github.com/go-md/autopas/config"
	"github.com/go-md/autopas/container"
	"github.com/go-md/autopas/functor"
	"github.com/go-md/autopas/particle"
)

// face names the six halo shells, one per box face.
type face int

const (
	faceXLo face = iota
	faceXHi
	faceYLo
	faceYHi
	faceZLo
	faceZHi
)

// DirectSum holds one owned cell and six halo-shell cells.
type DirectSum struct {
	opts  container.Options
	owned *cell.Cell
	halo  [6]*cell.Cell
}

// New constructs a DirectSum container, validating opts per §6.2.
func New(opts container.Options) (*DirectSum, error) {
	if err := opts.Validate("DirectSum.New"); err != nil {
		return nil, err
	}
	d := &DirectSum{opts: opts, owned: cell.New(cell.OwnedCell)}
	for i := range d.halo {
		d.halo[i] = cell.New(cell.HaloCell)
	}
	return d, nil
}

func (d *DirectSum) Kind() config.ContainerKind { return config.DirectSum }

func inBox(pos, lo, hi [3]float64) bool {
	for dim := 0; dim < 3; dim++ {
		if pos[dim] < lo[dim] || pos[dim] >= hi[dim] {
			return false
		}
	}
	return true
}

func (d *DirectSum) haloShellBounds() (lo, hi [3]float64) {
	l := d.opts.InteractionLength()
	for dim := 0; dim < 3; dim++ {
		lo[dim] = d.opts.BoxMin[dim] - l
		hi[dim] = d.opts.BoxMax[dim] + l
	}
	return lo, hi
}

func (d *DirectSum) AddOwned(p particle.Particle) error {
	if !inBox(p.Position, d.opts.BoxMin, d.opts.BoxMax) {
		return apaerr.New(apaerr.OutOfBounds, "DirectSum.AddOwned",
			"position %v outside owned box [%v, %v)", p.Position, d.opts.BoxMin, d.opts.BoxMax)
	}
	p.Owner = particle.Owned
	d.owned.Add(p)
	return nil
}

func (d *DirectSum) AddHalo(p particle.Particle) error {
	lo, hi := d.haloShellBounds()
	if !inBox(p.Position, lo, hi) || inBox(p.Position, d.opts.BoxMin, d.opts.BoxMax) {
		return apaerr.New(apaerr.OutOfBounds, "DirectSum.AddHalo",
			"position %v outside halo shell", p.Position)
	}
	p.Owner = particle.Halo
	d.halo[faceOf(p.Position, d.opts.BoxMin, d.opts.BoxMax)].Add(p)
	return nil
}

// faceOf picks the halo shell whose outward dimension has the largest
// violation magnitude, matching the half-open [lo, hi) rule in every
// dimension: equality with hi belongs to the next cell over, never this
// one.
func faceOf(pos, lo, hi [3]float64) face {
	best, bestMag := faceXLo, -1.0
	for dim := 0; dim < 3; dim++ {
		if pos[dim] < lo[dim] {
			if mag := lo[dim] - pos[dim]; mag > bestMag {
				bestMag, best = mag, face(dim*2)
			}
		}
		if pos[dim] >= hi[dim] {
			if mag := pos[dim] - hi[dim]; mag > bestMag {
				bestMag, best = mag, face(dim*2+1)
			}
		}
	}
	return best
}

func (d *DirectSum) UpdateHalo(p particle.Particle) bool {
	skin := d.opts.SkinPerTimestep
	target := d.halo[faceOf(p.Position, d.opts.BoxMin, d.opts.BoxMax)]
	ps := target.Particles()
	for i := range ps {
		if withinSkin(ps[i].Position, p.Position, skin) {
			ps[i] = p
			ps[i].Owner = particle.Halo
			return true
		}
	}
	return false
}

func withinSkin(a, b [3]float64, skin float64) bool {
	var d2 float64
	for dim := 0; dim < 3; dim++ {
		diff := a[dim] - b[dim]
		d2 += diff * diff
	}
	return d2 <= skin*skin
}

func (d *DirectSum) DeleteHaloAll() {
	for _, h := range d.halo {
		h.Clear()
	}
}

func (d *DirectSum) Update(keepNeighborListsValid bool) []particle.Particle {
	var leavers []particle.Particle
	ps := d.owned.Particles()
	for i := 0; i < len(ps); {
		orig := ps[i].Position
		wrapped := wrapPeriodic(orig, d.opts.BoxMin, d.opts.BoxMax)
		ps[i].Position = wrapped
		if wrapped == orig {
			// Stayed within the owned box: no periodic crossing, nothing to
			// hand off.
			i++
			continue
		}
		leaver := ps[i]
		if keepNeighborListsValid {
			ps[i].Owner = particle.Dummy
			i++
		} else {
			leavers = append(leavers, leaver)
			d.owned.RemoveAt(i)
			ps = d.owned.Particles()
		}
	}
	d.DeleteHaloAll()
	return leavers
}

// wrapPeriodic adds/subtracts the box extent so that a position which left
// through one face re-enters through the opposite one, per §4.4.
func wrapPeriodic(pos, lo, hi [3]float64) [3]float64 {
	out := pos
	for dim := 0; dim < 3; dim++ {
		extent := hi[dim] - lo[dim]
		for out[dim] < lo[dim] {
			out[dim] += extent
		}
		for out[dim] >= hi[dim] {
			out[dim] -= extent
		}
	}
	return out
}

func (d *DirectSum) ForEach(f func(*particle.Particle), behavior particle.Behavior) {
	forEachIn(d.owned, f, behavior)
	for _, h := range d.halo {
		forEachIn(h, f, behavior)
	}
}

func forEachIn(c *cell.Cell, f func(*particle.Particle), behavior particle.Behavior) {
	ps := c.Particles()
	for i := range ps {
		if behavior.Matches(ps[i].Owner) {
			f(&ps[i])
		}
	}
}

func (d *DirectSum) RegionForEach(f func(*particle.Particle), lo, hi [3]float64, behavior particle.Behavior) {
	d.ForEach(func(p *particle.Particle) {
		if inBox(p.Position, lo, hi) {
			f(p)
		}
	}, behavior)
}

func (d *DirectSum) RebuildNeighborLists(cfg config.Configuration) error { return nil }

func (d *DirectSum) ComputeInteractions(fn functor.Functor, cfg config.Configuration) error {
	if cfg.Traversal != config.DirectSumAllPairs {
		return apaerr.New(apaerr.TraversalIncompatible, "DirectSum.ComputeInteractions",
			"traversal %s is not compatible with DirectSum", cfg.Traversal)
	}
	if cfg.Newton3 && !fn.AllowsNewton3() {
		return apaerr.New(apaerr.InvalidCapability, "DirectSum.ComputeInteractions",
			"functor does not allow Newton-3")
	}
	if !cfg.Newton3 && !fn.AllowsNonNewton3() {
		return apaerr.New(apaerr.InvalidCapability, "DirectSum.ComputeInteractions",
			"functor does not allow non-Newton-3")
	}

	disp := functor.New(fn)
	cells := append([]*cell.Cell{d.owned}, d.halo[:]...)

	if cfg.Layout == config.SoA {
		functor.LoadAll(cells)
		defer functor.ExtractAll(cells)
	}

	dispatch := func(a, b *cell.Cell) {
		if cfg.Layout == config.SoA {
			disp.CellSoA(a, b, cfg.Newton3)
		} else {
			disp.CellAoS(a, b, cfg.Newton3)
		}
	}

	dispatch(d.owned, d.owned)
	for _, h := range d.halo {
		dispatch(d.owned, h)
	}
	return nil
}
