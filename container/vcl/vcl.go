/*Package vcl implements the VerletClusterLists container: a 2D grid of
towers in the XY plane, each holding a z-sorted, fixed-size-cluster list of
particles with dummy padding on the last cluster (§4.1, §4.3). Neighbor
lists are built only at RebuildNeighborLists and stay valid, per the skin
margin, until the next rebuild; AddOwned/AddHalo stage new particles for the
next rebuild rather than splicing them into existing clusters.*/
package vcl

import (
	"math"
	"sort"

	"github.com/go-md/autopas/apaerr"
	"github.com/go-md/autopas/cell"
	"github.com/go-md/autopas/config"
	"github.com/go-md/autopas/container"
	"github.com/go-md/autopas/functor"
	"github.com/go-md/autopas/particle"
	"github.com/go-md/autopas/traversal"
)

// defaultClusterSize is used when Options.ClusterSize is zero.
const defaultClusterSize = 4

// VerletClusterLists is a 2D grid of towers in (x, y), each a z-sorted
// sequence of fixed-size clusters.
type VerletClusterLists struct {
	opts        container.Options
	towerLen    [2]float64
	ownedDims   [2]int
	dims        [2]int
	towers      []*traversal.Tower
	staged      []particle.Particle
	clusterSize int
}

// New constructs a VerletClusterLists container, sizing towers so that
// their side length in x and y is never smaller than cutoff+skin.
func New(opts container.Options) (*VerletClusterLists, error) {
	if err := opts.Validate("VerletClusterLists.New"); err != nil {
		return nil, err
	}
	l := opts.InteractionLength()
	v := &VerletClusterLists{opts: opts}
	v.clusterSize = opts.ClusterSize
	if v.clusterSize <= 0 {
		v.clusterSize = defaultClusterSize
	}
	for d := 0; d < 2; d++ {
		extent := opts.BoxMax[d] - opts.BoxMin[d]
		n := int(math.Floor(extent / l))
		if n < 1 {
			n = 1
		}
		v.ownedDims[d] = n
		v.towerLen[d] = extent / float64(n)
		v.dims[d] = n + 2
	}
	v.towers = make([]*traversal.Tower, v.dims[0]*v.dims[1])
	for y := 0; y < v.dims[1]; y++ {
		for x := 0; x < v.dims[0]; x++ {
			v.towers[v.towerFlatIndex(x, y)] = &traversal.Tower{X: x, Y: y}
		}
	}
	return v, nil
}

func (v *VerletClusterLists) Kind() config.ContainerKind { return config.VerletClusterLists }

func (v *VerletClusterLists) towerFlatIndex(x, y int) int { return x + y*v.dims[0] }

// towerCoord maps an XY position to its tower coordinate, clamped into the
// allocated grid.
func (v *VerletClusterLists) towerCoord(pos [3]float64) (x, y int) {
	coord := [2]int{}
	for d := 0; d < 2; d++ {
		c := int(math.Floor((pos[d]-v.opts.BoxMin[d])/v.towerLen[d])) + 1
		if c < 0 {
			c = 0
		}
		if c > v.dims[d]-1 {
			c = v.dims[d] - 1
		}
		coord[d] = c
	}
	return coord[0], coord[1]
}

func (v *VerletClusterLists) towerAt(x, y int) *traversal.Tower { return v.towers[v.towerFlatIndex(x, y)] }

func inBox(pos, lo, hi [3]float64) bool {
	for d := 0; d < 3; d++ {
		if pos[d] < lo[d] || pos[d] >= hi[d] {
			return false
		}
	}
	return true
}

func (v *VerletClusterLists) haloShellBounds() (lo, hi [3]float64) {
	l := v.opts.InteractionLength()
	for d := 0; d < 3; d++ {
		lo[d] = v.opts.BoxMin[d] - l
		hi[d] = v.opts.BoxMax[d] + l
	}
	return lo, hi
}

func (v *VerletClusterLists) AddOwned(p particle.Particle) error {
	if !inBox(p.Position, v.opts.BoxMin, v.opts.BoxMax) {
		return apaerr.New(apaerr.OutOfBounds, "VerletClusterLists.AddOwned",
			"position %v outside owned box [%v, %v)", p.Position, v.opts.BoxMin, v.opts.BoxMax)
	}
	p.Owner = particle.Owned
	v.staged = append(v.staged, p)
	return nil
}

func (v *VerletClusterLists) AddHalo(p particle.Particle) error {
	lo, hi := v.haloShellBounds()
	if !inBox(p.Position, lo, hi) || inBox(p.Position, v.opts.BoxMin, v.opts.BoxMax) {
		return apaerr.New(apaerr.OutOfBounds, "VerletClusterLists.AddHalo",
			"position %v outside halo shell", p.Position)
	}
	p.Owner = particle.Halo
	v.staged = append(v.staged, p)
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

// UpdateHalo looks for a match among already-clustered halo particles in the
// target tower and among particles staged since the last rebuild.
func (v *VerletClusterLists) UpdateHalo(p particle.Particle) bool {
	x, y := v.towerCoord(p.Position)
	for _, cl := range v.towerAt(x, y).Clusters {
		ps := cl.Cell.Particles()
		for i := range ps {
			if ps[i].Owner == particle.Halo && withinSkin(ps[i].Position, p.Position, v.opts.SkinPerTimestep) {
				ps[i] = p
				ps[i].Owner = particle.Halo
				return true
			}
		}
	}
	for i := range v.staged {
		if v.staged[i].Owner == particle.Halo && withinSkin(v.staged[i].Position, p.Position, v.opts.SkinPerTimestep) {
			v.staged[i] = p
			v.staged[i].Owner = particle.Halo
			return true
		}
	}
	return false
}

// DeleteHaloAll converts every halo-owned slot, in clusters and in the
// staging area, to dummy in place: a fixed-size cluster cannot shrink
// without a rebuild.
func (v *VerletClusterLists) DeleteHaloAll() {
	for _, t := range v.towers {
		for _, cl := range t.Clusters {
			ps := cl.Cell.Particles()
			for i := range ps {
				if ps[i].Owner == particle.Halo {
					ps[i].Owner = particle.Dummy
				}
			}
		}
	}
	kept := v.staged[:0]
	for _, p := range v.staged {
		if p.Owner != particle.Halo {
			kept = append(kept, p)
		}
	}
	v.staged = kept
}

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

// farDummyPosition places a dummy far enough from any real data (at least
// 2x the interaction length beyond the box) that it can never be found
// within cutoff of a real particle, regardless of which tower holds it.
func (v *VerletClusterLists) farDummyPosition() [3]float64 {
	off := 2 * v.opts.InteractionLength()
	return [3]float64{v.opts.BoxMin[0] - off, v.opts.BoxMin[1] - off, v.opts.BoxMin[2] - off}
}

// Update wraps owned particles that crossed a periodic boundary, reporting
// them as leavers (or marking them dummy in place, preserving cluster size,
// if keepNeighborListsValid). Tower/cluster membership is unchanged: VCL
// only resorts particles between towers at RebuildNeighborLists.
func (v *VerletClusterLists) Update(keepNeighborListsValid bool) []particle.Particle {
	lo, hi := v.opts.BoxMin, v.opts.BoxMax
	var leavers []particle.Particle

	for _, t := range v.towers {
		for _, cl := range t.Clusters {
			ps := cl.Cell.Particles()
			for i := range ps {
				if ps[i].Owner != particle.Owned {
					continue
				}
				orig := ps[i].Position
				wrapped := wrapPeriodic(orig, lo, hi)
				ps[i].Position = wrapped
				if wrapped == orig {
					continue
				}
				leaver := ps[i]
				if keepNeighborListsValid {
					ps[i].Owner = particle.Dummy
				} else {
					leavers = append(leavers, leaver)
					ps[i] = particle.New(v.farDummyPosition(), 0, 0)
					ps[i].Owner = particle.Dummy
				}
			}
		}
	}
	for i := range v.staged {
		if v.staged[i].Owner != particle.Owned {
			continue
		}
		v.staged[i].Position = wrapPeriodic(v.staged[i].Position, lo, hi)
	}
	v.DeleteHaloAll()
	return leavers
}

func (v *VerletClusterLists) ForEach(f func(*particle.Particle), behavior particle.Behavior) {
	for _, t := range v.towers {
		for _, cl := range t.Clusters {
			ps := cl.Cell.Particles()
			for i := range ps {
				if behavior.Matches(ps[i].Owner) {
					f(&ps[i])
				}
			}
		}
	}
	for i := range v.staged {
		if behavior.Matches(v.staged[i].Owner) {
			f(&v.staged[i])
		}
	}
}

func (v *VerletClusterLists) RegionForEach(f func(*particle.Particle), lo, hi [3]float64, behavior particle.Behavior) {
	v.ForEach(func(p *particle.Particle) {
		if inBox(p.Position, lo, hi) {
			f(p)
		}
	}, behavior)
}

// Towers implements traversal.ClusterGrid.
func (v *VerletClusterLists) Towers() []*traversal.Tower { return v.towers }

func clusterZRange(cl *traversal.Cluster) (minZ, maxZ float64) {
	ps := cl.Cell.Particles()
	minZ, maxZ = math.Inf(1), math.Inf(-1)
	for _, p := range ps {
		if p.IsDummy() {
			continue
		}
		if p.Position[2] < minZ {
			minZ = p.Position[2]
		}
		if p.Position[2] > maxZ {
			maxZ = p.Position[2]
		}
	}
	return minZ, maxZ
}

func zRangesWithin(a, b *traversal.Cluster, l float64) bool {
	aMin, aMax := clusterZRange(a)
	bMin, bMax := clusterZRange(b)
	if aMin > aMax || bMin > bMax {
		return false // one cluster is all dummies
	}
	if aMax < bMin {
		return bMin-aMax <= l
	}
	if bMax < aMin {
		return aMin-bMax <= l
	}
	return true
}

// RebuildNeighborLists consumes every staged particle plus every
// non-dummy particle currently in a cluster, re-bins by tower, re-sorts
// each tower by z into fixed-size dummy-padded clusters, and rebuilds the
// neighbor lists for cfg.Newton3 (half lists if true, full lists if
// false).
func (v *VerletClusterLists) RebuildNeighborLists(cfg config.Configuration) error {
	var all []particle.Particle
	for _, t := range v.towers {
		for _, cl := range t.Clusters {
			for _, p := range cl.Cell.Particles() {
				if !p.IsDummy() {
					all = append(all, p)
				}
			}
		}
		t.Clusters = nil
	}
	all = append(all, v.staged...)
	v.staged = nil

	byTower := make(map[int][]particle.Particle)
	for _, p := range all {
		x, y := v.towerCoord(p.Position)
		flat := v.towerFlatIndex(x, y)
		byTower[flat] = append(byTower[flat], p)
	}

	for flat, ps := range byTower {
		sort.Slice(ps, func(i, j int) bool { return ps[i].Position[2] < ps[j].Position[2] })
		t := v.towers[flat]
		for i := 0; i < len(ps); i += v.clusterSize {
			end := i + v.clusterSize
			c := cell.New(cell.OwnedCell)
			for j := i; j < end && j < len(ps); j++ {
				c.Add(ps[j])
			}
			for j := len(ps); j < end; j++ {
				dp := particle.New(v.farDummyPosition(), 0, 0)
				dp.Owner = particle.Dummy
				c.Add(dp)
			}
			t.Clusters = append(t.Clusters, &traversal.Cluster{Cell: c})
		}
	}

	l := v.opts.InteractionLength()
	for _, t := range v.towers {
		tFlat := v.towerFlatIndex(t.X, t.Y)
		for ci, cl := range t.Clusters {
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					nx, ny := t.X+dx, t.Y+dy
					if nx < 0 || ny < 0 || nx >= v.dims[0] || ny >= v.dims[1] {
						continue
					}
					nFlat := v.towerFlatIndex(nx, ny)
					// Process each unordered tower pair exactly once, from
					// the lower-flat-index tower's side.
					if nFlat < tFlat {
						continue
					}
					other := v.towers[nFlat]
					for cj, nb := range other.Clusters {
						if nFlat == tFlat && cj <= ci {
							continue // each same-tower cluster pair visited once, never self
						}
						if !zRangesWithin(cl, nb, l) {
							continue
						}
						if cfg.Newton3 {
							cl.Neighbors = append(cl.Neighbors, nb)
						} else {
							cl.Neighbors = append(cl.Neighbors, nb)
							nb.Neighbors = append(nb.Neighbors, cl)
						}
					}
				}
			}
		}
	}
	return nil
}

func (v *VerletClusterLists) ComputeInteractions(fn functor.Functor, cfg config.Configuration) error {
	if cfg.Traversal != config.ClusterColoring {
		return apaerr.New(apaerr.TraversalIncompatible, "VerletClusterLists.ComputeInteractions",
			"traversal %s is not compatible with VerletClusterLists", cfg.Traversal)
	}
	if cfg.Newton3 && !fn.AllowsNewton3() {
		return apaerr.New(apaerr.InvalidCapability, "VerletClusterLists.ComputeInteractions",
			"functor does not allow Newton-3")
	}
	if !cfg.Newton3 && !fn.AllowsNonNewton3() {
		return apaerr.New(apaerr.InvalidCapability, "VerletClusterLists.ComputeInteractions",
			"functor does not allow non-Newton-3")
	}
	traversal.ClusterColoring{}.ExecuteClusters(functor.New(fn), v, cfg.Layout, cfg.Newton3)
	return nil
}
