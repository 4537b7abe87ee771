/*Package container defines the shared Container contract every spatial
container (directsum, linkedcells, vcl) implements, plus the construction
options and validation shared by all three.*/
package container

import (
	"github.com/go-md/autopas/apaerr"
	"github.com/go-md/autopas/config"
	"github.com/go-md/autopas/functor"
	"github.com/go-md/autopas/particle"
)

// Options are a container's construction-time parameters, per §6.2.
type Options struct {
	BoxMin, BoxMax  [3]float64
	Cutoff          float64
	SkinPerTimestep float64
	RebuildFrequency int
	// ClusterSize is only meaningful for VerletClusterLists; zero means
	// "use the default" (4).
	ClusterSize int
}

// InteractionLength is cutoff+skin: the distance within which the halo
// shell and neighbor lists must stay valid.
func (o Options) InteractionLength() float64 { return o.Cutoff + o.SkinPerTimestep }

// Validate checks the dimensional invariants from §6.2.
func (o Options) Validate(op string) error {
	for d := 0; d < 3; d++ {
		if o.BoxMax[d] <= o.BoxMin[d] {
			return apaerr.New(apaerr.OutOfBounds, op,
				"box_max[%d]=%v must be greater than box_min[%d]=%v", d, o.BoxMax[d], d, o.BoxMin[d])
		}
	}
	if o.Cutoff <= 0 {
		return apaerr.New(apaerr.OutOfBounds, op, "cutoff=%v must be > 0", o.Cutoff)
	}
	if o.SkinPerTimestep < 0 {
		return apaerr.New(apaerr.OutOfBounds, op, "skin_per_timestep=%v must be >= 0", o.SkinPerTimestep)
	}
	if o.RebuildFrequency < 1 {
		return apaerr.New(apaerr.OutOfBounds, op, "rebuild_frequency=%v must be >= 1", o.RebuildFrequency)
	}
	return nil
}

// Container is the contract shared by DirectSum, LinkedCells, and
// VerletClusterLists, per §4.1.
type Container interface {
	Kind() config.ContainerKind

	AddOwned(p particle.Particle) error
	AddHalo(p particle.Particle) error
	// UpdateHalo looks for a halo particle within skin of p.Position and
	// overwrites it with p, reporting whether a match was found.
	UpdateHalo(p particle.Particle) bool
	DeleteHaloAll()

	// Update resorts owned particles between cells, wraps any that crossed
	// a periodic boundary, and returns every owned particle that left the
	// owned box (already removed from the container). It clears all halo
	// particles. keepNeighborListsValid, when true, marks leavers dummy
	// instead of removing them, so that a list-based container need not
	// rebuild immediately.
	Update(keepNeighborListsValid bool) []particle.Particle

	ForEach(f func(*particle.Particle), behavior particle.Behavior)
	RegionForEach(f func(*particle.Particle), lo, hi [3]float64, behavior particle.Behavior)

	// ComputeInteractions runs one configuration's traversal to completion.
	// It returns apaerr.TraversalIncompatible if the traversal does not
	// support this container, and apaerr.InvalidCapability if fn does not
	// advertise the requested Newton-3 setting.
	ComputeInteractions(fn functor.Functor, cfg config.Configuration) error

	// RebuildNeighborLists regenerates any neighbor-list structure the
	// container maintains. It is a no-op for containers that don't keep
	// one (DirectSum).
	RebuildNeighborLists(cfg config.Configuration) error
}
