/*Package functor defines the interaction-dispatcher surface: the interface
a force-law provider implements, and the Dispatcher that binds one to a
traversal. The concrete pair-potential math (e.g. Lennard-Jones) is an
external collaborator — see examples/lj for a reference implementation used
only by tests and the demo command.*/
package functor

import (
	"github.com/go-md/autopas/particle"
	"github.com/go-md/autopas/soa"
)

// Functor is the force-law provider's capability surface.
type Functor interface {
	// AoS computes the interaction between pi and pj and accumulates the
	// result into their Force fields. If newton3 is true, both particles'
	// forces are updated from one call; if false, only pi's is. Cutoff
	// filtering happens inside AoS: the functor is authoritative on what
	// "within cutoff" means for its potential.
	AoS(pi, pj *particle.Particle, newton3 bool)

	// SoASingle computes every interacting pair within one buffer (a
	// same-cell pass).
	SoASingle(buf *soa.Buffer, newton3 bool)

	// SoAPair computes cross pairs between two buffers loaded from distinct
	// cells.
	SoAPair(a, b *soa.Buffer, newton3 bool)

	// SoAVerlet computes interactions for particles buf[from:to] against
	// the neighbor indices listed for each of them, for a list-based
	// container. neighbors[i] is the list of buffer indices interacting
	// with buffer index from+i.
	SoAVerlet(buf *soa.Buffer, neighbors [][]int, from, to int, newton3 bool)

	// AllowsNewton3 reports whether the functor can be run with the
	// symmetric optimization.
	AllowsNewton3() bool
	// AllowsNonNewton3 reports whether the functor can be run without it.
	AllowsNonNewton3() bool
	// IsRelevantForTuning reports whether the tuner should sample this
	// functor at all (a functor that is only ever used once, e.g. for a
	// single diagnostic pass, can opt out).
	IsRelevantForTuning() bool
}
