/*Package rebuild decides when a list-based container's neighbor lists have
gone stale: either because some particle has drifted more than skin/2 since
the last rebuild, or because rebuild_frequency iterations have passed,
whichever comes first (§4.4).*/
package rebuild

import "github.com/go-md/autopas/particle"

// Policy tracks per-particle displacement since the last rebuild.
type Policy struct {
	Skin      float64
	Frequency int

	sinceRebuild int
	lastPos      map[uint64][3]float64
}

// NewPolicy constructs a Policy. skin is the full skin_per_timestep value;
// the trigger distance is skin/2, per §4.4's Verlet criterion.
func NewPolicy(skin float64, frequency int) *Policy {
	if frequency < 1 {
		frequency = 1
	}
	return &Policy{Skin: skin, Frequency: frequency, lastPos: map[uint64][3]float64{}}
}

// MarkRebuilt resets the displacement tracker to ps's current positions and
// zeroes the iteration counter. Call this immediately after a rebuild.
func (p *Policy) MarkRebuilt(ps []particle.Particle) {
	p.sinceRebuild = 0
	p.lastPos = make(map[uint64][3]float64, len(ps))
	for _, prt := range ps {
		if !prt.IsDummy() {
			p.lastPos[prt.ID] = prt.Position
		}
	}
}

// NeedsRebuild reports whether ps should be rebuilt before the next
// compute_interactions call: either the iteration budget ran out, or some
// tracked particle moved more than skin/2 since MarkRebuilt.
func (p *Policy) NeedsRebuild(ps []particle.Particle) bool {
	if p.sinceRebuild >= p.Frequency {
		return true
	}
	half := p.Skin / 2
	for _, prt := range ps {
		if prt.IsDummy() {
			continue
		}
		last, ok := p.lastPos[prt.ID]
		if !ok {
			return true // a particle with no recorded position is new since the last rebuild
		}
		if sqDist(last, prt.Position) > half*half {
			return true
		}
	}
	return false
}

// Tick increments the iteration counter. Call once per completed
// compute_interactions, whether or not a rebuild happened this iteration.
func (p *Policy) Tick() { p.sinceRebuild++ }

func sqDist(a, b [3]float64) float64 {
	var d2 float64
	for i := 0; i < 3; i++ {
		diff := a[i] - b[i]
		d2 += diff * diff
	}
	return d2
}
