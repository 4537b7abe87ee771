package rebuild

import (
	"testing"

	"github.com/go-md/autopas/particle"
)

func TestNeedsRebuildOnDisplacement(t *testing.T) {
	p := NewPolicy(0.2, 10)
	ps := []particle.Particle{particle.New([3]float64{0, 0, 0}, 1, 0)}
	p.MarkRebuilt(ps)

	if p.NeedsRebuild(ps) {
		t.Fatalf("expected no rebuild needed immediately after MarkRebuilt")
	}

	ps[0].Position[0] = 0.05 // well under skin/2 = 0.1
	if p.NeedsRebuild(ps) {
		t.Errorf("expected no rebuild needed for a displacement under skin/2")
	}

	ps[0].Position[0] = 0.2 // exceeds skin/2 = 0.1
	if !p.NeedsRebuild(ps) {
		t.Errorf("expected rebuild needed for a displacement over skin/2")
	}
}

func TestNeedsRebuildOnFrequency(t *testing.T) {
	p := NewPolicy(0.2, 3)
	ps := []particle.Particle{particle.New([3]float64{0, 0, 0}, 1, 0)}
	p.MarkRebuilt(ps)

	for i := 0; i < 2; i++ {
		p.Tick()
		if p.NeedsRebuild(ps) {
			t.Fatalf("rebuild triggered too early at tick %d", i)
		}
	}
	p.Tick()
	if !p.NeedsRebuild(ps) {
		t.Errorf("expected rebuild needed once the frequency budget is exhausted")
	}
}

func TestNeedsRebuildOnNewParticle(t *testing.T) {
	p := NewPolicy(0.2, 10)
	p.MarkRebuilt(nil)
	ps := []particle.Particle{particle.New([3]float64{0, 0, 0}, 1, 0)}
	if !p.NeedsRebuild(ps) {
		t.Errorf("expected rebuild needed for a particle not seen at the last rebuild")
	}
}
