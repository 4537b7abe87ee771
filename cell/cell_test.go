package cell

import (
	"testing"

	"github.com/go-md/autopas/particle"
)

func TestAddAndRemoveAt(t *testing.T) {
	c := New(OwnedCell)
	c.Add(particle.New([3]float64{0, 0, 0}, 1, 0))
	c.Add(particle.New([3]float64{1, 0, 0}, 2, 0))
	c.Add(particle.New([3]float64{2, 0, 0}, 3, 0))

	c.RemoveAt(0) // swap-with-last: id 3 now occupies index 0
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if c.Particles()[0].ID != 3 {
		t.Errorf("Particles()[0].ID = %d, want 3", c.Particles()[0].ID)
	}
}

func TestSoALoadExtractRoundTrip(t *testing.T) {
	c := New(OwnedCell)
	c.Add(particle.New([3]float64{1, 1, 1}, 1, 0))

	if c.SoAValid() {
		t.Fatalf("expected SoA invalid before Load")
	}
	c.SoALoad()
	if !c.SoAValid() {
		t.Fatalf("expected SoA valid after Load")
	}

	c.SoABuffer().ForceX[0] = 5
	c.SoAExtract()

	if c.SoAValid() {
		t.Errorf("expected SoA invalid after Extract")
	}
	if c.Particles()[0].Force[0] != 5 {
		t.Errorf("Force[0] = %v, want 5", c.Particles()[0].Force[0])
	}
}

func TestKindMask(t *testing.T) {
	if OwnedCell.Mask() != particle.OwnedOnly {
		t.Errorf("OwnedCell.Mask() = %v, want OwnedOnly", OwnedCell.Mask())
	}
	if HaloCell.Mask() != particle.HaloOnly {
		t.Errorf("HaloCell.Mask() = %v, want HaloOnly", HaloCell.Mask())
	}
}
