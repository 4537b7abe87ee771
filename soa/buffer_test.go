package soa

import (
	"testing"

	"github.com/go-md/autopas/particle"
)

func TestLoadExtractRoundTrip(t *testing.T) {
	ps := []particle.Particle{
		particle.New([3]float64{1, 2, 3}, 1, 0),
		particle.New([3]float64{4, 5, 6}, 2, 0),
	}

	var buf Buffer
	buf.Resize(len(ps))
	buf.Load(ps, 0)

	if buf.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", buf.Len())
	}
	if buf.PosX[1] != 4 {
		t.Errorf("PosX[1] = %v, want 4", buf.PosX[1])
	}

	buf.ForceX[0], buf.ForceY[0], buf.ForceZ[0] = 10, 20, 30
	buf.Extract(ps, 0)

	if ps[0].Force != [3]float64{10, 20, 30} {
		t.Errorf("Force = %v, want {10, 20, 30}", ps[0].Force)
	}
	if ps[0].Position != [3]float64{1, 2, 3} {
		t.Errorf("Extract must not touch Position, got %v", ps[0].Position)
	}
}

func TestAppendConcatenatesAtReturnedOffsets(t *testing.T) {
	var buf Buffer
	a := []particle.Particle{particle.New([3]float64{0, 0, 0}, 1, 0)}
	b := []particle.Particle{particle.New([3]float64{1, 1, 1}, 2, 0), particle.New([3]float64{2, 2, 2}, 3, 0)}

	offA := buf.Append(a)
	offB := buf.Append(b)

	if offA != 0 || offB != 1 {
		t.Fatalf("offsets = %d, %d, want 0, 1", offA, offB)
	}
	if buf.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", buf.Len())
	}
	if buf.ID[2] != 3 {
		t.Errorf("ID[2] = %d, want 3", buf.ID[2])
	}
}

func TestResizePreservesCapacity(t *testing.T) {
	var buf Buffer
	buf.Resize(4)
	cap0 := cap(buf.PosX)
	buf.Reset()
	buf.Resize(4)
	if cap(buf.PosX) != cap0 {
		t.Errorf("Resize after Reset reallocated: cap %d -> %d", cap0, cap(buf.PosX))
	}
}
