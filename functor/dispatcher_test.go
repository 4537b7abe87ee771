package functor

import (
	"testing"

	"github.com/go-md/autopas/cell"
	"github.com/go-md/autopas/particle"
	"github.com/go-md/autopas/soa"
)

// countingFunctor counts AoS calls; it ignores SoA paths for this test.
type countingFunctor struct {
	aosCalls int
}

func (f *countingFunctor) AoS(pi, pj *particle.Particle, newton3 bool) { f.aosCalls++ }
func (f *countingFunctor) SoASingle(buf *soa.Buffer, newton3 bool)     {}
func (f *countingFunctor) SoAPair(a, b *soa.Buffer, newton3 bool)      {}
func (f *countingFunctor) SoAVerlet(buf *soa.Buffer, neighbors [][]int, from, to int, newton3 bool) {
}
func (f *countingFunctor) AllowsNewton3() bool      { return true }
func (f *countingFunctor) AllowsNonNewton3() bool   { return true }
func (f *countingFunctor) IsRelevantForTuning() bool { return true }

func makeCell(n int) *cell.Cell {
	c := cell.New(cell.OwnedCell)
	for i := 0; i < n; i++ {
		c.Add(particle.New([3]float64{float64(i), 0, 0}, uint64(i), 0))
	}
	return c
}

func TestCellAoSSameCellCountsOnce(t *testing.T) {
	f := &countingFunctor{}
	d := New(f)
	c := makeCell(4) // C(4,2) = 6 unordered pairs

	d.CellAoS(c, c, true)
	if f.aosCalls != 6 {
		t.Errorf("newton3=true same-cell calls = %d, want 6", f.aosCalls)
	}

	f.aosCalls = 0
	d.CellAoS(c, c, false)
	if f.aosCalls != 6 {
		t.Errorf("newton3=false same-cell calls = %d, want 6 (kernel handles symmetry)", f.aosCalls)
	}
}

func TestCellAoSCrossCellDoublesWithoutNewton3(t *testing.T) {
	f := &countingFunctor{}
	d := New(f)
	a, b := makeCell(3), makeCell(5)

	d.CellAoS(a, b, true)
	if f.aosCalls != 15 {
		t.Errorf("newton3=true cross-cell calls = %d, want 15", f.aosCalls)
	}

	f.aosCalls = 0
	d.CellAoS(a, b, false)
	if f.aosCalls != 30 {
		t.Errorf("newton3=false cross-cell calls = %d, want 30", f.aosCalls)
	}
}

func TestLoadAllExtractAllIdempotent(t *testing.T) {
	a, b := makeCell(2), makeCell(2)
	LoadAll([]*cell.Cell{a, b, a}) // a appears twice; must load once

	if !a.SoAValid() || !b.SoAValid() {
		t.Fatalf("expected both cells valid after LoadAll")
	}

	a.SoABuffer().ForceX[0] = 9
	ExtractAll([]*cell.Cell{a, b})
	if a.SoAValid() || b.SoAValid() {
		t.Errorf("expected both cells invalid after ExtractAll")
	}
	if a.Particles()[0].Force[0] != 9 {
		t.Errorf("Force[0] = %v, want 9", a.Particles()[0].Force[0])
	}
}
