package vcl

import (
	"testing"

	"github.com/go-md/autopas/config"
	"github.com/go-md/autopas/container"
	"github.com/go-md/autopas/particle"
	"github.com/go-md/autopas/soa"
)

func testOpts() container.Options {
	return container.Options{
		BoxMin: [3]float64{0, 0, 0}, BoxMax: [3]float64{10, 10, 10},
		Cutoff: 1.0, SkinPerTimestep: 0.2, RebuildFrequency: 10, ClusterSize: 4,
	}
}

func TestNewDefaultsClusterSize(t *testing.T) {
	opts := testOpts()
	opts.ClusterSize = 0
	v, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if v.clusterSize != defaultClusterSize {
		t.Errorf("clusterSize = %d, want %d", v.clusterSize, defaultClusterSize)
	}
}

func TestAddOwnedRejectsOutOfBounds(t *testing.T) {
	v, _ := New(testOpts())
	if err := v.AddOwned(particle.New([3]float64{11, 5, 5}, 1, 0)); err == nil {
		t.Fatalf("expected OutOfBounds error")
	}
	if err := v.AddOwned(particle.New([3]float64{5, 5, 5}, 1, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRebuildPadsLastClusterWithDummies(t *testing.T) {
	v, _ := New(testOpts())
	// 6 particles in the same tower, cluster size 4 -> clusters of 4 and 2,
	// the second padded with 2 dummies.
	for i := uint64(1); i <= 6; i++ {
		v.AddOwned(particle.New([3]float64{5, 5, float64(i)}, i, 0))
	}
	if err := v.RebuildNeighborLists(config.Configuration{Newton3: true}); err != nil {
		t.Fatalf("RebuildNeighborLists: %v", err)
	}
	x, y := v.towerCoord([3]float64{5, 5, 0})
	tower := v.towerAt(x, y)
	if len(tower.Clusters) != 2 {
		t.Fatalf("len(Clusters) = %d, want 2", len(tower.Clusters))
	}
	last := tower.Clusters[1]
	if last.Cell.Len() != v.clusterSize {
		t.Fatalf("last cluster len = %d, want %d", last.Cell.Len(), v.clusterSize)
	}
	dummies := 0
	for _, p := range last.Cell.Particles() {
		if p.IsDummy() {
			dummies++
		}
	}
	if dummies != 2 {
		t.Errorf("dummies in last cluster = %d, want 2", dummies)
	}
}

func TestRebuildNewton3HalvesNeighborEntriesVsFull(t *testing.T) {
	opts := testOpts()
	vHalf, _ := New(opts)
	vFull, _ := New(opts)
	// Two clusters' worth of particles clustered close together in z so
	// they are guaranteed to be mutual neighbors.
	for i := uint64(1); i <= 8; i++ {
		vHalf.AddOwned(particle.New([3]float64{5, 5, float64(i) * 0.1}, i, 0))
		vFull.AddOwned(particle.New([3]float64{5, 5, float64(i) * 0.1}, i, 0))
	}
	vHalf.RebuildNeighborLists(config.Configuration{Newton3: true})
	vFull.RebuildNeighborLists(config.Configuration{Newton3: false})

	totalHalf, totalFull := 0, 0
	for _, t := range vHalf.Towers() {
		for _, cl := range t.Clusters {
			totalHalf += len(cl.Neighbors)
		}
	}
	for _, t := range vFull.Towers() {
		for _, cl := range t.Clusters {
			totalFull += len(cl.Neighbors)
		}
	}
	if totalFull != 2*totalHalf {
		t.Errorf("full-mode neighbor entries = %d, want exactly double half-mode's %d", totalFull, totalHalf)
	}
}

type countingFunctor struct{ calls int }

func (f *countingFunctor) AoS(pi, pj *particle.Particle, newton3 bool) {
	f.calls++
	pi.AddForce([3]float64{1, 0, 0})
	if newton3 {
		pj.AddForce([3]float64{-1, 0, 0})
	}
}
func (f *countingFunctor) SoASingle(buf *soa.Buffer, newton3 bool) {}
func (f *countingFunctor) SoAPair(a, b *soa.Buffer, newton3 bool) {}
func (f *countingFunctor) SoAVerlet(buf *soa.Buffer, neighbors [][]int, from, to int, newton3 bool) {
}
func (f *countingFunctor) AllowsNewton3() bool      { return true }
func (f *countingFunctor) AllowsNonNewton3() bool   { return true }
func (f *countingFunctor) IsRelevantForTuning() bool { return true }

func TestComputeInteractionsRejectsWrongTraversal(t *testing.T) {
	v, _ := New(testOpts())
	err := v.ComputeInteractions(&countingFunctor{}, config.Configuration{
		Container: config.VerletClusterLists, Traversal: config.C08, Layout: config.AoS, Newton3: true,
	})
	if err == nil {
		t.Fatalf("expected TraversalIncompatible error")
	}
}

func TestComputeInteractionsRunsAfterRebuild(t *testing.T) {
	v, _ := New(testOpts())
	for i := uint64(1); i <= 8; i++ {
		v.AddOwned(particle.New([3]float64{5, 5, float64(i) * 0.1}, i, 0))
	}
	if err := v.RebuildNeighborLists(config.Configuration{Newton3: true}); err != nil {
		t.Fatalf("RebuildNeighborLists: %v", err)
	}
	f := &countingFunctor{}
	err := v.ComputeInteractions(f, config.Configuration{
		Container: config.VerletClusterLists, Traversal: config.ClusterColoring, Layout: config.AoS, Newton3: true,
	})
	if err != nil {
		t.Fatalf("ComputeInteractions: %v", err)
	}
	if f.calls == 0 {
		t.Errorf("expected a non-zero number of AoS calls")
	}
}

func TestUpdateMarksLeaverDummyKeepsClusterSize(t *testing.T) {
	v, _ := New(testOpts())
	v.AddOwned(particle.New([3]float64{9.9, 5, 5}, 1, 0))
	v.RebuildNeighborLists(config.Configuration{Newton3: true})

	x, y := v.towerCoord([3]float64{9.9, 5, 5})
	cl := v.towerAt(x, y).Clusters[0]
	before := cl.Cell.Len()
	cl.Cell.Particles()[0].Position[0] = 10.05

	leavers := v.Update(false)
	if len(leavers) != 1 {
		t.Fatalf("len(leavers) = %d, want 1", len(leavers))
	}
	if cl.Cell.Len() != before {
		t.Errorf("cluster size changed from %d to %d, want unchanged", before, cl.Cell.Len())
	}
}
