package halo

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-md/autopas/container"
	"github.com/go-md/autopas/container/directsum"
	"github.com/go-md/autopas/particle"
)

func testOpts() container.Options {
	return container.Options{
		BoxMin: [3]float64{0, 0, 0}, BoxMax: [3]float64{10, 10, 10},
		Cutoff: 1.0, SkinPerTimestep: 0.2, RebuildFrequency: 10,
	}
}

func TestRebuildHaloSkipsInteriorParticles(t *testing.T) {
	d, _ := directsum.New(testOpts())
	d.AddOwned(particle.New([3]float64{5, 5, 5}, 1, 0))
	e := New(d, testOpts())
	if err := e.RebuildHalo(); err != nil {
		t.Fatalf("RebuildHalo: %v", err)
	}
	count := 0
	d.ForEach(func(p *particle.Particle) { count++ }, particle.HaloOnly)
	if count != 0 {
		t.Errorf("expected no halo images for an interior particle, got %d", count)
	}
}

func TestRebuildHaloImagesNearFace(t *testing.T) {
	d, _ := directsum.New(testOpts())
	d.AddOwned(particle.New([3]float64{0.1, 5, 5}, 1, 0))
	e := New(d, testOpts())
	if err := e.RebuildHalo(); err != nil {
		t.Fatalf("RebuildHalo: %v", err)
	}
	count := 0
	var found particle.Particle
	d.ForEach(func(p *particle.Particle) { count++; found = *p }, particle.HaloOnly)
	if count != 1 {
		t.Fatalf("expected exactly 1 halo image near a single face, got %d", count)
	}
	if found.Position[0] < 10 {
		t.Errorf("expected the halo image wrapped to the high side, got position[0]=%v", found.Position[0])
	}
}

func TestRebuildHaloImagesNearCorner(t *testing.T) {
	d, _ := directsum.New(testOpts())
	d.AddOwned(particle.New([3]float64{0.1, 0.1, 0.1}, 1, 0))
	e := New(d, testOpts())
	if err := e.RebuildHalo(); err != nil {
		t.Fatalf("RebuildHalo: %v", err)
	}
	count := 0
	d.ForEach(func(p *particle.Particle) { count++ }, particle.HaloOnly)
	if count != 7 {
		t.Errorf("expected 7 periodic images near a corner (2^3 - 1), got %d", count)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ps := []particle.Particle{
		particle.New([3]float64{1, 2, 3}, 1, 5),
		particle.New([3]float64{4, 5, 6}, 2, 7),
	}
	ps[0].Velocity = [3]float64{0.1, 0.2, 0.3}
	ps[1].Owner = particle.Halo

	data := Encode(ps)
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out) != len(ps) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(ps))
	}
	if diff := cmp.Diff(ps, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCompressBelowThresholdIsNoOp(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	out, compressed, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if compressed {
		t.Errorf("expected no compression below threshold")
	}
	if len(out) != len(data) {
		t.Errorf("expected data returned unchanged")
	}
}

func TestCompressDecompressRoundTripAboveThreshold(t *testing.T) {
	ps := make([]particle.Particle, 1000)
	for i := range ps {
		ps[i] = particle.New([3]float64{float64(i), 0, 0}, uint64(i), 0)
	}
	data := Encode(ps)
	compressedData, compressed, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if !compressed {
		t.Fatalf("expected compression above threshold for %d bytes", len(data))
	}
	out, err := Decompress(compressedData, compressed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if len(out) != len(data) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(data))
	}
}
