/*Package halo coordinates periodic halo construction and leaver reinsertion
around a container.Container, and encodes particle batches for export
(§4.4, §4.5's cross-rank collaborator in the original design, here realized
as the single-domain periodic coordinator). The wire encoding is grounded
on phil-mansfield/guppy's lib/compress.Buffer: a flat byte buffer built with
encoding/binary, optionally compressed with github.com/DataDog/zstd above a
size threshold.*/
package halo

import (
	"github.com/go-md/autopas/container"
	"github.com/go-md/autopas/particle"
)

// Exchanger drives one container's periodic halo shell and handles the
// leavers returned by its Update call, for a single fully-periodic domain.
type Exchanger struct {
	Container container.Container
	Opts      container.Options
}

// New builds an Exchanger over an already-constructed container.
func New(c container.Container, opts container.Options) *Exchanger {
	return &Exchanger{Container: c, Opts: opts}
}

// Reinsert re-adds every leaver Update returned as an owned particle. In a
// single-domain periodic box a leaver has already been wrapped back inside
// the box by Update; reinsertion just re-registers it with the container
// (which may place it in a different cell/tower than before).
func (e *Exchanger) Reinsert(leavers []particle.Particle) error {
	for _, p := range leavers {
		p.Owner = particle.Owned
		if err := e.Container.AddOwned(p); err != nil {
			return err
		}
	}
	return nil
}

// RebuildHalo generates every periodic image of every owned particle that
// falls within the halo shell and adds it via AddHalo. Call this after
// Update (which already cleared the previous halo) and before
// ComputeInteractions.
func (e *Exchanger) RebuildHalo() error {
	lo, hi := e.Opts.BoxMin, e.Opts.BoxMax
	l := e.Opts.InteractionLength()

	var firstErr error
	e.Container.ForEach(func(p *particle.Particle) {
		if firstErr != nil {
			return
		}
		for _, off := range periodicOffsets(lo, hi, p.Position, l) {
			img := *p
			img.WrapPosition(off)
			img.Owner = particle.Halo
			if err := e.Container.AddHalo(img); err != nil {
				firstErr = err
			}
		}
	}, particle.OwnedOnly)
	return firstErr
}

// periodicOffsets returns every nonzero periodic image offset that could
// place pos within the halo shell: one axis contributes a nonzero choice
// only when pos is within l of the boundary on that axis, so an owned
// particle deep in the box's interior gets no offsets at all, and a
// particle near a box corner gets all 7 diagonal combinations.
func periodicOffsets(lo, hi, pos [3]float64, l float64) [][3]float64 {
	var choices [3][]float64
	for d := 0; d < 3; d++ {
		extent := hi[d] - lo[d]
		opts := []float64{0}
		if pos[d]-lo[d] < l {
			opts = append(opts, extent)
		}
		if hi[d]-pos[d] < l {
			opts = append(opts, -extent)
		}
		choices[d] = opts
	}

	var out [][3]float64
	for _, ox := range choices[0] {
		for _, oy := range choices[1] {
			for _, oz := range choices[2] {
				if ox == 0 && oy == 0 && oz == 0 {
					continue
				}
				out = append(out, [3]float64{ox, oy, oz})
			}
		}
	}
	return out
}
