package functor

import (
	"github.com/go-md/autopas/cell"
)

// Dispatcher binds a Functor to a traversal's cell-pair handler, managing
// SoA load/extract around whatever sequence of cell pairs the traversal
// visits.
type Dispatcher struct {
	F Functor
}

// New creates a Dispatcher for f.
func New(f Functor) *Dispatcher { return &Dispatcher{F: f} }

// CellAoS processes one cell pair (or one cell against itself) in AoS mode.
// For a same-cell pass (a == b) each unordered pair is visited once
// regardless of newton3, because the kernel itself handles the symmetric
// update in that case. For a cross-cell pass, each unordered pair is
// visited once if newton3 and twice (both orderings) if not.
func (d *Dispatcher) CellAoS(a, b *cell.Cell, newton3 bool) {
	if a == b {
		ps := a.Particles()
		for i := 0; i < len(ps); i++ {
			for j := i + 1; j < len(ps); j++ {
				// Always issued as if newton3, regardless of the
				// configuration's setting: a single call is the only call
				// this pair will ever get, so it must update both
				// particles. There is no write-disjointness concern here
				// because a cell's own particles are only ever touched by
				// the thread currently holding that base cell.
				d.F.AoS(&ps[i], &ps[j], true)
			}
		}
		return
	}

	psA, psB := a.Particles(), b.Particles()
	for i := range psA {
		for j := range psB {
			d.F.AoS(&psA[i], &psB[j], newton3)
			if !newton3 {
				d.F.AoS(&psB[j], &psA[i], newton3)
			}
		}
	}
}

// CellAoSOneWay accumulates force into base's particles only, from
// interactions with other's particles. Used by traversals (c01) whose
// write-disjointness guarantee requires that a base step never write into
// any cell but its own.
func (d *Dispatcher) CellAoSOneWay(base, other *cell.Cell) {
	psBase, psOther := base.Particles(), other.Particles()
	for i := range psBase {
		for j := range psOther {
			d.F.AoS(&psBase[i], &psOther[j], false)
		}
	}
}

// LoadAll performs SoALoad on every cell in cells that is not already
// valid, in order. It is idempotent: a cell visited by more than one base
// step in the same traversal is only loaded once.
func LoadAll(cells []*cell.Cell) {
	for _, c := range cells {
		if !c.SoAValid() {
			c.SoALoad()
		}
	}
}

// ExtractAll performs SoAExtract on every cell in cells that is currently
// valid, in the same order LoadAll was called with.
func ExtractAll(cells []*cell.Cell) {
	for _, c := range cells {
		if c.SoAValid() {
			c.SoAExtract()
		}
	}
}

// CellSoA processes one cell pair in SoA mode. Both cells' buffers must
// already be loaded (via LoadAll); CellSoA does not load or extract.
func (d *Dispatcher) CellSoA(a, b *cell.Cell, newton3 bool) {
	if a == b {
		// Same rationale as CellAoS: a same-buffer pass is the only pass
		// this cell's internal pairs get, so it must be fully symmetric.
		d.F.SoASingle(a.SoABuffer(), true)
		return
	}
	d.F.SoAPair(a.SoABuffer(), b.SoABuffer(), newton3)
}

// CellSoAOneWay is the SoA-layout analog of CellAoSOneWay: base's buffer
// accumulates force from other's buffer without writing into other.
func (d *Dispatcher) CellSoAOneWay(base, other *cell.Cell) {
	d.F.SoAPair(base.SoABuffer(), other.SoABuffer(), false)
}
