/*Package cell implements the polymorphic particle container used by every
spatial container: a particle slice, a per-cell lock, an SoA buffer, and an
ownership mask describing which Ownership values the cell is allowed to
hold.*/
package cell

import (
	"sync"

	"github.com/go-md/autopas/particle"
	"github.com/go-md/autopas/soa"
)

// Kind tags what role a cell plays, mirroring the possible-ownership mask
// invariant from the data model: every particle in the cell must satisfy
// the cell's mask.
type Kind int

const (
	OwnedCell Kind = iota
	HaloCell
)

// Mask returns the Ownership values a cell of this Kind may hold.
func (k Kind) Mask() particle.Behavior {
	switch k {
	case OwnedCell:
		return particle.OwnedOnly
	case HaloCell:
		return particle.HaloOnly
	default:
		return particle.OwnedOrHalo
	}
}

// Cell is one spatial bucket of particles. The zero value is not usable;
// construct with New.
type Cell struct {
	mu    sync.Mutex
	kind  Kind
	ps    []particle.Particle
	buf   soa.Buffer
	valid bool // true between SoALoad and SoAExtract
}

// New creates an empty cell of the given kind.
func New(kind Kind) *Cell {
	return &Cell{kind: kind}
}

// Kind reports the cell's ownership mask tag.
func (c *Cell) Kind() Kind { return c.kind }

// Lock/Unlock expose the cell's exclusive lock to traversals that cannot
// rely on coloring alone (see §5: locks are always acquired by callers in
// cell-linear-index order to preclude deadlock; Cell itself does not
// enforce ordering, only mutual exclusion of its own storage).
func (c *Cell) Lock()   { c.mu.Lock() }
func (c *Cell) Unlock() { c.mu.Unlock() }

// Len returns the number of particles (including dummies) stored directly
// in the cell.
func (c *Cell) Len() int { return len(c.ps) }

// Particles exposes the cell's backing slice. Callers that mutate it are
// expected to hold the cell's lock for the duration; this mirrors the
// dispatcher's documented ownership of a cell's storage during a
// ComputeInteractions call.
func (c *Cell) Particles() []particle.Particle { return c.ps }

// Add appends p to the cell. It does not check the possible-ownership mask;
// callers (containers) are responsible for only placing particles that
// satisfy Kind.Mask(), since the mask depends on container-specific
// geometry the cell itself does not know.
func (c *Cell) Add(p particle.Particle) {
	c.ps = append(c.ps, p)
}

// RemoveAt deletes the particle at index i without preserving order
// (swap-with-last), trading stable ordering for O(1) removal in a
// hot per-timestep path.
func (c *Cell) RemoveAt(i int) {
	last := len(c.ps) - 1
	c.ps[i] = c.ps[last]
	c.ps = c.ps[:last]
}

// Clear empties the cell's particle storage.
func (c *Cell) Clear() { c.ps = c.ps[:0] }

// SoALoad populates the cell's SoA buffer from its AoS storage. After this
// call and until SoAExtract, the AoS Force fields are considered stale.
func (c *Cell) SoALoad() {
	c.buf.Resize(len(c.ps))
	c.buf.Load(c.ps, 0)
	c.valid = true
}

// SoABuffer returns the cell's SoA buffer. Valid only between SoALoad and
// SoAExtract.
func (c *Cell) SoABuffer() *soa.Buffer { return &c.buf }

// SoAValid reports whether the cell's SoA buffer currently reflects its AoS
// storage (i.e. a Load has happened with no matching Extract yet).
func (c *Cell) SoAValid() bool { return c.valid }

// SoAExtract writes the SoA buffer's forces back into AoS storage and marks
// the buffer stale again.
func (c *Cell) SoAExtract() {
	c.buf.Extract(c.ps, 0)
	c.valid = false
}
