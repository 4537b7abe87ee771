/*Package particle defines the Particle record shared by every container,
cell, and functor. It has no behavior beyond accessors: the physics lives in
functors, the storage lives in cells and containers.*/
package particle

// Ownership classifies where a Particle sits relative to a container's
// global box.
type Ownership int

const (
	// Owned particles lie inside the container's global box.
	Owned Ownership = iota
	// Halo particles are images of owned particles (possibly from another
	// domain, possibly a periodic wrap of this domain) kept so that
	// owned-owned cutoff pairs near a boundary can be evaluated without
	// special-casing the boundary.
	Halo
	// Dummy particles pad clusters to a fixed size. They must have no
	// observable effect on forces or kinetic aggregates regardless of their
	// coordinates.
	Dummy
)

func (o Ownership) String() string {
	switch o {
	case Owned:
		return "owned"
	case Halo:
		return "halo"
	case Dummy:
		return "dummy"
	default:
		return "unknown"
	}
}

// Behavior selects which Ownership values an iteration should visit.
type Behavior int

const (
	OwnedOnly Behavior = iota
	HaloOnly
	OwnedOrHalo
)

// Matches reports whether o satisfies the behavior filter b.
func (b Behavior) Matches(o Ownership) bool {
	switch b {
	case OwnedOnly:
		return o == Owned
	case HaloOnly:
		return o == Halo
	case OwnedOrHalo:
		return o == Owned || o == Halo
	default:
		return false
	}
}

// Particle is the core per-particle record. Position, Velocity, and Force
// are laid out as plain [3]float64 rather than pointers so that a slice of
// Particles is contiguous and cheap to copy in and out of an SoA buffer.
type Particle struct {
	Position [3]float64
	Velocity [3]float64
	Force    [3]float64
	ID       uint64
	TypeID   int32
	Owner    Ownership
}

// New creates an owned particle at position pos with the given id and type.
func New(pos [3]float64, id uint64, typeID int32) Particle {
	return Particle{Position: pos, ID: id, TypeID: typeID, Owner: Owned}
}

// IsDummy reports whether p must be ignored by every force/aggregate
// computation.
func (p *Particle) IsDummy() bool { return p.Owner == Dummy }

// ResetForce zeroes the accumulated force. Called once per particle before a
// traversal begins accumulating new forces.
func (p *Particle) ResetForce() { p.Force = [3]float64{} }

// AddForce accumulates f into the particle's force, so that repeated calls
// from different AoS kernel invocations add up instead of overwrite. (SoA
// extract does not go through it: it assigns the buffer's force column.)
func (p *Particle) AddForce(f [3]float64) {
	p.Force[0] += f[0]
	p.Force[1] += f[1]
	p.Force[2] += f[2]
}

// WrapPosition adds the periodic image offset off (typically 0 or ±boxLen in
// each dimension) to Position. Used when constructing halo images and when
// wrapping owned particles that crossed a periodic boundary.
func (p *Particle) WrapPosition(off [3]float64) {
	p.Position[0] += off[0]
	p.Position[1] += off[1]
	p.Position[2] += off[2]
}
