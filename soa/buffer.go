/*Package soa implements the structure-of-arrays buffer that functors operate
on when a Configuration's data layout is SoA. It is a fixed-schema
specialization of phil-mansfield/guppy's generic named-field map
(lib/particles.Particles/Field, with its Transfer(dest, from, to) index
remapping), and reuses a capacity-preserving Resize pattern in the same
style as guppy's lib/compress.Buffer so that a live traversal never
triggers a reallocation underneath it.*/
package soa

import "github.com/go-md/autopas/particle"

// Buffer holds one parallel array per particle field, aligned so that
// element i across every array describes the same particle. It is valid
// only between a matched Load and Extract call; AoS fields are stale in
// between.
type Buffer struct {
	PosX, PosY, PosZ       []float64
	ForceX, ForceY, ForceZ []float64
	ID                     []uint64
	TypeID                 []int32
	Owner                  []particle.Ownership
}

// Len returns the number of particles currently loaded into the buffer.
func (b *Buffer) Len() int { return len(b.PosX) }

// resizeFloat64 grows x to length n, reusing backing capacity when possible.
func resizeFloat64(x []float64, n int) []float64 {
	if cap(x) >= n {
		return x[:n]
	}
	return append(x[:cap(x)], make([]float64, n-cap(x))...)
}

func resizeUint64(x []uint64, n int) []uint64 {
	if cap(x) >= n {
		return x[:n]
	}
	return append(x[:cap(x)], make([]uint64, n-cap(x))...)
}

func resizeInt32(x []int32, n int) []int32 {
	if cap(x) >= n {
		return x[:n]
	}
	return append(x[:cap(x)], make([]int32, n-cap(x))...)
}

func resizeOwner(x []particle.Ownership, n int) []particle.Ownership {
	if cap(x) >= n {
		return x[:n]
	}
	return append(x[:cap(x)], make([]particle.Ownership, n-cap(x))...)
}

// Resize grows every array in the buffer to length n in place, preserving
// any backing capacity from a previous Load.
func (b *Buffer) Resize(n int) {
	b.PosX = resizeFloat64(b.PosX, n)
	b.PosY = resizeFloat64(b.PosY, n)
	b.PosZ = resizeFloat64(b.PosZ, n)
	b.ForceX = resizeFloat64(b.ForceX, n)
	b.ForceY = resizeFloat64(b.ForceY, n)
	b.ForceZ = resizeFloat64(b.ForceZ, n)
	b.ID = resizeUint64(b.ID, n)
	b.TypeID = resizeInt32(b.TypeID, n)
	b.Owner = resizeOwner(b.Owner, n)
}

// Load fills the buffer from ps, starting at offset (so that multiple cells
// can be concatenated into one buffer during a soa_pair/soa_verlet call).
// The buffer must already have been Resize'd to at least offset+len(ps).
func (b *Buffer) Load(ps []particle.Particle, offset int) {
	for i, p := range ps {
		j := offset + i
		b.PosX[j], b.PosY[j], b.PosZ[j] = p.Position[0], p.Position[1], p.Position[2]
		b.ForceX[j], b.ForceY[j], b.ForceZ[j] = p.Force[0], p.Force[1], p.Force[2]
		b.ID[j] = p.ID
		b.TypeID[j] = p.TypeID
		b.Owner[j] = p.Owner
	}
}

// Extract writes the buffer's Force columns back into ps, starting at
// offset. Only the force is mutated by kernels, so only the force is
// written back; position/id/type/owner are the AoS cell's responsibility.
func (b *Buffer) Extract(ps []particle.Particle, offset int) {
	for i := range ps {
		j := offset + i
		ps[i].Force = [3]float64{b.ForceX[j], b.ForceY[j], b.ForceZ[j]}
	}
}

// Append grows the buffer by len(ps) and loads ps into the new tail,
// returning the offset at which ps now lives, so several cells can be
// concatenated into a single buffer. No container currently calls it.
func (b *Buffer) Append(ps []particle.Particle) (offset int) {
	offset = b.Len()
	b.Resize(offset + len(ps))
	b.Load(ps, offset)
	return offset
}

// Reset truncates every column to zero length without discarding backing
// capacity.
func (b *Buffer) Reset() {
	b.PosX = b.PosX[:0]
	b.PosY = b.PosY[:0]
	b.PosZ = b.PosZ[:0]
	b.ForceX = b.ForceX[:0]
	b.ForceY = b.ForceY[:0]
	b.ForceZ = b.ForceZ[:0]
	b.ID = b.ID[:0]
	b.TypeID = b.TypeID[:0]
	b.Owner = b.Owner[:0]
}
