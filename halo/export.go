package halo

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/DataDog/zstd"

	"github.com/go-md/autopas/particle"
)

// Encode serializes ps as a flat little-endian column layout: a uint64
// count, then one contiguous run per field (positions, velocities, ids,
// type ids, owners), mirroring the column-major shape of soa.Buffer
// rather than an AoS record-per-particle layout. Forces are not encoded.
func Encode(ps []particle.Particle) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint64(len(ps)))
	for col := 0; col < 3; col++ {
		for _, p := range ps {
			binary.Write(&buf, binary.LittleEndian, p.Position[col])
		}
	}
	for col := 0; col < 3; col++ {
		for _, p := range ps {
			binary.Write(&buf, binary.LittleEndian, p.Velocity[col])
		}
	}
	for _, p := range ps {
		binary.Write(&buf, binary.LittleEndian, p.ID)
	}
	for _, p := range ps {
		binary.Write(&buf, binary.LittleEndian, p.TypeID)
	}
	for _, p := range ps {
		binary.Write(&buf, binary.LittleEndian, int32(p.Owner))
	}
	return buf.Bytes()
}

// Decode is Encode's inverse for the encoded fields; every decoded particle
// has a zero force.
func Decode(data []byte) ([]particle.Particle, error) {
	r := bytes.NewReader(data)
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("halo.Decode: reading count: %w", err)
	}
	ps := make([]particle.Particle, n)
	for col := 0; col < 3; col++ {
		for i := range ps {
			if err := binary.Read(r, binary.LittleEndian, &ps[i].Position[col]); err != nil {
				return nil, fmt.Errorf("halo.Decode: reading position column %d: %w", col, err)
			}
		}
	}
	for col := 0; col < 3; col++ {
		for i := range ps {
			if err := binary.Read(r, binary.LittleEndian, &ps[i].Velocity[col]); err != nil {
				return nil, fmt.Errorf("halo.Decode: reading velocity column %d: %w", col, err)
			}
		}
	}
	for i := range ps {
		if err := binary.Read(r, binary.LittleEndian, &ps[i].ID); err != nil {
			return nil, fmt.Errorf("halo.Decode: reading id: %w", err)
		}
	}
	for i := range ps {
		if err := binary.Read(r, binary.LittleEndian, &ps[i].TypeID); err != nil {
			return nil, fmt.Errorf("halo.Decode: reading type id: %w", err)
		}
	}
	for i := range ps {
		var owner int32
		if err := binary.Read(r, binary.LittleEndian, &owner); err != nil {
			return nil, fmt.Errorf("halo.Decode: reading owner: %w", err)
		}
		ps[i].Owner = particle.Ownership(owner)
	}
	return ps, nil
}

// CompressThreshold is the encoded size, in bytes, at or above which Compress
// actually invokes zstd rather than returning data unchanged.
const CompressThreshold = 4096

// Compress zstd-compresses data at level 1 if it is at or above
// CompressThreshold, reporting whether compression was applied so the
// caller can pair the bytes with the right call to Decompress.
func Compress(data []byte) (out []byte, compressed bool, err error) {
	if len(data) < CompressThreshold {
		return data, false, nil
	}
	out, err = zstd.CompressLevel(nil, data, 1)
	if err != nil {
		return nil, false, fmt.Errorf("halo.Compress: %w", err)
	}
	return out, true, nil
}

// Decompress reverses Compress.
func Decompress(data []byte, compressed bool) ([]byte, error) {
	if !compressed {
		return data, nil
	}
	out, err := zstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("halo.Decompress: %w", err)
	}
	return out, nil
}
