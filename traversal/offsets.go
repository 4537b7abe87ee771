package traversal

// forwardOffsets13 returns a forward neighbor set used by c18 and sliced:
// of the 26 neighbors of a cell, the 13 that come "after" it in a fixed
// total order over (dz, dy, dx). Pairing a base cell with itself plus
// these 13 neighbors covers every unordered cell pair in the grid exactly
// once. Unlike blockOffsets7, this total order is not componentwise-min
// based (it can go backward in dx or dy when a later axis is forward), so
// color8 is not enough to keep concurrent base cells apart; it is used with
// color18, or with serial processing within each unit as sliced does.
func forwardOffsets13() [][3]int {
	var offs [][3]int
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				if isForward(dx, dy, dz) {
					offs = append(offs, [3]int{dx, dy, dz})
				}
			}
		}
	}
	return offs
}

// isForward defines the total order used to pick exactly one of each
// {offset, -offset} pair: forward means dz > 0, or dz == 0 && dy > 0, or
// dz == 0 && dy == 0 && dx > 0.
func isForward(dx, dy, dz int) bool {
	if dz != 0 {
		return dz > 0
	}
	if dy != 0 {
		return dy > 0
	}
	return dx > 0
}

// blockOffsets7 returns the 7 nonzero corners of the 2x2x2 block starting
// at a cell: every axis offset is 0 or 1, never -1. Because every offset is
// non-negative in every axis, the base cell is always the componentwise
// minimum of any pair it forms with one of these corners, which is the
// property the c08 coloring depends on: two base cells of the same color8
// class differ by at least 2 along some axis, so their 2x2x2 blocks can
// never share a cell.
func blockOffsets7() [][3]int {
	var offs [][3]int
	for dz := 0; dz <= 1; dz++ {
		for dy := 0; dy <= 1; dy++ {
			for dx := 0; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				offs = append(offs, [3]int{dx, dy, dz})
			}
		}
	}
	return offs
}

// allOffsets26 returns every one of a cell's 26 neighbors (both forward and
// backward), for traversals (c01) that visit neighbors without relying on
// a coloring to avoid double-counting, because writes are one-directional.
func allOffsets26() [][3]int {
	var offs [][3]int
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				offs = append(offs, [3]int{dx, dy, dz})
			}
		}
	}
	return offs
}

// color8 groups a cell by the parity of its coordinates, the standard c08
// coloring: two base cells in the same color class always differ by at
// least 2 along some axis, so their blockOffsets7 2x2x2 blocks never share
// a cell.
func color8(x, y, z int) int {
	return (x & 1) | (y&1)<<1 | (z&1)<<2
}

// color18 assigns up to 18 classes via mod-3 in x and y and mod-2 in z. It
// is not a refinement of color8 (x and x+3 share a class but differ in
// parity). Two distinct base cells of one class differ by a non-zero multiple of 3
// in x or y, or by an even, non-zero amount in z; since a forward-13 step
// reaches dx, dy in [-1, 1] and dz in [0, 1], their touched cells never
// overlap.
func color18(x, y, z int) int {
	return (x%3)*6 + (y%3)*2 + (z & 1)
}
