/*Package cellindex buckets particles by destination cell index in O(N) time
and O(N) extra space, with no per-particle insertion into a growing slice.
This completes phil-mansfield/guppy's lib/cuckoo stub ("O(N) sorting for
datasets where you know the index which an object must take or the bin it
must take in a set of bins") into something LinkedCells rebuilds actually
call. VerletClusterLists bins its towers with a map and does not use it.*/
package cellindex

// Bucket assigns each element of idx (idx[i] is the destination bucket for
// element i, 0 <= idx[i] < numBuckets) into counting-sorted order. It
// returns offsets (length numBuckets+1, offsets[b]..offsets[b+1] is the
// range in order belonging to bucket b) and order (a permutation of
// 0..len(idx)-1 such that order[offsets[b]:offsets[b+1]] lists every i with
// idx[i] == b).
func Bucket(idx []int, numBuckets int) (offsets, order []int) {
	counts := make([]int, numBuckets+1)
	for _, b := range idx {
		counts[b+1]++
	}
	for b := 0; b < numBuckets; b++ {
		counts[b+1] += counts[b]
	}
	offsets = counts

	// cursor[b] walks from offsets[b] up to offsets[b+1] as elements are
	// placed; copy it so offsets itself is left as the bucket boundaries.
	cursor := make([]int, numBuckets)
	copy(cursor, offsets[:numBuckets])

	order = make([]int, len(idx))
	for i, b := range idx {
		order[cursor[b]] = i
		cursor[b]++
	}
	return offsets, order
}

// Counts returns the number of elements assigned to each bucket, derived
// from the offsets returned by Bucket.
func Counts(offsets []int) []int {
	counts := make([]int, len(offsets)-1)
	for b := range counts {
		counts[b] = offsets[b+1] - offsets[b]
	}
	return counts
}
