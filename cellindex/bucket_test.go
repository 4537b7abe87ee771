package cellindex

import "testing"

func TestBucketGroupsByIndex(t *testing.T) {
	idx := []int{2, 0, 0, 1, 2, 2}
	offsets, order := Bucket(idx, 3)

	wantOffsets := []int{0, 2, 3, 6}
	for i, w := range wantOffsets {
		if offsets[i] != w {
			t.Fatalf("offsets[%d] = %d, want %d (offsets=%v)", i, offsets[i], w, offsets)
		}
	}

	for b := 0; b < 3; b++ {
		for _, i := range order[offsets[b]:offsets[b+1]] {
			if idx[i] != b {
				t.Errorf("order placed element %d (bucket %d) in bucket %d", i, idx[i], b)
			}
		}
	}
}

func TestBucketEmptyBuckets(t *testing.T) {
	idx := []int{0, 0, 0}
	offsets, order := Bucket(idx, 2)
	if Counts(offsets)[1] != 0 {
		t.Errorf("expected bucket 1 to be empty")
	}
	if len(order) != 3 {
		t.Errorf("len(order) = %d, want 3", len(order))
	}
}

func TestCounts(t *testing.T) {
	idx := []int{0, 1, 1, 2}
	offsets, _ := Bucket(idx, 3)
	counts := Counts(offsets)
	want := []int{1, 2, 1}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("Counts[%d] = %d, want %d", i, counts[i], want[i])
		}
	}
}
