package apaerr

import (
	"errors"
	"testing"
)

func TestIs(t *testing.T) {
	base := errors.New("position (11.000000, 0.000000, 0.000000) outside owned box")
	err := Wrap(OutOfBounds, "LinkedCells.AddOwned", base)

	if !Is(err, OutOfBounds) {
		t.Errorf("expected Is(err, OutOfBounds) to be true")
	}
	if Is(err, TraversalIncompatible) {
		t.Errorf("expected Is(err, TraversalIncompatible) to be false")
	}
	if !errors.Is(err, base) {
		t.Errorf("expected errors.Is to see through the wrapped cause")
	}
}

func TestNew(t *testing.T) {
	err := New(DimensionTooSmall, "Sliced.Applicable", "%d slabs but %d threads", 2, 8)
	if !Is(err, DimensionTooSmall) {
		t.Errorf("expected Is(err, DimensionTooSmall) to be true")
	}
	want := "Sliced.Applicable: DimensionTooSmall: 2 slabs but 8 threads"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
