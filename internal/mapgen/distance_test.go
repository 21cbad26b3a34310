package mapgen

import (
	"math"
	"testing"
)

func TestBoundaryDistanceAccuracy(t *testing.T) {
	w, h := 32, 32
	kind := NewGrid[BoundaryKind](w, h)
	kind.Set(16, 16, BoundaryConvergent)
	kind.Set(4, 4, BoundaryDivergent)

	dist, nbx, nby := computeBoundaryDistance(kind)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nx := int(nbx.Get(x, y))
			ny := int(nby.Get(x, y))
			if nx == sentinelU16 {
				t.Fatalf("cell (%d,%d) has no nearest boundary recorded", x, y)
			}
			want := math.Sqrt(wrappedDistSq(x, y, nx, ny, w))
			got := float64(dist.Get(x, y))
			if math.Abs(got-want) > 1e-4 {
				t.Fatalf("distance at (%d,%d): got %v, want %v (nearest stored at %d,%d)", x, y, got, want, nx, ny)
			}
		}
	}
}

func TestBoundaryDistanceZeroOnBoundaryCells(t *testing.T) {
	w, h := 16, 16
	kind := NewGrid[BoundaryKind](w, h)
	kind.Set(8, 8, BoundaryTransform)

	dist, _, _ := computeBoundaryDistance(kind)
	if dist.Get(8, 8) != 0 {
		t.Fatalf("a boundary cell's own distance should be 0, got %v", dist.Get(8, 8))
	}
}
