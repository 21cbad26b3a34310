package mapgen

import "testing"

func TestGridWrapEastWest(t *testing.T) {
	g := NewGrid[int](4, 4)
	g.Set(-1, 0, 7)
	if got := g.Get(3, 0); got != 7 {
		t.Fatalf("Set(-1,0) should wrap to x=3, got value %d", got)
	}
	g.Set(5, 0, 9)
	if got := g.Get(1, 0); got != 9 {
		t.Fatalf("Set(5,0) should wrap to x=1, got value %d", got)
	}
}

func TestGridClampNorthSouth(t *testing.T) {
	g := NewGrid[int](4, 4)
	g.Set(0, -1, 3)
	if got := g.Get(0, 0); got != 3 {
		t.Fatalf("Set(0,-1) should clamp to y=0, got value %d", got)
	}
	g.Set(0, 10, 5)
	if got := g.Get(0, 3); got != 5 {
		t.Fatalf("Set(0,10) should clamp to y=3, got value %d", got)
	}
}

func TestWrappedDistSqShortestPath(t *testing.T) {
	w := 100
	d := wrappedDistSq(1, 0, 99, 0, w)
	if d != 4 {
		t.Fatalf("wrappedDistSq across the seam = %v, want 4", d)
	}
}

func TestNeighbors8Count(t *testing.T) {
	ns := neighbors8(0, 0, 10, 10)
	seen := map[[2]int]bool{}
	for _, n := range ns {
		seen[n] = true
	}
	// At the pole row the northern neighbors clamp onto row 0 itself, so
	// only 6 of the 8 offsets are distinct cells.
	if len(seen) != 6 {
		t.Fatalf("expected 6 distinct neighbors, got %d", len(seen))
	}
}

func TestNeighbors4WrapsEastWest(t *testing.T) {
	ns := neighbors4(0, 5, 10, 10)
	foundWrap := false
	for _, n := range ns {
		if n[0] == 9 && n[1] == 5 {
			foundWrap = true
		}
	}
	if !foundWrap {
		t.Fatalf("expected west neighbor of x=0 to wrap to x=9")
	}
}
