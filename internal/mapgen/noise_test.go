package mapgen

import (
	"math"
	"testing"
)

func TestNoise2DBoundedRange(t *testing.T) {
	n := newGradientNoise(1)
	for i := 0; i < 500; i++ {
		x := float64(i) * 0.37
		y := float64(i) * 0.91
		v := n.Noise2D(x, y)
		if v < -1.01 || v > 1.01 {
			t.Fatalf("Noise2D(%v,%v) = %v, outside expected [-1,1]", x, y, v)
		}
	}
}

func TestFBMDeterministic(t *testing.T) {
	n := newGradientNoise(42)
	a := fbmDefault(n, 1.5, 2.5, 4, 1.0)
	b := fbmDefault(n, 1.5, 2.5, 4, 1.0)
	if a != b {
		t.Fatalf("fbmDefault not deterministic: %v != %v", a, b)
	}
}

func TestRidgedFBMNonNegative(t *testing.T) {
	n := newGradientNoise(7)
	for i := 0; i < 200; i++ {
		v := ridgedFBMDefault(n, float64(i)*0.2, float64(i)*0.3, 4, 1.0)
		if v < -0.01 {
			t.Fatalf("ridgedFBM produced negative value %v", v)
		}
	}
}

func TestGradientsUnitLength(t *testing.T) {
	for i, g := range gradients {
		l := math.Hypot(g[0], g[1])
		if math.Abs(l-1) > 1e-9 {
			t.Fatalf("gradient %d not unit length: %v", i, l)
		}
	}
}

func TestSmootherstepEndpoints(t *testing.T) {
	if smootherstep(0) != 0 {
		t.Fatalf("smootherstep(0) = %v, want 0", smootherstep(0))
	}
	if smootherstep(1) != 1 {
		t.Fatalf("smootherstep(1) = %v, want 1", smootherstep(1))
	}
}
