package mapgen

import "math"

// seedPoint is a candidate plate center in grid space.
type seedPoint struct {
	X, Y float64
}

// poissonUniform places n points in [0,W)x[0,H) with minimum separation
// min_dist = 0.6*sqrt(W*H/n), via rejection sampling with progressive
// relaxation, per spec.md S1. Distance uses east-west wrap.
func poissonUniform(rng *rngState, w, h, n int) []seedPoint {
	if n <= 0 {
		return nil
	}
	baseMinDist := 0.6 * math.Sqrt(float64(w*h)/float64(n))
	minDist := baseMinDist

	points := make([]seedPoint, 0, n)
	attempts := 0

	for len(points) < n {
		attempts++
		x := rng.uniform(0, float64(w))
		y := rng.uniform(0, float64(h))

		ok := true
		for _, p := range points {
			if wrappedDistSq(int(p.X), int(p.Y), int(x), int(y), w) < minDist*minDist {
				ok = false
				break
			}
		}
		if ok {
			points = append(points, seedPoint{X: x, Y: y})
			continue
		}

		if attempts%(200*n) == 0 {
			minDist *= 0.85
		}
		if attempts >= 2000*n {
			// Fill any shortfall with unconstrained random points.
			for len(points) < n {
				points = append(points, seedPoint{X: rng.uniform(0, float64(w)), Y: rng.uniform(0, float64(h))})
			}
			break
		}
	}

	return points
}

// poissonVariable places n points whose local minimum separation shrinks
// near macro-Voronoi boundaries, per spec.md S2. macroSeeds are the macro
// centers already placed by S1.
func poissonVariable(rng *rngState, w, h, n int, macroSeeds []seedPoint) []seedPoint {
	if n <= 0 {
		return nil
	}
	baseMinDist := 0.6 * math.Sqrt(float64(w*h)/float64(n))

	localMinDist := func(x, y float64) float64 {
		d1, d2 := math.Inf(1), math.Inf(1)
		for _, m := range macroSeeds {
			d := math.Sqrt(wrappedDistSq(int(m.X), int(m.Y), int(x), int(y), w))
			if d < d1 {
				d2 = d1
				d1 = d
			} else if d < d2 {
				d2 = d
			}
		}
		if d2 == 0 {
			d2 = 1e-9
		}
		proximity := d1 / d2
		return baseMinDist * (0.35 + 0.65*(1-proximity*proximity))
	}

	points := make([]seedPoint, 0, n)
	attempts := 0
	relax := 1.0

	for len(points) < n {
		attempts++
		x := rng.uniform(0, float64(w))
		y := rng.uniform(0, float64(h))
		minDist := localMinDist(x, y) * relax

		ok := true
		for _, p := range points {
			if wrappedDistSq(int(p.X), int(p.Y), int(x), int(y), w) < minDist*minDist {
				ok = false
				break
			}
		}
		if ok {
			points = append(points, seedPoint{X: x, Y: y})
			continue
		}

		if attempts%(200*n) == 0 {
			relax *= 0.85
		}
		if attempts >= 2000*n {
			for len(points) < n {
				points = append(points, seedPoint{X: rng.uniform(0, float64(w)), Y: rng.uniform(0, float64(h))})
			}
			break
		}
	}

	return points
}
