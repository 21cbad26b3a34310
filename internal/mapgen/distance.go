package mapgen

import "math"

// jfaSeed tracks, for one cell, the coordinate of the nearest boundary cell
// found so far. ok is false until a cell has seen at least one seed.
type jfaSeed struct {
	x, y int
	ok   bool
}

// computeBoundaryDistance runs the Jump Flood Algorithm to approximate, for
// every cell, the Euclidean distance (and nearest-cell coordinate) to the
// nearest plate-boundary cell, then runs two additional step-size-1 cleanup
// passes ("JFA+2") to correct the approximation errors JFA's logarithmic
// step schedule leaves behind, per spec.md S6. Distance uses the shortest
// east-west wrap path.
func computeBoundaryDistance(boundaryKind *Grid[BoundaryKind]) (*Grid[float32], *Grid[uint16], *Grid[uint16]) {
	w, h := boundaryKind.W, boundaryKind.H
	cur := make([]jfaSeed, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if boundaryKind.Get(x, y) != BoundaryInterior {
				cur[y*w+x] = jfaSeed{x: x, y: y, ok: true}
			}
		}
	}

	maxDim := w
	if h > maxDim {
		maxDim = h
	}
	steps := []int{}
	for s := 1; s < maxDim; s *= 2 {
		steps = append(steps, s)
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	// JFA+2: two final passes at step size 1 clean up the residual error
	// the logarithmic schedule leaves near diagonal seams.
	steps = append(steps, 1, 1)

	next := make([]jfaSeed, w*h)

	jfaPass := func(step int) {
		parallelRows(h, func(y int) {
			for x := 0; x < w; x++ {
				best := cur[y*w+x]
				bestD := math.Inf(1)
				if best.ok {
					bestD = wrappedDistSq(x, y, best.x, best.y, w)
				}

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						sx := wrapX(x+dx*step, w)
						sy := y + dy*step
						if sy < 0 || sy >= h {
							continue
						}
						cand := cur[sy*w+sx]
						if !cand.ok {
							continue
						}
						d := wrappedDistSq(x, y, cand.x, cand.y, w)
						if d < bestD {
							bestD = d
							best = cand
						}
					}
				}

				next[y*w+x] = best
			}
		})
		copy(cur, next)
	}

	for _, step := range steps {
		jfaPass(step)
	}

	dist := NewGrid[float32](w, h)
	nbx := NewGrid[uint16](w, h)
	nby := NewGrid[uint16](w, h)

	for i, s := range cur {
		if !s.ok {
			nbx.Data[i] = sentinelU16
			nby.Data[i] = sentinelU16
			continue
		}
		x := i % w
		y := i / w
		d := math.Sqrt(wrappedDistSq(x, y, s.x, s.y, w))
		dist.Data[i] = float32(d)
		nbx.Data[i] = uint16(s.x)
		nby.Data[i] = uint16(s.y)
	}

	return dist, nbx, nby
}
