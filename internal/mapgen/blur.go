package mapgen

import "math"

// gaussianKernel1D builds a normalized 1-D Gaussian kernel covering +/-3
// sigma, the standard truncation radius beyond which tail weight is
// negligible.
func gaussianKernel1D(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1}
	}
	radius := int(math.Ceil(sigma * 3))
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// gaussianBlur applies a separable Gaussian blur to g, wrapping east-west and
// clamping north-south to match the grid's cylindrical topology.
func gaussianBlur(g *Grid[float32], sigma float64) *Grid[float32] {
	if sigma <= 0 {
		out := NewGrid[float32](g.W, g.H)
		copy(out.Data, g.Data)
		return out
	}
	w, h := g.W, g.H
	kernel := gaussianKernel1D(sigma)
	radius := len(kernel) / 2

	tmp := NewGrid[float32](w, h)
	parallelRows(h, func(y int) {
		for x := 0; x < w; x++ {
			sum := 0.0
			for k := -radius; k <= radius; k++ {
				sum += float64(g.Get(wrapX(x+k, w), y)) * kernel[k+radius]
			}
			tmp.Set(x, y, float32(sum))
		}
	})

	out := NewGrid[float32](w, h)
	parallelRows(h, func(y int) {
		for x := 0; x < w; x++ {
			sum := 0.0
			for k := -radius; k <= radius; k++ {
				sum += float64(tmp.Get(x, clampY(y+k, h))) * kernel[k+radius]
			}
			out.Set(x, y, float32(sum))
		}
	})

	return out
}

// blurColumns applies a Gaussian blur along the north-south axis only,
// clamped at the poles, leaving each row's east-west structure untouched.
func blurColumns(g *Grid[float32], sigma float64) *Grid[float32] {
	if sigma <= 0 {
		out := NewGrid[float32](g.W, g.H)
		copy(out.Data, g.Data)
		return out
	}
	w, h := g.W, g.H
	kernel := gaussianKernel1D(sigma)
	radius := len(kernel) / 2

	out := NewGrid[float32](w, h)
	parallelRows(h, func(y int) {
		for x := 0; x < w; x++ {
			sum := 0.0
			for k := -radius; k <= radius; k++ {
				sum += float64(g.Get(x, clampY(y+k, h))) * kernel[k+radius]
			}
			out.Set(x, y, float32(sum))
		}
	})

	return out
}
