package mapgen

import "math"

// gradientCount is the number of unit gradients the lattice hashes into,
// evenly spaced at 22.5 degrees. 16 gradients (vs. the classic 4-gradient
// Perlin lattice) eliminate the axis bias a 4-gradient scheme shows along
// the cardinal directions.
const gradientCount = 16

var gradients [gradientCount][2]float64

func init() {
	for i := 0; i < gradientCount; i++ {
		angle := float64(i) * (2 * math.Pi / gradientCount)
		gradients[i][0] = math.Cos(angle)
		gradients[i][1] = math.Sin(angle)
	}
}

// gradientNoise is a 2-D integer-lattice gradient noise source, the building
// block FBM and ridged FBM sum octaves of.
type gradientNoise struct {
	seed uint32
}

func newGradientNoise(seed uint32) *gradientNoise {
	return &gradientNoise{seed: seed}
}

// hash mixes a lattice coordinate and the noise seed into a gradient index.
func (g *gradientNoise) hash(ix, iy int64) int {
	h := uint64(ix)*0x9E3779B97F4A7C15 ^ uint64(iy)*0xC2B2AE3D27D4EB4F ^ uint64(g.seed)
	h = splitmix64(h)
	return int(h % gradientCount)
}

// smootherstep is Perlin's improved 6t^5-15t^4+10t^3 interpolant.
func smootherstep(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Noise2D samples the gradient noise field at (x, y), rescaled to
// approximately [-1, 1].
func (g *gradientNoise) Noise2D(x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	ix0, iy0 := int64(x0), int64(y0)

	fx := x - x0
	fy := y - y0

	dot := func(ix, iy int64, dx, dy float64) float64 {
		gi := g.hash(ix, iy)
		return gradients[gi][0]*dx + gradients[gi][1]*dy
	}

	n00 := dot(ix0, iy0, fx, fy)
	n10 := dot(ix0+1, iy0, fx-1, fy)
	n01 := dot(ix0, iy0+1, fx, fy-1)
	n11 := dot(ix0+1, iy0+1, fx-1, fy-1)

	u := smootherstep(fx)
	v := smootherstep(fy)

	nx0 := lerp(n00, n10, u)
	nx1 := lerp(n01, n11, u)
	n := lerp(nx0, nx1, v)

	// The interpolated value of unit gradients dotted with offsets in the
	// unit square is bounded by sqrt(2)/2; rescale so that a single-octave sample comes out
	// close to the conventional [-1, 1] noise range.
	return n * math.Sqrt2
}

// fbmRotCos and fbmRotSin give the 30-degree rotation applied to the sample point before each additional
// octave, decorrelating the lattice alignment between octaves.
const (
	fbmRotCos = 0.8660254037844387 // cos(30 degrees)
	fbmRotSin = 0.5                // sin(30 degrees)
)

func rotatePoint(x, y float64) (float64, float64) {
	return x*fbmRotCos - y*fbmRotSin, x*fbmRotSin + y*fbmRotCos
}

// fbm sums `octaves` gradient-noise calls at geometrically increasing
// frequency and decreasing amplitude, rotating the sample point between
// octaves, normalized by the total amplitude summed.
func fbm(g *gradientNoise, x, y float64, octaves int, freq, lacunarity, gain float64) float64 {
	sum := 0.0
	amp := 1.0
	ampSum := 0.0
	fx, fy := x, y

	for o := 0; o < octaves; o++ {
		sum += g.Noise2D(fx*freq, fy*freq) * amp
		ampSum += amp
		amp *= gain
		freq *= lacunarity
		fx, fy = rotatePoint(fx, fy)
	}

	if ampSum == 0 {
		return 0
	}
	return sum / ampSum
}

// ridgedFBM is fbm with each octave transformed 1-|n| before accumulation,
// producing sharp ridgelines rather than smooth rolling hills.
func ridgedFBM(g *gradientNoise, x, y float64, octaves int, freq, lacunarity, gain float64) float64 {
	sum := 0.0
	amp := 1.0
	ampSum := 0.0
	fx, fy := x, y

	for o := 0; o < octaves; o++ {
		n := g.Noise2D(fx*freq, fy*freq)
		ridged := 1 - math.Abs(n)
		sum += ridged * amp
		ampSum += amp
		amp *= gain
		freq *= lacunarity
		fx, fy = rotatePoint(fx, fy)
	}

	if ampSum == 0 {
		return 0
	}
	return sum / ampSum
}

// fbmDefault is the octave- and base-frequency-parameterized FBM used
// throughout the pipeline, with the standard lacunarity=2, gain=0.5.
func fbmDefault(g *gradientNoise, x, y float64, octaves int, baseFreq float64) float64 {
	return fbm(g, x, y, octaves, baseFreq, 2.0, 0.5)
}

func ridgedFBMDefault(g *gradientNoise, x, y float64, octaves int, baseFreq float64) float64 {
	return ridgedFBM(g, x, y, octaves, baseFreq, 2.0, 0.5)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func smoothstep(t float64) float64 {
	t = clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}
