package mapgen

// Grid is a row-major dense array of W*H cells on a cylindrical topology:
// east-west indices wrap modulo W, north-south indices clamp at the poles.
// A Grid never resizes after creation.
type Grid[T any] struct {
	W, H int
	Data []T
}

// NewGrid allocates a zero-valued W*H grid.
func NewGrid[T any](w, h int) *Grid[T] {
	return &Grid[T]{W: w, H: h, Data: make([]T, w*h)}
}

// wrapX folds an east-west coordinate into [0, W) via modulo wrap.
func wrapX(x, w int) int {
	x %= w
	if x < 0 {
		x += w
	}
	return x
}

// clampY folds a north-south coordinate into [0, H) by clamping at the poles.
func clampY(y, h int) int {
	if y < 0 {
		return 0
	}
	if y >= h {
		return h - 1
	}
	return y
}

// index converts a (possibly out-of-range) cylindrical coordinate into a
// flat array offset, applying wrap/clamp.
func (g *Grid[T]) index(x, y int) int {
	return clampY(y, g.H)*g.W + wrapX(x, g.W)
}

// Get reads the cell at (x, y), wrapping east-west and clamping north-south.
func (g *Grid[T]) Get(x, y int) T {
	return g.Data[g.index(x, y)]
}

// Set writes the cell at (x, y), wrapping east-west and clamping north-south.
func (g *Grid[T]) Set(x, y int, v T) {
	g.Data[g.index(x, y)] = v
}

// GetRaw reads by flat offset, already assumed to be in range.
func (g *Grid[T]) GetRaw(idx int) T { return g.Data[idx] }

// SetRaw writes by flat offset, already assumed to be in range.
func (g *Grid[T]) SetRaw(idx int, v T) { g.Data[idx] = v }

// eastWestWrapDelta returns the signed east-west offset with the smallest
// magnitude between two x-coordinates on a cylinder of circumference w,
// e.g. for w=100, x1=1, x2=99 the wrapped delta is -2, not 98.
func eastWestWrapDelta(x1, x2, w int) int {
	dx := x2 - x1
	if dx > w/2 {
		dx -= w
	} else if dx < -w/2 {
		dx += w
	}
	return dx
}

// wrappedDistSq returns the squared Euclidean distance between two cells,
// using the shortest east-west wrap path.
func wrappedDistSq(x1, y1, x2, y2, w int) float64 {
	dx := float64(eastWestWrapDelta(x1, x2, w))
	dy := float64(y2 - y1)
	return dx*dx + dy*dy
}

// neighbors8 returns the 8-connected cylindrical neighbor coordinates of
// (x, y), each already wrapped/clamped.
func neighbors8(x, y, w, h int) [8][2]int {
	var out [8][2]int
	i := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out[i] = [2]int{wrapX(x+dx, w), clampY(y+dy, h)}
			i++
		}
	}
	return out
}

// neighbors4 returns the cardinal (N/S/E/W) cylindrical neighbor
// coordinates of (x, y).
func neighbors4(x, y, w, h int) [4][2]int {
	return [4][2]int{
		{wrapX(x+1, w), y},
		{wrapX(x-1, w), y},
		{x, clampY(y-1, h)},
		{x, clampY(y+1, h)},
	}
}
