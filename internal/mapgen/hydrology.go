package mapgen

import (
	"container/heap"
	"math"
	"sort"
)

// maxHydrologyCells bounds the working-resolution grid the hydrology stage
// operates on; above this the stage silently falls back to scale=1 rather
// than upscaling, per spec.md section 7b's resource-exhaustion handling.
const maxHydrologyCells = 256_000_000

// hydrologyUpscaleFactor picks the largest k in {1..8} such that
// W*H*k^2 <= maxHydrologyCells, per spec.md S10.
func hydrologyUpscaleFactor(w, h int) int {
	for f := 8; f >= 1; f-- {
		if w*h*f*f <= maxHydrologyCells {
			return f
		}
	}
	return 1
}

// bilinearUpscale produces a (w*factor)x(h*factor) grid by bilinear
// interpolation of src, wrapping east-west and clamping north-south.
func bilinearUpscale(src *Grid[float32], factor int) *Grid[float32] {
	if factor <= 1 {
		out := NewGrid[float32](src.W, src.H)
		copy(out.Data, src.Data)
		return out
	}
	w, h := src.W*factor, src.H*factor
	out := NewGrid[float32](w, h)

	parallelRows(h, func(y int) {
		sy := float64(y) / float64(factor)
		y0 := int(math.Floor(sy))
		ty := sy - float64(y0)
		y1 := y0 + 1

		for x := 0; x < w; x++ {
			sx := float64(x) / float64(factor)
			x0 := int(math.Floor(sx))
			tx := sx - float64(x0)
			x1 := x0 + 1

			v00 := float64(src.Get(x0, y0))
			v10 := float64(src.Get(x1, y0))
			v01 := float64(src.Get(x0, y1))
			v11 := float64(src.Get(x1, y1))

			top := lerp(v00, v10, tx)
			bot := lerp(v01, v11, tx)
			out.Set(x, y, float32(lerp(top, bot, ty)))
		}
	})

	return out
}

// nearestUpscale replicates each source cell factor x factor times.
func nearestUpscale(src *Grid[float32], factor int) *Grid[float32] {
	if factor <= 1 {
		out := NewGrid[float32](src.W, src.H)
		copy(out.Data, src.Data)
		return out
	}
	w, h := src.W*factor, src.H*factor
	out := NewGrid[float32](w, h)
	parallelRows(h, func(y int) {
		sy := y / factor
		for x := 0; x < w; x++ {
			out.Set(x, y, src.Get(x/factor, sy))
		}
	})
	return out
}

// maxDownsample reduces a (w*factor)x(h*factor) grid back to wxh by taking
// the max value in each factor x factor block.
func maxDownsample(src *Grid[float32], w, h, factor int) *Grid[float32] {
	if factor <= 1 {
		out := NewGrid[float32](w, h)
		copy(out.Data, src.Data)
		return out
	}
	out := NewGrid[float32](w, h)
	parallelRows(h, func(y int) {
		for x := 0; x < w; x++ {
			best := float32(math.Inf(-1))
			for dy := 0; dy < factor; dy++ {
				for dx := 0; dx < factor; dx++ {
					v := src.Get(x*factor+dx, y*factor+dy)
					if v > best {
						best = v
					}
				}
			}
			out.Set(x, y, best)
		}
	})
	return out
}

// pfItem is one priority-flood frontier entry.
type pfItem struct {
	x, y  int
	elev  float64
	index int
}

type pfQueue []*pfItem

func (q pfQueue) Len() int            { return len(q) }
func (q pfQueue) Less(i, j int) bool  { return q[i].elev < q[j].elev }
func (q pfQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].index = i; q[j].index = j }
func (q *pfQueue) Push(x interface{}) {
	it := x.(*pfItem)
	it.index = len(*q)
	*q = append(*q, it)
}
func (q *pfQueue) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*q = old[:n-1]
	return it
}

// priorityFlood is the Barnes et al. (2014) priority-flood pit-filling
// algorithm, adapted to the cylindrical grid (8-connected, east-west wrap).
// Every ocean cell (elevation < 0) is a fixed open boundary, as are the two
// pole rows; the frontier starts at ocean cells bordering land (and any
// pole-row land cell) and expands inward, raising each newly visited cell by
// at least epsilon above its inflow neighbor so every interior cell ends up
// with a strictly downhill path to an outlet.
func priorityFlood(elev *Grid[float32], epsilon float64) *Grid[float32] {
	w, h := elev.W, elev.H
	filled := NewGrid[float32](w, h)
	copy(filled.Data, elev.Data)

	visited := NewGrid[bool](w, h)
	pq := &pfQueue{}
	heap.Init(pq)

	push := func(x, y int) {
		if visited.Get(x, y) {
			return
		}
		visited.Set(x, y, true)
		heap.Push(pq, &pfItem{x: x, y: y, elev: float64(filled.Get(x, y))})
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if filled.Get(x, y) >= 0 {
				continue
			}
			visited.Set(x, y, true)
			for _, n := range neighbors8(x, y, w, h) {
				if filled.Get(n[0], n[1]) >= 0 {
					push(x, y)
					break
				}
			}
		}
	}
	for x := 0; x < w; x++ {
		for _, y := range []int{0, h - 1} {
			push(x, y)
		}
	}

	for pq.Len() > 0 {
		it := heap.Pop(pq).(*pfItem)
		for _, n := range neighbors8(it.x, it.y, w, h) {
			nx, ny := n[0], n[1]
			if visited.Get(nx, ny) {
				continue
			}
			visited.Set(nx, ny, true)
			ne := math.Max(float64(filled.Get(nx, ny)), it.elev+epsilon)
			filled.Set(nx, ny, float32(ne))
			heap.Push(pq, &pfItem{x: nx, y: ny, elev: ne})
		}
	}

	return filled
}

// computeD8 encodes the steepest-descent neighbor as an index into
// neighbors8's fixed ordering, or -1 if the cell is a local minimum (after
// priority-flood, only at the poles or at ocean cells, which are not filled).
func computeD8(filled *Grid[float32]) []int8 {
	w, h := filled.W, filled.H
	dir := make([]int8, w*h)

	parallelRows(h, func(y int) {
		for x := 0; x < w; x++ {
			e := float64(filled.Get(x, y))
			best := -1
			bestSlope := 0.0
			ns := neighbors8(x, y, w, h)
			for i, n := range ns {
				cardinal := n[0] == x || n[1] == y
				dist := 1.0
				if !cardinal {
					dist = math.Sqrt2
				}
				ne := float64(filled.Get(n[0], n[1]))
				slope := (e - ne) / dist
				if slope > bestSlope {
					bestSlope = slope
					best = i
				}
			}
			dir[y*w+x] = int8(best)
		}
	})

	return dir
}

// flowAccumulation computes, for every cell, its total accumulated flow by
// visiting cells in descending elevation order: since D8 always points to a
// lower neighbor, this order is a valid topological sort of the flow graph,
// so each cell's accumulation is final by the time it's visited. Each cell's
// flow is initialized to its own precipitation and added to its downstream
// neighbor's, per spec.md S10 step 6.
func flowAccumulation(filled *Grid[float32], dir []int8, precip *Grid[float32]) *Grid[float32] {
	w, h := filled.W, filled.H
	n := w * h
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return filled.Data[order[a]] > filled.Data[order[b]]
	})

	acc := make([]float32, n)
	copy(acc, precip.Data)

	for _, idx := range order {
		d := dir[idx]
		if d < 0 {
			continue
		}
		x, y := idx%w, idx/w
		nb := neighbors8(x, y, w, h)[d]
		ni := nb[1]*w + nb[0]
		acc[ni] += acc[idx]
	}

	out := NewGrid[float32](w, h)
	out.Data = acc
	return out
}

// percentile returns the value at rank frac of the samples, via a full sort;
// called once per generation so cost is acceptable.
func percentile(values []float32, frac float64) float32 {
	sorted := make([]float32, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(frac * float64(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// landPercentile is percentile restricted to land cells (base elevation >
// 0), per spec.md S10 step 8's "rank (1-river_threshold)*|land|" wording.
func landPercentile(acc *Grid[float32], m *Map, frac float64) float32 {
	w, h := m.W, m.H
	land := make([]float32, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Height.Get(x, y) > 0 {
				land = append(land, acc.Get(x, y))
			}
		}
	}
	if len(land) == 0 {
		return 0
	}
	return percentile(land, frac)
}

// labelRiverBasins assigns each river cell an 8-connected component label via
// BFS, returning the per-cell label (-1 if not a river cell) and each
// label's initial component size.
func labelRiverBasins(isRiver []bool, w, h int) (labels []int, sizes []int) {
	n := w * h
	labels = make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	next := 0
	queue := make([]int, 0, n)
	for start := 0; start < n; start++ {
		if !isRiver[start] || labels[start] != -1 {
			continue
		}
		label := next
		next++
		labels[start] = label
		size := 1
		queue = queue[:0]
		queue = append(queue, start)
		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			x, y := idx%w, idx/w
			for _, nb := range neighbors8(x, y, w, h) {
				ni := nb[1]*w + nb[0]
				if isRiver[ni] && labels[ni] == -1 {
					labels[ni] = label
					size++
					queue = append(queue, ni)
				}
			}
		}
		sizes = append(sizes, size)
	}
	return labels, sizes
}

// extendRiversUpstream grows each river basin (8-connected component of the
// current river mask) by up to ceil(0.5*initial_size) cells over at most 20
// passes, admitting only neighbors whose raw (pre-threshold) flow is at
// least 0.05*tau, per spec.md S10 step 9.
func extendRiversUpstream(isRiver []bool, rawFlow *Grid[float32], tau float64, w, h int) {
	labels, sizes := labelRiverBasins(isRiver, w, h)
	if len(sizes) == 0 {
		return
	}
	caps := make([]int, len(sizes))
	added := make([]int, len(sizes))
	for i, s := range sizes {
		caps[i] = (s + 1) / 2
	}

	frontier := make([]int, 0, len(isRiver))
	for i, v := range isRiver {
		if v {
			frontier = append(frontier, i)
		}
	}

	gate := float32(0.05 * tau)

	for pass := 0; pass < 20 && len(frontier) > 0; pass++ {
		next := make([]int, 0)
		for _, idx := range frontier {
			label := labels[idx]
			if label < 0 || added[label] >= caps[label] {
				continue
			}
			x, y := idx%w, idx/w
			for _, nb := range neighbors8(x, y, w, h) {
				ni := nb[1]*w + nb[0]
				if isRiver[ni] {
					continue
				}
				if rawFlow.Data[ni] < gate {
					continue
				}
				if added[label] >= caps[label] {
					break
				}
				isRiver[ni] = true
				labels[ni] = label
				added[label]++
				next = append(next, ni)
			}
		}
		frontier = next
	}
}

// carveValleys lowers terrain along river cells by a Gaussian-blurred carve
// depth proportional to flow/tau, restricted to land cells and floored at 1
// meter so carving never submerges land, per spec.md S10 step 10.
func carveValleys(m *Map, isRiver []bool, flow *Grid[float32], tau, sc float64) {
	w, h := m.W, m.H
	carve := NewGrid[float32](w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !isRiver[y*w+x] {
				continue
			}
			f := float64(flow.Get(x, y))
			depth := math.Min(150, 25*math.Log(1+f/tau))
			if depth < 0 {
				depth = 0
			}
			carve.Set(x, y, float32(depth))
		}
	}

	blurred := gaussianBlur(carve, 1.5*sc)

	parallelRows(h, func(y int) {
		for x := 0; x < w; x++ {
			e := float64(m.Height.Get(x, y))
			if e <= 0 {
				continue
			}
			d := float64(blurred.Get(x, y))
			if d <= 0 {
				continue
			}
			newElev := e - d
			if newElev < 1 {
				newElev = 1
			}
			m.Height.Set(x, y, float32(newElev))
		}
	})
}

// generateRivers is S10: it upscales elevation and precipitation, removes
// depressions with priority-flood, derives D8 flow direction and
// accumulation, thresholds by percentile, extends headwaters upstream, then
// carves valleys back into Height at the base resolution. Returns the
// base-resolution river-flow field.
func generateRivers(m *Map, seed uint64, p Params) *Grid[float32] {
	w, h := m.W, m.H
	sc := scale(w)
	factor := hydrologyUpscaleFactor(w, h)

	hiElev := bilinearUpscale(m.Height, factor)
	hiPrecip := nearestUpscale(m.Precipitation, factor)

	// Meander noise: full amplitude on plains, faint in the mountains,
	// applied only to land so the ocean mask never shifts.
	meanderNoise := newGradientNoise(stageSeed(seed, saltMeander))
	hw, hh := hiElev.W, hiElev.H
	parallelRows(hh, func(y int) {
		for x := 0; x < hw; x++ {
			elev := float64(hiElev.Get(x, y))
			if elev <= 0 {
				continue
			}
			amplitude := 15 / (1 + elev/400)
			value := 0.7*fbmDefault(meanderNoise, float64(x)/200, float64(y)/200, 4, 1.0) +
				0.3*fbmDefault(meanderNoise, float64(x)/60, float64(y)/60, 4, 1.0)
			perturbed := elev + amplitude*value
			if perturbed < 0.5 {
				perturbed = 0.5
			}
			hiElev.Set(x, y, float32(perturbed))
		}
	})

	const epsilon = 1e-5
	filled := priorityFlood(hiElev, epsilon)
	dir := computeD8(filled)
	rawAcc := flowAccumulation(filled, dir, hiPrecip)

	acc := maxDownsample(rawAcc, w, h, factor)
	for i := range acc.Data {
		x, y := i%w, i/w
		if m.Height.Get(x, y) < 0 {
			acc.Data[i] = 0
		}
	}

	riverFrac := clamp(1-p.RiverThreshold, 0, 1)
	tau := float64(landPercentile(acc, m, riverFrac))
	if tau <= 0 {
		tau = 1e-6
	}

	isRiver := make([]bool, w*h)
	switch {
	case p.RiverThreshold <= 0:
		// No river cells at all: a zero top-fraction selects nothing.
	case p.RiverThreshold >= 1:
		// Every land cell with positive flow becomes a river.
		for i, v := range acc.Data {
			x, y := i%w, i/w
			if v > 0 && m.Height.Get(x, y) >= 0 {
				isRiver[i] = true
			}
		}
	default:
		for i, v := range acc.Data {
			if float64(v) >= tau {
				isRiver[i] = true
			}
		}
		extendRiversUpstream(isRiver, acc, tau, w, h)
	}

	flow := NewGrid[float32](w, h)
	for i, v := range isRiver {
		if v {
			flow.Data[i] = acc.Data[i]
		}
	}

	carveValleys(m, isRiver, acc, tau, sc)

	return flow
}
