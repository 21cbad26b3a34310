package mapgen

import (
	"container/heap"
	"math"
)

// growthItem is one entry in the plate-growth priority queue.
type growthItem struct {
	x, y     int
	plateIdx int
	cost     float64
	index    int // heap bookkeeping
}

// growthQueue implements heap.Interface, ordered by ascending cost.
type growthQueue []*growthItem

func (q growthQueue) Len() int            { return len(q) }
func (q growthQueue) Less(i, j int) bool  { return q[i].cost < q[j].cost }
func (q growthQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].index = i; q[j].index = j }
func (q *growthQueue) Push(x interface{}) {
	it := x.(*growthItem)
	it.index = len(*q)
	*q = append(*q, it)
}
func (q *growthQueue) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*q = old[:n-1]
	return it
}

// growPlates runs the noise-weighted multi-source Dijkstra described in
// spec.md S3. Claim-on-pop is mandatory: a cell is assigned to a plate only
// when its queue entry is popped, never when it is pushed. Claiming on push
// degrades the result to a straight, noise-free Voronoi tessellation.
func growPlates(w, h int, seeds []seedPoint, seed uint32, boundaryNoise float64) *Grid[uint16] {
	plateID := NewGrid[uint16](w, h)
	claimed := NewGrid[bool](w, h)
	noise := newGradientNoise(seed)

	pq := &growthQueue{}
	heap.Init(pq)

	for i, s := range seeds {
		x, y := int(s.X), int(s.Y)
		heap.Push(pq, &growthItem{x: x, y: y, plateIdx: i, cost: 0})
	}

	for pq.Len() > 0 {
		it := heap.Pop(pq).(*growthItem)
		if claimed.Get(it.x, it.y) {
			continue
		}
		claimed.Set(it.x, it.y, true)
		plateID.Set(it.x, it.y, uint16(it.plateIdx))

		for _, n := range neighbors8(it.x, it.y, w, h) {
			nx, ny := n[0], n[1]
			if claimed.Get(nx, ny) {
				continue
			}
			cardinal := nx == it.x || ny == it.y
			base := 1.0
			if !cardinal {
				base = math.Sqrt2
			}

			u := float64(nx) / float64(w)
			v := float64(ny) / float64(h)
			n4 := fbmDefault(noise, u*float64(w)/8, v*float64(h)/8, 4, 6.0)
			stepCost := base * math.Max(0.05, 1+n4*boundaryNoise)

			heap.Push(pq, &growthItem{x: nx, y: ny, plateIdx: it.plateIdx, cost: it.cost + stepCost})
		}
	}

	return plateID
}

// assignMacroplates assigns each microplate to its nearest macro center
// under noise-perturbed squared distance, per spec.md S4. Each macroplate
// carries its own territory-warping noise field, keyed by macro index.
func assignMacroplates(w, h int, microSeeds, macroSeeds []seedPoint, seed uint32, boundaryNoise float64) []uint16 {
	macroID := make([]uint16, len(microSeeds))

	for i, s := range microSeeds {
		bestJ := 0
		bestD := math.Inf(1)
		for j, m := range macroSeeds {
			baseD := wrappedDistSq(int(m.X), int(m.Y), int(s.X), int(s.Y), w)
			noise := newGradientNoise(stageSeed(uint64(seed), saltMacroAssign+uint64(j)))
			warp := fbmDefault(noise, s.X/64, s.Y/64, 4, 3.0)
			d := baseD * math.Max(0.1, 1+warp*boundaryNoise)
			if d < bestD {
				bestD = d
				bestJ = j
			}
		}
		macroID[i] = uint16(bestJ)
	}

	return macroID
}

// assignContinental marks microplates continental by descending low-frequency
// noise order until the cumulative cell count reaches continentalFrac*total,
// per spec.md S4. Decoupling continentality from macro grouping is what
// produces organic (rather than macro-plate-shaped) coastlines.
func assignContinental(w, h int, microSeeds []seedPoint, cellCounts []int, seed uint32, continentalFrac float64) []bool {
	n := len(microSeeds)
	isContinental := make([]bool, n)

	noise := newGradientNoise(stageSeed(uint64(seed), saltContinental))
	type scored struct {
		idx   int
		value float64
	}
	scores := make([]scored, n)
	total := 0
	for i, s := range microSeeds {
		v := fbm(noise, s.X/64, s.Y/64, 3, 2.5, 2.0, 0.5)
		scores[i] = scored{idx: i, value: v}
		total += cellCounts[i]
	}

	// Sort descending by noise value (stable insertion sort is fine: n is
	// the microplate count, at most a few thousand).
	for i := 1; i < len(scores); i++ {
		j := i
		for j > 0 && scores[j-1].value < scores[j].value {
			scores[j-1], scores[j] = scores[j], scores[j-1]
			j--
		}
	}

	target := continentalFrac * float64(total)
	cumulative := 0
	for _, s := range scores {
		if float64(cumulative) >= target {
			break
		}
		isContinental[s.idx] = true
		cumulative += cellCounts[s.idx]
	}

	return isContinental
}

// assignVelocities gives each macroplate a random tangential-style velocity
// and zeroes net area-weighted momentum (invariant I5), then derives each
// microplate's velocity as its parent macro velocity plus a small
// perturbation, per spec.md S4.
func assignVelocities(macroCounts []int, macroIDs []uint16, seed uint32) (macroVel []Velocity2, microVel []Velocity2) {
	rng := newRNG(stageSeed(uint64(seed), saltVelocity))
	numMacro := len(macroCounts)
	macroVel = make([]Velocity2, numMacro)

	for i := 0; i < numMacro; i++ {
		theta := rng.uniform(0, 2*math.Pi)
		m := rng.uniform(0.3, 1.0)
		macroVel[i] = Velocity2{VX: math.Cos(theta) * m, VY: math.Sin(theta) * m}
	}

	// Subtract the area-weighted mean so net momentum is zero.
	totalCells := 0
	var meanVX, meanVY float64
	for i, c := range macroCounts {
		meanVX += macroVel[i].VX * float64(c)
		meanVY += macroVel[i].VY * float64(c)
		totalCells += c
	}
	if totalCells > 0 {
		meanVX /= float64(totalCells)
		meanVY /= float64(totalCells)
	}
	for i := range macroVel {
		macroVel[i].VX -= meanVX
		macroVel[i].VY -= meanVY
	}

	microVel = make([]Velocity2, len(macroIDs))
	for i, mid := range macroIDs {
		perturbRNG := newRNG(stageSeed(uint64(seed), saltVelocity+uint64(i)+1))
		dx := perturbRNG.uniform(-0.15, 0.15)
		dy := perturbRNG.uniform(-0.15, 0.15)
		microVel[i] = Velocity2{VX: macroVel[mid].VX + dx, VY: macroVel[mid].VY + dy}
	}

	return macroVel, microVel
}

// assignBaseElevations draws a uniform base elevation per microplate:
// continental in [200, 800]m, oceanic in [-4000, -3000]m.
func assignBaseElevations(isContinental []bool, seed uint32) []float64 {
	rng := newRNG(stageSeed(uint64(seed), saltElevationBase))
	out := make([]float64, len(isContinental))
	for i, cont := range isContinental {
		if cont {
			out[i] = rng.uniform(200, 800)
		} else {
			out[i] = rng.uniform(-4000, -3000)
		}
	}
	return out
}

// buildPlates runs S1-S4 end to end, producing the PlateID field and the
// PlateSet metadata consumed by every later stage.
func buildPlates(w, h int, seed uint64, p Params) (*Grid[uint16], PlateSet) {
	macroRNG := newRNG(stageSeed(seed, saltMacroSeed))
	macroSeeds := poissonUniform(macroRNG, w, h, p.NumMacroplates)

	microRNG := newRNG(stageSeed(seed, saltMicroSeed))
	microSeeds := poissonVariable(microRNG, w, h, p.NumMicroplates, macroSeeds)

	growthSeed := stageSeed(seed, saltPlateGrowth)
	plateID := growPlates(w, h, microSeeds, growthSeed, p.BoundaryNoise)

	numMicro := len(microSeeds)
	cellCounts := make([]int, numMicro)
	for _, id := range plateID.Data {
		cellCounts[id]++
	}

	macroAssignSeed := stageSeed(seed, saltMacroAssign)
	macroID := assignMacroplates(w, h, microSeeds, macroSeeds, macroAssignSeed, p.BoundaryNoise)

	continentalSeed := stageSeed(seed, saltContinental)
	isContinental := assignContinental(w, h, microSeeds, cellCounts, continentalSeed, p.ContinentalFrac)

	macroCounts := make([]int, p.NumMacroplates)
	for i, mid := range macroID {
		macroCounts[mid] += cellCounts[i]
	}

	velocitySeed := stageSeed(seed, saltVelocity)
	macroVel, microVel := assignVelocities(macroCounts, macroID, velocitySeed)

	elevSeed := stageSeed(seed, saltElevationBase)
	baseElev := assignBaseElevations(isContinental, elevSeed)

	ps := newPlateSet(p.NumMacroplates, numMicro)
	ps.MacroID = macroID
	ps.IsContinental = isContinental
	ps.Velocity = microVel
	ps.BaseElevation = baseElev
	ps.MacroVelocity = macroVel
	ps.MacroCounts = macroCounts
	for i, s := range microSeeds {
		ps.SeedX[i] = int(s.X)
		ps.SeedY[i] = int(s.Y)
	}

	return plateID, ps
}
