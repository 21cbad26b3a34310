package mapgen

import "testing"

func TestPriorityFloodRemovesPits(t *testing.T) {
	w, h := 16, 16
	elev := NewGrid[float32](w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			elev.Set(x, y, float32(10-y)) // slopes toward the south pole
		}
	}
	// carve an isolated land pit with no downhill path (it stays above sea
	// level, so it is filled rather than treated as an ocean outlet)
	elev.Set(8, 8, 0.5)

	filled := priorityFlood(elev, 1e-5)
	dir := computeD8(filled)

	for y := 1; y < h-1; y++ {
		for x := 0; x < w; x++ {
			if dir[y*w+x] < 0 {
				t.Fatalf("cell (%d,%d) has no downhill direction after priority flood", x, y)
			}
		}
	}
}

func TestFlowAccumulationMonotoneDownstream(t *testing.T) {
	w, h := 16, 16
	elev := NewGrid[float32](w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			elev.Set(x, y, float32(h-y))
		}
	}
	filled := priorityFlood(elev, 1e-5)
	dir := computeD8(filled)
	precip := NewGrid[float32](w, h)
	for i := range precip.Data {
		precip.Data[i] = 1
	}
	acc := flowAccumulation(filled, dir, precip)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			d := dir[idx]
			if d < 0 {
				continue
			}
			nb := neighbors8(x, y, w, h)[d]
			downIdx := nb[1]*w + nb[0]
			if acc.Data[idx] > acc.Data[downIdx] {
				t.Fatalf("flow not monotone: cell %d has %v, downstream %d has %v", idx, acc.Data[idx], downIdx, acc.Data[downIdx])
			}
		}
	}
}

func TestHydrologyUpscaleFactorRespectsCap(t *testing.T) {
	f := hydrologyUpscaleFactor(2048, 1024)
	if f*2048*f*1024 > maxHydrologyCells {
		t.Fatalf("upscale factor %d exceeds the hydrology cell cap", f)
	}
	if f < 1 {
		t.Fatalf("upscale factor must be at least 1, got %d", f)
	}
}

func TestBilinearUpscaleSizeAndBounds(t *testing.T) {
	src := NewGrid[float32](4, 4)
	for i := range src.Data {
		src.Data[i] = float32(i)
	}
	up := bilinearUpscale(src, 2)
	if up.W != 8 || up.H != 8 {
		t.Fatalf("bilinearUpscale size = %dx%d, want 8x8", up.W, up.H)
	}
}

func TestRiversIncidentToOcean(t *testing.T) {
	p := smallParams()
	p.RiverThreshold = 0.3
	m, _, err := GenerateBase(123, 64, 32, p)
	if err != nil {
		t.Fatalf("GenerateBase: %v", err)
	}
	flow, _, err := GenerateRivers(m, 123, p)
	if err != nil {
		t.Fatalf("GenerateRivers: %v", err)
	}

	w, h := m.W, m.H
	visited := make([]bool, w*h)
	var componentHasOceanNeighbor func(x, y int) bool
	componentHasOceanNeighbor = func(startX, startY int) bool {
		stack := [][2]int{{startX, startY}}
		hasOcean := false
		for len(stack) > 0 {
			c := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cx, cy := c[0], c[1]
			idx := cy*w + cx
			if visited[idx] {
				continue
			}
			visited[idx] = true
			for _, n := range neighbors8(cx, cy, w, h) {
				ni := n[1]*w + n[0]
				if m.Height.Get(n[0], n[1]) < 0 {
					hasOcean = true
				}
				if flow.Data[ni] > 0 && !visited[ni] {
					stack = append(stack, n)
				}
			}
		}
		return hasOcean
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if flow.Data[idx] <= 0 || visited[idx] {
				continue
			}
			if !componentHasOceanNeighbor(x, y) {
				t.Fatalf("river component containing (%d,%d) never reaches the ocean", x, y)
			}
		}
	}
}
