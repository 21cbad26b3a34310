package mapgen

import "math"

// moistureCapacity is the Clausius-Clapeyron-flavored capacity curve of
// spec.md S9: gentler than the physical relation (doubles per 20C, not 10),
// clamped to a plausible range.
func moistureCapacity(tempC float64) float64 {
	return clamp(50*math.Pow(2, tempC/20), 15, 200)
}

// windDX returns the east-west wind direction weight in [-1, 1] for a row at
// the given absolute latitude in degrees, per spec.md S9's three-band model:
// trade easterlies (0-25, dx=-1), westerlies (35-55, dx=+1), polar easterlies
// (65-90, dx=-1), with smoothstep transitions across 25-35 and 55-65. The
// result is fractional only inside a transition band; elsewhere it is exactly
// +-1, so blending two full-row sweeps by this weight reduces to a pure
// single-direction sweep everywhere outside the transitions.
func windDX(latDeg float64) float64 {
	switch {
	case latDeg <= 25:
		return -1
	case latDeg < 35:
		t := smoothstep((latDeg - 25) / 10)
		return lerp(-1, 1, t)
	case latDeg <= 55:
		return 1
	case latDeg < 65:
		t := smoothstep((latDeg - 55) / 10)
		return lerp(1, -1, t)
	default:
		return -1
	}
}

// smoothstepRange applies smoothstep to t rescaled from [lo, hi] to [0, 1].
func smoothstepRange(t, lo, hi float64) float64 {
	return smoothstep((t - lo) / (hi - lo))
}

// sweepRow carries a single moisture parcel around row y in direction dir
// (+1 east, -1 west), recording rainfall per cell after a W/4-step warmup so
// the parcel has equilibrated, per spec.md S9 steps 2-3.
func sweepRow(m *Map, y, dir int) []float64 {
	w := m.W
	rainfall := make([]float64, w)
	warmup := w / 4
	total := warmup + w

	startX := 0
	prevElev := float64(m.Height.Get(wrapX(startX-dir, w), y))
	moisture := 0.0

	for s := 0; s < total; s++ {
		x := wrapX(startX+dir*s, w)
		elev := float64(m.Height.Get(x, y))
		temp := float64(m.Temperature.Get(x, y))
		cap := moistureCapacity(temp)

		if elev < 0 {
			moisture += (cap - moisture) * 0.05
		} else {
			depletion := math.Min(0.5, 0.025+0.0005*math.Max(0, elev-prevElev))
			rain := moisture * depletion
			moisture -= rain
			if s >= warmup {
				rainfall[x] += rain
			}
			moisture += rain * (0.1 + 0.4*smoothstepRange(temp, -10, 30))
			moisture += 0.3 * smoothstepRange(temp, 5, 30)
		}
		moisture = clamp(moisture, 0, 1.5*cap)
		prevElev = elev
	}

	return rainfall
}

// synthesizePrecipitation fills Precipitation with a per-row sequential
// moisture-advection model, per spec.md S9: a moisture parcel is carried
// around each row in a latitude-dependent wind direction, replenished over
// ocean and depleted by orographic lift over land, temperature-gated via a
// Clausius-Clapeyron-style capacity curve. The result is modulated by three
// multiplicative latitude-band Gaussian terms, blurred north-south, then
// normalized so the land-cell mean matches 800mm times RainfallScale.
func synthesizePrecipitation(m *Map, seed uint64, p Params) {
	w, h := m.W, m.H

	raw := NewGrid[float32](w, h)

	parallelRows(h, func(y int) {
		latDeg := math.Abs(float64(y)/float64(h)-0.5) * 2 * 90
		dx := windDX(latDeg)
		wPos := (dx + 1) / 2
		wNeg := 1 - wPos

		var east, west []float64
		if wPos > 0 {
			east = sweepRow(m, y, 1)
		}
		if wNeg > 0 {
			west = sweepRow(m, y, -1)
		}

		itcz := 1 + 0.3*math.Exp(-(latDeg*latDeg)/(2*8*8))
		subtropical := 1 - 0.3*math.Exp(-math.Pow(latDeg-28, 2)/(2*8*8))
		midlatitude := 1 + 0.4*math.Exp(-math.Pow(latDeg-50, 2)/(2*12*12))
		band := itcz * subtropical * midlatitude

		for x := 0; x < w; x++ {
			blended := 0.0
			if east != nil {
				blended += east[x] * wPos
			}
			if west != nil {
				blended += west[x] * wNeg
			}
			raw.Set(x, y, float32(math.Max(0, blended*band)))
		}
	})

	blurred := blurColumns(raw, 4)

	landSum := 0.0
	landCount := 0
	for i := 0; i < w*h; i++ {
		x := i % w
		y := i / w
		if m.Height.Get(x, y) > 0 {
			landSum += float64(blurred.Get(x, y))
			landCount++
		}
	}

	target := 800 * p.RainfallScale
	meanLand := target
	if landCount > 0 && landSum > 0 {
		meanLand = landSum / float64(landCount)
	}
	factor := target / meanLand

	parallelRows(h, func(y int) {
		for x := 0; x < w; x++ {
			v := float64(blurred.Get(x, y)) * factor
			m.Precipitation.Set(x, y, float32(math.Max(0, v)))
		}
	})
}
