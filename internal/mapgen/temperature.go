package mapgen

import "math"

// synthesizeTemperature fills Temperature from a latitude curve (warmest at
// the equator row, coldest at the poles), an elevation lapse rate, and a
// small-amplitude FBM perturbation, per spec.md S8.
func synthesizeTemperature(m *Map, seed uint64, p Params) {
	w, h := m.W, m.H
	sc := scale(w)
	noise := newGradientNoise(stageSeed(seed, saltTemperature))

	const lapseCPerKm = 6.5

	parallelRows(h, func(y int) {
		lat := math.Abs(float64(y)/float64(h)-0.5) * 2
		base := 30 - 60*math.Pow(lat, 1.5)

		for x := 0; x < w; x++ {
			elevKm := float64(m.Height.Get(x, y)) / 1000
			lapse := 0.0
			if elevKm > 0 {
				lapse = -lapseCPerKm * elevKm
			}

			u := float64(x) / sc
			v := float64(y) / sc
			jitter := fbmDefault(noise, u, v, 4, 1.0) * 2

			m.Temperature.Set(x, y, float32(base+lapse+jitter))
		}
	})
}
