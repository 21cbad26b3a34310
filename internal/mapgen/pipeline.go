package mapgen

import "time"

// timed runs fn and appends its elapsed wall-clock time to *out as a Timing
// entry with the given stage name, so every invocation site reads the same
// way.
func timed(out *Timings, stage string, fn func()) {
	start := time.Now()
	fn()
	*out = append(*out, Timing{Stage: stage, MS: float64(time.Since(start)) / float64(time.Millisecond)})
}

// GenerateBase runs stages S1 through S9 (plate seeding through
// precipitation) and returns the resulting Map along with per-stage timing.
// Validate is called first: a malformed Params or non-positive dimension is
// a programming error, not a recoverable runtime condition, so it returns
// before any stage runs.
func GenerateBase(seed uint64, w, h int, p Params) (*Map, Timings, error) {
	if err := p.Validate(w, h); err != nil {
		return nil, nil, err
	}

	var timings Timings
	total := time.Now()

	m := newMap(w, h)

	var ps PlateSet
	timed(&timings, "plates", func() {
		plateID, built := buildPlates(w, h, seed, p)
		m.PlateID = plateID
		ps = built
	})
	m.Plates = ps

	timed(&timings, "boundaries", func() {
		kind, major, pa, pb := extractBoundaries(m.PlateID, m.Plates)
		m.BoundaryType = kind
		m.BoundaryMajor = major
		m.BoundaryPA = pa
		m.BoundaryPB = pb
	})

	timed(&timings, "boundary_distance", func() {
		dist, nbx, nby := computeBoundaryDistance(m.BoundaryType)
		m.BoundaryDist = dist
		m.NearBX = nbx
		m.NearBY = nby
	})

	timed(&timings, "elevation", func() {
		synthesizeElevation(m, seed, p)
	})

	timed(&timings, "temperature", func() {
		synthesizeTemperature(m, seed, p)
	})

	timed(&timings, "precipitation", func() {
		synthesizePrecipitation(m, seed, p)
	})

	timings = append(timings, Timing{Stage: "TOTAL", MS: float64(time.Since(total)) / float64(time.Millisecond)})

	return m, timings, nil
}

// GenerateRivers runs S10 against an already-generated Map, mutating its
// Height field in place (valley carving) and returning the river-flow field
// plus the stage's timing. m must have come from GenerateBase with the same
// Params; calling it twice on the same Map re-carves an already-carved
// terrain and is not idempotent.
func GenerateRivers(m *Map, seed uint64, p Params) (*Grid[float32], Timing, error) {
	if err := p.Validate(m.W, m.H); err != nil {
		return nil, Timing{}, err
	}

	start := time.Now()
	flow := generateRivers(m, seed, p)
	m.RiverFlow = flow
	elapsed := float64(time.Since(start)) / float64(time.Millisecond)

	return flow, Timing{Stage: "rivers", MS: elapsed}, nil
}
