package mapgen

import "math"

// gaussianProfile is G(d, sigma) = exp(-d^2 / (2*sigma^2)) from spec.md S7's
// boundary profile table.
func gaussianProfile(d, sigma float64) float64 {
	if sigma <= 0 {
		return 0
	}
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

// boundaryProfile returns (profile_offset, mountain_amp) for one cell at
// distance d from its nearest boundary of the given kind, per spec.md S7's
// boundary profile table. rate is the relative-velocity magnitude between
// the two plates on either side; strength is 1.0 for a major boundary (the
// two sides on different macroplates) and 0.35 for minor.
func boundaryProfile(kind BoundaryKind, selfContinental, otherContinental bool, d, rate, strength, mw, scale, mountainScale, trenchScale, ridgeHeight, riftDepth float64) (offset, mountainAmp float64) {
	ms, str := mountainScale, strength
	cappedRate := math.Min(rate, 1.5)

	switch kind {
	case BoundaryConvergent:
		switch {
		case selfContinental && otherContinental:
			offset = (3500 + 2000*rate) * ms * str * gaussianProfile(d, mw)
			mountainAmp = (400 + 200*rate) * ms * str
		case selfContinental && !otherContinental:
			offset = (3000 + 1800*rate) * ms * str * gaussianProfile(d-30*scale, 0.8*mw)
			mountainAmp = (300 + 150*rate) * ms * str
		case !selfContinental && otherContinental:
			offset = -2500 * cappedRate * trenchScale * str * gaussianProfile(d, 12*scale)
			mountainAmp = 0
		default:
			trench := -2500 * cappedRate * trenchScale * str * gaussianProfile(d, 8*scale)
			arc := 900 * cappedRate * ms * str * gaussianProfile(d-35*scale, 18*scale)
			offset = trench + arc
			mountainAmp = 150 * ms * str
		}
	case BoundaryDivergent:
		if !selfContinental && !otherContinental {
			offset = ridgeHeight * cappedRate * str * gaussianProfile(d, 35*scale)
		} else {
			offset = -riftDepth * cappedRate * str * gaussianProfile(d, 30*scale)
		}
	case BoundaryTransform:
		offset, mountainAmp = 0, 0
	}
	return offset, mountainAmp
}

// velocityDelta returns the Euclidean magnitude of the relative velocity
// between two microplates.
func velocityDelta(a, b Velocity2) float64 {
	dx := a.VX - b.VX
	dy := a.VY - b.VY
	return math.Hypot(dx, dy)
}

// boundaryTangentAt estimates the local tangent direction of the boundary
// passing near (x, y) from the gradient of the boundary distance field: the
// gradient points along the normal (away from the boundary), so the tangent
// is perpendicular to it.
func boundaryTangentAt(dist *Grid[float32], x, y, w, h int) (tx, ty float64) {
	gx := float64(dist.Get(wrapX(x+1, w), y)) - float64(dist.Get(wrapX(x-1, w), y))
	gy := float64(dist.Get(x, clampY(y+1, h))) - float64(dist.Get(x, clampY(y-1, h)))
	n := math.Hypot(gx, gy)
	if n < 1e-9 {
		return 1, 0
	}
	gx, gy = gx/n, gy/n
	return -gy, gx
}

// synthesizeElevation fills Height from plate base elevations, the boundary
// profile table, a domain-warped layered FBM, ridge-chain modulation and a
// continental-shelf chamfer, per spec.md S7.
func synthesizeElevation(m *Map, seed uint64, p Params) {
	w, h := m.W, m.H
	sc := scale(w)
	mw := p.MountainWidth * sc

	profile := NewGrid[float32](w, h)
	mountainAmpGrid := NewGrid[float32](w, h)

	chainNoise := newGradientNoise(stageSeed(seed, saltChainMod))

	parallelRows(h, func(y int) {
		for x := 0; x < w; x++ {
			id := m.PlateID.Get(x, y)
			base := m.Plates.BaseElevation[id]

			nx := int(m.NearBX.Get(x, y))
			ny := int(m.NearBY.Get(x, y))
			var offset, amp float64
			if nx != sentinelU16 && ny != sentinelU16 {
				kind := m.BoundaryType.Get(nx, ny)
				pa := m.BoundaryPA.Get(nx, ny)
				pb := m.BoundaryPB.Get(nx, ny)
				otherID := pb
				if id == pb {
					otherID = pa
				}
				major := m.BoundaryMajor.Get(nx, ny)
				strength := 0.35
				if major == 1 {
					strength = 1.0
				}
				rate := velocityDelta(m.Plates.Velocity[id], m.Plates.Velocity[otherID])
				d := float64(m.BoundaryDist.Get(x, y))
				selfCont := m.Plates.IsContinental[id]
				otherCont := m.Plates.IsContinental[otherID]
				offset, amp = boundaryProfile(kind, selfCont, otherCont, d, rate, strength, mw, sc, p.MountainScale, p.TrenchScale, p.RidgeHeight, p.RiftDepth)

				if (math.Abs(offset) > 1e-6 || amp > 1e-6) && d < 3*mw {
					tx, ty := boundaryTangentAt(m.BoundaryDist, x, y, w, h)
					nxDir, nyDir := -ty, tx
					ddx := float64(eastWestWrapDelta(nx, x, w))
					ddy := float64(y - ny)
					along := (ddx*tx + ddy*ty) / sc
					across := (ddx*nxDir + ddy*nyDir) / sc
					ridged := ridgedFBMDefault(chainNoise, along*6, across*18, 4, 1.0)
					mMod := 0.25 + 0.75*clamp(ridged, 0, 1)
					offset *= mMod
					amp *= mMod
				}
			}

			profile.Set(x, y, float32(base+offset))
			mountainAmpGrid.Set(x, y, float32(amp))
		}
	})

	blurredProfile := gaussianBlur(profile, p.BlurSigma*sc)
	blurredAmp := gaussianBlur(mountainAmpGrid, p.BlurSigma*sc)

	warpNoise := newGradientNoise(stageSeed(seed, saltElevationWarp))
	baseNoise := newGradientNoise(stageSeed(seed, saltElevationBase+1))
	interiorNoise := newGradientNoise(stageSeed(seed, saltElevationBase+2))
	coastLargeNoise := newGradientNoise(stageSeed(seed, saltElevationBase+3))
	coastSmallNoise := newGradientNoise(stageSeed(seed, saltElevationBase+4))
	detailNoise := newGradientNoise(stageSeed(seed, saltElevationBase+5))
	ridgeNoise := newGradientNoise(stageSeed(seed, saltElevationRidge))

	parallelRows(h, func(y int) {
		for x := 0; x < w; x++ {
			id := m.PlateID.Get(x, y)
			u := float64(x) / sc
			v := float64(y) / sc
			d := float64(m.BoundaryDist.Get(x, y))
			isContinental := m.Plates.IsContinental[id]

			// Step 1: domain warp.
			warpX := fbmDefault(warpNoise, u*2, v*2, 4, 1.0) * 0.06
			warpY := fbmDefault(warpNoise, u*2+1000, v*2+1000, 4, 1.0) * 0.06
			uw := u + warpX
			vw := v + warpY

			baseNoiseVal := fbmDefault(baseNoise, uw/300, vw/300, 4, 1.0)
			var elev float64
			baseElev := m.Plates.BaseElevation[id]
			if isContinental {
				elev = (baseElev + baseNoiseVal*500) * smoothstep(math.Min(d/(p.ShelfWidth*sc), 1))
			} else {
				elev = baseElev + baseNoiseVal*200
			}

			// Step 3: interior noise.
			interiorVal := fbmDefault(interiorNoise, uw/150, vw/150, 5, 1.0)
			if isContinental {
				elev += interiorVal * 350 * p.InteriorAmp * smoothstep(math.Min(d/(80*sc), 1))
			} else {
				elev += interiorVal * 150 * p.InteriorAmp
			}

			// Step 4: coastal perturbation, only near the coast.
			if d < 100*sc {
				large := fbmDefault(coastLargeNoise, uw/500, vw/500, 4, 1.0) * 800
				small := fbmDefault(coastSmallNoise, uw/80, vw/80, 4, 1.0) * 300
				blend := smoothstep(1 - d/(100*sc))
				elev += lerp(small, large, blend) * p.CoastAmp
			}

			// Step 5: detail.
			elev += fbmDefault(detailNoise, uw/20, vw/20, 3, 1.0) * p.DetailAmp

			// Step 6: ridge, gated by the blurred mountain_amp output.
			mountainAmp := float64(blurredAmp.Get(x, y))
			if mountainAmp > 1e-6 && d < 120*sc {
				ridge := clamp(ridgedFBMDefault(ridgeNoise, uw/60, vw/60, 4, 1.0), 0, 1)
				falloff := smoothstep(1 - d/(120*sc))
				elev += ridge * mountainAmp * falloff
			}

			elev += float64(blurredProfile.Get(x, y)) - baseElev

			m.Height.Set(x, y, float32(elev))
		}
	})

	chamferContinentalShelf(m, p, sc)
}

// chamferContinentalShelf computes distance-to-land for every ocean cell via
// a two-pass forward/backward chamfer (costs 1 and sqrt(2), east-west
// wrapped) and raises ocean cells within ShelfWidth of the coast to a gently
// sloped shelf rather than leaving a cliff at the land/ocean boundary, per
// spec.md S7.
func chamferContinentalShelf(m *Map, p Params, sc float64) {
	w, h := m.W, m.H
	shelf := p.ShelfWidth * sc
	const sqrt2 = math.Sqrt2
	inf := math.Inf(1)

	dist := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Height.Get(x, y) >= 0 {
				dist[y*w+x] = 0
			} else {
				dist[y*w+x] = inf
			}
		}
	}

	at := func(x, y int) float64 { return dist[clampY(y, h)*w+wrapX(x, w)] }
	relax := func(x, y int, v float64) {
		i := clampY(y, h)*w + wrapX(x, w)
		if v < dist[i] {
			dist[i] = v
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			relax(x, y, at(x-1, y)+1)
			relax(x, y, at(x, y-1)+1)
			relax(x, y, at(x-1, y-1)+sqrt2)
			relax(x, y, at(x+1, y-1)+sqrt2)
		}
	}
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			relax(x, y, at(x+1, y)+1)
			relax(x, y, at(x, y+1)+1)
			relax(x, y, at(x+1, y+1)+sqrt2)
			relax(x, y, at(x-1, y+1)+sqrt2)
		}
	}

	parallelRows(h, func(y int) {
		for x := 0; x < w; x++ {
			e := m.Height.Get(x, y)
			if e >= 0 {
				continue
			}
			coastDist := dist[y*w+x]
			if coastDist >= shelf {
				continue
			}
			raised := -250 * smoothstep(coastDist/shelf)
			if raised > float64(e) {
				m.Height.Set(x, y, float32(raised))
			}
		}
	})
}
