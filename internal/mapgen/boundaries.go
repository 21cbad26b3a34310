package mapgen

import "math"

// extractBoundaries marks every cell adjacent (4-connected) to a cell on a
// different microplate as a boundary cell, classifies it convergent,
// divergent or transform from the relative velocity of the two plates
// against the boundary normal, and flags it major when the two microplates
// belong to different macroplates, per spec.md S5.
func extractBoundaries(plateID *Grid[uint16], ps PlateSet) (*Grid[BoundaryKind], *Grid[uint8], *Grid[uint16], *Grid[uint16]) {
	w, h := plateID.W, plateID.H
	kind := NewGrid[BoundaryKind](w, h)
	major := NewGrid[uint8](w, h)
	pa := NewGrid[uint16](w, h)
	pb := NewGrid[uint16](w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id := plateID.Get(x, y)
			var otherID uint16
			var normalX, normalY float64
			isBoundary := false

			for _, n := range neighbors4(x, y, w, h) {
				nid := plateID.Get(n[0], n[1])
				if nid == id {
					continue
				}
				isBoundary = true
				otherID = nid
				normalX += float64(n[0] - x)
				normalY += float64(n[1] - y)
			}
			if !isBoundary {
				continue
			}

			nlen := math.Hypot(normalX, normalY)
			if nlen > 0 {
				normalX /= nlen
				normalY /= nlen
			}

			va := ps.Velocity[id]
			vb := ps.Velocity[otherID]
			relVX := vb.VX - va.VX
			relVY := vb.VY - va.VY

			dot := relVX*normalX + relVY*normalY
			cross := relVX*normalY - relVY*normalX

			const transformThreshold = 0.15
			var k BoundaryKind
			switch {
			case math.Abs(dot) < transformThreshold*math.Hypot(relVX, relVY)+1e-9 && math.Abs(cross) > math.Abs(dot):
				k = BoundaryTransform
			case dot < 0:
				k = BoundaryConvergent
			default:
				k = BoundaryDivergent
			}

			kind.Set(x, y, k)
			pa.Set(x, y, id)
			pb.Set(x, y, otherID)
			if ps.MacroID[id] != ps.MacroID[otherID] {
				major.Set(x, y, 1)
			}
		}
	}

	return kind, major, pa, pb
}
