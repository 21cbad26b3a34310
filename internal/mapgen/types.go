package mapgen

import "math"

// BoundaryKind classifies a plate boundary cell.
type BoundaryKind uint8

const (
	BoundaryInterior BoundaryKind = iota
	BoundaryConvergent
	BoundaryDivergent
	BoundaryTransform
)

// sentinelU16 marks an undefined near-boundary coordinate.
const sentinelU16 = math.MaxUint16

// Map holds every co-registered field the pipeline produces, all sized
// W*H. Every field is produced by exactly one stage and is read-only to
// later stages, except Height, which generate_rivers mutates in place
// during valley carving.
type Map struct {
	W, H int

	PlateID        *Grid[uint16]
	BoundaryType   *Grid[BoundaryKind]
	BoundaryMajor  *Grid[uint8]
	BoundaryPA     *Grid[uint16]
	BoundaryPB     *Grid[uint16]
	BoundaryDist   *Grid[float32]
	NearBX         *Grid[uint16]
	NearBY         *Grid[uint16]
	Height         *Grid[float32]
	Temperature    *Grid[float32]
	Precipitation  *Grid[float32]
	RiverFlow      *Grid[float32]

	Plates PlateSet
}

// newMap allocates every field grid at W*H, zero-valued.
func newMap(w, h int) *Map {
	return &Map{
		W: w, H: h,
		PlateID:       NewGrid[uint16](w, h),
		BoundaryType:  NewGrid[BoundaryKind](w, h),
		BoundaryMajor: NewGrid[uint8](w, h),
		BoundaryPA:    NewGrid[uint16](w, h),
		BoundaryPB:    NewGrid[uint16](w, h),
		BoundaryDist:  NewGrid[float32](w, h),
		NearBX:        NewGrid[uint16](w, h),
		NearBY:        NewGrid[uint16](w, h),
		Height:        NewGrid[float32](w, h),
		Temperature:   NewGrid[float32](w, h),
		Precipitation: NewGrid[float32](w, h),
		RiverFlow:     NewGrid[float32](w, h),
	}
}

// Velocity2 is a 2-D tectonic velocity vector.
type Velocity2 struct {
	VX, VY float64
}

// PlateSet holds the per-microplate and per-macroplate derived arrays.
type PlateSet struct {
	NumMacro int
	NumMicro int

	MacroID        []uint16
	IsContinental  []bool
	Velocity       []Velocity2
	BaseElevation  []float64
	SeedX, SeedY   []int

	MacroVelocity []Velocity2
	MacroCounts   []int
}

func newPlateSet(numMacro, numMicro int) PlateSet {
	return PlateSet{
		NumMacro:      numMacro,
		NumMicro:      numMicro,
		MacroID:       make([]uint16, numMicro),
		IsContinental: make([]bool, numMicro),
		Velocity:      make([]Velocity2, numMicro),
		BaseElevation: make([]float64, numMicro),
		SeedX:         make([]int, numMicro),
		SeedY:         make([]int, numMicro),
		MacroVelocity: make([]Velocity2, numMacro),
		MacroCounts:   make([]int, numMacro),
	}
}

// Timing is one named pipeline stage's wall-clock duration.
type Timing struct {
	Stage string  `json:"stage"`
	MS    float64 `json:"ms"`
}

// Timings is an ordered list of stage timings plus a terminal TOTAL entry.
type Timings []Timing
