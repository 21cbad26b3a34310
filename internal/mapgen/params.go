package mapgen

import "worldforge/internal/mgerrors"

// Params is the tuning-parameter bag recognized by generate_base and
// generate_rivers. Defaults match spec.md section 6.
type Params struct {
	NumMacroplates     int     `json:"num_macroplates"`
	NumMicroplates     int     `json:"num_microplates"`
	ContinentalFrac    float64 `json:"continental_fraction"`
	BoundaryNoise      float64 `json:"boundary_noise"`
	BlurSigma          float64 `json:"blur_sigma"`
	MountainScale      float64 `json:"mountain_scale"`
	TrenchScale        float64 `json:"trench_scale"`
	MountainWidth      float64 `json:"mountain_width"`
	CoastAmp           float64 `json:"coast_amp"`
	InteriorAmp        float64 `json:"interior_amp"`
	DetailAmp          float64 `json:"detail_amp"`
	ShelfWidth         float64 `json:"shelf_width"`
	RidgeHeight        float64 `json:"ridge_height"`
	RiftDepth          float64 `json:"rift_depth"`
	RainfallScale      float64 `json:"rainfall_scale"`
	RiverThreshold     float64 `json:"river_threshold"`
}

// DefaultParams returns the documented default tuning values.
func DefaultParams() Params {
	return Params{
		NumMacroplates:  8,
		NumMicroplates:  300,
		ContinentalFrac: 0.46,
		BoundaryNoise:   1.2,
		BlurSigma:       3.0,
		MountainScale:   0.8,
		TrenchScale:     1.0,
		MountainWidth:   6.0,
		CoastAmp:        1.0,
		InteriorAmp:     1.0,
		DetailAmp:       50.0,
		ShelfWidth:      45.0,
		RidgeHeight:     1500.0,
		RiftDepth:       600.0,
		RainfallScale:   1.0,
		RiverThreshold:  0.01,
	}
}

// Validate rejects malformed parameters at entry (spec.md section 7a): the
// core has no recoverable errors, so a bad Params must never reach the
// pipeline.
func (p Params) Validate(w, h int) error {
	if w <= 0 || h <= 0 {
		return mgerrors.NewInvalidInput("grid dimensions must be positive, got %dx%d", w, h)
	}
	if p.NumMacroplates <= 0 {
		return mgerrors.NewInvalidInput("num_macroplates must be positive, got %d", p.NumMacroplates)
	}
	if p.NumMicroplates <= 0 {
		return mgerrors.NewInvalidInput("num_microplates must be positive, got %d", p.NumMicroplates)
	}
	if p.ContinentalFrac < 0 || p.ContinentalFrac > 1 {
		return mgerrors.NewInvalidInput("continental_fraction must be in [0,1], got %v", p.ContinentalFrac)
	}
	if p.BoundaryNoise < 0 {
		return mgerrors.NewInvalidInput("boundary_noise must be non-negative, got %v", p.BoundaryNoise)
	}
	if p.BlurSigma <= 0 {
		return mgerrors.NewInvalidInput("blur_sigma must be positive, got %v", p.BlurSigma)
	}
	if p.MountainWidth <= 0 {
		return mgerrors.NewInvalidInput("mountain_width must be positive, got %v", p.MountainWidth)
	}
	if p.ShelfWidth <= 0 {
		return mgerrors.NewInvalidInput("shelf_width must be positive, got %v", p.ShelfWidth)
	}
	if p.RiverThreshold < 0 || p.RiverThreshold > 1 {
		return mgerrors.NewInvalidInput("river_threshold must be in [0,1], got %v", p.RiverThreshold)
	}
	return nil
}

// scale is the resolution-independence factor applied to pixel-scale
// elevation parameters: scale = W/2048.
func scale(w int) float64 {
	return float64(w) / 2048.0
}
