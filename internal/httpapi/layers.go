package httpapi

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"worldforge/internal/mapgen"
)

// LayerNames enumerates the named layers exposed for export, matching the
// order spec.md lists them.
var LayerNames = []string{
	"plates", "boundaries", "distance", "heightmap",
	"map", "temperature", "precipitation", "rivers",
}

var layerNames = LayerNames

func isKnownLayer(name string) bool {
	for _, n := range layerNames {
		if n == name {
			return true
		}
	}
	return false
}

// EncodeLayer rasterizes one named field of m into a PNG: grayscale for most
// layers, elevation-tinted for "heightmap" and "map", and colored by
// boundary kind for "boundaries". Exported for use by cmd/mapgen-cli.
func EncodeLayer(m *mapgen.Map, layer string) ([]byte, error) {
	return encodeLayer(m, layer)
}

func encodeLayer(m *mapgen.Map, layer string) ([]byte, error) {
	var img image.Image
	switch layer {
	case "plates":
		img = grayscaleFromUint16(m.PlateID, uint16(m.Plates.NumMicro))
	case "boundaries":
		img = boundaryImage(m)
	case "distance":
		img = grayscaleFromFloat32(m.BoundaryDist, maxFloat32(m.BoundaryDist.Data))
	case "heightmap", "map":
		img = elevationImage(m.Height)
	case "temperature":
		img = grayscaleFromFloat32Range(m.Temperature, -40, 45)
	case "precipitation":
		img = grayscaleFromFloat32(m.Precipitation, maxFloat32(m.Precipitation.Data))
	case "rivers":
		img = grayscaleFromFloat32(m.RiverFlow, maxFloat32(m.RiverFlow.Data))
	default:
		return nil, fmt.Errorf("httpapi: unknown layer %q", layer)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("httpapi: encode layer %q: %w", layer, err)
	}
	return buf.Bytes(), nil
}

func grayscaleFromUint16(g *mapgen.Grid[uint16], max uint16) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.W, g.H))
	if max == 0 {
		max = 1
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			v := g.Data[y*g.W+x]
			shade := uint8((uint32(v) * 255) / uint32(max))
			img.SetGray(x, y, color.Gray{Y: shade})
		}
	}
	return img
}

func grayscaleFromFloat32(g *mapgen.Grid[float32], max float32) *image.Gray {
	return grayscaleFromFloat32Range(g, 0, max)
}

func grayscaleFromFloat32Range(g *mapgen.Grid[float32], lo, hi float32) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.W, g.H))
	span := hi - lo
	if span == 0 {
		span = 1
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			v := g.Data[y*g.W+x]
			t := (v - lo) / span
			img.SetGray(x, y, color.Gray{Y: clamp8(t)})
		}
	}
	return img
}

func elevationImage(g *mapgen.Grid[float32]) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			h := g.Data[y*g.W+x]
			img.Set(x, y, elevationColor(h))
		}
	}
	return img
}

func elevationColor(h float32) color.RGBA {
	if h < 0 {
		t := clampF(1-(-h)/6000, 0, 1)
		return color.RGBA{R: 10, G: uint8(40 + 60*t), B: uint8(120 + 100*t), A: 255}
	}
	t := clampF(h/8000, 0, 1)
	return color.RGBA{R: uint8(40 + 180*t), G: uint8(120 - 60*t), B: uint8(40 + 40*t), A: 255}
}

func boundaryImage(m *mapgen.Map) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			i := y*m.W + x
			var c color.RGBA
			switch m.BoundaryType.Data[i] {
			case mapgen.BoundaryConvergent:
				c = color.RGBA{R: 220, G: 60, B: 40, A: 255}
			case mapgen.BoundaryDivergent:
				c = color.RGBA{R: 40, G: 120, B: 220, A: 255}
			case mapgen.BoundaryTransform:
				c = color.RGBA{R: 220, G: 200, B: 40, A: 255}
			default:
				c = color.RGBA{R: 20, G: 20, B: 20, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func maxFloat32(data []float32) float32 {
	var max float32
	for _, v := range data {
		if v > max {
			max = v
		}
	}
	return max
}

func clamp8(t float32) uint8 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return uint8(math.Round(float64(t) * 255))
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
