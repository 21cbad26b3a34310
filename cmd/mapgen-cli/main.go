package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"worldforge/internal/httpapi"
	"worldforge/internal/mapgen"
)

func main() {
	seed := flag.Uint64("seed", 1, "generation seed")
	width := flag.Int("width", 2048, "grid width in cells")
	height := flag.Int("height", 1024, "grid height in cells")
	outDir := flag.String("out", "./out", "directory to write layer PNGs to")
	riverThreshold := flag.Float64("river-threshold", 0.01, "river flow-accumulation percentile threshold")
	flag.Parse()

	params := mapgen.DefaultParams()
	params.RiverThreshold = *riverThreshold

	m, timings, err := mapgen.GenerateBase(*seed, *width, *height, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate_base failed: %v\n", err)
		os.Exit(1)
	}
	for _, t := range timings {
		fmt.Printf("%-20s %8.1f ms\n", t.Stage, t.MS)
	}

	_, riverTiming, err := mapgen.GenerateRivers(m, *seed, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate_rivers failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%-20s %8.1f ms\n", riverTiming.Stage, riverTiming.MS)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, layer := range httpapi.LayerNames {
		png, err := httpapi.EncodeLayer(m, layer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode layer %q: %v\n", layer, err)
			os.Exit(1)
		}
		path := filepath.Join(*outDir, layer+".png")
		if err := os.WriteFile(path, png, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

