package mapgen

import (
	"runtime"
	"sync"
)

// parallelRows dispatches one call of fn(y) per row y in [0, h) across a
// fixed pool of worker goroutines that pull row indices from a shared
// channel — a minimal work-stealing-flavored data-parallel pool, adapted
// from the fan-out/WaitGroup pattern used elsewhere in this codebase for
// batch processing. Every row's output must depend only on read-only
// inputs, so the result is byte-identical regardless of how rows are
// interleaved across workers or how many workers run.
func parallelRows(h int, fn func(y int)) {
	workers := runtime.NumCPU()
	if workers > h {
		workers = h
	}
	if workers <= 1 {
		for y := 0; y < h; y++ {
			fn(y)
		}
		return
	}

	rows := make(chan int, h)
	for y := 0; y < h; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for y := range rows {
				fn(y)
			}
		}()
	}
	wg.Wait()
}

// parallelCells is the same dispatch, but in flat cell-index chunks rather
// than whole rows, for work whose natural unit is "a cell" rather than
// "a row". The current stages (JFA sweeps, hydrology upscale) all use
// parallelRows.
func parallelCells(n int, fn func(idx int)) {
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}
