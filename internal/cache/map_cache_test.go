package cache

import (
	"testing"

	"worldforge/internal/mapgen"
)

func TestMapCacheStoreLoad(t *testing.T) {
	c := NewMapCache()

	if _, _, _, ok := c.Load(); ok {
		t.Fatalf("expected empty cache to report not-ok")
	}

	m, timings, err := mapgen.GenerateBase(1, 16, 16, mapgen.DefaultParams())
	if err != nil {
		t.Fatalf("GenerateBase: %v", err)
	}

	c.Store(m, 1, mapgen.DefaultParams(), timings)

	got, seed, _, ok := c.Load()
	if !ok {
		t.Fatalf("expected cache hit after Store")
	}
	if got != m {
		t.Fatalf("Load returned a different Map than was stored")
	}
	if seed != 1 {
		t.Fatalf("Load returned seed %d, want 1", seed)
	}

	c.Clear()
	if _, _, _, ok := c.Load(); ok {
		t.Fatalf("expected cache to be empty after Clear")
	}
}
