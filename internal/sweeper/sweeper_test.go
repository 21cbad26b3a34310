package sweeper

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakePruner struct {
	mu        sync.Mutex
	calls     int
	cutoffs   []time.Time
	returnN   int64
	returnErr error
}

func (f *fakePruner) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.returnN, f.returnErr
}

func (f *fakePruner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestSweepInvokesPrunerWithRetentionCutoff(t *testing.T) {
	pruner := &fakePruner{returnN: 3}
	s := New(pruner, time.Hour)

	before := time.Now()
	s.sweep()
	after := time.Now()

	if pruner.callCount() != 1 {
		t.Fatalf("expected 1 prune call, got %d", pruner.callCount())
	}

	cutoff := pruner.cutoffs[0]
	if cutoff.Before(before.Add(-time.Hour).Add(-time.Second)) || cutoff.After(after.Add(-time.Hour).Add(time.Second)) {
		t.Fatalf("cutoff %v not within expected window around %v", cutoff, before.Add(-time.Hour))
	}
}

func TestStartAndStop(t *testing.T) {
	pruner := &fakePruner{}
	s := New(pruner, time.Hour)

	if err := s.Start("@every 50ms"); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	time.Sleep(120 * time.Millisecond)
	s.Stop()

	if pruner.callCount() == 0 {
		t.Fatal("expected at least one scheduled sweep to have run")
	}
}
