// Package sweeper runs a background cron job that prunes job history once it
// passes its retention window.
package sweeper

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Pruner removes records older than cutoff, returning how many it removed.
type Pruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper periodically prunes job history older than Retention.
type Sweeper struct {
	cron      *cron.Cron
	pruner    Pruner
	retention time.Duration
}

// New builds a sweeper that prunes records past retention. It does not
// start running until Start is called.
func New(pruner Pruner, retention time.Duration) *Sweeper {
	return &Sweeper{
		cron:      cron.New(),
		pruner:    pruner,
		retention: retention,
	}
}

// Start schedules the eviction job to run on the given cron spec (e.g.
// "@hourly") and starts the scheduler.
func (s *Sweeper) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for any in-flight sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) sweep() {
	cutoff := time.Now().Add(-s.retention)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.pruner.PruneOlderThan(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("sweeper: prune failed")
		return
	}
	if n > 0 {
		log.Info().Int64("rows", n).Time("cutoff", cutoff).Msg("sweeper: pruned stale job records")
	}
}
