// Package jobstore records the history of generation jobs (the seed/params
// of each run and its outcome) in Postgres, so operators can audit what has
// been generated without re-running the pipeline.
package jobstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"worldforge/internal/mapgen"
)

// Job is one recorded generation run.
type Job struct {
	ID        uuid.UUID       `json:"id"`
	Seed      uint64          `json:"seed"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Params    mapgen.Params   `json:"params"`
	Outcome   string          `json:"outcome"`
	Timings   mapgen.Timings  `json:"timings"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store persists job history to Postgres via pgx.
type Store struct {
	db *pgxpool.Pool
}

// NewStore wraps an existing connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Record inserts one completed (or failed) job. params and timings are
// stored as JSONB columns.
func (s *Store) Record(ctx context.Context, j Job) error {
	paramsJSON, err := json.Marshal(j.Params)
	if err != nil {
		return err
	}
	timingsJSON, err := json.Marshal(j.Timings)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO generation_jobs (id, seed, width, height, params, outcome, timings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.Exec(ctx, query, j.ID, j.Seed, j.Width, j.Height, paramsJSON, j.Outcome, timingsJSON, j.CreatedAt)
	return err
}

// Get fetches one job by id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Job, error) {
	query := `
		SELECT id, seed, width, height, params, outcome, timings, created_at
		FROM generation_jobs
		WHERE id = $1
	`
	var j Job
	var paramsJSON, timingsJSON []byte
	err := s.db.QueryRow(ctx, query, id).Scan(&j.ID, &j.Seed, &j.Width, &j.Height, &paramsJSON, &j.Outcome, &timingsJSON, &j.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(paramsJSON, &j.Params); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(timingsJSON, &j.Timings); err != nil {
		return nil, err
	}
	return &j, nil
}

// Recent returns the most recent n jobs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Job, error) {
	query := `
		SELECT id, seed, width, height, params, outcome, timings, created_at
		FROM generation_jobs
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := s.db.Query(ctx, query, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		var paramsJSON, timingsJSON []byte
		if err := rows.Scan(&j.ID, &j.Seed, &j.Width, &j.Height, &paramsJSON, &j.Outcome, &timingsJSON, &j.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(paramsJSON, &j.Params); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(timingsJSON, &j.Timings); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// PruneOlderThan deletes job records older than cutoff and returns the
// number of rows removed. Used by internal/sweeper.
func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM generation_jobs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
