//go:build integration
// +build integration

package archive

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Integration tests for the Mongo-backed field archive.
// Run with: go test -tags=integration -v ./internal/archive/...
// Requires: MongoDB running on localhost:27017, or TEST_MONGODB_URI set.

func setupTestStore(t *testing.T) (*Store, func()) {
	mongoURI := os.Getenv("TEST_MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Skip("MongoDB not available, skipping integration test")
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Skip("MongoDB not available, skipping integration test")
	}

	db := client.Database("test_worldforge_archive")
	store := NewStore(db)

	cleanup := func() {
		ctx := context.Background()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	}
	return store, cleanup
}

func TestStorePutGetDelete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	jobID := uuid.New()

	fields := Fields{
		JobID:       jobID,
		Width:       4,
		Height:      2,
		PlateID:     []uint16{0, 1, 2, 3, 0, 1, 2, 3},
		HeightField: []float32{-1, 2, 3, -4, 5, 6, -7, 8},
	}

	if err := store.Put(ctx, fields); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, jobID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Width != fields.Width || got.Height != fields.Height {
		t.Fatalf("dimensions mismatch: got %dx%d, want %dx%d", got.Width, got.Height, fields.Width, fields.Height)
	}
	if len(got.HeightField) != len(fields.HeightField) {
		t.Fatalf("height field length mismatch: got %d, want %d", len(got.HeightField), len(fields.HeightField))
	}

	if err := store.Delete(ctx, jobID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, jobID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestGetMissingJobReturnsErrNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	if _, err := store.Get(context.Background(), uuid.New()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
