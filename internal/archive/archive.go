// Package archive stores the full field-array blobs (height, plate_id,
// river_flow, ...) of a completed generation job in MongoDB, keyed by job
// ID — large enough documents that they don't belong in Postgres alongside
// the job's metadata.
package archive

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "map_fields"

// ErrNotFound is returned when no archived fields exist for a job ID.
var ErrNotFound = errors.New("archive: fields not found")

// Fields is one job's full set of generated arrays, serialized for storage.
type Fields struct {
	JobID         uuid.UUID `bson:"job_id"`
	Width         int       `bson:"width"`
	Height        int       `bson:"height"`
	PlateID       []uint16  `bson:"plate_id"`
	HeightField   []float32 `bson:"height_field"`
	Temperature   []float32 `bson:"temperature"`
	Precipitation []float32 `bson:"precipitation"`
	RiverFlow     []float32 `bson:"river_flow"`
}

// Store persists Fields documents in a Mongo collection.
type Store struct {
	collection *mongo.Collection
}

// NewStore wraps a Mongo database handle.
func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(collectionName)}
}

// Put upserts the field arrays for one job.
func (s *Store) Put(ctx context.Context, f Fields) error {
	filter := bson.M{"job_id": f.JobID}
	_, err := s.collection.ReplaceOne(ctx, filter, f, options.Replace().SetUpsert(true))
	return err
}

// Get retrieves the field arrays archived for jobID.
func (s *Store) Get(ctx context.Context, jobID uuid.UUID) (*Fields, error) {
	var f Fields
	err := s.collection.FindOne(ctx, bson.M{"job_id": jobID}).Decode(&f)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// Delete removes the archived fields for jobID, if any.
func (s *Store) Delete(ctx context.Context, jobID uuid.UUID) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"job_id": jobID})
	return err
}
