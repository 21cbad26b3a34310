package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNilConnectionIsNoOp(t *testing.T) {
	p := NewPublisher(nil)

	if err := p.PublishMapGenerated(MapGenerated{
		JobID:     uuid.New(),
		Seed:      1,
		Width:     64,
		Height:    32,
		Timestamp: time.Unix(0, 0),
	}); err != nil {
		t.Fatalf("expected nil-conn publish to be a no-op, got %v", err)
	}

	if err := p.PublishRiversExtended(RiversExtended{
		JobID:          uuid.New(),
		RiverCellCount: 10,
		Timestamp:      time.Unix(0, 0),
	}); err != nil {
		t.Fatalf("expected nil-conn publish to be a no-op, got %v", err)
	}
}

func TestNilPublisherIsNoOp(t *testing.T) {
	var p *Publisher
	if err := p.PublishMapGenerated(MapGenerated{}); err != nil {
		t.Fatalf("expected nil publisher to be a no-op, got %v", err)
	}
}
