// Package events publishes cross-service notifications about completed
// generation work over NATS. A nil *nats.Conn makes the publisher a no-op,
// so standalone CLI usage never needs a broker.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const (
	SubjectMapGenerated   = "map.generated"
	SubjectRiversExtended = "map.rivers_extended"
)

// Publisher emits map-lifecycle events. Safe for concurrent use.
type Publisher struct {
	nc *nats.Conn
}

// NewPublisher wraps a NATS connection. nc may be nil.
func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

// MapGenerated is published once a base map finishes generating.
type MapGenerated struct {
	JobID     uuid.UUID `json:"jobID"`
	Seed      uint64    `json:"seed"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Timestamp time.Time `json:"timestamp"`
}

// RiversExtended is published once river extraction completes for a job.
type RiversExtended struct {
	JobID          uuid.UUID `json:"jobID"`
	RiverCellCount int       `json:"riverCellCount"`
	Timestamp      time.Time `json:"timestamp"`
}

func (p *Publisher) publish(subject string, payload interface{}) error {
	if p == nil || p.nc == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("events.publish: marshal %s: %w", subject, err)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("failed to publish event")
		return fmt.Errorf("events.publish: %s: %w", subject, err)
	}
	return nil
}

// PublishMapGenerated announces that a base map is ready.
func (p *Publisher) PublishMapGenerated(evt MapGenerated) error {
	return p.publish(SubjectMapGenerated, evt)
}

// PublishRiversExtended announces that river extraction finished for a job.
func (p *Publisher) PublishRiversExtended(evt RiversExtended) error {
	return p.publish(SubjectRiversExtended, evt)
}
