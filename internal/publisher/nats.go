// Package publisher emits pipeline run events.
package publisher

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RunCompletedEvent summarizes one finished pipeline run.
type RunCompletedEvent struct {
	RunID       uuid.UUID `json:"run_id"`
	Loaded      int       `json:"loaded"`
	Duplicates  int       `json:"duplicates"`
	Groups      int       `json:"groups"`
	StoreErrors int       `json:"store_errors"`
	CompletedAt time.Time `json:"completed_at"`
}

// JetStreamPublisher publishes run events over NATS JetStream.
type JetStreamPublisher struct {
	client Publisher
}

// Publisher is the subset of the nats client the publisher needs.
type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
}

// NewJetStreamPublisher creates a run-event publisher.
func NewJetStreamPublisher(client Publisher) *JetStreamPublisher {
	return &JetStreamPublisher{client: client}
}

// PublishRunCompleted publishes a run summary on pipeline.runs.
func (p *JetStreamPublisher) PublishRunCompleted(ctx context.Context, event RunCompletedEvent) error {
	return p.client.Publish(ctx, "pipeline.runs", event)
}
