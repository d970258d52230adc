// Package pubsub delivers analysis events to web clients over
// Server-Sent Events.
package pubsub

import (
	"context"
	"encoding/json"
)

// Event is a single published message on a topic.
type Event struct {
	Topic   string          `json:"topic"`   // e.g. "analysis_status", "report"
	Type    string          `json:"type"`    // e.g. "reading", "analyzing", "ready"
	Data    json.RawMessage `json:"data"`    // event payload
	Version int             `json:"version"` // per-topic ordering counter
}

// Subscription receives events for one topic until closed.
type Subscription interface {
	Topic() string
	Events() <-chan Event
	Close() error
}

// Publisher manages subscriptions and event delivery.
type Publisher interface {
	// Subscribe creates a subscription; cancelling ctx closes it.
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic.
	Publish(topic string, eventType string, data interface{}) error

	Close() error
}

// AnalysisStatus describes the state of an analysis run.
type AnalysisStatus struct {
	State   string `json:"state"`   // reading, analyzing, ready, error
	Message string `json:"message"` // human-readable status
}
