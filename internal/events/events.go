// Package events publishes audit events for school and student mutations on
// an in-process pub/sub bus.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type EventType string

const (
	SchoolCreated  EventType = "school.created"
	SchoolUpdated  EventType = "school.updated"
	SchoolDeleted  EventType = "school.deleted"
	StudentCreated EventType = "student.created"
	StudentUpdated EventType = "student.updated"
	StudentDeleted EventType = "student.deleted"
	RecordsUpdated EventType = "student.records_updated"
)

// AuditTopic is the single topic all audit events flow through.
const AuditTopic = "school_service.audit"

// Event is one audit record. Payload carries entity identifiers, never the
// record blobs themselves.
type Event struct {
	Type       EventType              `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event with the current time.
func NewEvent(eventType EventType, payload map[string]interface{}) Event {
	return Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

func (e Event) Marshal() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// EventPublisher is the surface services publish through.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
