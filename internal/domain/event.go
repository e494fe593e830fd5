package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all domain event types.
type EventType string

const (
	EventPlayerCreated   EventType = "ledger.player.created"
	EventSessionRecorded EventType = "ledger.session.recorded"
	EventSessionRevised  EventType = "ledger.session.revised"
	EventSessionRemoved  EventType = "ledger.session.removed"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregatePlayer  AggregateType = "player"
	AggregateSession AggregateType = "session"
)

// OutboxDraft is the payload written to the event_outbox table, in the
// same transaction as the mutation it describes.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	PartitionKey  string          `json:"partition_key"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
