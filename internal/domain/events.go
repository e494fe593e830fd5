package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NewPlayerCreatedEvent creates a player lifecycle event.
func NewPlayerCreatedEvent(player *Player) OutboxDraft {
	payload, _ := json.Marshal(map[string]string{
		"player_id": player.ID.String(),
		"username":  player.Username,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregatePlayer,
		AggregateID:   player.ID.String(),
		EventType:     EventPlayerCreated,
		PartitionKey:  player.ID.String(),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewSessionEvent creates a session lifecycle event. Events partition by
// owner so one player's history stays ordered.
func NewSessionEvent(evtType EventType, session *Session) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"session_id":   session.ID.String(),
		"owner_id":     session.OwnerID.String(),
		"session_date": session.SessionDate.String(),
		"buy_in":       session.BuyIn,
		"winnings":     session.Winnings,
		"profit":       session.Profit(),
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateSession,
		AggregateID:   session.ID.String(),
		EventType:     evtType,
		PartitionKey:  session.OwnerID.String(),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}
