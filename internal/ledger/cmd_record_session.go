package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/railbird/pokerledger/internal/domain"
)

// RecordSessionParams holds the fields for a new session.
type RecordSessionParams struct {
	OwnerID     uuid.UUID
	SessionDate domain.Date
	BuyIn       int64
	Winnings    int64
}

// RecordSession creates a session under an existing player.
// Pattern: verify owner → insert → outbox event, all in the caller's tx,
// so the owner cannot vanish between check and insert.
func (e *Engine) RecordSession(ctx context.Context, tx pgx.Tx, params RecordSessionParams) (*domain.Session, error) {
	if _, err := e.RequirePlayer(ctx, tx, params.OwnerID); err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:          uuid.New(),
		OwnerID:     params.OwnerID,
		SessionDate: params.SessionDate,
		BuyIn:       params.BuyIn,
		Winnings:    params.Winnings,
	}
	if err := e.sessions.Insert(ctx, tx, session); err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewSessionEvent(domain.EventSessionRecorded, session)); err != nil {
		return nil, fmt.Errorf("insert outbox event: %w", err)
	}
	return session, nil
}
