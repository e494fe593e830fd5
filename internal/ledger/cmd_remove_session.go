package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/railbird/pokerledger/internal/domain"
)

// RemoveSession deletes an owned session permanently. The removed row is
// read first so the outbox event can carry its final state; both reads
// and the delete share the caller's tx.
func (e *Engine) RemoveSession(ctx context.Context, tx pgx.Tx, ownerID, sessionID uuid.UUID) error {
	session, err := e.sessions.FindByOwner(ctx, tx, ownerID, sessionID)
	if err != nil {
		return fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return domain.ErrNotFound("session", sessionID.String())
	}

	deleted, err := e.sessions.DeleteByOwner(ctx, tx, ownerID, sessionID)
	if err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	if !deleted {
		return domain.ErrNotFound("session", sessionID.String())
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewSessionEvent(domain.EventSessionRemoved, session)); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}
