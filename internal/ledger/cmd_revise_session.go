package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/railbird/pokerledger/internal/domain"
)

// ReviseSession replaces a session's date, buy-in and winnings. The
// update statement matches on both session and owner, so a session owned
// by someone else reports NOT_FOUND exactly like a missing one.
func (e *Engine) ReviseSession(ctx context.Context, tx pgx.Tx, ownerID, sessionID uuid.UUID, update domain.SessionUpdate) (*domain.Session, error) {
	session, err := e.sessions.UpdateByOwner(ctx, tx, ownerID, sessionID, update)
	if err != nil {
		return nil, fmt.Errorf("revise session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrNotFound("session", sessionID.String())
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewSessionEvent(domain.EventSessionRevised, session)); err != nil {
		return nil, fmt.Errorf("insert outbox event: %w", err)
	}
	return session, nil
}
