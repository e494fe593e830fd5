package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/railbird/pokerledger/internal/domain"
	"github.com/railbird/pokerledger/internal/ledger"
)

// SessionService handles session writes. Reads go straight to the
// repositories; every write runs in its own transaction.
type SessionService struct {
	pool   *pgxpool.Pool
	engine *ledger.Engine
}

// NewSessionService creates a new SessionService.
func NewSessionService(pool *pgxpool.Pool, engine *ledger.Engine) *SessionService {
	return &SessionService{pool: pool, engine: engine}
}

// CreateSessionInput holds the create-session request fields. Amounts
// are integer cents.
type CreateSessionInput struct {
	OwnerID     uuid.UUID   `json:"owner_id"`
	SessionDate domain.Date `json:"session_date"`
	BuyIn       int64       `json:"buy_in"`
	Winnings    int64       `json:"winnings"`
}

// UpdateSessionInput is the full replacement payload. OwnerID may be
// echoed by clients that round-trip the session record; a value that
// differs from the path owner is rejected rather than re-owning the
// session.
type UpdateSessionInput struct {
	OwnerID     *uuid.UUID  `json:"owner_id,omitempty"`
	SessionDate domain.Date `json:"session_date"`
	BuyIn       int64       `json:"buy_in"`
	Winnings    int64       `json:"winnings"`
}

// CreateSession records a session for an existing player.
func (s *SessionService) CreateSession(ctx context.Context, input CreateSessionInput) (*domain.Session, error) {
	if err := validateSessionFields(input.SessionDate, input.BuyIn); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	session, err := s.engine.RecordSession(ctx, tx, ledger.RecordSessionParams{
		OwnerID:     input.OwnerID,
		SessionDate: input.SessionDate,
		BuyIn:       input.BuyIn,
		Winnings:    input.Winnings,
	})
	if err != nil {
		if _, ok := err.(*domain.AppError); ok {
			return nil, err
		}
		return nil, domain.ErrInternal("create session", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}
	return session, nil
}

// UpdateSession replaces the mutable fields of an owned session.
func (s *SessionService) UpdateSession(ctx context.Context, ownerID, sessionID uuid.UUID, input UpdateSessionInput) (*domain.Session, error) {
	if input.OwnerID != nil && *input.OwnerID != ownerID {
		return nil, domain.ErrValidation("session ownership cannot be reassigned")
	}
	if err := validateSessionFields(input.SessionDate, input.BuyIn); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	session, err := s.engine.ReviseSession(ctx, tx, ownerID, sessionID, domain.SessionUpdate{
		SessionDate: input.SessionDate,
		BuyIn:       input.BuyIn,
		Winnings:    input.Winnings,
	})
	if err != nil {
		if _, ok := err.(*domain.AppError); ok {
			return nil, err
		}
		return nil, domain.ErrInternal("update session", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}
	return session, nil
}

// DeleteSession removes an owned session permanently.
func (s *SessionService) DeleteSession(ctx context.Context, ownerID, sessionID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.engine.RemoveSession(ctx, tx, ownerID, sessionID); err != nil {
		if _, ok := err.(*domain.AppError); ok {
			return err
		}
		return domain.ErrInternal("delete session", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}
	return nil
}

func validateSessionFields(sessionDate domain.Date, buyIn int64) error {
	if sessionDate.IsZero() {
		return domain.ErrValidation("session_date is required")
	}
	if err := domain.ValidateBuyIn(buyIn); err != nil {
		return domain.ErrValidation(err.Error())
	}
	return nil
}
