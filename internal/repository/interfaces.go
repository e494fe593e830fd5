package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/railbird/pokerledger/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PlayerRepository provides access to the players table.
type PlayerRepository interface {
	// Create inserts a new player. A unique-violation on username is
	// returned as domain.ErrConflict.
	Create(ctx context.Context, db DBTX, player *domain.Player) error

	// FindByID returns a player by ID, or nil if absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Player, error)

	// FindByUsername returns a player by exact username, or nil if absent.
	FindByUsername(ctx context.Context, db DBTX, username string) (*domain.Player, error)
}

// SessionRepository provides access to the sessions table. Every scoped
// operation matches on both session ID and owner ID in one statement, so
// absence and ownership mismatch are indistinguishable.
type SessionRepository interface {
	// Insert creates a new session row.
	Insert(ctx context.Context, db DBTX, session *domain.Session) error

	// FindByOwner returns the session only if it belongs to ownerID,
	// or nil otherwise.
	FindByOwner(ctx context.Context, db DBTX, ownerID, sessionID uuid.UUID) (*domain.Session, error)

	// UpdateByOwner replaces the mutable fields of an owned session and
	// returns the updated row, or nil if no row matched.
	UpdateByOwner(ctx context.Context, db DBTX, ownerID, sessionID uuid.UUID, update domain.SessionUpdate) (*domain.Session, error)

	// DeleteByOwner removes an owned session. Returns false if no row matched.
	DeleteByOwner(ctx context.Context, db DBTX, ownerID, sessionID uuid.UUID) (bool, error)

	// ListByOwner returns owned sessions within the filter's inclusive
	// date bounds, in insertion order, offset/limited by Skip/Limit.
	ListByOwner(ctx context.Context, db DBTX, ownerID uuid.UUID, filter domain.SessionFilter) ([]domain.Session, error)

	// SumProfitByOwner returns SUM(winnings - buy_in) over all owned
	// sessions, 0 if there are none.
	SumProfitByOwner(ctx context.Context, db DBTX, ownerID uuid.UUID) (int64, error)
}

// OutboxRow is an event_outbox row with its poller sequence ID.
type OutboxRow struct {
	SeqID int64
	domain.OutboxDraft
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the
	// mutation it describes).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events in sequence order.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]OutboxRow, error)

	// MarkPublished stamps events as published.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}
