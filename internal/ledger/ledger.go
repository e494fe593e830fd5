// Package ledger implements the write side of the session ledger: each
// command runs inside a caller-owned transaction and pairs its mutation
// with an outbox event, so a failed command leaves no partial state.
package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/railbird/pokerledger/internal/domain"
	"github.com/railbird/pokerledger/internal/repository"
)

// Engine provides the transactional commands over players and sessions.
type Engine struct {
	players  repository.PlayerRepository
	sessions repository.SessionRepository
	outbox   repository.OutboxRepository
}

// NewEngine creates a ledger engine with the given repositories.
func NewEngine(
	players repository.PlayerRepository,
	sessions repository.SessionRepository,
	outbox repository.OutboxRepository,
) *Engine {
	return &Engine{
		players:  players,
		sessions: sessions,
		outbox:   outbox,
	}
}

// RequirePlayer returns the player or a NOT_FOUND domain error.
func (e *Engine) RequirePlayer(ctx context.Context, tx pgx.Tx, playerID uuid.UUID) (*domain.Player, error) {
	player, err := e.players.FindByID(ctx, tx, playerID)
	if err != nil {
		return nil, fmt.Errorf("find player: %w", err)
	}
	if player == nil {
		return nil, domain.ErrNotFound("player", playerID.String())
	}
	return player, nil
}

// CreatePlayer inserts a player and its lifecycle event. Username
// uniqueness resolves at the unique index; a conflicting insert surfaces
// as domain.ErrConflict from the repository.
func (e *Engine) CreatePlayer(ctx context.Context, tx pgx.Tx, username string) (*domain.Player, error) {
	player := &domain.Player{
		ID:       uuid.New(),
		Username: username,
	}
	if err := e.players.Create(ctx, tx, player); err != nil {
		return nil, err
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewPlayerCreatedEvent(player)); err != nil {
		return nil, fmt.Errorf("insert outbox event: %w", err)
	}
	return player, nil
}
