package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/railbird/pokerledger/internal/domain"
	"github.com/railbird/pokerledger/internal/ledger"
)

// PlayerService handles player registration.
type PlayerService struct {
	pool   *pgxpool.Pool
	engine *ledger.Engine
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(pool *pgxpool.Pool, engine *ledger.Engine) *PlayerService {
	return &PlayerService{pool: pool, engine: engine}
}

// CreatePlayerInput holds the create-player request fields.
type CreatePlayerInput struct {
	Username string `json:"username"`
}

// CreatePlayer registers a new player within a single transaction.
// A duplicate username surfaces as CONFLICT; the existing player is
// untouched.
func (s *PlayerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*domain.Player, error) {
	if err := domain.ValidateUsername(input.Username); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	player, err := s.engine.CreatePlayer(ctx, tx, input.Username)
	if err != nil {
		if _, ok := err.(*domain.AppError); ok {
			return nil, err
		}
		return nil, domain.ErrInternal("create player", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}
	return player, nil
}
