package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/railbird/pokerledger/internal/domain"
)

// uniqueViolation is the Postgres error code for a unique index conflict.
const uniqueViolation = "23505"

type playerRepo struct{}

// NewPlayerRepository returns a pgx-backed PlayerRepository.
func NewPlayerRepository() PlayerRepository {
	return &playerRepo{}
}

func (r *playerRepo) Create(ctx context.Context, db DBTX, player *domain.Player) error {
	row := db.QueryRow(ctx, `
		INSERT INTO players (id, username)
		VALUES ($1, $2)
		RETURNING created_at`,
		player.ID, player.Username)
	if err := row.Scan(&player.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrConflict(fmt.Sprintf("username %q already taken", player.Username))
		}
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *playerRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Player, error) {
	row := db.QueryRow(ctx, `
		SELECT id, username, created_at
		FROM players WHERE id = $1`, id)
	return scanPlayer(row)
}

func (r *playerRepo) FindByUsername(ctx context.Context, db DBTX, username string) (*domain.Player, error) {
	row := db.QueryRow(ctx, `
		SELECT id, username, created_at
		FROM players WHERE username = $1`, username)
	return scanPlayer(row)
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(&p.ID, &p.Username, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return &p, nil
}
