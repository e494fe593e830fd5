package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/railbird/pokerledger/internal/domain"
	"github.com/railbird/pokerledger/internal/infra"
)

type sessionRepo struct{}

// NewSessionRepository returns a pgx-backed SessionRepository.
func NewSessionRepository() SessionRepository {
	return &sessionRepo{}
}

const sessionColumns = `id, player_id, session_date, buy_in, winnings, created_at, updated_at`

func (r *sessionRepo) Insert(ctx context.Context, db DBTX, session *domain.Session) error {
	row := db.QueryRow(ctx, `
		INSERT INTO sessions (id, player_id, session_date, buy_in, winnings)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		session.ID,
		session.OwnerID,
		session.SessionDate.Time,
		infra.Int64ToNumeric(session.BuyIn),
		infra.Int64ToNumeric(session.Winnings),
	)
	if err := row.Scan(&session.CreatedAt, &session.UpdatedAt); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *sessionRepo) FindByOwner(ctx context.Context, db DBTX, ownerID, sessionID uuid.UUID) (*domain.Session, error) {
	row := db.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions WHERE id = $1 AND player_id = $2`, sessionID, ownerID)
	return scanSession(row)
}

// UpdateByOwner replaces the mutable fields in a single scoped statement,
// so the ownership check and the write cannot interleave.
func (r *sessionRepo) UpdateByOwner(ctx context.Context, db DBTX, ownerID, sessionID uuid.UUID, update domain.SessionUpdate) (*domain.Session, error) {
	row := db.QueryRow(ctx, `
		UPDATE sessions
		SET session_date = $1, buy_in = $2, winnings = $3, updated_at = now()
		WHERE id = $4 AND player_id = $5
		RETURNING `+sessionColumns,
		update.SessionDate.Time,
		infra.Int64ToNumeric(update.BuyIn),
		infra.Int64ToNumeric(update.Winnings),
		sessionID, ownerID)
	return scanSession(row)
}

func (r *sessionRepo) DeleteByOwner(ctx context.Context, db DBTX, ownerID, sessionID uuid.UUID) (bool, error) {
	tag, err := db.Exec(ctx, `
		DELETE FROM sessions WHERE id = $1 AND player_id = $2`, sessionID, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *sessionRepo) ListByOwner(ctx context.Context, db DBTX, ownerID uuid.UUID, filter domain.SessionFilter) ([]domain.Session, error) {
	where := "player_id = $1"
	args := []interface{}{ownerID}
	argIdx := 2

	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND session_date >= $%d", argIdx)
		args = append(args, filter.StartDate.Time)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND session_date <= $%d", argIdx)
		args = append(args, filter.EndDate.Time)
		argIdx++
	}

	// Insertion order keeps paging deterministic.
	query := fmt.Sprintf(`
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE %s
		ORDER BY created_at ASC, id ASC
		OFFSET $%d LIMIT $%d`, where, argIdx, argIdx+1)
	args = append(args, filter.Skip, filter.Limit)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

func (r *sessionRepo) SumProfitByOwner(ctx context.Context, db DBTX, ownerID uuid.UUID) (int64, error) {
	row := db.QueryRow(ctx, `
		SELECT COALESCE(SUM(winnings - buy_in), 0)
		FROM sessions WHERE player_id = $1`, ownerID)

	var sumNum pgtype.Numeric
	if err := row.Scan(&sumNum); err != nil {
		return 0, fmt.Errorf("sum profit: %w", err)
	}
	total, err := infra.NumericToInt64(sumNum)
	if err != nil {
		return 0, fmt.Errorf("convert profit sum: %w", err)
	}
	return total, nil
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var s domain.Session
	var sessionDate time.Time
	var buyInNum, winningsNum pgtype.Numeric
	err := row.Scan(&s.ID, &s.OwnerID, &sessionDate, &buyInNum, &winningsNum, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return finishSession(&s, sessionDate, buyInNum, winningsNum)
}

func collectSessions(rows pgx.Rows) ([]domain.Session, error) {
	var sessions []domain.Session
	for rows.Next() {
		var s domain.Session
		var sessionDate time.Time
		var buyInNum, winningsNum pgtype.Numeric
		err := rows.Scan(&s.ID, &s.OwnerID, &sessionDate, &buyInNum, &winningsNum, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		if _, err := finishSession(&s, sessionDate, buyInNum, winningsNum); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func finishSession(s *domain.Session, sessionDate time.Time, buyInNum, winningsNum pgtype.Numeric) (*domain.Session, error) {
	s.SessionDate = domain.DateOf(sessionDate)

	var convErr error
	s.BuyIn, convErr = infra.NumericToInt64(buyInNum)
	if convErr != nil {
		return nil, fmt.Errorf("convert buy_in: %w", convErr)
	}
	s.Winnings, convErr = infra.NumericToInt64(winningsNum)
	if convErr != nil {
		return nil, fmt.Errorf("convert winnings: %w", convErr)
	}
	return s, nil
}
