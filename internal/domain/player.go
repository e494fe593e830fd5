package domain

import (
	"time"

	"github.com/google/uuid"
)

// Player represents a players row. Total profit is derived by query
// (sessions are never held in memory as an object graph).
type Player struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Session represents a sessions row. Monetary amounts are integer cents
// (numeric(15,0) in Postgres).
type Session struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	SessionDate Date      `json:"session_date"`
	BuyIn       int64     `json:"buy_in"`
	Winnings    int64     `json:"winnings"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Profit is winnings minus buy-in. Derived on every read, never stored.
func (s *Session) Profit() int64 {
	return s.Winnings - s.BuyIn
}

// SessionUpdate is the full replacement payload for a session update.
type SessionUpdate struct {
	SessionDate Date
	BuyIn       int64
	Winnings    int64
}

// SessionFilter bounds a session listing. Date bounds are inclusive and
// independently optional; Skip/Limit apply after date filtering.
type SessionFilter struct {
	StartDate *Date
	EndDate   *Date
	Skip      int
	Limit     int
}
