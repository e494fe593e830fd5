package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/railbird/pokerledger/internal/domain"
	"github.com/railbird/pokerledger/internal/repository"
	"github.com/railbird/pokerledger/internal/service"
)

// PlayerHandler handles player endpoints.
type PlayerHandler struct {
	svc      *service.PlayerService
	players  repository.PlayerRepository
	sessions repository.SessionRepository
	db       repository.DBTX
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(svc *service.PlayerService, players repository.PlayerRepository, sessions repository.SessionRepository, db repository.DBTX) *PlayerHandler {
	return &PlayerHandler{svc: svc, players: players, sessions: sessions, db: db}
}

// playerResponse is the shape of a created player.
type playerResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// playerDetailResponse adds the derived total profit.
type playerDetailResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	TotalProfit int64     `json:"total_profit"`
}

// Create handles POST /players.
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreatePlayerInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	player, err := h.svc.CreatePlayer(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, playerResponse{
		ID:       player.ID,
		Username: player.Username,
	})
}

// Get handles GET /players/{playerID} — profile plus total profit,
// recomputed from current sessions on every call.
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		RespondError(w, err)
		return
	}

	player, err := h.players.FindByID(r.Context(), h.db, playerID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find player", err))
		return
	}
	if player == nil {
		RespondError(w, domain.ErrNotFound("player", playerID.String()))
		return
	}

	totalProfit, err := h.sessions.SumProfitByOwner(r.Context(), h.db, playerID)
	if err != nil {
		RespondError(w, domain.ErrInternal("sum profit", err))
		return
	}

	RespondJSON(w, http.StatusOK, playerDetailResponse{
		ID:          player.ID,
		Username:    player.Username,
		TotalProfit: totalProfit,
	})
}

// pathUUID extracts and validates a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrValidation("invalid " + name)
	}
	return id, nil
}
