package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/railbird/pokerledger/internal/domain"
	"github.com/railbird/pokerledger/internal/repository"
	"github.com/railbird/pokerledger/internal/service"
)

// defaultListLimit caps a session listing when no limit is given.
const defaultListLimit = 10

// SessionHandler handles session CRUD and listing endpoints.
type SessionHandler struct {
	svc      *service.SessionService
	sessions repository.SessionRepository
	db       repository.DBTX
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc *service.SessionService, sessions repository.SessionRepository, db repository.DBTX) *SessionHandler {
	return &SessionHandler{svc: svc, sessions: sessions, db: db}
}

// sessionResponse carries a session record with its derived profit.
type sessionResponse struct {
	ID          uuid.UUID   `json:"id"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	SessionDate domain.Date `json:"session_date"`
	BuyIn       int64       `json:"buy_in"`
	Winnings    int64       `json:"winnings"`
	Profit      int64       `json:"profit"`
}

func newSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		SessionDate: s.SessionDate,
		BuyIn:       s.BuyIn,
		Winnings:    s.Winnings,
		Profit:      s.Profit(),
	}
}

// Create handles POST /sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateSessionInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	session, err := h.svc.CreateSession(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, newSessionResponse(session))
}

// List handles GET /players/{playerID}/sessions with optional date range
// and skip/limit pagination.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathUUID(r, "playerID")
	if err != nil {
		RespondError(w, err)
		return
	}

	filter, err := parseListQuery(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	sessions, err := h.sessions.ListByOwner(r.Context(), h.db, ownerID, filter)
	if err != nil {
		RespondError(w, domain.ErrInternal("list sessions", err))
		return
	}

	resp := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		resp = append(resp, newSessionResponse(&sessions[i]))
	}
	RespondJSON(w, http.StatusOK, resp)
}

// Get handles GET /players/{playerID}/sessions/{sessionID}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, sessionID, err := sessionPath(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	session, err := h.sessions.FindByOwner(r.Context(), h.db, ownerID, sessionID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find session", err))
		return
	}
	if session == nil {
		RespondError(w, domain.ErrNotFound("session", sessionID.String()))
		return
	}

	RespondJSON(w, http.StatusOK, newSessionResponse(session))
}

// Update handles PUT /players/{playerID}/sessions/{sessionID} with a
// full replacement body.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, sessionID, err := sessionPath(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input service.UpdateSessionInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	session, err := h.svc.UpdateSession(r.Context(), ownerID, sessionID, input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, newSessionResponse(session))
}

// Delete handles DELETE /players/{playerID}/sessions/{sessionID}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, sessionID, err := sessionPath(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.DeleteSession(r.Context(), ownerID, sessionID); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"detail": "session deleted"})
}

func sessionPath(r *http.Request) (ownerID, sessionID uuid.UUID, err error) {
	ownerID, err = pathUUID(r, "playerID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	sessionID, err = pathUUID(r, "sessionID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return ownerID, sessionID, nil
}

// parseListQuery builds a SessionFilter from query parameters. Malformed
// dates and negative pagination values are rejected before the store.
func parseListQuery(r *http.Request) (domain.SessionFilter, error) {
	filter := domain.SessionFilter{Skip: 0, Limit: defaultListLimit}
	q := r.URL.Query()

	if s := q.Get("start_date"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			return filter, domain.ErrValidation(err.Error())
		}
		filter.StartDate = &d
	}
	if s := q.Get("end_date"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			return filter, domain.ErrValidation(err.Error())
		}
		filter.EndDate = &d
	}
	if s := q.Get("skip"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return filter, domain.ErrValidation("skip must be an integer")
		}
		filter.Skip = n
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return filter, domain.ErrValidation("limit must be an integer")
		}
		filter.Limit = n
	}

	if err := domain.ValidateFilter(filter); err != nil {
		return filter, domain.ErrValidation(err.Error())
	}
	return filter, nil
}
