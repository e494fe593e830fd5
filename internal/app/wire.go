package app

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/railbird/pokerledger/internal/handler"
	"github.com/railbird/pokerledger/internal/ledger"
	"github.com/railbird/pokerledger/internal/repository"
	"github.com/railbird/pokerledger/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter. The store handle
// is injected here and scoped per request by pgxpool — no module-level
// engine or session factory exists.
type RouterDeps struct {
	Pool   *pgxpool.Pool
	Logger *slog.Logger
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	logger := deps.Logger

	// Repositories
	playerRepo := repository.NewPlayerRepository()
	sessionRepo := repository.NewSessionRepository()
	outboxRepo := repository.NewOutboxRepository()

	// Ledger engine
	ledgerEngine := ledger.NewEngine(playerRepo, sessionRepo, outboxRepo)

	// Services
	playerSvc := service.NewPlayerService(pool, ledgerEngine)
	sessionSvc := service.NewSessionService(pool, ledgerEngine)

	// Handlers
	playerHandler := handler.NewPlayerHandler(playerSvc, playerRepo, sessionRepo, pool)
	sessionHandler := handler.NewSessionHandler(sessionSvc, sessionRepo, pool)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS)
	r.Use(handler.JSONContentType)

	r.Get("/health", handler.HealthHandler(pool))

	r.Post("/players", playerHandler.Create)
	r.Post("/sessions", sessionHandler.Create)

	r.Route("/players/{playerID}", func(r chi.Router) {
		r.Get("/", playerHandler.Get)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.List)
			r.Get("/{sessionID}", sessionHandler.Get)
			r.Put("/{sessionID}", sessionHandler.Update)
			r.Delete("/{sessionID}", sessionHandler.Delete)
		})
	})

	return r
}
