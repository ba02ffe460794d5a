package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger only logs HTTP requests when debug logging is enabled
func (h *Handlers) requestLogger(next http.Handler) http.Handler {
	logged := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.GetLevel() <= slog.LevelDebug {
			logged.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// Live status feed
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// Read-only monitoring plus tournament and question-bank management
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.handleStatus)

		r.Get("/rounds", h.handleListRounds)
		r.Get("/rounds/{id}", h.handleGetRound)
		r.Get("/rounds/{id}/responses", h.handleRoundResponses)

		r.Get("/players", h.handleListPlayers)

		r.Get("/tournaments", h.handleListTournaments)
		r.Post("/tournaments", h.handleCreateTournament)
		r.Get("/tournaments/{id}/leaderboard", h.handleTournamentLeaderboard)

		r.Get("/questions", h.handleListQuestions)
		r.Post("/questions", h.handleCreateQuestion)
	})

	return r
}
