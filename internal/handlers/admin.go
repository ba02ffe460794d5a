package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/bluetrivia/bluetrivia/internal/repository"
)

// ==================== Status ====================

func (h *Handlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := StatusResponse{}

	round, err := h.Repo.LastRound(ctx)
	if err != nil && !stderrors.Is(err, repository.ErrNotFound) {
		respondError(w, err)
		return
	}
	status.Round = round

	tournament, err := h.Repo.ActiveTournament(ctx)
	if err != nil && !stderrors.Is(err, repository.ErrNotFound) {
		respondError(w, err)
		return
	}
	status.ActiveTournament = tournament

	count, err := h.Repo.CountTriviaQuestions(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	status.QuestionBankSize = count

	respondOK(w, status)
}

// ==================== Rounds ====================

func (h *Handlers) handleListRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.Repo.ListRounds(r.Context(), limitParam(r, 50))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, rounds)
}

func (h *Handlers) handleGetRound(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	round, err := h.Repo.GetRound(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, round)
}

func (h *Handlers) handleRoundResponses(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	// 404 for unknown rounds rather than an empty list
	if _, err := h.Repo.GetRound(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	responses, err := h.Repo.ResponsesByRound(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, responses)
}

// ==================== Players ====================

func (h *Handlers) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.Repo.ListPlayers(r.Context(), limitParam(r, 50))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, players)
}

// ==================== Tournaments ====================

func (h *Handlers) handleListTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.Repo.ListTournaments(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, tournaments)
}

func (h *Handlers) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var req TournamentCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Name == "" {
		respondError(w, BadRequest("Tournament name is required"))
		return
	}
	if req.DurationMinutes <= 0 {
		respondError(w, BadRequest("Tournament duration must be positive"))
		return
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	id, err := h.Repo.CreateTournament(r.Context(), req.Name, req.RoundsTotal, duration)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, CreatedResponse{ID: id})
}

func (h *Handlers) handleTournamentLeaderboard(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	standings, err := h.Repo.TournamentLeaderboard(r.Context(), id, limitParam(r, 20))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, standings)
}

// ==================== Question Bank ====================

func (h *Handlers) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.Repo.ListTriviaQuestions(r.Context(), limitParam(r, 100))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, questions)
}

func (h *Handlers) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req QuestionCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Question == "" || req.Answer == "" {
		respondError(w, BadRequest("Question and answer are required"))
		return
	}

	id, err := h.Repo.CreateTriviaQuestion(r.Context(), req.Question, req.Answer, req.Category)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, CreatedResponse{ID: id})
}
