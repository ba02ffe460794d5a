package handlers

import "github.com/bluetrivia/bluetrivia/internal/models"

// StatusResponse is the JSON response for the bot status endpoint
type StatusResponse struct {
	Round            *models.Round      `json:"round"`
	ActiveTournament *models.Tournament `json:"active_tournament,omitempty"`
	QuestionBankSize int                `json:"question_bank_size"`
}

// CreatedResponse is the response for create operations
type CreatedResponse struct {
	ID int64 `json:"id"`
}
