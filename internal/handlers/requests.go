package handlers

// TournamentCreateRequest represents a request to start a tournament
type TournamentCreateRequest struct {
	Name            string `json:"name"`
	RoundsTotal     int    `json:"rounds_total"`
	DurationMinutes int    `json:"duration_minutes"`
}

// QuestionCreateRequest represents a request to add a trivia question
// to the bank
type QuestionCreateRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}
