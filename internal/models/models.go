package models

import "time"

// RoundState is the lifecycle stage of a round.
type RoundState int

const (
	StateInitial RoundState = iota
	StateCollecting
	StateScoring
	StateResults
	StateSkipped
)

// String returns the state name used in logs and the admin API
func (s RoundState) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateCollecting:
		return "collecting"
	case StateScoring:
		return "scoring"
	case StateResults:
		return "results"
	case StateSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Terminal reports whether a round in this state is finished.
// Anything non-terminal found at startup is leftover from a crash
// and gets discarded by the recovery sweep.
func (s RoundState) Terminal() bool {
	return s == StateResults || s == StateSkipped
}

// MediaItem is a single piece of media attached to a question
type MediaItem struct {
	Content  []byte `json:"-"`
	MimeType string `json:"mime_type"`
	AltText  string `json:"alt_text,omitempty"`
}

// Question is one trivia question drawn from a source.
// Immutable once drawn; owned by the active round until it ends.
type Question struct {
	Text       string            `json:"text"`
	Answer     string            `json:"answer"`
	Media      []MediaItem       `json:"media,omitempty"`
	Category   string            `json:"category,omitempty"`
	SourceInfo map[string]string `json:"source_info,omitempty"`
}

// PostRefs holds the social post URIs created during a round
type PostRefs struct {
	Round   string `json:"round_uri"`
	End     string `json:"end_uri,omitempty"`
	Results string `json:"results_uri,omitempty"`
}

// Round represents one question-post-collect-score-report cycle
type Round struct {
	ID           int64      `json:"id"`
	Num          int        `json:"num"`
	State        RoundState `json:"state"`
	Answer       string     `json:"answer"`
	Source       string     `json:"source"`
	TournamentID *int64     `json:"tournament_id,omitempty"`
	Percent      *int       `json:"percent,omitempty"`
	Attempts     *int       `json:"attempts,omitempty"`
	Posts        PostRefs   `json:"posts"`
	CreatedAt    time.Time  `json:"created_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

// Response is a single scored reply to a round. Position is 1-based
// arrival order among all replies to that round, dense with no gaps.
type Response struct {
	ID         int64     `json:"id"`
	RoundID    int64     `json:"round_id"`
	Handle     string    `json:"handle"`
	Text       string    `json:"text"`
	IsCorrect  bool      `json:"is_correct"`
	Score      int       `json:"score"`
	Position   int       `json:"position"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Player is the lazily-created per-handle aggregate across all rounds
type Player struct {
	Handle       string    `json:"handle"`
	DisplayName  string    `json:"display_name,omitempty"`
	TotalPoints  int       `json:"total_points"`
	CorrectCount int       `json:"correct_count"`
	TotalCount   int       `json:"total_count"`
	FirstSeenAt  time.Time `json:"first_seen_at"`
}

// Tournament is a time-boxed competition spanning multiple rounds
type Tournament struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	StartedAt       time.Time `json:"started_at"`
	EndsAt          time.Time `json:"ends_at"`
	IsActive        bool      `json:"is_active"`
	RoundsTotal     int       `json:"rounds_total"`
	RoundsCompleted int       `json:"rounds_completed"`
}

// TournamentStanding is one player's running totals within a tournament
type TournamentStanding struct {
	TournamentID int64  `json:"tournament_id"`
	Handle       string `json:"handle"`
	Points       int    `json:"points"`
	CorrectCount int    `json:"correct_count"`
	TotalCount   int    `json:"total_count"`
}

// TriviaQuestion is a row in the static question bank
type TriviaQuestion struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
