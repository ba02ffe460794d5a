package repository

import (
	"context"
	"time"

	"github.com/bluetrivia/bluetrivia/internal/models"
)

// NewRound carries the fields needed to persist a freshly started round
type NewRound struct {
	Num          int
	State        models.RoundState
	Answer       string
	Source       string
	RoundPostURI string
	TournamentID *int64
}

// RoundOutcome is the full result of scoring one round. It is applied
// in a single transaction: either every response, player aggregate,
// tournament standing, and the round's terminal state become visible
// together, or none of them do.
type RoundOutcome struct {
	RoundID        int64
	State          models.RoundState // StateResults or StateSkipped
	Percent        int
	Attempts       int
	EndedAt        time.Time
	ResultsPostURI string
	Responses      []models.Response
	TournamentID   *int64
	// Bonuses maps handle to tournament placement bonus points,
	// keyed by position among correct responses only
	Bonuses map[string]int
}

// RoundRepository defines round data operations
type RoundRepository interface {
	CreateRound(ctx context.Context, round NewRound) (int64, error)
	GetRound(ctx context.Context, id int64) (*models.Round, error)
	LastRound(ctx context.Context) (*models.Round, error)
	LastCompletedNum(ctx context.Context) (int, error)
	ListRounds(ctx context.Context, limit int) ([]models.Round, error)
	UpdateRoundState(ctx context.Context, id int64, state models.RoundState) error
	UpdateRoundPercent(ctx context.Context, id int64, percent int) error
	UpdateRoundAttempts(ctx context.Context, id int64, attempts int) error
	UpdateRoundEndedAt(ctx context.Context, id int64, endedAt time.Time) error
	UpdateRoundPosts(ctx context.Context, id int64, posts models.PostRefs) error
	DeleteRound(ctx context.Context, id int64) error
	SaveRoundOutcome(ctx context.Context, outcome RoundOutcome) error
}

// ResponseRepository defines player-response data operations
type ResponseRepository interface {
	CreateResponse(ctx context.Context, resp models.Response) (int64, error)
	ResponsesByRound(ctx context.Context, roundID int64) ([]models.Response, error)
	TopCorrectByRound(ctx context.Context, roundID int64, limit int) ([]models.Response, error)
}

// PlayerRepository defines per-handle aggregate operations
type PlayerRepository interface {
	UpsertPlayerOnCorrectness(ctx context.Context, handle string, isCorrect bool) error
	GetPlayer(ctx context.Context, handle string) (*models.Player, error)
	ListPlayers(ctx context.Context, limit int) ([]models.Player, error)
}

// TournamentRepository defines tournament data operations
type TournamentRepository interface {
	CreateTournament(ctx context.Context, name string, roundsTotal int, duration time.Duration) (int64, error)
	ActiveTournament(ctx context.Context) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	AddPlayerPoints(ctx context.Context, tournamentID int64, handle string, points int, isCorrect bool) error
	IncrementRoundsCompleted(ctx context.Context, tournamentID int64) error
	TournamentLeaderboard(ctx context.Context, tournamentID int64, limit int) ([]models.TournamentStanding, error)
}

// TriviaQuestionRepository defines question-bank operations
type TriviaQuestionRepository interface {
	CreateTriviaQuestion(ctx context.Context, question, answer, category string) (int64, error)
	RandomTriviaQuestion(ctx context.Context) (*models.TriviaQuestion, error)
	TriviaMediaForQuestion(ctx context.Context, questionID int64) ([]models.MediaItem, error)
	AddTriviaMedia(ctx context.Context, questionID int64, media models.MediaItem) error
	CountTriviaQuestions(ctx context.Context) (int, error)
	ListTriviaQuestions(ctx context.Context, limit int) ([]models.TriviaQuestion, error)
}

// FullRepository combines all repository interfaces.
// Use this when a component needs access to multiple domains.
type FullRepository interface {
	RoundRepository
	ResponseRepository
	PlayerRepository
	TournamentRepository
	TriviaQuestionRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
