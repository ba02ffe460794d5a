package mock

import (
	"context"
	"time"

	"github.com/bluetrivia/bluetrivia/internal/models"
	"github.com/bluetrivia/bluetrivia/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for
// testing. This provides a flexible way to test error paths without
// complex database manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.SaveRoundOutcomeError = errors.New("database error")
//	engine := game.New(..., mockRepo, ...)
type Repository struct {
	repository.FullRepository

	// ===== Round Errors =====
	CreateRoundError        error
	GetRoundError           error
	LastRoundError          error
	LastCompletedNumError   error
	ListRoundsError         error
	UpdateRoundStateError   error
	UpdateRoundPercentError error
	UpdateRoundPostsError   error
	DeleteRoundError        error
	SaveRoundOutcomeError   error

	// ===== Response Errors =====
	CreateResponseError    error
	ResponsesByRoundError  error
	TopCorrectByRoundError error

	// ===== Player Errors =====
	UpsertPlayerError error
	GetPlayerError    error
	ListPlayersError  error

	// ===== Tournament Errors =====
	CreateTournamentError         error
	ActiveTournamentError         error
	AddPlayerPointsError          error
	IncrementRoundsCompletedError error
	TournamentLeaderboardError    error

	// ===== Trivia Question Errors =====
	CreateTriviaQuestionError error
	RandomTriviaQuestionError error
	CountTriviaQuestionsError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

// ===== Round Methods =====

func (m *Repository) CreateRound(ctx context.Context, round repository.NewRound) (int64, error) {
	if m.CreateRoundError != nil {
		return 0, m.CreateRoundError
	}
	return m.FullRepository.CreateRound(ctx, round)
}

func (m *Repository) GetRound(ctx context.Context, id int64) (*models.Round, error) {
	if m.GetRoundError != nil {
		return nil, m.GetRoundError
	}
	return m.FullRepository.GetRound(ctx, id)
}

func (m *Repository) LastRound(ctx context.Context) (*models.Round, error) {
	if m.LastRoundError != nil {
		return nil, m.LastRoundError
	}
	return m.FullRepository.LastRound(ctx)
}

func (m *Repository) LastCompletedNum(ctx context.Context) (int, error) {
	if m.LastCompletedNumError != nil {
		return 0, m.LastCompletedNumError
	}
	return m.FullRepository.LastCompletedNum(ctx)
}

func (m *Repository) ListRounds(ctx context.Context, limit int) ([]models.Round, error) {
	if m.ListRoundsError != nil {
		return nil, m.ListRoundsError
	}
	return m.FullRepository.ListRounds(ctx, limit)
}

func (m *Repository) UpdateRoundState(ctx context.Context, id int64, state models.RoundState) error {
	if m.UpdateRoundStateError != nil {
		return m.UpdateRoundStateError
	}
	return m.FullRepository.UpdateRoundState(ctx, id, state)
}

func (m *Repository) UpdateRoundPercent(ctx context.Context, id int64, percent int) error {
	if m.UpdateRoundPercentError != nil {
		return m.UpdateRoundPercentError
	}
	return m.FullRepository.UpdateRoundPercent(ctx, id, percent)
}

func (m *Repository) UpdateRoundPosts(ctx context.Context, id int64, posts models.PostRefs) error {
	if m.UpdateRoundPostsError != nil {
		return m.UpdateRoundPostsError
	}
	return m.FullRepository.UpdateRoundPosts(ctx, id, posts)
}

func (m *Repository) DeleteRound(ctx context.Context, id int64) error {
	if m.DeleteRoundError != nil {
		return m.DeleteRoundError
	}
	return m.FullRepository.DeleteRound(ctx, id)
}

func (m *Repository) SaveRoundOutcome(ctx context.Context, outcome repository.RoundOutcome) error {
	if m.SaveRoundOutcomeError != nil {
		return m.SaveRoundOutcomeError
	}
	return m.FullRepository.SaveRoundOutcome(ctx, outcome)
}

// ===== Response Methods =====

func (m *Repository) CreateResponse(ctx context.Context, resp models.Response) (int64, error) {
	if m.CreateResponseError != nil {
		return 0, m.CreateResponseError
	}
	return m.FullRepository.CreateResponse(ctx, resp)
}

func (m *Repository) ResponsesByRound(ctx context.Context, roundID int64) ([]models.Response, error) {
	if m.ResponsesByRoundError != nil {
		return nil, m.ResponsesByRoundError
	}
	return m.FullRepository.ResponsesByRound(ctx, roundID)
}

func (m *Repository) TopCorrectByRound(ctx context.Context, roundID int64, limit int) ([]models.Response, error) {
	if m.TopCorrectByRoundError != nil {
		return nil, m.TopCorrectByRoundError
	}
	return m.FullRepository.TopCorrectByRound(ctx, roundID, limit)
}

// ===== Player Methods =====

func (m *Repository) UpsertPlayerOnCorrectness(ctx context.Context, handle string, isCorrect bool) error {
	if m.UpsertPlayerError != nil {
		return m.UpsertPlayerError
	}
	return m.FullRepository.UpsertPlayerOnCorrectness(ctx, handle, isCorrect)
}

func (m *Repository) GetPlayer(ctx context.Context, handle string) (*models.Player, error) {
	if m.GetPlayerError != nil {
		return nil, m.GetPlayerError
	}
	return m.FullRepository.GetPlayer(ctx, handle)
}

func (m *Repository) ListPlayers(ctx context.Context, limit int) ([]models.Player, error) {
	if m.ListPlayersError != nil {
		return nil, m.ListPlayersError
	}
	return m.FullRepository.ListPlayers(ctx, limit)
}

// ===== Tournament Methods =====

func (m *Repository) CreateTournament(ctx context.Context, name string, roundsTotal int, duration time.Duration) (int64, error) {
	if m.CreateTournamentError != nil {
		return 0, m.CreateTournamentError
	}
	return m.FullRepository.CreateTournament(ctx, name, roundsTotal, duration)
}

func (m *Repository) ActiveTournament(ctx context.Context) (*models.Tournament, error) {
	if m.ActiveTournamentError != nil {
		return nil, m.ActiveTournamentError
	}
	return m.FullRepository.ActiveTournament(ctx)
}

func (m *Repository) AddPlayerPoints(ctx context.Context, tournamentID int64, handle string, points int, isCorrect bool) error {
	if m.AddPlayerPointsError != nil {
		return m.AddPlayerPointsError
	}
	return m.FullRepository.AddPlayerPoints(ctx, tournamentID, handle, points, isCorrect)
}

func (m *Repository) IncrementRoundsCompleted(ctx context.Context, tournamentID int64) error {
	if m.IncrementRoundsCompletedError != nil {
		return m.IncrementRoundsCompletedError
	}
	return m.FullRepository.IncrementRoundsCompleted(ctx, tournamentID)
}

func (m *Repository) TournamentLeaderboard(ctx context.Context, tournamentID int64, limit int) ([]models.TournamentStanding, error) {
	if m.TournamentLeaderboardError != nil {
		return nil, m.TournamentLeaderboardError
	}
	return m.FullRepository.TournamentLeaderboard(ctx, tournamentID, limit)
}

// ===== Trivia Question Methods =====

func (m *Repository) CreateTriviaQuestion(ctx context.Context, question, answer, category string) (int64, error) {
	if m.CreateTriviaQuestionError != nil {
		return 0, m.CreateTriviaQuestionError
	}
	return m.FullRepository.CreateTriviaQuestion(ctx, question, answer, category)
}

func (m *Repository) RandomTriviaQuestion(ctx context.Context) (*models.TriviaQuestion, error) {
	if m.RandomTriviaQuestionError != nil {
		return nil, m.RandomTriviaQuestionError
	}
	return m.FullRepository.RandomTriviaQuestion(ctx)
}

func (m *Repository) CountTriviaQuestions(ctx context.Context) (int, error) {
	if m.CountTriviaQuestionsError != nil {
		return 0, m.CountTriviaQuestionsError
	}
	return m.FullRepository.CountTriviaQuestions(ctx)
}
