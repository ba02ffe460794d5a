package sources

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/bluetrivia/bluetrivia/internal/errors"
	"github.com/bluetrivia/bluetrivia/internal/logger"
	"github.com/bluetrivia/bluetrivia/internal/models"
	"github.com/bluetrivia/bluetrivia/internal/repository"
)

// TriviaSource draws questions from the local question bank
type TriviaSource struct {
	fuzzyEvaluator
	repo repository.TriviaQuestionRepository
	log  logger.Logger
}

// RequiresImageProcessing reports that bank media is stored ready to
// post
func (s *TriviaSource) RequiresImageProcessing() bool {
	return false
}

// MaxMediaItems is the most images a bank question may attach
func (s *TriviaSource) MaxMediaItems() int {
	return 4
}

// NewTriviaSource creates a question-bank source
func NewTriviaSource(repo repository.TriviaQuestionRepository, log logger.Logger) *TriviaSource {
	return &TriviaSource{
		repo: repo,
		log:  log.With("source", "trivia"),
	}
}

// Name identifies the source in round records and logs
func (s *TriviaSource) Name() string {
	return "trivia"
}

// Draw picks a random question from the bank along with any media
// attached to it
func (s *TriviaSource) Draw(ctx context.Context) (*models.Question, error) {
	q, err := s.repo.RandomTriviaQuestion(ctx)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.Exhausted("question bank is empty")
		}
		return nil, errors.Internal(err)
	}

	media, err := s.repo.TriviaMediaForQuestion(ctx, q.ID)
	if err != nil {
		return nil, errors.Internal(err)
	}

	s.log.Info("Drew bank question", "question_id", q.ID, "category", q.Category)

	return &models.Question{
		Text:     q.Question,
		Answer:   q.Answer,
		Media:    media,
		Category: q.Category,
		SourceInfo: map[string]string{
			"question_id": fmt.Sprintf("%d", q.ID),
		},
	}, nil
}

// SeedDefaults fills an empty bank with starter questions so the game
// can run before an operator loads their own. A non-empty bank is left
// alone.
func (s *TriviaSource) SeedDefaults(ctx context.Context) error {
	count, err := s.repo.CountTriviaQuestions(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		question, answer, category string
	}{
		{"What is the largest planet in our solar system?", "Jupiter", "Science"},
		{"Which country gifted the Statue of Liberty to the United States?", "France", "History"},
		{"What is the longest river in the world?", "The Nile", "Geography"},
		{"Who painted the Mona Lisa?", "Leonardo da Vinci", "Art"},
		{"What element has the chemical symbol Au?", "Gold", "Science"},
		{"In which city would you find the Colosseum?", "Rome", "Geography"},
		{"Who wrote the play Romeo and Juliet?", "William Shakespeare", "Literature"},
		{"What is the smallest country in the world?", "Vatican City", "Geography"},
		{"How many strings does a standard violin have?", "Four", "Music"},
		{"What gas do plants absorb from the atmosphere?", "Carbon dioxide", "Science"},
	}

	for _, q := range seed {
		if _, err := s.repo.CreateTriviaQuestion(ctx, q.question, q.answer, q.category); err != nil {
			return err
		}
	}

	s.log.Info("Seeded question bank", "count", len(seed))
	return nil
}

// Ensure TriviaSource implements Source
var _ Source = (*TriviaSource)(nil)
