// Package sources supplies trivia questions for rounds to pose.
package sources

import (
	"context"

	"github.com/bluetrivia/bluetrivia/internal/matcher"
	"github.com/bluetrivia/bluetrivia/internal/models"
)

// Source produces questions for the game to post. Implementations draw
// from an external catalog or a local bank; the game does not care
// which.
type Source interface {
	// Name identifies the source in round records and logs
	Name() string
	// Draw produces one question. Returns an ErrExhausted application
	// error when the source has nothing to offer and an ErrUnavailable
	// one when a collaborator failed.
	Draw(ctx context.Context) (*models.Question, error)
	// EvaluateAnswer scores a guess against the correct answer on a
	// 0-100 scale. Most sources use fuzzy matching; a source may
	// tighten this, e.g. to exact match only.
	EvaluateAnswer(guess, answer string) int
	// RequiresImageProcessing reports whether drawn media needs the
	// image-preparation pass before posting
	RequiresImageProcessing() bool
	// MaxMediaItems is the most images a question from this source may
	// attach to a post
	MaxMediaItems() int
}

// fuzzyEvaluator provides the default fuzzy scoring shared by sources
type fuzzyEvaluator struct{}

func (fuzzyEvaluator) EvaluateAnswer(guess, answer string) int {
	return matcher.Score(answer, guess)
}
