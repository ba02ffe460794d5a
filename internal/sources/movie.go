package sources

import (
	"context"
	"fmt"

	"github.com/bluetrivia/bluetrivia/internal/errors"
	"github.com/bluetrivia/bluetrivia/internal/logger"
	"github.com/bluetrivia/bluetrivia/internal/models"
	"github.com/bluetrivia/bluetrivia/pkg/tmdb"
)

const (
	// A backdrop round needs enough images to be guessable without
	// giving the title away in any single frame.
	movieBackdropCount = 4

	// Popular titles occasionally ship with too few backdrops; redraw
	// a few times before declaring the source out of material.
	movieDrawAttempts = 3
)

// MovieSource draws a popular movie from TMDB and poses its backdrops
// as the question
type MovieSource struct {
	fuzzyEvaluator
	client tmdb.Client
	log    logger.Logger
}

// NewMovieSource creates a movie source
func NewMovieSource(client tmdb.Client, log logger.Logger) *MovieSource {
	return &MovieSource{
		client: client,
		log:    log.With("source", "movie"),
	}
}

// Name identifies the source in round records and logs
func (s *MovieSource) Name() string {
	return "movie"
}

// RequiresImageProcessing reports that raw backdrops need the
// preparation pass before posting
func (s *MovieSource) RequiresImageProcessing() bool {
	return true
}

// MaxMediaItems is the most backdrops attached to one question
func (s *MovieSource) MaxMediaItems() int {
	return movieBackdropCount
}

// Draw picks a popular movie that has enough backdrops
func (s *MovieSource) Draw(ctx context.Context) (*models.Question, error) {
	var lastErr error
	for attempt := 1; attempt <= movieDrawAttempts; attempt++ {
		movie, err := s.client.RandomPopularMovie(ctx)
		if err != nil {
			return nil, errors.Unavailable("failed to draw a movie", err)
		}

		backdrops, err := s.client.MovieBackdrops(ctx, movie.ID, movieBackdropCount)
		if err != nil {
			return nil, errors.Unavailable("failed to fetch backdrops", err)
		}
		if len(backdrops) < movieBackdropCount {
			s.log.Debug("Not enough backdrops, redrawing",
				"movie", movie.Title, "backdrops", len(backdrops), "attempt", attempt)
			lastErr = fmt.Errorf("movie %q has %d backdrops", movie.Title, len(backdrops))
			continue
		}

		for i := range backdrops {
			backdrops[i].AltText = fmt.Sprintf("Movie backdrop %d of %d", i+1, len(backdrops))
		}

		s.log.Info("Drew movie question", "movie", movie.Title, "backdrops", len(backdrops))

		info := map[string]string{
			"movie_id": fmt.Sprintf("%d", movie.ID),
		}
		if year := movie.Year(); year != "" {
			info["year"] = year
		}

		return &models.Question{
			Text:       "Name this movie from the scenes below!",
			Answer:     movie.Title,
			Media:      backdrops,
			Category:   "Movies",
			SourceInfo: info,
		}, nil
	}

	// Every draw succeeded but no title had enough backdrops. That is
	// the source running out of material, not a collaborator fault, so
	// the game may fall through to another source.
	return nil, errors.Wrap(lastErr, errors.ErrExhausted, "no movie with enough backdrops found")
}

// Ensure MovieSource implements Source
var _ Source = (*MovieSource)(nil)
