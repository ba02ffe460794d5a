package tmdb

import (
	"context"

	"github.com/bluetrivia/bluetrivia/internal/models"
)

// MockClient is a mock TMDB client for testing
type MockClient struct {
	movie       *Movie
	backdrops   []models.MediaItem
	movieErr    error
	backdropErr error
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithMovie sets the movie to return
func WithMovie(movie Movie) MockOption {
	return func(m *MockClient) {
		m.movie = &movie
	}
}

// WithBackdrops sets the backdrops to return
func WithBackdrops(backdrops []models.MediaItem) MockOption {
	return func(m *MockClient) {
		m.backdrops = backdrops
	}
}

// WithMovieError sets an error to return from RandomPopularMovie
func WithMovieError(err error) MockOption {
	return func(m *MockClient) {
		m.movieErr = err
	}
}

// WithBackdropError sets an error to return from MovieBackdrops
func WithBackdropError(err error) MockOption {
	return func(m *MockClient) {
		m.backdropErr = err
	}
}

// NewMockClient creates a new mock TMDB client
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		movie:     &Movie{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-15"},
		backdrops: DefaultMockBackdrops(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RandomPopularMovie returns the configured movie or error
func (m *MockClient) RandomPopularMovie(ctx context.Context) (*Movie, error) {
	if m.movieErr != nil {
		return nil, m.movieErr
	}
	return m.movie, nil
}

// MovieBackdrops returns up to limit of the configured backdrops
func (m *MockClient) MovieBackdrops(ctx context.Context, movieID, limit int) ([]models.MediaItem, error) {
	if m.backdropErr != nil {
		return nil, m.backdropErr
	}
	if limit > len(m.backdrops) {
		limit = len(m.backdrops)
	}
	return m.backdrops[:limit], nil
}

// DefaultMockBackdrops returns sample backdrop images for testing
func DefaultMockBackdrops() []models.MediaItem {
	items := make([]models.MediaItem, 4)
	for i := range items {
		items[i] = models.MediaItem{
			Content:  []byte{0xFF, 0xD8, 0xFF, byte(i)},
			MimeType: "image/jpeg",
		}
	}
	return items
}

// Ensure MockClient implements Client
var _ Client = (*MockClient)(nil)
