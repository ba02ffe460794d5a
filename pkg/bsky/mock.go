package bsky

import (
	"context"
	"fmt"
	"sync"

	"github.com/bluetrivia/bluetrivia/internal/models"
)

// RecordedPost is one post captured by the mock client
type RecordedPost struct {
	Text   string
	Media  []models.MediaItem
	Root   *PostRef
	Parent *PostRef
	Ref    PostRef
}

// MockClient is a mock Bluesky client for testing. It records every
// post, like, and retraction so tests can assert on what was published.
type MockClient struct {
	mu sync.Mutex

	handle     string
	replies    map[string][]Reply // post URI -> replies
	posts      []RecordedPost
	likes      []PostRef
	retracted  []PostRef
	nextPostID int

	loginErr   error
	publishErr error
	fetchErr   error
	likeErr    error
	retractErr error
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithHandle sets the account handle
func WithHandle(handle string) MockOption {
	return func(m *MockClient) {
		m.handle = handle
	}
}

// WithReplies sets the replies to return for a given post URI
func WithReplies(postURI string, replies []Reply) MockOption {
	return func(m *MockClient) {
		m.replies[postURI] = replies
	}
}

// WithLoginError sets an error to return from Login
func WithLoginError(err error) MockOption {
	return func(m *MockClient) {
		m.loginErr = err
	}
}

// WithPublishError sets an error to return from Publish and PublishReply
func WithPublishError(err error) MockOption {
	return func(m *MockClient) {
		m.publishErr = err
	}
}

// WithFetchError sets an error to return from FetchReplies
func WithFetchError(err error) MockOption {
	return func(m *MockClient) {
		m.fetchErr = err
	}
}

// WithLikeError sets an error to return from Like
func WithLikeError(err error) MockOption {
	return func(m *MockClient) {
		m.likeErr = err
	}
}

// WithRetractError sets an error to return from Retract
func WithRetractError(err error) MockOption {
	return func(m *MockClient) {
		m.retractErr = err
	}
}

// NewMockClient creates a new mock Bluesky client
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		handle:  "trivia.test.social",
		replies: make(map[string][]Reply),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handle returns the configured account handle
func (m *MockClient) Handle() string {
	return m.handle
}

// Login simulates authentication (always succeeds unless an error is set)
func (m *MockClient) Login(ctx context.Context) error {
	return m.loginErr
}

func (m *MockClient) record(text string, media []models.MediaItem, root, parent *PostRef) (PostRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.publishErr != nil {
		return PostRef{}, m.publishErr
	}

	m.nextPostID++
	ref := PostRef{
		URI: fmt.Sprintf("at://did:plc:mock/app.bsky.feed.post/%d", m.nextPostID),
		CID: fmt.Sprintf("bafymock%d", m.nextPostID),
	}
	m.posts = append(m.posts, RecordedPost{
		Text: text, Media: media, Root: root, Parent: parent, Ref: ref,
	})
	return ref, nil
}

// Publish records a standalone post and returns a synthetic reference
func (m *MockClient) Publish(ctx context.Context, text string, media []models.MediaItem) (PostRef, error) {
	return m.record(text, media, nil, nil)
}

// PublishReply records a reply post and returns a synthetic reference
func (m *MockClient) PublishReply(ctx context.Context, text string, root, parent PostRef, media []models.MediaItem) (PostRef, error) {
	return m.record(text, media, &root, &parent)
}

// FetchReplies returns the replies configured for a post URI
func (m *MockClient) FetchReplies(ctx context.Context, post PostRef) ([]Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.replies[post.URI], nil
}

// SetReplies replaces the replies for a post URI mid-test
func (m *MockClient) SetReplies(postURI string, replies []Reply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies[postURI] = replies
}

// Like records a like
func (m *MockClient) Like(ctx context.Context, post PostRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.likeErr != nil {
		return m.likeErr
	}
	m.likes = append(m.likes, post)
	return nil
}

// Retract records a deletion
func (m *MockClient) Retract(ctx context.Context, post PostRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.retractErr != nil {
		return m.retractErr
	}
	m.retracted = append(m.retracted, post)
	return nil
}

// Posts returns the recorded posts (for testing)
func (m *MockClient) Posts() []RecordedPost {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedPost(nil), m.posts...)
}

// Likes returns the recorded likes (for testing)
func (m *MockClient) Likes() []PostRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PostRef(nil), m.likes...)
}

// Retracted returns the recorded deletions (for testing)
func (m *MockClient) Retracted() []PostRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PostRef(nil), m.retracted...)
}

// Ensure MockClient implements Client
var _ Client = (*MockClient)(nil)
