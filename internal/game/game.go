// Package game drives the trivia round loop: announce a question,
// collect replies, score them, report results.
package game

import (
	"context"
	stderrors "errors"
	"math/rand"
	"time"

	"github.com/bluetrivia/bluetrivia/internal/config"
	"github.com/bluetrivia/bluetrivia/internal/errors"
	"github.com/bluetrivia/bluetrivia/internal/logger"
	"github.com/bluetrivia/bluetrivia/internal/repository"
	"github.com/bluetrivia/bluetrivia/internal/sources"
	"github.com/bluetrivia/bluetrivia/pkg/bsky"
)

// ErrNoSourceConfigured means the engine has no question sources to
// draw from. Fatal at startup.
var ErrNoSourceConfigured = stderrors.New("no question source configured")

// errRoundSkipped signals that the round ended in the skipped state;
// the loop applies the shorter cooldown instead of the full wait
var errRoundSkipped = stderrors.New("round skipped")

// Broadcaster pushes game events to live observers. The websocket hub
// implements it; a nil broadcaster is allowed.
type Broadcaster interface {
	Broadcast(event string, payload any)
}

// Engine owns the round loop. It runs rounds strictly one at a time;
// there is never more than one non-terminal round.
type Engine struct {
	repo         repository.FullRepository
	feed         bsky.Client
	sources      []sources.Source
	cfg          config.GameConfig
	imageQuality int
	waiter       Waiter
	broadcaster  Broadcaster
	log          logger.Logger
	rng          *rand.Rand

	// nextNum is a floor on the next sequence number, raised whenever a
	// round is discarded so its number is never handed out again
	nextNum int
}

// Option configures the engine
type Option func(*Engine)

// WithWaiter overrides how the engine waits out collection windows and
// cooldowns. Used for manual advance and in tests.
func WithWaiter(w Waiter) Option {
	return func(e *Engine) {
		e.waiter = w
	}
}

// WithBroadcaster attaches a live event broadcaster
func WithBroadcaster(b Broadcaster) Option {
	return func(e *Engine) {
		e.broadcaster = b
	}
}

// WithImageQuality sets the JPEG re-encode quality for prepared media
func WithImageQuality(quality int) Option {
	return func(e *Engine) {
		e.imageQuality = quality
	}
}

// WithRandSource seeds source selection. Used by tests.
func WithRandSource(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// New creates a game engine. Fails when no question sources are
// configured, since no round could ever start.
func New(repo repository.FullRepository, feed bsky.Client, srcs []sources.Source, cfg config.GameConfig, log logger.Logger, opts ...Option) (*Engine, error) {
	if len(srcs) == 0 {
		return nil, ErrNoSourceConfigured
	}

	e := &Engine{
		repo:         repo,
		feed:         feed,
		sources:      srcs,
		cfg:          cfg,
		imageQuality: 75,
		waiter:       &SleepWaiter{},
		log:          log.With("component", "game"),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run executes the round loop until the context is cancelled. A fault
// inside a round never kills the loop: it is logged, a notice is
// posted, leftovers are retracted, and the loop retries after a
// cooldown.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("Game loop starting",
		"sources", len(e.sources),
		"threshold", e.cfg.Threshold,
		"collect_window", e.cfg.CollectWindowDuration())

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := e.playRound(ctx)
		var wait time.Duration
		switch {
		case err == nil:
			wait = e.cfg.InterRoundWaitDuration()
		case stderrors.Is(err, errRoundSkipped):
			wait = e.cfg.SkipCooldownDuration()
		case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
			return err
		default:
			e.log.Error("Round failed", "error", err)
			e.postCriticalNotice(ctx)
			// A fault mid-round can leave a non-terminal row behind;
			// clear it now or the next attempt collides with its
			// sequence number.
			if _, _, discardErr := e.discardIncomplete(ctx); discardErr != nil {
				e.log.Error("Failed to discard faulted round", "error", discardErr)
			}
			wait = e.cfg.ErrorCooldownDuration()
		}

		e.log.Info("Waiting before next round", "wait", wait)
		if err := e.waiter.Wait(ctx, wait); err != nil {
			return err
		}
	}
}

// postCriticalNotice tells followers the game hit an internal problem.
// Best effort: if the feed is down too, there is nothing more to do.
func (e *Engine) postCriticalNotice(ctx context.Context) {
	_, err := e.feed.Publish(ctx, "We hit an internal problem and had to scrap the current round. Back shortly!", nil)
	if err != nil {
		e.log.Warn("Failed to post critical notice", "error", err)
	}
}

// broadcast pushes an event to live observers when a broadcaster is
// attached
func (e *Engine) broadcast(event string, payload any) {
	if e.broadcaster != nil {
		e.broadcaster.Broadcast(event, payload)
	}
}

// kindOf is shorthand for classifying application errors
func kindOf(err error) errors.Kind {
	return errors.KindOf(err)
}
