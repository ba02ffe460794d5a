package game

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/bluetrivia/bluetrivia/internal/repository"
	"github.com/bluetrivia/bluetrivia/pkg/bsky"
)

// RecoverStartup reconciles a round left non-terminal by a crash. The
// stale round's posts are retracted, its row and any partial responses
// are deleted, and followers get a notice naming the discarded round.
// Partial data is never salvaged: a reply set fetched long after the
// window closed is not a trustworthy reconstruction of it.
//
// Running the sweep twice in a row is a no-op the second time.
func (e *Engine) RecoverStartup(ctx context.Context) error {
	num, discarded, err := e.discardIncomplete(ctx)
	if err != nil {
		return err
	}
	if !discarded {
		return nil
	}

	if _, err := e.feed.Publish(ctx, composeRecoveryNotice(num), nil); err != nil {
		e.log.Warn("Failed to publish recovery notice", "round", num, "error", err)
	}
	return nil
}

// discardIncomplete removes the most recent round if it is stuck in a
// non-terminal state, retracting whatever posts it published. Returns
// the discarded round's number and whether anything was discarded.
//
// The discarded number is burned so the next round leaves a visible
// gap rather than silently reusing it.
func (e *Engine) discardIncomplete(ctx context.Context) (int, bool, error) {
	last, err := e.repo.LastRound(ctx)
	if stderrors.Is(err, repository.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to inspect last round: %w", err)
	}
	if last.State.Terminal() {
		return 0, false, nil
	}

	log := e.log.With("round", last.Num)
	log.Warn("Found incomplete round, discarding", "state", last.State.String())

	for _, uri := range []string{last.Posts.End, last.Posts.Round} {
		if uri == "" {
			continue
		}
		if err := e.feed.Retract(ctx, bsky.PostRef{URI: uri}); err != nil {
			log.Warn("Failed to retract stale post", "uri", uri, "error", err)
		}
	}

	if err := e.repo.DeleteRound(ctx, last.ID); err != nil {
		return 0, false, fmt.Errorf("failed to delete incomplete round: %w", err)
	}

	if last.Num+1 > e.nextNum {
		e.nextNum = last.Num + 1
	}

	log.Info("Discarded incomplete round")
	return last.Num, true, nil
}
