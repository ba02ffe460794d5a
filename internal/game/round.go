package game

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/bluetrivia/bluetrivia/internal/errors"
	"github.com/bluetrivia/bluetrivia/internal/imaging"
	"github.com/bluetrivia/bluetrivia/internal/logger"
	"github.com/bluetrivia/bluetrivia/internal/models"
	"github.com/bluetrivia/bluetrivia/internal/repository"
	"github.com/bluetrivia/bluetrivia/internal/sources"
	"github.com/bluetrivia/bluetrivia/pkg/bsky"
)

// roundContext is the mutable state of the one active round. It is
// owned by a single playRound call and never shared.
type roundContext struct {
	id         int64
	num        int
	question   *models.Question
	source     sources.Source
	tournament *models.Tournament
	roundRef   bsky.PostRef
	endRef     *bsky.PostRef
}

// playRound runs one full round: announce, collect, score, report
func (e *Engine) playRound(ctx context.Context) error {
	rc, err := e.beginRound(ctx)
	if err != nil {
		return err
	}

	if err := e.waiter.Wait(ctx, e.cfg.CollectWindowDuration()); err != nil {
		return err
	}

	return e.scoreRound(ctx, rc)
}

// beginRound allocates the next sequence number, draws a question,
// publishes it, and persists the new round in the collecting state
func (e *Engine) beginRound(ctx context.Context) (*roundContext, error) {
	lastNum, err := e.repo.LastCompletedNum(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find last round number: %w", err)
	}
	num := lastNum + 1
	// Numbers burned by a discard are skipped, leaving a gap
	if num < e.nextNum {
		num = e.nextNum
	}
	log := e.log.With("round", num)

	tournament, err := e.repo.ActiveTournament(ctx)
	if err != nil && !stderrors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up active tournament: %w", err)
	}

	src, question, err := e.drawQuestion(ctx, log)
	if err != nil {
		return nil, err
	}

	media := question.Media
	if src.RequiresImageProcessing() {
		media = imaging.PrepareAll(media, e.imageQuality)
	}
	if max := src.MaxMediaItems(); len(media) > max {
		media = media[:max]
	}

	text := composeRoundPost(num, question.Text, e.cfg.CollectWindowDuration())
	roundRef, err := e.feed.Publish(ctx, text, media)
	if err != nil {
		return nil, fmt.Errorf("failed to publish round post: %w", err)
	}
	log.Info("Round announced", "source", src.Name(), "post", roundRef.URI)

	newRound := repository.NewRound{
		Num:          num,
		State:        models.StateCollecting,
		Answer:       question.Answer,
		Source:       src.Name(),
		RoundPostURI: roundRef.URI,
	}
	if tournament != nil {
		newRound.TournamentID = &tournament.ID
	}

	id, err := e.repo.CreateRound(ctx, newRound)
	if err != nil {
		// Without a row the recovery sweep cannot see this post, so
		// take it down now rather than leave it orphaned.
		if retractErr := e.feed.Retract(ctx, roundRef); retractErr != nil {
			log.Error("Failed to retract orphaned round post", "error", retractErr)
		}
		return nil, fmt.Errorf("failed to persist round: %w", err)
	}

	e.broadcast("round_started", map[string]any{
		"round":  num,
		"state":  models.StateCollecting.String(),
		"source": src.Name(),
	})

	return &roundContext{
		id:         id,
		num:        num,
		question:   question,
		source:     src,
		tournament: tournament,
		roundRef:   roundRef,
	}, nil
}

// drawQuestion picks a source uniformly at random and draws from it,
// falling through to the remaining sources when one is exhausted
func (e *Engine) drawQuestion(ctx context.Context, log logger.Logger) (sources.Source, *models.Question, error) {
	candidates := make([]sources.Source, len(e.sources))
	copy(candidates, e.sources)

	for len(candidates) > 0 {
		i := e.rng.Intn(len(candidates))
		src := candidates[i]

		question, err := src.Draw(ctx)
		if err == nil {
			return src, question, nil
		}
		if kindOf(err) == errors.ErrExhausted {
			log.Warn("Source exhausted, trying another", "source", src.Name(), "error", err)
			candidates = append(candidates[:i], candidates[i+1:]...)
			continue
		}
		return nil, nil, fmt.Errorf("source %s failed: %w", src.Name(), err)
	}

	return nil, nil, errors.Exhausted("every question source is exhausted")
}

// scoreRound closes the collection window, scores the replies, and
// finalizes the round. Persistence failures abort without a terminal
// state so the recovery sweep can discard the round on next startup.
func (e *Engine) scoreRound(ctx context.Context, rc *roundContext) error {
	log := e.log.With("round", rc.num)

	if err := e.repo.UpdateRoundState(ctx, rc.id, models.StateScoring); err != nil {
		return fmt.Errorf("failed to enter scoring state: %w", err)
	}
	e.broadcast("round_scoring", map[string]any{
		"round": rc.num,
		"state": models.StateScoring.String(),
	})

	endRef, err := e.feed.PublishReply(ctx, composeTimeUp(rc.num), rc.roundRef, rc.roundRef, nil)
	if err != nil {
		return fmt.Errorf("failed to publish time-up post: %w", err)
	}
	rc.endRef = &endRef

	// Persist the transient post so recovery can retract it if we
	// crash past this point.
	posts := models.PostRefs{Round: rc.roundRef.URI, End: endRef.URI}
	if err := e.repo.UpdateRoundPosts(ctx, rc.id, posts); err != nil {
		return fmt.Errorf("failed to record time-up post: %w", err)
	}

	replies, err := e.feed.FetchReplies(ctx, rc.roundRef)
	if err != nil {
		return fmt.Errorf("failed to fetch replies: %w", err)
	}

	responses, replyRefs := e.scoreReplies(rc, replies)
	if len(responses) == 0 {
		return e.skipRound(ctx, rc, log)
	}

	e.likeCorrect(ctx, responses, replyRefs, log)

	ranked := Rank(responses)
	percent := successPercent(len(ranked), len(responses))

	var bonuses map[string]int
	var tournamentID *int64
	if rc.tournament != nil {
		bonuses = TournamentDelta(ranked, e.cfg.BonusPoints)
		tournamentID = &rc.tournament.ID
	}

	topCorrect := ranked
	if len(topCorrect) > len(medals) {
		topCorrect = topCorrect[:len(medals)]
	}

	resultsText := composeResults(rc.num, percent, rc.question.Answer, len(responses),
		topCorrect, rc.tournament, e.cfg.InterRoundWaitDuration())
	resultsRef, err := e.feed.PublishReply(ctx, resultsText, rc.roundRef, rc.roundRef, nil)
	if err != nil {
		return fmt.Errorf("failed to publish results: %w", err)
	}

	outcome := repository.RoundOutcome{
		RoundID:        rc.id,
		State:          models.StateResults,
		Percent:        percent,
		Attempts:       len(responses),
		EndedAt:        time.Now().UTC(),
		ResultsPostURI: resultsRef.URI,
		Responses:      responses,
		TournamentID:   tournamentID,
		Bonuses:        bonuses,
	}
	if err := e.repo.SaveRoundOutcome(ctx, outcome); err != nil {
		return fmt.Errorf("failed to finalize round: %w", err)
	}

	e.retractTimeUp(ctx, rc, log)

	log.Info("Round finished",
		"attempts", len(responses), "correct", len(ranked), "percent", percent)
	e.broadcast("round_finished", map[string]any{
		"round":   rc.num,
		"state":   models.StateResults.String(),
		"percent": percent,
		"correct": len(ranked),
		"total":   len(responses),
	})

	return nil
}

// scoreReplies turns the raw reply list into scored responses with
// dense 1-based positions in arrival order, plus the post refs needed
// to like them. The bot's own posts in the thread are not guesses.
func (e *Engine) scoreReplies(rc *roundContext, replies []bsky.Reply) ([]models.Response, []bsky.PostRef) {
	own := e.feed.Handle()
	now := time.Now().UTC()

	responses := make([]models.Response, 0, len(replies))
	refs := make([]bsky.PostRef, 0, len(replies))
	for _, reply := range replies {
		if reply.Handle == own {
			continue
		}
		score := rc.source.EvaluateAnswer(reply.Text, rc.question.Answer)
		recordedAt := reply.CreatedAt
		if recordedAt.IsZero() {
			recordedAt = now
		}
		responses = append(responses, models.Response{
			RoundID:    rc.id,
			Handle:     reply.Handle,
			Text:       reply.Text,
			IsCorrect:  score >= e.cfg.Threshold,
			Score:      score,
			Position:   len(responses) + 1,
			RecordedAt: recordedAt,
		})
		refs = append(refs, reply.Ref)
	}
	return responses, refs
}

// likeCorrect gives each correct guess a like. Best effort; a missed
// like never fails the round.
func (e *Engine) likeCorrect(ctx context.Context, responses []models.Response, refs []bsky.PostRef, log logger.Logger) {
	for i, resp := range responses {
		if !resp.IsCorrect {
			continue
		}
		if err := e.feed.Like(ctx, refs[i]); err != nil {
			log.Warn("Failed to like correct guess", "handle", resp.Handle, "error", err)
		}
	}
}

// skipRound ends a round that drew no guesses: post the notice, take
// down the time-up post, and persist the terminal skipped state.
// Player aggregates are untouched.
func (e *Engine) skipRound(ctx context.Context, rc *roundContext, log logger.Logger) error {
	noticeRef, err := e.feed.PublishReply(ctx, composeSkipNotice(rc.num), rc.roundRef, rc.roundRef, nil)
	if err != nil {
		return fmt.Errorf("failed to publish skip notice: %w", err)
	}

	outcome := repository.RoundOutcome{
		RoundID:        rc.id,
		State:          models.StateSkipped,
		Percent:        0,
		Attempts:       0,
		EndedAt:        time.Now().UTC(),
		ResultsPostURI: noticeRef.URI,
	}
	if err := e.repo.SaveRoundOutcome(ctx, outcome); err != nil {
		return fmt.Errorf("failed to finalize skipped round: %w", err)
	}

	e.retractTimeUp(ctx, rc, log)

	log.Info("Round skipped, no guesses")
	e.broadcast("round_skipped", map[string]any{
		"round": rc.num,
		"state": models.StateSkipped.String(),
	})

	return errRoundSkipped
}

// retractTimeUp takes down the transient time-up post once the round
// is terminal
func (e *Engine) retractTimeUp(ctx context.Context, rc *roundContext, log logger.Logger) {
	if rc.endRef == nil {
		return
	}
	if err := e.feed.Retract(ctx, *rc.endRef); err != nil {
		log.Warn("Failed to retract time-up post", "error", err)
	}
}
