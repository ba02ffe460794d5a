package game

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/bluetrivia/bluetrivia/internal/logger"
)

// Waiter suspends the round loop for a duration. Implementations must
// not mutate any game state; downstream behavior is identical whichever
// waiter is installed.
type Waiter interface {
	Wait(ctx context.Context, d time.Duration) error
}

// SleepWaiter waits out the full wall-clock duration
type SleepWaiter struct{}

func (SleepWaiter) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ManualWaiter advances when the operator hits enter instead of
// sleeping. Interactive testing only.
type ManualWaiter struct {
	lines chan struct{}
	log   logger.Logger
}

// NewManualWaiter creates a waiter that reads advance signals from r,
// one per line
func NewManualWaiter(r io.Reader, log logger.Logger) *ManualWaiter {
	w := &ManualWaiter{
		lines: make(chan struct{}),
		log:   log,
	}
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			w.lines <- struct{}{}
		}
		close(w.lines)
	}()
	return w
}

func (w *ManualWaiter) Wait(ctx context.Context, d time.Duration) error {
	w.log.Info("Press enter to advance", "in_place_of", d)
	select {
	case _, ok := <-w.lines:
		if !ok {
			// Input closed; fall back to the real wait.
			return SleepWaiter{}.Wait(ctx, d)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
