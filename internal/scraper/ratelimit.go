package scraper

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// throttle paces calls to the Telegram API. It layers a server-imposed
// flood-wait window on top of a steady token limiter: acquire honors
// whichever holds the caller back longer.
type throttle struct {
	limiter *rate.Limiter

	mu       sync.Mutex
	resumeAt time.Time
}

func newThrottle(rps float64, burst int) *throttle {
	return &throttle{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// acquire blocks until the next call may proceed: first sits out any
// pending flood-wait window, then takes a limiter token.
func (t *throttle) acquire(ctx context.Context) error {
	t.mu.Lock()
	pause := time.Until(t.resumeAt)
	t.mu.Unlock()

	if pause > 0 {
		timer := time.NewTimer(pause)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return t.limiter.Wait(ctx)
}

// backoff suspends all calls for the server-requested duration. A
// shorter request never shrinks a window already in force.
func (t *throttle) backoff(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if until := time.Now().Add(d); until.After(t.resumeAt) {
		t.resumeAt = until
	}
}
