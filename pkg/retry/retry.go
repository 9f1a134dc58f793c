// Package retry implements the shared backoff policy used by all fetchers.
package retry

import (
	"context"
	"time"
)

// RateLimited reports whether a status code is the upstream throttle signal.
func RateLimited(status int) bool { return status == 429 }

// AnyFailure treats every non-2xx status as retryable. Basketball-Reference
// intermittently serves 5xx under load, so the fetchers retry those the same
// way they retry a 429.
func AnyFailure(status int) bool { return status < 200 || status >= 300 }

// Policy parameterizes one source's retry behavior. The attempt budget and
// delay constants differ per source; the loop is identical everywhere.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
	Retryable   func(status int) bool

	// sleep is swappable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Do runs fn up to MaxAttempts times, sleeping before every attempt and
// growing the delay (capped at MaxDelay) after each retryable status. It
// returns the last attempt's outcome; callers decide whether exhaustion is
// an error or a "no data" sentinel.
func (p Policy) Do(ctx context.Context, fn func() (status int, err error)) (status int, err error) {
	retryable := p.Retryable
	if retryable == nil {
		retryable = AnyFailure
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = waitFor
	}
	delay := p.BaseDelay
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if serr := sleep(ctx, delay); serr != nil {
			return status, serr
		}
		status, err = fn()
		if err == nil && !retryable(status) {
			return status, nil
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return status, err
}

func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
