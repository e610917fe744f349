// Package retry implements the bounded exponential backoff applied to
// external collaborator calls when the provider signals throttling.
// Non-retryable errors propagate immediately.
package retry

import (
	"context"
	"time"
)

const (
	// DefaultAttempts bounds how many times a throttled call is retried.
	DefaultAttempts = 3
	// DefaultDelay is the first backoff; it doubles per attempt.
	DefaultDelay = 2 * time.Second
)

// Policy controls retry behaviour for one class of calls.
type Policy struct {
	Attempts  int
	Delay     time.Duration
	Retryable func(error) bool

	// sleep is injectable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPolicy builds a policy with default bounds. retryable classifies
// errors worth backing off for (rate-limit signals).
func NewPolicy(retryable func(error) bool) Policy {
	return Policy{
		Attempts:  DefaultAttempts,
		Delay:     DefaultDelay,
		Retryable: retryable,
	}
}

// Do runs fn, backing off and retrying on retryable errors until the
// attempt budget is exhausted. The last error is returned as-is so the
// caller can wrap it.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = wait
	}

	delay := p.Delay
	remaining := p.Attempts
	for {
		err := fn()
		if err == nil {
			return nil
		}
		if remaining <= 0 || p.Retryable == nil || !p.Retryable(err) {
			return err
		}
		if serr := sleep(ctx, delay); serr != nil {
			return err
		}
		remaining--
		delay *= 2
	}
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
