// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package ledger

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrRetryExhausted wraps the last error once every attempt has failed.
var ErrRetryExhausted = errors.New("ledger: retry budget exhausted")

// Retry is a bounded exponential backoff policy.
//
// The delay before attempt n+1 is MinDelay * 2^(n-1), capped at MaxDelay.
// Attempts counts every call, including the first.
type Retry struct {
	Attempts int
	MinDelay time.Duration
	MaxDelay time.Duration

	// Sleep waits between attempts. Nil uses a context-aware timer.
	Sleep func(ctx context.Context, delay time.Duration) error

	// OnRetry is called after each failed attempt that will be retried.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// Do calls fn until it succeeds, the attempts run out or ctx is done.
func (policy Retry) Do(ctx context.Context, fn func(ctx context.Context, attempt int) error) error {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	sleep := policy.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return errors.WithMessagef(err, "ledger: stopped after %d attempts", attempt-1)
		}

		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return nil
		}

		if attempt == attempts {
			break
		}

		delay := policy.Backoff(attempt)
		if policy.OnRetry != nil {
			policy.OnRetry(attempt, delay, lastErr)
		}

		if err := sleep(ctx, delay); err != nil {
			return errors.WithMessagef(err, "ledger: stopped after %d attempts", attempt)
		}
	}

	return errors.Wrapf(ErrRetryExhausted, "%d attempts, last error: %v", attempts, lastErr)
}

// Backoff returns the delay that follows the given failed attempt (1-based).
func (policy Retry) Backoff(attempt int) time.Duration {
	delay := policy.MinDelay
	for i := 1; i < attempt && delay < policy.MaxDelay; i++ {
		delay *= 2
	}
	if policy.MaxDelay > 0 && delay > policy.MaxDelay {
		delay = policy.MaxDelay
	}
	return delay
}

// MaxDuration is the longest Do can run when every call takes perCall.
func (policy Retry) MaxDuration(perCall time.Duration) time.Duration {
	attempts := max(policy.Attempts, 1)

	total := time.Duration(attempts) * perCall
	for attempt := 1; attempt < attempts; attempt++ {
		total += policy.Backoff(attempt)
	}
	return total
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
