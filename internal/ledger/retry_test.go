// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/ledger"
)

// recordSleep collects requested delays without waiting.
func recordSleep(delays *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, delay time.Duration) error {
		*delays = append(*delays, delay)
		return nil
	}
}

func TestRetry_ExhaustsBudget(t *testing.T) {
	var delays []time.Duration
	policy := ledger.Retry{Attempts: 100, MinDelay: 500 * time.Millisecond, MaxDelay: time.Second, Sleep: recordSleep(&delays)}

	calls := 0
	err := policy.Do(context.Background(), func(context.Context, int) error {
		calls++
		return errors.New("node timeout")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrRetryExhausted)
	assert.Equal(t, 100, calls)
	require.Len(t, delays, 99)
	assert.Equal(t, 500*time.Millisecond, delays[0])
	assert.Equal(t, time.Second, delays[1])
	assert.Equal(t, time.Second, delays[98])
}

func TestRetry_StopsOnSuccess(t *testing.T) {
	var delays []time.Duration
	policy := ledger.Retry{Attempts: 100, MinDelay: 500 * time.Millisecond, MaxDelay: time.Second, Sleep: recordSleep(&delays)}

	var seen []int
	err := policy.Do(context.Background(), func(_ context.Context, attempt int) error {
		seen = append(seen, attempt)
		if attempt < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Len(t, delays, 2)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := ledger.Retry{
		Attempts: 100,
		MinDelay: time.Millisecond,
		MaxDelay: time.Millisecond,
		Sleep: func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}

	calls := 0
	err := policy.Do(ctx, func(context.Context, int) error {
		calls++
		return errors.New("transient")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ledger.ErrRetryExhausted)
	assert.Equal(t, 1, calls)
}

func TestRetry_OnRetryHook(t *testing.T) {
	var attempts []int
	policy := ledger.Retry{
		Attempts: 3,
		Sleep:    func(context.Context, time.Duration) error { return nil },
		OnRetry:  func(attempt int, _ time.Duration, _ error) { attempts = append(attempts, attempt) },
	}

	_ = policy.Do(context.Background(), func(context.Context, int) error { return errors.New("down") })

	assert.Equal(t, []int{1, 2}, attempts)
}

func TestRetry_Backoff(t *testing.T) {
	policy := ledger.Retry{MinDelay: 500 * time.Millisecond, MaxDelay: time.Second}

	assert.Equal(t, 500*time.Millisecond, policy.Backoff(1))
	assert.Equal(t, time.Second, policy.Backoff(2))
	assert.Equal(t, time.Second, policy.Backoff(50))
}

func TestRetry_MaxDuration(t *testing.T) {
	policy := ledger.Retry{Attempts: 100, MinDelay: 500 * time.Millisecond, MaxDelay: time.Second}

	// 100 calls of 2s, then 500ms + 98 * 1s of backoff.
	assert.Equal(t, 298500*time.Millisecond, policy.MaxDuration(2*time.Second))
	assert.Equal(t, 3*time.Second, ledger.Retry{}.MaxDuration(3*time.Second))
}
