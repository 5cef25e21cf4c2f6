package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"hoopstats/assert"
)

func TestDoSucceedsAfterFailures(t *testing.T) {
	calls := 0
	failures := []int{}
	p := Policy{
		Attempts: 5,
		OnFailure: func(attempt int, err error) {
			failures = append(failures, attempt)
		},
	}

	got, err := Do(context.Background(), p, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("flaky")
		}
		return "ok", nil
	})

	assert.NilError(t, err)
	assert.Equal(t, got, "ok")
	assert.Equal(t, calls, 3)
	assert.SliceEqual(t, failures, []int{1, 2})
}

func TestDoExhausted(t *testing.T) {
	base := errors.New("network down")
	calls := 0
	_, err := Do(context.Background(), Policy{Attempts: 5}, func(ctx context.Context) (int, error) {
		calls++
		return 0, base
	})

	assert.Equal(t, calls, 5)
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected *ExhaustedError, got %T", err)
	}
	assert.Equal(t, exhausted.Attempts, 5)
	assert.ErrorIs(t, err, base)
	assert.StringContains(t, err.Error(), "failed after 5 attempts")
}

func TestDoZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_, _ = Do(context.Background(), Policy{}, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("nope")
	})
	assert.Equal(t, calls, 1)
}

func TestDoStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := Policy{
		Attempts: 5,
		Delay:    time.Hour,
		OnFailure: func(attempt int, err error) {
			cancel()
		},
	}

	_, err := Do(ctx, p, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("fail")
	})

	assert.Equal(t, calls, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
