package retry

import (
	"context"
	"fmt"
	"time"
)

// ExhaustedError is returned by Do once every attempt has failed.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// Policy bounds how many times an operation is attempted.
type Policy struct {
	Attempts int
	Delay    time.Duration
	// OnFailure is called after each failed attempt, numbered from 1.
	OnFailure func(attempt int, err error)
}

// Do runs op until it succeeds or the policy's attempts are used up.
// Attempts run one after another, never concurrently.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if p.OnFailure != nil {
			p.OnFailure(attempt, err)
		}

		if attempt == attempts {
			break
		}
		if err := ctx.Err(); err != nil {
			return zero, &ExhaustedError{Attempts: attempt, Last: err}
		}
		if p.Delay > 0 {
			timer := time.NewTimer(p.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, &ExhaustedError{Attempts: attempt, Last: ctx.Err()}
			case <-timer.C:
			}
		}
	}

	return zero, &ExhaustedError{Attempts: attempts, Last: lastErr}
}
