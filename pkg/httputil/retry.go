package httputil

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// RetryableError marks a transient failure that a [Policy] may retry.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a RetryableError. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err was wrapped with [Retryable].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// RetryableStatus reports whether an HTTP status code marks a transient
// failure: 429 or any 5xx.
func RetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// Policy describes how often and how patiently an operation is retried.
// The wait starts at Delay and doubles after every failed attempt, never
// exceeding MaxDelay when MaxDelay is set.
type Policy struct {
	Attempts int
	Delay    time.Duration
	MaxDelay time.Duration

	// OnRetry, if set, is called before each wait with the 1-based number
	// of the attempt that failed.
	OnRetry func(attempt int, wait time.Duration, err error)
}

// DefaultPolicy tries three times, waiting 1s and then 2s.
func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Delay: time.Second, MaxDelay: 30 * time.Second}
}

// Do runs fn until it succeeds, returns an error not wrapped with
// [Retryable], or the attempts are used up. It returns the last error, which
// keeps its RetryableError wrapper, or ctx.Err() if ctx ends while waiting.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	wait := p.Delay

	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt == attempts {
			return err
		}
		if p.MaxDelay > 0 {
			wait = min(wait, p.MaxDelay)
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, wait, err)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}
