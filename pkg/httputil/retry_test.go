package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransport = errors.New("connection reset")

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(errTransport)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != errTransport.Error() {
		t.Errorf("Error message should be preserved: %s", err)
	}
	if !errors.Is(err, errTransport) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if IsRetryable(errTransport) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryableStatus(t *testing.T) {
	tests := map[int]bool{200: false, 400: false, 401: false, 429: true, 500: true, 503: true}
	for code, want := range tests {
		if got := RetryableStatus(code); got != want {
			t.Errorf("RetryableStatus(%d) = %v, want %v", code, got, want)
		}
	}
}

func TestPolicyDo(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		attempts  int
		failFirst int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{"success first try", 3, 0, true, 1, false},
		{"retry then succeed", 3, 2, true, 3, false},
		{"exhausted", 3, 5, true, 3, true},
		{"non-retryable stops", 3, 5, false, 1, true},
		{"zero attempts runs once", 0, 0, true, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			p := Policy{Attempts: tt.attempts, Delay: time.Microsecond}
			err := p.Do(ctx, func() error {
				calls++
				if calls <= tt.failFirst {
					if tt.retryable {
						return Retryable(errTransport)
					}
					return errTransport
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestPolicyDoContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Policy{Attempts: 3, Delay: time.Hour}.Do(ctx, func() error {
		return Retryable(errTransport)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestPolicyBackoff(t *testing.T) {
	var waits []time.Duration
	p := Policy{
		Attempts: 5,
		Delay:    time.Microsecond,
		MaxDelay: 3 * time.Microsecond,
		OnRetry: func(attempt int, wait time.Duration, err error) {
			if attempt != len(waits)+1 {
				t.Errorf("attempt = %d, want %d", attempt, len(waits)+1)
			}
			waits = append(waits, wait)
		},
	}
	err := p.Do(context.Background(), func() error { return Retryable(errTransport) })
	if !IsRetryable(err) || !errors.Is(err, errTransport) {
		t.Errorf("err = %v, want the last retryable error", err)
	}
	want := []time.Duration{time.Microsecond, 2 * time.Microsecond, 3 * time.Microsecond, 3 * time.Microsecond}
	if len(waits) != len(want) {
		t.Fatalf("waits = %v, want %v", waits, want)
	}
	for i := range want {
		if waits[i] != want[i] {
			t.Errorf("waits = %v, want %v", waits, want)
			break
		}
	}
}
