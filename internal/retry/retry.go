// Package retry wraps a single upstream call in a bounded fixed-delay
// retry loop with an explicit retryable-error predicate.
package retry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/rkundra/farecalendar/internal/provider"
)

type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(error) bool
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
		Retryable:   IsTransient,
	}
}

// Do runs fn up to MaxAttempts times, sleeping Delay between failed
// attempts. A non-retryable error propagates immediately; after the last
// attempt the last error is returned as-is.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(p.Delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}

var transientCodes = map[int]bool{
	http.StatusTooManyRequests:    true,
	http.StatusBadGateway:         true,
	http.StatusServiceUnavailable: true,
	http.StatusGatewayTimeout:     true,
}

// IsTransient classifies upstream failures worth another attempt: a
// throttling or 5xx gateway status, a transport-level failure, or a
// message matching the timeout/503 shapes some proxies hide errors behind.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *provider.StatusError
	if errors.As(err, &statusErr) {
		return transientCodes[statusErr.Code]
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "timed out") ||
		strings.Contains(msg, "503")
}
