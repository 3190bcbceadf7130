// Package retry provides retry logic with exponential backoff for operations.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// Config holds retry strategy configuration.
type Config struct {
	// MaxAttempts is the maximum number of attempts (including the initial one).
	MaxAttempts int
	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the delay between attempts.
	MaxDelay time.Duration
	// Multiplier is the exponential backoff multiplier.
	Multiplier float64
	// RetryableErrors lists case-insensitive substrings of retryable error messages.
	// If empty, every error except a Permanent one is retryable.
	RetryableErrors []string
}

// DefaultConfig returns default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:     5,
		InitialDelay:    1 * time.Second,
		MaxDelay:        30 * time.Second,
		Multiplier:      2.0,
		RetryableErrors: []string{},
	}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not retryable regardless of configuration.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do executes a function with retry logic.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	_, err := DoWithResult(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult executes a function with retry logic and returns the result.
// A Permanent error is returned unwrapped.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T

	if cfg.MaxAttempts <= 0 {
		return zero, fmt.Errorf("MaxAttempts must be greater than 0")
	}

	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return zero, perm.err
		}

		lastErr = err

		if !IsRetryableError(err, cfg) {
			return zero, err
		}

		if attempt == cfg.MaxAttempts-1 {
			break
		}

		delay := addJitter(calculateDelay(attempt, cfg))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, lastErr
}

// calculateDelay calculates exponential backoff delay.
func calculateDelay(attempt int, cfg Config) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt))
	if delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}

	return time.Duration(delay)
}

// addJitter adds ±10% random jitter to delay.
func addJitter(delay time.Duration) time.Duration {
	jitterPercent := 0.1
	//nolint:gosec // math/rand is sufficient for jitter calculation, no security requirement
	jitter := float64(delay) * jitterPercent * (rand.Float64()*2 - 1)
	return delay + time.Duration(jitter)
}

// IsRetryableError checks if error should trigger a retry.
func IsRetryableError(err error, cfg Config) bool {
	if err == nil {
		return false
	}

	var perm *permanentError
	if errors.As(err, &perm) {
		return false
	}

	if len(cfg.RetryableErrors) == 0 {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	for _, pattern := range cfg.RetryableErrors {
		if strings.Contains(errMsg, strings.ToLower(pattern)) {
			return true
		}
	}

	return false
}

// DefaultPostgresRetryableErrors returns default retryable error patterns for PostgreSQL.
func DefaultPostgresRetryableErrors() []string {
	return []string{
		"connection refused",
		"i/o timeout",
		"connection reset",
		"server closed the connection",
		"too many connections",
		"the database system is starting up",
		"no connection could be made",
		"network is unreachable",
		"dial tcp",
		"connection timed out",
	}
}

// PostgresConfig returns retry configuration optimized for PostgreSQL connections.
func PostgresConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryableErrors = DefaultPostgresRetryableErrors()
	return cfg
}

// DefaultSMTPRetryableErrors returns error patterns of transient SMTP failures:
// network errors and 4xx reply codes.
func DefaultSMTPRetryableErrors() []string {
	return []string{
		"connection refused",
		"connection reset",
		"i/o timeout",
		"dial tcp",
		"eof",
		"421 ",
		"450 ",
		"451 ",
		"452 ",
		"try again",
	}
}

// SMTPConfig returns retry configuration for notification delivery.
// Delays are short because delivery happens inside a request.
func SMTPConfig(maxAttempts int) Config {
	return Config{
		MaxAttempts:     maxAttempts,
		InitialDelay:    200 * time.Millisecond,
		MaxDelay:        2 * time.Second,
		Multiplier:      2.0,
		RetryableErrors: DefaultSMTPRetryableErrors(),
	}
}
