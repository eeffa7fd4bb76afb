package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks redis failures that may clear up on their own, such
// as a dropped connection.
var ErrUnavailable = errors.New("cache backend unavailable")

// transientError marks an error as worth another attempt.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as retryable. It returns nil for nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err, or an error it wraps, was marked by
// [Transient].
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// RetryPolicy bounds how often a cache call is repeated. The delay doubles
// after every failed attempt.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetry is used by RedisCache. Cache lookups sit on the render path,
// so the total wait stays well below a second.
var DefaultRetry = RetryPolicy{Attempts: 3, Delay: 50 * time.Millisecond}

// Do runs fn until it succeeds, returns an error not marked transient, the
// attempts run out or ctx is done. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	delay := p.Delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsTransient(err) || attempt >= p.Attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}
