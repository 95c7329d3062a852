// Package retry turns the advanced retry settings into a reusable policy
// that consumers wrap around fallible work such as uploads.
package retry

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/cratis/cratis-core/internal/config"
)

const (
	// DefaultAttempts is used when retry_attempts is not configured.
	DefaultAttempts uint32 = 3
	// DefaultDelay is used when retry_delay_seconds is not configured.
	DefaultDelay = 5 * time.Second
)

// Policy describes how many times work is retried after the first failure
// and the minimum spacing between consecutive attempts.
type Policy struct {
	Attempts uint32
	Delay    time.Duration
}

// FromConfig builds a Policy from the advanced block, falling back to the
// defaults for unset fields.
func FromConfig(adv config.AdvancedConfig) Policy {
	p := Policy{Attempts: DefaultAttempts, Delay: DefaultDelay}
	if adv.RetryAttempts != nil {
		p.Attempts = uint32(*adv.RetryAttempts)
	}
	if delay, ok := adv.RetryDelay(); ok {
		p.Delay = delay
	}
	return p
}

// Do calls fn until it succeeds, returns a Permanent error, the retries are
// exhausted, or ctx is done. The last error from fn is returned.
func (p Policy) Do(ctx context.Context, fn func(context.Context) error) error {
	limit := rate.Inf
	if p.Delay > 0 {
		limit = rate.Every(p.Delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	var lastErr error
	for attempt := uint64(0); attempt <= uint64(p.Attempts); attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return errors.Join(err, lastErr)
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(lastErr, &perm) {
			return perm.err
		}
	}
	return lastErr
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}
