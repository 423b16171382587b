// Package wait provides the pacing and retry policies layered around
// locator resolution. The resolver itself never retries; bounded polling
// for time-varying UI state lives here, at the caller level.
package wait

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/autolab-dev/uia-runner/pkg/core"
)

// Policy is invoked once before every top-level resolution call.
type Policy interface {
	// Pace blocks according to the policy. It returns early with the
	// context error when the context is cancelled.
	Pace(ctx context.Context) error
}

// Delay pauses for a fixed duration. This is the deliberate pacing
// mechanism between UI actions; it is not part of the resolution algorithm.
type Delay struct {
	Duration time.Duration
}

// Pace blocks for the configured duration or until ctx is done.
func (d Delay) Pace(ctx context.Context) error {
	if d.Duration <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d.Duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// None skips pacing entirely.
type None struct{}

// Pace returns immediately.
func (None) Pace(context.Context) error { return nil }

// Retry runs fn until it succeeds, the timeout elapses, or it fails with
// an error other than ErrElementNotFound. Not-found failures are retried
// with exponential backoff because the UI tree is time-varying; every
// other failure is permanent.
func Retry(ctx context.Context, timeout time.Duration, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = timeout

	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, core.ErrElementNotFound) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(b, ctx))
}
