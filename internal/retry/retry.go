// Package retry runs operations under a bounded retry policy with
// exponential backoff.
package retry

import (
	"context"
	"time"
)

// Policy describes how an operation is retried. The zero value retries
// nothing; callers set MaxAttempts and Backoff explicitly. Sleep may be
// replaced in tests to observe delays without waiting them out.
type Policy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	Retryable   func(err error) bool
	Sleep       func(ctx context.Context, d time.Duration) error
}

// Exponential returns a backoff of base doubled per attempt: base*2 for
// attempt 1, base*4 for attempt 2, and so on.
func Exponential(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base << attempt
	}
}

// Do runs op until it succeeds, fails with a non-retryable error, or
// MaxAttempts is exhausted. After every failed retryable attempt it backs
// off per Backoff before continuing. The last error from op is returned;
// a ctx cancellation during backoff cuts the retries short.
func (p Policy) Do(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if serr := p.sleep(ctx, p.Backoff(attempt)); serr != nil {
			return err
		}
	}
	return err
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
