package espn

import (
	"context"
	"time"
)

// MaxBackoff caps the delay between two attempts.
const MaxBackoff = 10 * time.Second

// RetryPolicy bounds one call's retry loop.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts. Values below 1 mean 1.
	MaxAttempts int
	// Backoff is both the exponential multiplier and the minimum delay.
	Backoff time.Duration
	// MaxBackoff caps the delay; zero means MaxBackoff.
	MaxBackoff time.Duration
	// OnRetry, if set, is called before each backoff wait.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// policyFromConfig derives the retry policy from a validated Config
func policyFromConfig(cfg Config) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: cfg.MaxRetries,
		Backoff:     cfg.RetryBackoff,
		MaxBackoff:  MaxBackoff,
	}
}

// Delay returns the wait after the given failed attempt (1-based):
// Backoff * 2^(attempt-1), capped at MaxBackoff. Backoff is a floor that
// wins over the cap.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	ceiling := p.MaxBackoff
	if ceiling <= 0 {
		ceiling = MaxBackoff
	}

	d := p.Backoff
	for i := 1; i < attempt && d > 0 && d <= ceiling; i++ {
		d *= 2
	}
	if d > ceiling || d < 0 {
		d = ceiling
	}
	if d < p.Backoff {
		d = p.Backoff
	}
	return d
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Waiter pauses between attempts. It returns an error only when the wait
// was abandoned.
type Waiter func(ctx context.Context, d time.Duration) error

// BlockingWait sleeps on the calling goroutine for the full duration.
func BlockingWait(_ context.Context, d time.Duration) error {
	time.Sleep(d)
	return nil
}

// CooperativeWait waits on a timer and gives up when ctx is done.
func CooperativeWait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Retry calls attempt until it succeeds, fails with an error IsRetryable
// rejects, or the policy runs out of attempts. The error of the final
// attempt is returned exactly as attempt produced it.
func Retry[T any](ctx context.Context, p RetryPolicy, wait Waiter, attempt func(ctx context.Context, n int) (T, error)) (T, error) {
	var zero T
	limit := p.attempts()

	for n := 1; ; n++ {
		v, err := attempt(ctx, n)
		if err == nil {
			return v, nil
		}
		if !IsRetryable(err) || n >= limit {
			return zero, err
		}

		delay := p.Delay(n)
		if p.OnRetry != nil {
			p.OnRetry(n, err, delay)
		}
		if werr := wait(ctx, delay); werr != nil {
			return zero, cancelled(err, werr)
		}
		if cerr := ctx.Err(); cerr != nil {
			return zero, cancelled(err, cerr)
		}
	}
}

// cancelled reports a retry loop stopped by its context. The last attempt's
// URL is kept so the caller can tell which call was abandoned.
func cancelled(last, cause error) error {
	e := &Error{Kind: KindClient, Reason: ReasonTransport, Message: "ESPN request cancelled", Err: cause}
	if le, ok := last.(*Error); ok {
		e.URL = le.URL
	}
	return e
}
