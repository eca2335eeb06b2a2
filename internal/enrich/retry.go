package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/sethvargo/go-retry"
)

// RetryPolicy describes exponential backoff between analysis attempts.
type RetryPolicy struct {
	// MaxAttempts is the total number of calls, including the first.
	MaxAttempts int
	// BaseDelay is the wait after the first failed attempt.
	BaseDelay time.Duration
	// Multiplier scales the delay after each further failure.
	Multiplier float64
	// MaxDelay caps a single wait. Zero means no cap.
	MaxDelay time.Duration
}

// DefaultRetryPolicy waits 1s, 2s, 4s, 8s between five attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   time.Second,
		Multiplier:  2,
	}
}

// Validate checks the policy bounds.
func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1", ErrInvalidConfig)
	}
	if p.BaseDelay < 0 {
		return fmt.Errorf("%w: base delay must not be negative", ErrInvalidConfig)
	}
	if p.Multiplier < 1 {
		return fmt.Errorf("%w: multiplier must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// Delays returns the wait before each retry, in order.
func (p RetryPolicy) Delays() []time.Duration {
	b := p.Backoff()
	var out []time.Duration
	for {
		d, stop := b.Next()
		if stop {
			return out
		}
		out = append(out, d)
	}
}

// Backoff builds a fresh go-retry backoff for one call sequence.
func (p RetryPolicy) Backoff() retry.Backoff {
	next := p.BaseDelay
	var b retry.Backoff = retry.BackoffFunc(func() (time.Duration, bool) {
		d := next
		next = time.Duration(float64(next) * p.Multiplier)
		return d, false
	})

	retries := 0
	if p.MaxAttempts > 1 {
		retries = p.MaxAttempts - 1
	}
	b = retry.WithMaxRetries(uint64(retries), b)
	if p.MaxDelay > 0 {
		b = retry.WithCappedDuration(p.MaxDelay, b)
	}
	return b
}

// Retrying wraps an Analyzer and retries transient failures according to
// its policy. Invalid responses, blocked content and disabled analyzers
// fail immediately.
type Retrying struct {
	next   Analyzer
	policy RetryPolicy
	logger *slog.Logger
}

// NewRetrying creates a retry wrapper around next.
func NewRetrying(next Analyzer, policy RetryPolicy, logger *slog.Logger) (*Retrying, error) {
	if next == nil {
		return nil, fmt.Errorf("%w: analyzer cannot be nil", ErrInvalidConfig)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Retrying{
		next:   next,
		policy: policy,
		logger: logger.With(slog.String("component", "enrich_retry")),
	}, nil
}

// Analyze calls the wrapped analyzer until it succeeds, fails permanently,
// the attempts run out or ctx is done.
func (r *Retrying) Analyze(ctx context.Context, req Request) (domain.Analysis, error) {
	var result domain.Analysis
	attempt := 0

	err := retry.Do(ctx, r.policy.Backoff(), func(ctx context.Context) error {
		attempt++
		a, err := r.next.Analyze(ctx, req)
		if err == nil {
			result = a
			return nil
		}

		if errors.Is(err, ErrTransientFailure) {
			r.logger.WarnContext(ctx, "analysis attempt failed, will retry",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", r.policy.MaxAttempts),
				slog.String("word", req.Word),
				slog.Any("error", err))
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "analysis failed",
			slog.Int("attempts", attempt),
			slog.String("word", req.Word),
			slog.Any("error", err))
		return domain.Analysis{}, err
	}

	if attempt > 1 {
		r.logger.InfoContext(ctx, "analysis succeeded after retry", slog.Int("attempts", attempt))
	}
	return result, nil
}
