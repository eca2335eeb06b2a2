package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func fastPolicy(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, BaseDelay: time.Millisecond, Multiplier: 2}
}

func TestDefaultRetryPolicyDelays(t *testing.T) {
	t.Parallel()

	p := DefaultRetryPolicy()
	require.NoError(t, p.Validate())
	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
	}, p.Delays())
}

func TestRetryPolicyCappedDelays(t *testing.T) {
	t.Parallel()

	p := RetryPolicy{MaxAttempts: 4, BaseDelay: time.Second, Multiplier: 3, MaxDelay: 5 * time.Second}
	assert.Equal(t, []time.Duration{time.Second, 3 * time.Second, 5 * time.Second}, p.Delays())

	single := RetryPolicy{MaxAttempts: 1, BaseDelay: time.Second, Multiplier: 2}
	assert.Empty(t, single.Delays())
}

func TestRetryPolicyValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy RetryPolicy
	}{
		{"zero attempts", RetryPolicy{MaxAttempts: 0, BaseDelay: time.Second, Multiplier: 2}},
		{"negative delay", RetryPolicy{MaxAttempts: 3, BaseDelay: -time.Second, Multiplier: 2}},
		{"shrinking multiplier", RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second, Multiplier: 0.5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tc.policy.Validate(), ErrInvalidConfig)
		})
	}
}

type scriptedAnalyzer struct {
	errs  []error
	calls int
}

func (s *scriptedAnalyzer) Analyze(context.Context, Request) (domain.Analysis, error) {
	s.calls++
	if s.calls <= len(s.errs) {
		return domain.Analysis{}, s.errs[s.calls-1]
	}
	return domain.Analysis{Root: "r", Mnemonic: "m", Scenario: "s", ScenarioCN: "c"}, nil
}

func transient(n int) []error {
	errs := make([]error, n)
	for i := range errs {
		errs[i] = fmt.Errorf("%w: status 503", ErrTransientFailure)
	}
	return errs
}

func TestRetryingRecoversFromTransientFailures(t *testing.T) {
	t.Parallel()

	inner := &scriptedAnalyzer{errs: transient(4)}
	r, err := NewRetrying(inner, fastPolicy(5), discardLogger)
	require.NoError(t, err)

	a, err := r.Analyze(context.Background(), Request{Word: "w", Meaning: "m"})
	require.NoError(t, err)
	assert.Equal(t, "r", a.Root)
	assert.Equal(t, 5, inner.calls)
}

func TestRetryingGivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	inner := &scriptedAnalyzer{errs: transient(10)}
	r, err := NewRetrying(inner, fastPolicy(5), discardLogger)
	require.NoError(t, err)

	_, err = r.Analyze(context.Background(), Request{Word: "w", Meaning: "m"})
	assert.ErrorIs(t, err, ErrTransientFailure)
	assert.Equal(t, 5, inner.calls)
}

func TestRetryingStopsOnPermanentErrors(t *testing.T) {
	t.Parallel()

	for _, permanent := range []error{ErrInvalidResponse, ErrContentBlocked, ErrDisabled, errors.New("boom")} {
		t.Run(permanent.Error(), func(t *testing.T) {
			t.Parallel()

			inner := &scriptedAnalyzer{errs: []error{permanent}}
			r, err := NewRetrying(inner, fastPolicy(5), discardLogger)
			require.NoError(t, err)

			_, err = r.Analyze(context.Background(), Request{Word: "w", Meaning: "m"})
			assert.ErrorIs(t, err, permanent)
			assert.Equal(t, 1, inner.calls)
		})
	}
}

func TestRetryingHonoursCancellation(t *testing.T) {
	t.Parallel()

	inner := &scriptedAnalyzer{errs: transient(10)}
	r, err := NewRetrying(inner, RetryPolicy{MaxAttempts: 5, BaseDelay: time.Hour, Multiplier: 2}, discardLogger)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = r.Analyze(ctx, Request{Word: "w", Meaning: "m"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, inner.calls)
}

func TestNewRetryingValidation(t *testing.T) {
	t.Parallel()

	_, err := NewRetrying(nil, DefaultRetryPolicy(), discardLogger)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewRetrying(Disabled{}, RetryPolicy{}, discardLogger)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
