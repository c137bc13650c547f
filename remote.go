package gotrans

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// Remote engines (see engine.OpenAIInvoker) are metered and retried before
// the fallback chain gives up on them. Local engines need neither.

// RetryConfig controls exponential backoff for retryable engine errors.
type RetryConfig struct {
	MaxRetries int           // Retries after the first attempt
	BaseDelay  time.Duration // Delay before the first retry, doubled per retry
	MaxDelay   time.Duration // Upper bound for a single delay
}

// DefaultRetryConfig returns the retry settings used for remote engines.
// They are short because a lookup still has the rest of the catalog to try.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 2,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   5 * time.Second,
	}
}

func (c RetryConfig) backoff(retry int) time.Duration {
	d := c.BaseDelay << uint(retry)
	if d > c.MaxDelay || d <= 0 {
		return c.MaxDelay
	}
	return d
}

// WithRetry calls fn until it succeeds, fails with an error IsRetryable
// rejects, runs out of retries or ctx ends.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	var zero T

	for retry := 0; ; retry++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		v, err := fn()
		switch {
		case err == nil:
			return v, nil
		case retry >= cfg.MaxRetries || !IsRetryable(err):
			return zero, err
		}

		if err := sleepCtx(ctx, cfg.backoff(retry)); err != nil {
			return zero, err
		}
	}
}

// IsRetryable reports whether err is an EngineError marked retryable.
// Context errors are never retryable.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var engineErr *EngineError
	return errors.As(err, &engineErr) && engineErr.Retryable
}

// RetryableInvoker retries retryable failures of the wrapped invoker.
type RetryableInvoker struct {
	invoker EngineInvoker
	config  RetryConfig
}

// NewRetryableInvoker wraps invoker with cfg's retry policy.
func NewRetryableInvoker(invoker EngineInvoker, cfg RetryConfig) *RetryableInvoker {
	return &RetryableInvoker{invoker: invoker, config: cfg}
}

// Invoke calls the wrapped invoker under the retry policy.
func (r *RetryableInvoker) Invoke(ctx context.Context, engine EngineID, lang, word string) (string, error) {
	return WithRetry(ctx, r.config, func() (string, error) {
		return r.invoker.Invoke(ctx, engine, lang, word)
	})
}

// RateLimitConfig configures a RateLimiter.
type RateLimitConfig struct {
	RequestsPerMinute int // Sustained rate (default: 60)
	BurstSize         int // Bucket size (default: RequestsPerMinute)
}

// RateLimiter meters calls to a remote engine. It starts with a full burst.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a RateLimiter, filling in defaults for zero fields.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = rpm
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60), burst),
	}
}

// Wait blocks until a token is taken or ctx ends. It fails at once when
// ctx's deadline comes before the next token.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// TryAcquire takes a token if one is available.
func (r *RateLimiter) TryAcquire() bool {
	return r.limiter.Allow()
}

// Available returns the current, possibly fractional, token count.
func (r *RateLimiter) Available() float64 {
	return r.limiter.Tokens()
}

// RateLimitedInvoker meters calls to the wrapped invoker.
type RateLimitedInvoker struct {
	invoker EngineInvoker
	limiter *RateLimiter
}

// NewRateLimitedInvoker wraps invoker with a RateLimiter built from cfg.
func NewRateLimitedInvoker(invoker EngineInvoker, cfg RateLimitConfig) *RateLimitedInvoker {
	return &RateLimitedInvoker{invoker: invoker, limiter: NewRateLimiter(cfg)}
}

// Invoke waits for a token, then calls the wrapped invoker. A wait cut short
// by ctx is reported as a non-retryable EngineError.
func (r *RateLimitedInvoker) Invoke(ctx context.Context, engine EngineID, lang, word string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", &EngineError{Engine: engine, Message: "rate limit wait cancelled", Cause: err}
	}
	return r.invoker.Invoke(ctx, engine, lang, word)
}

// Limiter returns the limiter shared by all calls through r.
func (r *RateLimitedInvoker) Limiter() *RateLimiter {
	return r.limiter
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
