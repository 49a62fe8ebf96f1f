package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds how long and how often a chat call is attempted.
type RetryPolicy struct {
	MaxRetries int
	Timeout    time.Duration // per attempt; zero means no deadline
	Backoff    time.Duration // first retry delay, grown exponentially; zero retries at once
}

type retryingClient struct {
	next   ChatClient
	policy RetryPolicy
}

// WithRetry wraps next with per-attempt deadlines and retries on
// transient failures: unreachable backend, timeout, 5xx and 429.
// Retries are spaced by a jittered exponential backoff starting at
// policy.Backoff. Caller cancellation and 4xx responses are returned
// immediately.
func WithRetry(next ChatClient, policy RetryPolicy) ChatClient {
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	return &retryingClient{next: next, policy: policy}
}

func (c *retryingClient) Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error) {
	var lastErr error
	attempts := 1 + c.policy.MaxRetries
	delays := c.newBackOff()

	for i := 0; i < attempts; i++ {
		if i > 0 && wait(ctx, delays.NextBackOff()) != nil {
			break
		}
		text, err := c.attempt(ctx, messages, opts)
		if err == nil {
			return text, nil
		}
		lastErr = err

		// Don't retry once the caller gave up.
		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}

	if ctx.Err() != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, lastErr)
		}
		return "", ctx.Err()
	}
	if c.policy.MaxRetries == 0 || !retryable(lastErr) {
		return "", lastErr
	}
	return "", fmt.Errorf("%w: %w", ErrRetryExhausted, lastErr)
}

func (c *retryingClient) newBackOff() backoff.BackOff {
	if c.policy.Backoff <= 0 {
		return &backoff.ZeroBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.policy.Backoff
	b.MaxInterval = 8 * c.policy.Backoff
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// wait sleeps for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *retryingClient) attempt(ctx context.Context, messages []Message, opts ChatOptions) (string, error) {
	if c.policy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.policy.Timeout)
		defer cancel()
	}
	text, err := c.next.Chat(ctx, messages, opts)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
		err = fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return text, err
}

func retryable(err error) bool {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return statusErr.Temporary()
	case errors.Is(err, ErrTimeout), errors.Is(err, ErrOllamaUnavailable):
		return true
	default:
		return false
	}
}
