package engine

import (
	"context"
	"errors"
	"time"

	"github.com/oukeidos/litra/internal/apperrors"
	"github.com/oukeidos/litra/internal/llm"
	"github.com/oukeidos/litra/internal/logger"
)

const (
	maxAttempts = 5

	backoffBase          = 3 * time.Second
	backoffBaseRateLimit = 5 * time.Second
	maxBackoff           = 60 * time.Second
)

// call runs one completion with retries. Usage is accounted once per
// successful call; failed attempts never touch the counters.
func (e *Engine) call(ctx context.Context, system, user string, temperature float64, maxTokens int, useCache bool) (string, error) {
	req := llm.Request{
		MaxTokens:   maxTokens,
		Temperature: temperature,
		System:      system,
		CacheSystem: useCache,
		User:        user,
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := e.client.Complete(ctx, req)
		if err == nil {
			e.stats.addUsage(resp.Usage)
			return resp.Text, nil
		}
		lastErr = err

		retry, backoff := retryDecision(ctx, err, attempt)
		if !retry {
			break
		}
		logger.Warn("Completion call failed, retrying",
			"attempt", attempt, "backoff", backoff, "error", apperrors.PublicMessage(err))
		if serr := e.sleep(ctx, backoff); serr != nil {
			return "", serr
		}
	}
	return "", lastErr
}

// retryDecision maps the classified error kind to a backoff policy:
// rate-limited calls wait on a larger base than other transient failures.
func retryDecision(ctx context.Context, err error, attempt int) (bool, time.Duration) {
	if err == nil {
		return false, 0
	}
	if attempt >= maxAttempts {
		return false, 0
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false, 0
	}
	if !apperrors.IsRetryable(err) {
		return false, 0
	}

	base := backoffBase
	if apperrors.IsRateLimit(err) {
		base = backoffBaseRateLimit
	}
	backoff := base << (attempt - 1)
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	return true, backoff
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
