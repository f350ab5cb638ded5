package publish

import (
	"context"
	"time"
)

// FetchFunc fetches the resource at url, returning its bytes and the
// Content-Type reported by the server.
type FetchFunc func(ctx context.Context, url string) ([]byte, string, error)

// LogFunc logs a retry attempt.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the standard backoff schedule for image
// fetches: three retries at 1s, 2s and 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
	}
}

// FetchWithRetry calls fetch with the default backoff schedule.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logf LogFunc) ([]byte, string, error) {
	return FetchWithRetryDelays(ctx, url, fetch, logf, DefaultRetryDelays())
}

// FetchWithRetryDelays calls fetch until it succeeds or the delays are
// exhausted. A schedule of n delays allows n+1 attempts. Context
// cancellation aborts the wait between attempts.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logf LogFunc, delays []time.Duration) ([]byte, string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		data, contentType, err := fetch(ctx, url)
		if err == nil {
			return data, contentType, nil
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}
		if logf != nil {
			logf("fetch failed (attempt %d/%d): %v", attempt, maxAttempts, err)
		}
		select {
		case <-ctx.Done():
			return nil, "", ctx.Err()
		case <-time.After(delays[attempt-1]):
		}
	}
	return nil, "", lastErr
}
