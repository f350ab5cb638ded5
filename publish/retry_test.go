package publish_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/mailpress/publish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("succeeds after retries", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetch := func(_ context.Context, url string) ([]byte, string, error) {
			attempts++
			if attempts < 3 {
				return nil, "", fmt.Errorf("HTTP 503 for %s", url)
			}
			return []byte("payload"), "image/png", nil
		}

		var logs []string
		logf := func(format string, args ...any) {
			logs = append(logs, fmt.Sprintf(format, args...))
		}

		delays := []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}
		data, contentType, err := publish.FetchWithRetryDelays(context.Background(), "https://cdn.example.com/a.png", fetch, logf, delays)
		require.NoError(t, err)

		assert.Equal(t, []byte("payload"), data)
		assert.Equal(t, "image/png", contentType)
		assert.Equal(t, 3, attempts)
		assert.Len(t, logs, 2)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetch := func(_ context.Context, url string) ([]byte, string, error) {
			attempts++
			return nil, "", fmt.Errorf("HTTP 500 for %s", url)
		}

		delays := []time.Duration{time.Millisecond}
		data, _, err := publish.FetchWithRetryDelays(context.Background(), "https://cdn.example.com/a.png", fetch, nil, delays)
		require.Error(t, err)

		assert.Nil(t, data)
		assert.Equal(t, 2, attempts)
		assert.Contains(t, err.Error(), "HTTP 500")
	})

	t.Run("no delays means a single attempt", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetch := func(_ context.Context, url string) ([]byte, string, error) {
			attempts++
			return nil, "", fmt.Errorf("boom")
		}

		_, _, err := publish.FetchWithRetryDelays(context.Background(), "https://cdn.example.com/a.png", fetch, nil, nil)
		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("context cancellation aborts the wait", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fetch := func(_ context.Context, url string) ([]byte, string, error) {
			return nil, "", fmt.Errorf("boom")
		}

		delays := []time.Duration{time.Minute}
		start := time.Now()
		_, _, err := publish.FetchWithRetryDelays(ctx, "https://cdn.example.com/a.png", fetch, nil, delays)
		require.Error(t, err)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestFetchWithRetry_UsesDefaultSchedule(t *testing.T) {
	t.Parallel()

	fetch := func(_ context.Context, url string) ([]byte, string, error) {
		return []byte("ok"), "image/gif", nil
	}

	data, contentType, err := publish.FetchWithRetry(context.Background(), "https://cdn.example.com/a.gif", fetch, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), data)
	assert.Equal(t, "image/gif", contentType)
}

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	want := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
	assert.Equal(t, want, publish.DefaultRetryDelays())
}
