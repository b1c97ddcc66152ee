package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzalewski/fragset"
	"github.com/mzalewski/fragset/crawl"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	fastDelays := []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}

	t.Run("returns result on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (*fragset.FetchResult, error) {
			calls++
			return &fragset.FetchResult{HTML: "<html></html>", StatusCode: 200}, nil
		}

		result, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, fastDelays)
		require.NoError(t, err)
		assert.Equal(t, 200, result.StatusCode)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transport errors and succeeds", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (*fragset.FetchResult, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("connection reset")
			}
			return &fragset.FetchResult{HTML: "ok", StatusCode: 200}, nil
		}

		result, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, fastDelays)
		require.NoError(t, err)
		assert.Equal(t, "ok", result.HTML)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry HTTP error statuses", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (*fragset.FetchResult, error) {
			calls++
			return &fragset.FetchResult{HTML: "not found", StatusCode: 404}, nil
		}

		result, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, fastDelays)
		require.NoError(t, err)
		assert.Equal(t, 404, result.StatusCode)
		assert.Equal(t, 1, calls, "a 404 is a successful fetch, not a retryable failure")
	})

	t.Run("returns last error after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (*fragset.FetchResult, error) {
			calls++
			return nil, errors.New("refused")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, fastDelays)
		require.Error(t, err)
		assert.Equal(t, "refused", err.Error())
		assert.Equal(t, 4, calls, "1 initial + 3 retries")
	})

	t.Run("stops when context is canceled between attempts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(ctx context.Context, url string) (*fragset.FetchResult, error) {
			cancel()
			return nil, errors.New("refused")
		}

		_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com", fetch, []time.Duration{time.Hour})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
