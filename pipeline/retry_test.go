package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/textgrab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns first success", func(t *testing.T) {
		t.Parallel()

		var attempts int
		f := &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
			attempts++
			return "<html></html>", nil
		}}

		html, err := fetchWithRetry(context.Background(), f, "https://a.com", []time.Duration{0, 0}, nil)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, attempts)
	})

	t.Run("gives up after all delays and returns last error", func(t *testing.T) {
		t.Parallel()

		var attempts int
		var retried []int
		f := &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
			attempts++
			return "", errors.New("boom")
		}}

		_, err := fetchWithRetry(context.Background(), f, "https://a.com", []time.Duration{0, 0}, func(attempt int, _ error) {
			retried = append(retried, attempt)
		})

		require.EqualError(t, err, "boom")
		assert.Equal(t, 3, attempts)
		assert.Equal(t, []int{2, 3}, retried)
	})

	t.Run("stops waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		f := &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
			cancel()
			return "", errors.New("boom")
		}}

		_, err := fetchWithRetry(ctx, f, "https://a.com", []time.Duration{time.Hour}, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
