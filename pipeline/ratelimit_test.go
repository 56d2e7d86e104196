package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/textgrab"
	"github.com/fwojciec/textgrab/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements textgrab.HostLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ textgrab.HostLimiter = pipeline.NewHostLimiter(1)
	})

	t.Run("allows immediate first request", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewHostLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("spaces requests to the same host", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewHostLimiter(10) // 100ms between requests

		require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("hosts are limited independently", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewHostLimiter(1)

		require.NoError(t, limiter.Wait(context.Background(), "a.com"))
		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "b.com"))

		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("returns error when context is canceled", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewHostLimiter(0.1)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "example.com"))
	})
}
