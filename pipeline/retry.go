package pipeline

import (
	"context"
	"time"

	"github.com/fwojciec/textgrab"
)

// DefaultRetryDelays returns the backoff delays between fetch attempts: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// fetchWithRetry calls f.Fetch up to len(delays)+1 times, sleeping delays[i]
// before retry i+1. Invalid-input errors such as unsupported content types
// are returned at once.
func fetchWithRetry(ctx context.Context, f textgrab.Fetcher, url string, delays []time.Duration, onRetry func(attempt int, err error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		html, err := f.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt == len(delays) || textgrab.ErrorCode(err) == textgrab.EINVALID {
			break
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return "", lastErr
}
