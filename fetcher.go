package textgrab

import "context"

// Fetcher retrieves a page and returns its HTML decoded to UTF-8.
type Fetcher interface {
	// Fetch downloads the URL and decodes the body using the declared or
	// detected character encoding.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// HostLimiter provides per-host rate limiting.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
