// Package pipeline runs the fetch, extract and store steps for a list of URLs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/textgrab"
)

// Status is the outcome of processing one URL.
type Status string

// Status values reported in Result.
const (
	StatusInvalid Status = "invalid" // rejected by textgrab.ValidURL
	StatusSkipped Status = "skipped" // result already stored, nothing fetched
	StatusParsed  Status = "parsed"
	StatusFailed  Status = "failed"
)

// Result reports what happened to one input URL.
type Result struct {
	URL      string
	Status   Status
	Location string
	Err      error
}

// ProgressFunc is called after each URL is processed.
type ProgressFunc func(*Result)

// Pipeline processes URLs one at a time. A failure on one URL is reported
// in its Result and never stops the remaining URLs.
type Pipeline struct {
	Fetcher   textgrab.Fetcher
	Parser    textgrab.Parser
	Store     textgrab.ResultStore
	Selectors textgrab.SelectorConfig

	// Limiter throttles requests per host. Optional.
	Limiter textgrab.HostLimiter

	// Logger receives warnings for skipped and failed URLs. Optional.
	Logger *slog.Logger

	// RetryDelays between fetch attempts. Nil uses DefaultRetryDelays;
	// an empty slice disables retries.
	RetryDelays []time.Duration

	// Width of reflowed text blocks. Zero uses textgrab.DefaultLineWidth.
	Width int
}

// Run processes urls in order and returns one Result per URL.
func (p *Pipeline) Run(ctx context.Context, urls []string, progress ProgressFunc) []*Result {
	results := make([]*Result, 0, len(urls))
	for _, url := range urls {
		r := p.process(ctx, url)
		results = append(results, r)
		if progress != nil {
			progress(r)
		}
	}
	return results
}

func (p *Pipeline) process(ctx context.Context, url string) *Result {
	r := &Result{URL: url}

	if err := ctx.Err(); err != nil {
		r.Status, r.Err = StatusFailed, err
		return r
	}

	if !textgrab.ValidURL(url) {
		p.logger().Warn("skipping invalid url", "url", url)
		r.Status = StatusInvalid
		r.Err = textgrab.Errorf(textgrab.EINVALID, "invalid URL %q", url)
		return r
	}

	loc, err := p.Store.Location(url)
	if err != nil {
		return p.fail(r, err)
	}
	r.Location = loc

	exists, err := p.Store.Exists(ctx, url)
	if err != nil {
		return p.fail(r, err)
	}
	if exists {
		r.Status = StatusSkipped
		return r
	}

	if err := p.grab(ctx, url); err != nil {
		return p.fail(r, err)
	}
	r.Status = StatusParsed
	return r
}

// grab fetches, extracts and stores a single URL.
func (p *Pipeline) grab(ctx context.Context, url string) error {
	host, err := textgrab.Host(url)
	if err != nil {
		return err
	}

	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx, host); err != nil {
			return err
		}
	}

	html, err := fetchWithRetry(ctx, p.Fetcher, url, p.retryDelays(), func(attempt int, err error) {
		p.logger().Info("retrying fetch", "url", url, "attempt", attempt, "err", err)
	})
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	doc, err := p.Parser.Parse(html)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	e, err := textgrab.Extract(doc, p.Selectors.Resolve(host), p.Width)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	w, err := p.Store.Open(ctx, url)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	for _, line := range e.Lines() {
		if err := w.WriteLine(line); err != nil {
			_ = w.Abort()
			return fmt.Errorf("store: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

func (p *Pipeline) fail(r *Result, err error) *Result {
	p.logger().Warn("failed to process url", "url", r.URL, "err", err)
	r.Status, r.Err = StatusFailed, err
	return r
}

func (p *Pipeline) retryDelays() []time.Duration {
	if p.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return p.RetryDelays
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}
