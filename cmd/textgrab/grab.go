package main

import (
	"fmt"

	"github.com/fwojciec/textgrab"
	"github.com/fwojciec/textgrab/pipeline"
)

// GrabCmd saves the text of each URL.
type GrabCmd struct {
	URLs []string
}

// Run processes every URL and reports each outcome. Per-URL failures are
// reported but do not make the command fail.
func (c *GrabCmd) Run(deps *Dependencies) error {
	p := &pipeline.Pipeline{
		Fetcher:   deps.Fetcher,
		Parser:    deps.Parser,
		Store:     deps.Store,
		Selectors: deps.Selectors,
		Limiter:   deps.Limiter,
		Logger:    deps.Logger,
		Width:     textgrab.DefaultLineWidth,
	}

	counts := make(map[pipeline.Status]int)
	p.Run(deps.Ctx, c.URLs, func(r *pipeline.Result) {
		counts[r.Status]++
		switch r.Status {
		case pipeline.StatusParsed:
			fmt.Fprintf(deps.Stdout, "Url %s was parsed to file %s\n", r.URL, r.Location)
		case pipeline.StatusSkipped:
			fmt.Fprintf(deps.Stdout, "Url %s already parsed to file %s\n", r.URL, r.Location)
		case pipeline.StatusInvalid:
			fmt.Fprintf(deps.Stderr, "skip %s: not a valid URL\n", r.URL)
		case pipeline.StatusFailed:
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", r.URL, r.Err)
		}
	})

	fmt.Fprintf(deps.Stdout, "Done: %d parsed, %d already parsed, %d invalid, %d failed\n",
		counts[pipeline.StatusParsed],
		counts[pipeline.StatusSkipped],
		counts[pipeline.StatusInvalid],
		counts[pipeline.StatusFailed],
	)
	return nil
}
