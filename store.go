package textgrab

import "context"

// ResultStore persists extracted text, one result per URL.
//
// A URL that already has a result is skipped by the pipeline without being
// fetched again, so Exists must be checked before Open.
type ResultStore interface {
	// Exists reports whether a result for the URL was already written.
	Exists(ctx context.Context, url string) (bool, error)

	// Open returns a writer for the URL's result.
	// Returns ECONFLICT if a result already exists.
	Open(ctx context.Context, url string) (ResultWriter, error)

	// Location describes where the URL's result is stored, for reporting.
	Location(url string) (string, error)
}

// ResultWriter receives the lines of a single result.
// Nothing is visible to Exists until Close succeeds.
type ResultWriter interface {
	WriteLine(line string) error

	// Close commits the result.
	Close() error

	// Abort discards everything written so far.
	Abort() error
}
