package mock

import (
	"context"

	"github.com/fwojciec/textgrab"
)

var (
	_ textgrab.ResultStore  = (*ResultStore)(nil)
	_ textgrab.ResultWriter = (*ResultWriter)(nil)
)

// ResultStore is a mock implementation of textgrab.ResultStore.
type ResultStore struct {
	ExistsFn   func(ctx context.Context, url string) (bool, error)
	OpenFn     func(ctx context.Context, url string) (textgrab.ResultWriter, error)
	LocationFn func(url string) (string, error)
}

func (s *ResultStore) Exists(ctx context.Context, url string) (bool, error) {
	return s.ExistsFn(ctx, url)
}

func (s *ResultStore) Open(ctx context.Context, url string) (textgrab.ResultWriter, error) {
	return s.OpenFn(ctx, url)
}

func (s *ResultStore) Location(url string) (string, error) {
	return s.LocationFn(url)
}

// ResultWriter is a mock implementation of textgrab.ResultWriter.
type ResultWriter struct {
	WriteLineFn func(line string) error
	CloseFn     func() error
	AbortFn     func() error
}

func (w *ResultWriter) WriteLine(line string) error {
	return w.WriteLineFn(line)
}

func (w *ResultWriter) Close() error {
	return w.CloseFn()
}

func (w *ResultWriter) Abort() error {
	return w.AbortFn()
}
