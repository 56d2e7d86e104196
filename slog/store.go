package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/textgrab"
)

// Ensure LoggingResultStore implements textgrab.ResultStore.
var _ textgrab.ResultStore = (*LoggingResultStore)(nil)

// LoggingResultStore wraps a ResultStore with debug logging.
type LoggingResultStore struct {
	next   textgrab.ResultStore
	logger *slog.Logger
}

// NewLoggingResultStore creates a new LoggingResultStore.
func NewLoggingResultStore(next textgrab.ResultStore, logger *slog.Logger) *LoggingResultStore {
	return &LoggingResultStore{next: next, logger: logger}
}

// Exists delegates to the wrapped store and logs the answer.
func (s *LoggingResultStore) Exists(ctx context.Context, url string) (exists bool, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("result exists",
			"url", url,
			"exists", exists,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Exists(ctx, url)
}

// Open delegates to the wrapped store. The returned writer logs the number
// of lines written when it is closed or aborted.
func (s *LoggingResultStore) Open(ctx context.Context, url string) (textgrab.ResultWriter, error) {
	w, err := s.next.Open(ctx, url)
	if err != nil {
		s.logger.Debug("result open", "url", url, "err", err)
		return nil, err
	}
	return &loggingWriter{next: w, url: url, logger: s.logger, begin: time.Now()}, nil
}

// Location delegates to the wrapped store.
func (s *LoggingResultStore) Location(url string) (string, error) {
	return s.next.Location(url)
}

type loggingWriter struct {
	next   textgrab.ResultWriter
	url    string
	logger *slog.Logger
	begin  time.Time
	lines  int
	bytes  int
}

func (w *loggingWriter) WriteLine(line string) error {
	if err := w.next.WriteLine(line); err != nil {
		return err
	}
	w.lines++
	w.bytes += len(line) + 1
	return nil
}

func (w *loggingWriter) Close() (err error) {
	defer func() {
		w.logger.Debug("result commit",
			"url", w.url,
			"lines", w.lines,
			"bytes", w.bytes,
			"duration", time.Since(w.begin),
			"err", err,
		)
	}()
	return w.next.Close()
}

func (w *loggingWriter) Abort() (err error) {
	defer func() {
		w.logger.Debug("result abort",
			"url", w.url,
			"lines", w.lines,
			"err", err,
		)
	}()
	return w.next.Abort()
}
