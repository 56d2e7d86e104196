// Package fs provides a file-based textgrab.ResultStore.
package fs

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/textgrab"
)

// URLToPath converts a URL to a relative .txt file path.
// The directory mirrors everything after the scheme; the file is named after
// the last path segment up to its first dot.
// Example: https://example.com/news/story.html → example.com/news/story.txt
func URLToPath(rawURL string) (string, error) {
	i := strings.Index(rawURL, "://")
	if i < 0 {
		return "", textgrab.Errorf(textgrab.EINVALID, "URL %q has no scheme", rawURL)
	}

	p := strings.TrimSuffix(rawURL[i+3:], "/")
	if p == "" {
		return "", textgrab.Errorf(textgrab.EINVALID, "URL %q has no host", rawURL)
	}

	dir, last := "", p
	if j := strings.LastIndex(p, "/"); j >= 0 {
		dir, last = p[:j], p[j+1:]
	}

	stem, _, _ := strings.Cut(last, ".")
	if stem == "" {
		stem = "index"
	}

	rel := filepath.Join(filepath.FromSlash(dir), stem+".txt")
	if !filepath.IsLocal(rel) {
		return "", textgrab.Errorf(textgrab.EINVALID, "URL %q maps outside the output directory", rawURL)
	}
	return rel, nil
}

// Ensure ResultStore implements textgrab.ResultStore at compile time.
var _ textgrab.ResultStore = (*ResultStore)(nil)

// ResultStore writes each result to its own text file under a base directory.
// Writes go to a temporary file that is linked into place on Close, so an
// existing file always holds a complete result.
type ResultStore struct {
	baseDir string
}

// NewResultStore creates a new ResultStore rooted at baseDir.
func NewResultStore(baseDir string) *ResultStore {
	return &ResultStore{baseDir: baseDir}
}

// Location returns the path of the result file for url.
func (s *ResultStore) Location(url string) (string, error) {
	rel, err := URLToPath(url)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, rel), nil
}

// Exists reports whether the result file for url is present.
func (s *ResultStore) Exists(ctx context.Context, url string) (bool, error) {
	path, err := s.Location(url)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Open creates the parent directories and a temporary file for url.
func (s *ResultStore) Open(ctx context.Context, url string) (textgrab.ResultWriter, error) {
	path, err := s.Location(url)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		return nil, textgrab.Errorf(textgrab.ECONFLICT, "result file %s already exists", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, err
	}

	return &fileWriter{f: f, w: bufio.NewWriter(f), path: path}, nil
}

type fileWriter struct {
	f    *os.File
	w    *bufio.Writer
	path string
}

func (w *fileWriter) WriteLine(line string) error {
	if _, err := w.w.WriteString(line); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Close flushes the temporary file and links it to the final path.
// Linking fails instead of overwriting if another writer committed first.
func (w *fileWriter) Close() error {
	if err := w.w.Flush(); err != nil {
		_ = w.Abort()
		return err
	}
	if err := w.f.Close(); err != nil {
		_ = os.Remove(w.f.Name())
		return err
	}
	if err := os.Link(w.f.Name(), w.path); err != nil {
		_ = os.Remove(w.f.Name())
		if errors.Is(err, os.ErrExist) {
			return textgrab.Errorf(textgrab.ECONFLICT, "result file %s already exists", w.path)
		}
		return err
	}
	return os.Remove(w.f.Name())
}

func (w *fileWriter) Abort() error {
	_ = w.f.Close()
	return os.Remove(w.f.Name())
}
