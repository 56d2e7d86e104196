package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/textgrab"
	"github.com/fwojciec/textgrab/bloom"
	"github.com/google/uuid"
)

// Expected result count and false positive rate used to size the filter.
const (
	filterCapacity = 100_000
	filterFPRate   = 0.001
)

// Compile-time interface verification.
var _ textgrab.ResultStore = (*ResultStore)(nil)

// Result is a stored extraction result.
type Result struct {
	ID          string
	URL         string
	Content     string
	ContentHash string
	CreatedAt   time.Time
}

// ResultStore implements textgrab.ResultStore using SQLite. One row holds
// all lines of a result joined by newlines, titles first.
//
// A bloom filter of stored URLs answers most Exists calls for new URLs
// without touching the database.
type ResultStore struct {
	db *DB

	mu     sync.Mutex
	loaded bool
	filter *bloom.Filter
}

// NewResultStore creates a new ResultStore.
func NewResultStore(db *DB) *ResultStore {
	return &ResultStore{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// load fills the filter with every stored URL. A failed load is retried on
// the next call.
func (s *ResultStore) load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	filter := bloom.NewFilter(filterCapacity, filterFPRate)

	rows, err := s.db.QueryContext(ctx, `SELECT url FROM results`)
	if err != nil {
		return fmt.Errorf("failed to load stored URLs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return err
		}
		filter.Add(url)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	s.filter, s.loaded = filter, true
	return nil
}

// Exists reports whether a result row for url exists.
func (s *ResultStore) Exists(ctx context.Context, url string) (bool, error) {
	if err := s.load(ctx); err != nil {
		return false, err
	}
	if !s.filter.Test(url) {
		return false, nil
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results WHERE url = ?`, url).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Open returns a writer that buffers lines and inserts the row on Close.
func (s *ResultStore) Open(ctx context.Context, url string) (textgrab.ResultWriter, error) {
	exists, err := s.Exists(ctx, url)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, textgrab.Errorf(textgrab.ECONFLICT, "result for %s already exists", url)
	}
	return &resultWriter{ctx: ctx, store: s, url: url}, nil
}

// Location identifies the row by database path and URL.
func (s *ResultStore) Location(url string) (string, error) {
	return s.db.Path() + "#" + url, nil
}

// FindResultByURL retrieves the stored result for url.
// Returns ENOTFOUND if there is none.
func (s *ResultStore) FindResultByURL(ctx context.Context, url string) (*Result, error) {
	var r Result
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, content, content_hash, created_at
		FROM results
		WHERE url = ?
	`, url).Scan(&r.ID, &r.URL, &r.Content, &r.ContentHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, textgrab.Errorf(textgrab.ENOTFOUND, "result for %s not found", url)
	}
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &r, nil
}

func (s *ResultStore) insert(ctx context.Context, url string, lines []string) error {
	content := strings.Join(lines, "\n")

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (id, url, content, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), url, content, hashContent(content), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return textgrab.Errorf(textgrab.ECONFLICT, "result for %s already exists", url)
		}
		return err
	}

	s.filter.Add(url)
	return nil
}

type resultWriter struct {
	ctx   context.Context
	store *ResultStore
	url   string
	lines []string
	done  bool
}

func (w *resultWriter) WriteLine(line string) error {
	if w.done {
		return textgrab.Errorf(textgrab.EINVALID, "result writer for %s is closed", w.url)
	}
	w.lines = append(w.lines, line)
	return nil
}

func (w *resultWriter) Close() error {
	if w.done {
		return nil
	}
	w.done = true
	return w.store.insert(w.ctx, w.url, w.lines)
}

func (w *resultWriter) Abort() error {
	w.done = true
	w.lines = nil
	return nil
}
