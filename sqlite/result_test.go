package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/textgrab"
	"github.com/fwojciec/textgrab/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		var n int
		err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM results").Scan(&n)

		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")

		require.Error(t, db.Open())
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, db.Open())
		defer db.Close()

		var mode string
		err := db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode)

		require.NoError(t, err)
		assert.Equal(t, "wal", mode)
	})
}

func TestResultStore(t *testing.T) {
	t.Parallel()

	const url = "https://example.com/news/story.html"

	t.Run("stores all lines on close", func(t *testing.T) {
		t.Parallel()

		// Given: an empty store
		store := sqlite.NewResultStore(setupTestDB(t))
		ctx := context.Background()

		// When: writing a result
		w, err := store.Open(ctx, url)
		require.NoError(t, err)
		require.NoError(t, w.WriteLine("Title"))
		require.NoError(t, w.WriteLine("\nfirst block"))
		require.NoError(t, w.WriteLine("\nsecond block"))
		require.NoError(t, w.Close())

		// Then: the row holds the joined lines
		r, err := store.FindResultByURL(ctx, url)
		require.NoError(t, err)
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, "Title\n\nfirst block\n\nsecond block", r.Content)
		assert.Len(t, r.ContentHash, 16)
		assert.False(t, r.CreatedAt.IsZero())

		exists, err := store.Exists(ctx, url)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("keeps lines unchanged when there is no single title", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			lines []string
			want  string
		}{
			{"no title", []string{"\nonly block"}, "\nonly block"},
			{"two titles", []string{"Main", "Sub", "\nblock"}, "Main\nSub\n\nblock"},
			{"empty result", nil, ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				store := sqlite.NewResultStore(setupTestDB(t))
				ctx := context.Background()

				w, err := store.Open(ctx, url)
				require.NoError(t, err)
				for _, line := range tt.lines {
					require.NoError(t, w.WriteLine(line))
				}
				require.NoError(t, w.Close())

				r, err := store.FindResultByURL(ctx, url)
				require.NoError(t, err)
				assert.Equal(t, tt.want, r.Content)
			})
		}
	})

	t.Run("recovers after a canceled first lookup", func(t *testing.T) {
		t.Parallel()

		// Given: a stored result and a fresh store whose first call is canceled
		db := setupTestDB(t)
		w, err := sqlite.NewResultStore(db).Open(context.Background(), url)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		store := sqlite.NewResultStore(db)
		canceled, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = store.Exists(canceled, url)
		require.Error(t, err)

		// When: checking again with a live context
		exists, err := store.Exists(context.Background(), url)

		// Then: the lookup succeeds
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("result is not visible before close", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewResultStore(setupTestDB(t))
		ctx := context.Background()

		w, err := store.Open(ctx, url)
		require.NoError(t, err)
		require.NoError(t, w.WriteLine("Title"))

		exists, err := store.Exists(ctx, url)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("abort discards the result", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewResultStore(setupTestDB(t))
		ctx := context.Background()

		w, err := store.Open(ctx, url)
		require.NoError(t, err)
		require.NoError(t, w.WriteLine("Title"))
		require.NoError(t, w.Abort())

		exists, err := store.Exists(ctx, url)
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = store.FindResultByURL(ctx, url)
		assert.Equal(t, textgrab.ENOTFOUND, textgrab.ErrorCode(err))
	})

	t.Run("open refuses existing result", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewResultStore(setupTestDB(t))
		ctx := context.Background()

		w, err := store.Open(ctx, url)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		_, err = store.Open(ctx, url)

		require.Error(t, err)
		assert.Equal(t, textgrab.ECONFLICT, textgrab.ErrorCode(err))
	})

	t.Run("close reports conflict for concurrent writer", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewResultStore(setupTestDB(t))
		ctx := context.Background()

		first, err := store.Open(ctx, url)
		require.NoError(t, err)
		second, err := store.Open(ctx, url)
		require.NoError(t, err)

		require.NoError(t, first.Close())
		err = second.Close()

		require.Error(t, err)
		assert.Equal(t, textgrab.ECONFLICT, textgrab.ErrorCode(err))
	})

	t.Run("sees results written by an earlier store", func(t *testing.T) {
		t.Parallel()

		// Given: a result written through one store instance
		db := setupTestDB(t)
		ctx := context.Background()
		w, err := sqlite.NewResultStore(db).Open(ctx, url)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		// When: a fresh store checks the same URL
		exists, err := sqlite.NewResultStore(db).Exists(ctx, url)

		// Then: the stored URL is found
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("location names database and URL", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewResultStore(sqlite.NewDB("results.db"))

		loc, err := store.Location(url)

		require.NoError(t, err)
		assert.Equal(t, "results.db#"+url, loc)
	})
}
