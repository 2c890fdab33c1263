package fluentq

import (
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// SetupTestDatabase opens a throwaway sqlite database wrapped in a DB and
// runs the provided queries as a setup step. sqlite understands the same
// positional-placeholder SQL the builder renders, which keeps tests free of
// a live MySQL server.
func SetupTestDatabase(t *testing.T, setupQueries ...string) *DB {
	t.Helper()

	// Create the file under t.TempDir so the sqlite file is not populating
	// random directories.
	db, err := Open("sqlite3", filepath.Join(t.TempDir(), "fluentq-test.db"))
	require.NoError(t, err, "could not connect to sqlite3")
	t.Cleanup(func() { _ = db.Close() })

	for _, query := range setupQueries {
		_, err := db.Exec(query)
		require.NoError(t, err, "failed to run setup queries")
	}

	return db
}
