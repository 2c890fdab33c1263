package fluentq

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBunnies(t *testing.T) *DB {
	t.Helper()
	return SetupTestDatabase(t,
		`CREATE TABLE bunnies (name TEXT, species TEXT, color TEXT, ear_length FLOAT)`,
		`INSERT INTO bunnies VALUES ('oliver', 'lop', 'white', 20)`,
		`INSERT INTO bunnies VALUES ('ollie', 'lop', 'grey', 15)`,
		`INSERT INTO bunnies VALUES ('king ollie', 'rex', 'white', 30.57)`,
	)
}

func TestExecuteReturnsRows(t *testing.T) {
	db := setupBunnies(t)

	rows, err := db.Table("bunnies").
		Select("name", "ear_length").
		WhereEq("species", "lop").
		OrderBy("ear_length", "DESC").
		Execute()

	assert.NoError(t, err)
	assert.Equal(t, []Row{
		{"name": "oliver", "ear_length": 20.0},
		{"name": "ollie", "ear_length": 15.0},
	}, rows)
}

func TestExecuteNoMatches(t *testing.T) {
	db := setupBunnies(t)

	rows, err := db.Table("bunnies").
		WhereEq("species", "angora").
		Execute()

	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExecuteNoExecutor(t *testing.T) {
	_, err := Table("bunnies").Execute()

	assert.ErrorIs(t, err, ErrNoExecutor)
}

func TestExecuteWithJoin(t *testing.T) {
	db := SetupTestDatabase(t,
		`CREATE TABLE owners (id INT, name TEXT)`,
		`CREATE TABLE pets (owner_id INT, name TEXT)`,
		`INSERT INTO owners VALUES (1, 'alex')`,
		`INSERT INTO pets VALUES (1, 'ollie')`,
		`INSERT INTO pets VALUES (1, 'captain spud')`,
	)

	rows, err := db.Table("owners").
		Select("owners.name", "pets.name AS pet").
		Join("pets", "owner_id", "", "id").
		OrderBy("pet", "ASC").
		Execute()

	assert.NoError(t, err)
	assert.Equal(t, []Row{
		{"name": "alex", "pet": "captain spud"},
		{"name": "alex", "pet": "ollie"},
	}, rows)
}

func TestCount(t *testing.T) {
	db := setupBunnies(t)

	count, err := db.Table("bunnies").WhereEq("species", "lop").Count()

	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCountNothingMatches(t *testing.T) {
	db := setupBunnies(t)

	count, err := db.Table("bunnies").WhereEq("species", "angora").Count()

	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCountColumnSkipsNulls(t *testing.T) {
	db := SetupTestDatabase(t,
		`CREATE TABLE bunnies (name TEXT, nickname TEXT)`,
		`INSERT INTO bunnies VALUES ('oliver', 'ollie')`,
		`INSERT INTO bunnies VALUES ('captain spud', NULL)`,
	)

	count, err := db.Table("bunnies").Count("nickname")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestExists(t *testing.T) {
	db := setupBunnies(t)

	exists, err := db.Table("bunnies").WhereEq("color", "white").Exists()
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = db.Table("bunnies").WhereEq("color", "purple").Exists()
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestBuilderIsReusableAsTemplate(t *testing.T) {
	db := setupBunnies(t)

	lops := db.Table("bunnies").WhereEq("species", "lop")

	count, err := lops.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	whiteLops, err := lops.WhereEq("color", "white").Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), whiteLops)

	// The template is unchanged by the branch and by its own terminal.
	count, err = lops.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestExecuteRaw(t *testing.T) {
	db := setupBunnies(t)

	rows, err := db.Table("bunnies").
		ExecuteRaw(`SELECT name FROM bunnies WHERE color = ? ORDER BY name`, "white")

	assert.NoError(t, err)
	assert.Equal(t, []Row{
		{"name": "king ollie"},
		{"name": "oliver"},
	}, rows)
}

func TestExecuteRawLeavesStateAlone(t *testing.T) {
	db := setupBunnies(t)

	b := db.Table("bunnies").WhereEq("species", "lop")

	_, err := b.ExecuteRaw(`SELECT name FROM bunnies WHERE color = ?`, "white")
	require.NoError(t, err)

	query, args, err := b.SQL()
	assert.NoError(t, err)
	assert.Equal(t, `SELECT * FROM bunnies WHERE species = ?`, query)
	assert.Equal(t, []any{"lop"}, args)
}

func TestExecRaw(t *testing.T) {
	db := setupBunnies(t)

	result, err := db.Raw().
		ExecRaw(`UPDATE bunnies SET color = ? WHERE species = ?`, "golden", "lop")

	assert.NoError(t, err)
	affected, err := result.RowsAffected()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), affected)
}

func TestValuesAreNeverInterpolated(t *testing.T) {
	db := setupBunnies(t)

	hostile := `ollie'); DROP TABLE bunnies;--`

	_, err := db.Table("bunnies").Insert(map[string]any{
		"name":    hostile,
		"species": "lop",
	})
	require.NoError(t, err)

	// The table survived and the value round-trips byte for byte.
	rows, err := db.Table("bunnies").
		Select("name").
		WhereEq("name", hostile).
		Execute()

	assert.NoError(t, err)
	assert.Equal(t, []Row{{"name": hostile}}, rows)
}

func TestQueryErrorCarriesStatement(t *testing.T) {
	db := setupBunnies(t)

	_, err := db.Table("no_such_table").Execute()
	require.Error(t, err)

	var queryErr *QueryError
	require.True(t, errors.As(err, &queryErr))
	assert.Equal(t, "execute", queryErr.Op)
	assert.Equal(t, `SELECT * FROM no_such_table`, queryErr.Query)
	assert.Error(t, queryErr.Unwrap())
}
