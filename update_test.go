package fluentq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateSQL(t *testing.T) {
	query, args, err := Table("bunnies").
		WhereEq("name", "oliver").
		buildUpdate(map[string]any{
			"name":       "king oliver",
			"ear_length": 30,
		})

	assert.NoError(t, err)
	assert.Equal(t, `UPDATE bunnies SET ear_length = ?, name = ? WHERE name = ?`, query)
	assert.Equal(t, []any{30, "king oliver", "oliver"}, args)
}

func TestUpdateWithoutWhere(t *testing.T) {
	query, args, err := Table("bunnies").buildUpdate(map[string]any{"is_mortal": false})

	assert.NoError(t, err)
	assert.Equal(t, `UPDATE bunnies SET is_mortal = ?`, query)
	assert.Equal(t, []any{false}, args)
}

func TestUpdateNoColumns(t *testing.T) {
	_, err := Table("bunnies").Update(map[string]any{})

	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestUpdateSurfacesDeferredError(t *testing.T) {
	_, err := Table("bunnies").
		WhereIn("color").
		Update(map[string]any{"is_mortal": false})

	assert.ErrorIs(t, err, ErrEmptyIn)
}

func TestUpdateAndExec(t *testing.T) {
	db := SetupTestDatabase(t,
		`CREATE TABLE bunny_kingdom (name TEXT, ear_length FLOAT)`,
		`INSERT INTO bunny_kingdom VALUES ('oliver', 20)`,
		`INSERT INTO bunny_kingdom VALUES ('ollie', 15)`,
	)

	result, err := db.Table("bunny_kingdom").
		WhereEq("name", "oliver").
		Update(map[string]any{"name": "king oliver", "ear_length": 30})

	assert.NoError(t, err)
	affected, err := result.RowsAffected()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	rows, err := db.Table("bunny_kingdom").WhereEq("name", "king oliver").Execute()
	assert.NoError(t, err)
	assert.Equal(t, []Row{{"name": "king oliver", "ear_length": 30.0}}, rows)
}

func TestUpdateMatchingNothing(t *testing.T) {
	db := SetupTestDatabase(t,
		`CREATE TABLE bunny_kingdom (name TEXT, ear_length FLOAT)`,
		`INSERT INTO bunny_kingdom VALUES ('oliver', 20)`,
	)

	result, err := db.Table("bunny_kingdom").
		WhereEq("name", "nobody").
		Update(map[string]any{"ear_length": 0})

	assert.NoError(t, err)
	affected, err := result.RowsAffected()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}
