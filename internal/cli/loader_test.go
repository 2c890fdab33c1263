package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluentq/fluentq"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadQueryFile(t *testing.T) {
	path := writeTempFile(t, "query.yaml", `
table: bunnies
select: [name, ear_length]
where:
  - column: species
    operator: "="
    value: lop
where_in:
  - column: color
    values: [white, grey]
order_by:
  - column: ear_length
    direction: desc
limit: 10
offset: 5
`)

	qf, err := LoadQueryFile(path)
	require.NoError(t, err)

	query, args, err := qf.Apply(fluentq.Table(qf.Table)).SQL()
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT name, ear_length FROM bunnies WHERE species = ? AND color IN (?, ?) ORDER BY ear_length DESC LIMIT 10 OFFSET 5`,
		query)
	assert.Equal(t, []any{"lop", "white", "grey"}, args)
}

func TestLoadQueryFileWithJoinsAndHaving(t *testing.T) {
	path := writeTempFile(t, "query.yaml", `
table: owners
select: [owners.name, "COUNT(*) AS pets"]
joins:
  - table: pets
    foreign: owner_id
    local: id
  - table: vets
    foreign: id
    local: vet_id
    left: true
group_by: [owners.name]
having:
  - column: COUNT(*)
    operator: ">"
    value: 1
`)

	qf, err := LoadQueryFile(path)
	require.NoError(t, err)

	query, args, err := qf.Apply(fluentq.Table(qf.Table)).SQL()
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT owners.name, COUNT(*) AS pets FROM owners INNER JOIN pets ON pets.owner_id = owners.id LEFT JOIN vets ON vets.id = owners.vet_id GROUP BY owners.name HAVING COUNT(*) > ?`,
		query)
	assert.Equal(t, []any{1}, args)
}

func TestLoadQueryFileNoTable(t *testing.T) {
	path := writeTempFile(t, "query.yaml", `select: [name]`)

	_, err := LoadQueryFile(path)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Message, "no table")
}

func TestLoadQueryFileMissing(t *testing.T) {
	_, err := LoadQueryFile(filepath.Join(t.TempDir(), "nope.yaml"))

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoadConnectionFileDefaultsToMySQL(t *testing.T) {
	path := writeTempFile(t, "conn.yaml", `
host: db.internal
database: app
username: svc
password: hunter2
`)

	conn, err := LoadConnectionFile(path)
	require.NoError(t, err)

	assert.Equal(t, "mysql", conn.Driver)
	assert.Equal(t, "db.internal", conn.Config.Host)
	assert.Equal(t, "app", conn.Config.Database)
}

func TestLoadConnectionFileNeedsDSNForOtherDrivers(t *testing.T) {
	path := writeTempFile(t, "conn.yaml", `driver: sqlite3`)

	_, err := LoadConnectionFile(path)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Message, "dsn")
}

func TestLoadConnectionFileSQLite(t *testing.T) {
	path := writeTempFile(t, "conn.yaml", `
driver: sqlite3
dsn: /tmp/test.db
`)

	conn, err := LoadConnectionFile(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", conn.Driver)
	assert.Equal(t, "/tmp/test.db", conn.DSN)
}

func TestLoadConnectionFileBadYAML(t *testing.T) {
	path := writeTempFile(t, "conn.yaml", `driver: [not, a, string`)

	_, err := LoadConnectionFile(path)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}
