package conn

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDBExecuteAndQuery(t *testing.T) {
	ctx := context.Background()
	c := New(setupTestDB(t), nil)

	require.NoError(t, c.Execute(ctx, "CREATE TABLE places (id INTEGER PRIMARY KEY, name TEXT)"))
	require.NoError(t, c.Execute(ctx, "INSERT INTO places (name) VALUES (?), (?)", "a", "b"))

	rows, err := c.Query(ctx, "SELECT name FROM places ORDER BY id")
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestDBSelectString(t *testing.T) {
	ctx := context.Background()
	c := New(setupTestDB(t), nil)

	value, err := c.SelectString(ctx, "SELECT 'POSTGIS=\"3.4.0\"'")
	require.NoError(t, err)
	assert.True(t, value.Valid)
	assert.Equal(t, `POSTGIS="3.4.0"`, value.String)

	value, err = c.SelectString(ctx, "SELECT NULL")
	require.NoError(t, err)
	assert.False(t, value.Valid)

	require.NoError(t, c.Execute(ctx, "CREATE TABLE empty (v TEXT)"))
	value, err = c.SelectString(ctx, "SELECT v FROM empty")
	require.NoError(t, err)
	assert.False(t, value.Valid)
}

func TestDBErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	c := New(setupTestDB(t), nil)

	err := c.Execute(ctx, "NOT SQL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing statement")

	_, err = c.Query(ctx, "SELECT * FROM missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying")

	_, err = c.SelectString(ctx, "SELECT * FROM missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selecting value")
}

func TestDBLogsStatements(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := New(setupTestDB(t), zap.New(core))

	require.NoError(t, c.Execute(context.Background(), "CREATE TABLE t (v TEXT)"))

	entries := logs.FilterMessage("execute").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "CREATE TABLE t (v TEXT)", entries[0].ContextMap()["sql"])
}
