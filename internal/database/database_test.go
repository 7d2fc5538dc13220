package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"users", "sessions", "courts", "equipment", "reservations", "tournaments", "match_results"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_ForeignKeysEnabled(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	var enabled int
	err = db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	assert.Equal(t, 1, enabled, "foreign key enforcement should be on")
}
