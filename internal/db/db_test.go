package db

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestGetSet_RoundTrip(t *testing.T) {
	database := setupDB(t)

	require.NoError(t, database.Set("k", "v1"))
	got, err := database.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v1", got)

	// overwrite
	require.NoError(t, database.Set("k", "v2"))
	got, err = database.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v2", got)
}

func TestGet_AbsentKeyIsEmpty(t *testing.T) {
	database := setupDB(t)

	got, err := database.Get("missing")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRemove(t *testing.T) {
	database := setupDB(t)

	require.NoError(t, database.Set("a", "1"))
	require.NoError(t, database.Set("b", "2"))
	require.NoError(t, database.Remove("a", "never-existed"))

	got, err := database.Get("a")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = database.Get("b")
	require.NoError(t, err)
	require.Equal(t, "2", got)
}

func TestOpen_WritesSchemaVersion(t *testing.T) {
	database := setupDB(t)

	got, err := database.Get(keySchemaVersion)
	require.NoError(t, err)
	require.Equal(t, SchemaVersion, got)
}

func TestClearAll_RemovesLogicalRecords(t *testing.T) {
	database := setupDB(t)

	require.NoError(t, database.Set(KeyMedications, "[]"))
	require.NoError(t, database.Set(KeyDoseHistory, "[]"))
	require.NoError(t, database.Set(KeyDayTally, "{}"))
	require.NoError(t, database.SetLastKnownDate("2026-09-01"))

	require.NoError(t, database.ClearAll())

	for _, key := range []string{KeyMedications, KeyDoseHistory, KeyDayTally} {
		got, err := database.Get(key)
		require.NoError(t, err)
		require.Empty(t, got)
	}

	// bookkeeping survives a data reset
	day, err := database.LastKnownDate()
	require.NoError(t, err)
	require.Equal(t, "2026-09-01", day)
}
