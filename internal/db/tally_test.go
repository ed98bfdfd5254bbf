package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrack/internal/models"
)

func TestDayTally_RoundTrip(t *testing.T) {
	database := setupDB(t)

	nine := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	tally := models.DayTally{
		"med-1": {nine, nine.Add(12 * time.Hour)},
		"med-2": {nine},
	}
	require.NoError(t, database.SaveDayTally(tally))

	got := database.DayTally()
	require.Len(t, got, 2)
	require.Len(t, got["med-1"], 2)
	assert.True(t, got["med-1"][0].Equal(nine))
	assert.True(t, got["med-1"][1].Equal(nine.Add(12*time.Hour)))
	require.Len(t, got["med-2"], 1)
}

func TestDayTally_EmptyAndCorrupt(t *testing.T) {
	database := setupDB(t)
	assert.Empty(t, database.DayTally())

	require.NoError(t, database.Set(KeyDayTally, "not-json"))
	assert.Empty(t, database.DayTally())
}

func TestDayTally_SkipsUnparsableTimestamps(t *testing.T) {
	database := setupDB(t)

	require.NoError(t, database.Set(KeyDayTally,
		`{"med-1":["2026-09-01T09:00:00Z","garbage"]}`))

	got := database.DayTally()
	require.Len(t, got["med-1"], 1)
}

func TestClearDayTally(t *testing.T) {
	database := setupDB(t)

	require.NoError(t, database.SaveDayTally(models.DayTally{
		"med-1": {time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)},
	}))
	require.NoError(t, database.ClearDayTally())
	assert.Empty(t, database.DayTally())
}
