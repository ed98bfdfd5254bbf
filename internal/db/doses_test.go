package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordDose_AppendsInOrder(t *testing.T) {
	database := setupDB(t)

	morning := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 9, 1, 21, 0, 0, 0, time.UTC)

	require.NoError(t, database.RecordDose("med-1", true, morning))
	require.NoError(t, database.RecordDose("med-2", true, evening))

	history := database.DoseHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "med-1", history[0].MedicationID)
	assert.Equal(t, "med-2", history[1].MedicationID)
	assert.True(t, history[0].Taken)
	assert.True(t, history[0].Timestamp.Equal(morning))
	assert.NotEmpty(t, history[0].ID)
	assert.NotEqual(t, history[0].ID, history[1].ID)
}

func TestDoseHistory_EmptyAndCorrupt(t *testing.T) {
	database := setupDB(t)
	assert.Empty(t, database.DoseHistory())

	require.NoError(t, database.Set(KeyDoseHistory, "[[["))
	assert.Empty(t, database.DoseHistory())
}

func TestTodayDoses_FiltersByCalendarDay(t *testing.T) {
	database := setupDB(t)

	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	lateLastNight := time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)
	earlyToday := time.Date(2026, 9, 2, 0, 1, 0, 0, time.UTC)

	require.NoError(t, database.RecordDose("med-1", true, yesterday))
	require.NoError(t, database.RecordDose("med-1", true, lateLastNight))
	require.NoError(t, database.RecordDose("med-1", true, earlyToday))
	require.NoError(t, database.RecordDose("med-2", true, now))

	today := database.TodayDoses(now)
	require.Len(t, today, 2)
	assert.Equal(t, "med-1", today[0].MedicationID)
	assert.Equal(t, "med-2", today[1].MedicationID)
}
