package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrack/internal/adherence"
	"medtrack/internal/db"
	"medtrack/internal/models"
)

type captureNotifier struct {
	calls []string
}

func (c *captureNotifier) Notify(m models.Medication, at string) {
	c.calls = append(c.calls, m.ID+"@"+at)
}

func setupScheduler(t *testing.T) (*Scheduler, *captureNotifier, *db.DB) {
	t.Helper()
	database, err := db.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	n := &captureNotifier{}
	engine := adherence.New(database, nil)
	rec := adherence.NewReconciler(database, nil)
	return New(database, engine, rec, n, nil), n, database
}

func reminderMed(id string, times ...string) models.Medication {
	return models.Medication{
		ID:              id,
		Name:            "med " + id,
		Dosage:          "500mg",
		Times:           times,
		DosagePerDay:    len(times),
		StartDate:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		DurationDays:    models.DurationIndefinite,
		ReminderEnabled: true,
	}
}

var nineAM = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

func TestDue_MatchesScheduledMinute(t *testing.T) {
	s, _, database := setupScheduler(t)

	require.NoError(t, database.AddMedication(reminderMed("morning", "09:00", "21:00")))
	require.NoError(t, database.AddMedication(reminderMed("midday", "13:00")))

	due := s.Due(nineAM)
	require.Len(t, due, 1)
	assert.Equal(t, "morning", due[0].ID)

	assert.Empty(t, s.Due(nineAM.Add(time.Minute)))
}

func TestDue_SkipsDisabledReminders(t *testing.T) {
	s, _, database := setupScheduler(t)

	m := reminderMed("quiet", "09:00")
	m.ReminderEnabled = false
	require.NoError(t, database.AddMedication(m))

	assert.Empty(t, s.Due(nineAM))
}

func TestDue_SkipsInactiveCourses(t *testing.T) {
	s, _, database := setupScheduler(t)

	over := reminderMed("over", "09:00")
	over.StartDate = nineAM.AddDate(0, 0, -30)
	over.DurationDays = 3
	require.NoError(t, database.AddMedication(over))

	future := reminderMed("future", "09:00")
	future.StartDate = nineAM.AddDate(0, 0, 5)
	require.NoError(t, database.AddMedication(future))

	assert.Empty(t, s.Due(nineAM))
}

func TestDue_SkipsFullyTakenToday(t *testing.T) {
	s, _, database := setupScheduler(t)

	require.NoError(t, database.AddMedication(reminderMed("m", "09:00")))
	require.NoError(t, database.RecordDose("m", true, nineAM.Add(-time.Hour)))

	assert.Empty(t, s.Due(nineAM))
}

func TestDue_PartiallyTakenStillReminds(t *testing.T) {
	s, _, database := setupScheduler(t)

	require.NoError(t, database.AddMedication(reminderMed("m", "09:00", "21:00")))
	require.NoError(t, database.RecordDose("m", true, nineAM.Add(-time.Hour)))

	due := s.Due(nineAM.Add(12 * time.Hour))
	require.Len(t, due, 1)
}

func TestTick_NotifiesAndReconciles(t *testing.T) {
	s, n, database := setupScheduler(t)

	require.NoError(t, database.AddMedication(reminderMed("m1", "09:00")))
	require.NoError(t, database.AddMedication(reminderMed("m2", "09:00")))
	require.NoError(t, database.SaveDayTally(models.DayTally{
		"m1": {nineAM.AddDate(0, 0, -1)},
	}))
	require.NoError(t, database.SetLastKnownDate("2026-08-31"))

	s.Tick(nineAM)

	assert.ElementsMatch(t, []string{"m1@09:00", "m2@09:00"}, n.calls)

	// the tick crossed a day boundary, so yesterday's tally is gone
	assert.Empty(t, database.DayTally())
	last, err := database.LastKnownDate()
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", last)
}

func TestTick_NilNotifierIsSafe(t *testing.T) {
	database, err := db.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, database.AddMedication(reminderMed("m", "09:00")))

	s := New(database, adherence.New(database, nil), adherence.NewReconciler(database, nil), nil, nil)
	s.Tick(nineAM)
}
