package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrack/internal/models"
)

func testMedication(name string) models.Medication {
	return models.Medication{
		ID:              "med-" + name,
		Name:            name,
		Dosage:          "500mg",
		Times:           []string{"09:00", "21:00"},
		DosagePerDay:    2,
		StartDate:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		DurationDays:    7,
		Color:           "#4CAF50",
		ReminderEnabled: true,
	}
}

func TestMedications_EmptyStore(t *testing.T) {
	database := setupDB(t)
	assert.Empty(t, database.Medications())
}

func TestAddMedication_RoundTrip(t *testing.T) {
	database := setupDB(t)

	m := testMedication("Amoxicillin")
	require.NoError(t, database.AddMedication(m))

	meds := database.Medications()
	require.Len(t, meds, 1)
	assert.Equal(t, m, meds[0])
}

func TestMedications_ReadIsIdempotent(t *testing.T) {
	database := setupDB(t)

	require.NoError(t, database.AddMedication(testMedication("A")))
	require.NoError(t, database.AddMedication(testMedication("B")))

	first := database.Medications()
	second := database.Medications()
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestMedications_LegacySingleObjectBlob(t *testing.T) {
	database := setupDB(t)

	// Early releases stored one object instead of an array.
	require.NoError(t, database.Set(KeyMedications,
		`{"id":"legacy","name":"Ibuprofen","dosage":"200mg","times":["09:00"],"dosagePerDay":1,"startDate":"2026-09-01T00:00:00Z","durationDays":-1}`))

	meds := database.Medications()
	require.Len(t, meds, 1)
	assert.Equal(t, "legacy", meds[0].ID)
	assert.Equal(t, "Ibuprofen", meds[0].Name)
	assert.True(t, meds[0].Indefinite())
}

func TestMedications_CorruptBlobDegradesToEmpty(t *testing.T) {
	database := setupDB(t)

	require.NoError(t, database.Set(KeyMedications, "{not json"))
	assert.Empty(t, database.Medications())

	// and the registry still accepts new entries afterwards
	require.NoError(t, database.AddMedication(testMedication("Fresh")))
	assert.Len(t, database.Medications(), 1)
}

func TestAddMedication_AppendsToLegacyBlob(t *testing.T) {
	database := setupDB(t)

	require.NoError(t, database.Set(KeyMedications,
		`{"id":"legacy","name":"Old","times":["09:00"],"dosagePerDay":1,"startDate":"2026-09-01T00:00:00Z","durationDays":3}`))
	require.NoError(t, database.AddMedication(testMedication("New")))

	meds := database.Medications()
	require.Len(t, meds, 2)
	assert.Equal(t, "legacy", meds[0].ID)
	assert.Equal(t, "New", meds[1].Name)
}
