package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validMedication() Medication {
	return Medication{
		ID:           "id-1",
		Name:         "Amoxicillin",
		Dosage:       "500mg",
		Times:        []string{"09:00", "21:00"},
		DosagePerDay: 2,
		StartDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		DurationDays: 7,
	}
}

func TestValidate_AcceptsCompleteMedication(t *testing.T) {
	assert.Empty(t, validMedication().Validate())
}

func TestValidate_AcceptsIndefiniteDuration(t *testing.T) {
	m := validMedication()
	m.DurationDays = DurationIndefinite
	assert.Empty(t, m.Validate())
}

func TestValidate_RequiredFields(t *testing.T) {
	m := Medication{}
	errs := m.Validate()

	for _, field := range []string{"name", "dosage", "frequency", "duration", "startDate"} {
		assert.Contains(t, errs, field)
	}
}

func TestValidate_WhitespaceNameIsMissing(t *testing.T) {
	m := validMedication()
	m.Name = "   "
	assert.Contains(t, m.Validate(), "name")
}

func TestValidate_RejectsBadTimes(t *testing.T) {
	tests := []struct {
		name  string
		times []string
		ok    bool
	}{
		{"valid pair", []string{"09:00", "21:30"}, true},
		{"midnight", []string{"00:00"}, true},
		{"last minute", []string{"23:59"}, true},
		{"hour out of range", []string{"24:00"}, false},
		{"minute out of range", []string{"09:60"}, false},
		{"missing leading zero", []string{"9:00"}, false},
		{"twelve hour clock", []string{"9:00 PM"}, false},
		{"one bad among good", []string{"09:00", "nope"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMedication()
			m.Times = tt.times
			m.DosagePerDay = len(tt.times)
			errs := m.Validate()
			if tt.ok {
				assert.NotContains(t, errs, "times")
			} else {
				assert.Contains(t, errs, "times")
			}
		})
	}
}

func TestValidate_NegativeDuration(t *testing.T) {
	m := validMedication()
	m.DurationDays = -3
	assert.Contains(t, m.Validate(), "duration")
}

func TestValidate_DosagePerDayMustMatchTimes(t *testing.T) {
	m := validMedication()
	m.DosagePerDay = 3
	assert.Contains(t, m.Validate(), "dosagePerDay")
}

func TestIndefinite(t *testing.T) {
	m := validMedication()
	assert.False(t, m.Indefinite())
	m.DurationDays = DurationIndefinite
	assert.True(t, m.Indefinite())
}
