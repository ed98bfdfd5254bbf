package models

import "time"

// DurationIndefinite marks a medication taken with no end date.
const DurationIndefinite = -1

// Medication represents one registered medication course
type Medication struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Dosage          string     `json:"dosage"`
	Times           []string   `json:"times"` // "HH:MM", one per daily dose
	DosagePerDay    int        `json:"dosagePerDay"`
	StartDate       time.Time  `json:"startDate"`
	DurationDays    int        `json:"durationDays"` // DurationIndefinite if open-ended
	Color           string     `json:"color"`
	Notes           string     `json:"notes,omitempty"`
	ReminderEnabled bool       `json:"reminderEnable"`
	CurrentSupply   int        `json:"currentSupply"`
	TotalSupply     int        `json:"totalSupply"`
	RefillAt        int        `json:"refillAt"`
	RefillReminder  bool       `json:"refillReminder"`
	LastRefillDate  *time.Time `json:"lastRefillDate,omitempty"`
}

// Indefinite reports whether the course has no end date
func (m Medication) Indefinite() bool {
	return m.DurationDays == DurationIndefinite
}

// DoseEvent is one recorded intake, appended to the dose ledger
type DoseEvent struct {
	ID           string    `json:"id"`
	MedicationID string    `json:"medicationId"`
	Timestamp    time.Time `json:"timestamp"`
	Taken        bool      `json:"taken"`
}

// DayTally maps a medication ID to the timestamps of doses taken today.
// It is a derived cache over the dose ledger, never authoritative:
// entries whose last timestamp falls on an earlier day count as empty.
type DayTally map[string][]time.Time

// Palette is the set of card colors assigned to new medications
var Palette = []string{"#4CAF50", "#2196F3", "#FF9800", "#9C27B0"}

// FrequencyPreset pairs a doses-per-day count with its canonical times
type FrequencyPreset struct {
	Label string
	Times []string
}

// FrequencyPresets are the selectable dosing frequencies
var FrequencyPresets = []FrequencyPreset{
	{Label: "Once daily", Times: []string{"09:00"}},
	{Label: "Twice daily", Times: []string{"09:00", "21:00"}},
	{Label: "Three times daily", Times: []string{"09:00", "15:00", "21:00"}},
	{Label: "Four times daily", Times: []string{"09:00", "13:00", "17:00", "21:00"}},
}

// DurationPreset pairs a display label with a day count
type DurationPreset struct {
	Label string
	Days  int
}

// DurationPresets are the selectable course lengths
var DurationPresets = []DurationPreset{
	{Label: "3 days", Days: 3},
	{Label: "7 days", Days: 7},
	{Label: "14 days", Days: 14},
	{Label: "30 days", Days: 30},
	{Label: "Ongoing", Days: DurationIndefinite},
}
