package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medtrack/internal/models"
)

// DoseHistory returns the full dose ledger in insertion order.
// Absent or corrupt storage degrades to an empty slice.
func (db *DB) DoseHistory() []models.DoseEvent {
	raw, err := db.Get(KeyDoseHistory)
	if err != nil {
		db.log.Warn("reading dose ledger", zap.Error(err))
		return nil
	}
	if raw == "" {
		return nil
	}

	var events []models.DoseEvent
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		db.log.Warn("dose ledger blob is not valid JSON, treating as empty")
		return nil
	}
	return events
}

// TodayDoses filters the ledger to events on now's calendar day
// (local time). Derived view, not separately persisted.
func (db *DB) TodayDoses(now time.Time) []models.DoseEvent {
	var today []models.DoseEvent
	for _, e := range db.DoseHistory() {
		if sameDay(e.Timestamp, now) {
			today = append(today, e)
		}
	}
	return today
}

// RecordDose appends a taken/skipped event for a medication to the
// ledger. A write failure means the dose was not recorded; callers must
// not update local state on error.
func (db *DB) RecordDose(medicationID string, taken bool, ts time.Time) error {
	events := append(db.DoseHistory(), models.DoseEvent{
		ID:           uuid.NewString(),
		MedicationID: medicationID,
		Timestamp:    ts,
		Taken:        taken,
	})

	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return db.Set(KeyDoseHistory, string(data))
}

// sameDay reports whether a and b fall on the same local calendar day
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
