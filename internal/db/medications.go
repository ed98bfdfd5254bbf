package db

import (
	"encoding/json"

	"go.uber.org/zap"

	"medtrack/internal/models"
)

// Medications returns the full medication registry. Absent, corrupt or
// malformed storage degrades to an empty slice; the dose ledger remains
// the authority for historical truth, so nothing is lost by recovering
// locally.
func (db *DB) Medications() []models.Medication {
	raw, err := db.Get(KeyMedications)
	if err != nil {
		db.log.Warn("reading medication registry", zap.Error(err))
		return nil
	}
	if raw == "" {
		return nil
	}

	var meds []models.Medication
	if err := json.Unmarshal([]byte(raw), &meds); err == nil {
		return meds
	}

	// Early releases stored a single object instead of an array.
	var single models.Medication
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		return []models.Medication{single}
	}

	db.log.Warn("medication registry blob is not valid JSON, treating as empty")
	return nil
}

// AddMedication appends a medication to the registry. Read-modify-write
// of the whole blob: last writer wins, acceptable for a single-process,
// single-user store.
func (db *DB) AddMedication(m models.Medication) error {
	meds := append(db.Medications(), m)

	data, err := json.Marshal(meds)
	if err != nil {
		return err
	}
	return db.Set(KeyMedications, string(data))
}
