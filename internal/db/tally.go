package db

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"medtrack/internal/models"
)

// DayTally returns the cached per-medication tally of today's doses.
// The cache is stored as medicationID -> RFC 3339 timestamps. Absent or
// corrupt storage degrades to an empty tally; the ledger can always
// rebuild it.
func (db *DB) DayTally() models.DayTally {
	raw, err := db.Get(KeyDayTally)
	if err != nil {
		db.log.Warn("reading day tally cache", zap.Error(err))
		return models.DayTally{}
	}
	if raw == "" {
		return models.DayTally{}
	}

	var stored map[string][]string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		db.log.Warn("day tally blob is not valid JSON, treating as empty")
		return models.DayTally{}
	}

	tally := models.DayTally{}
	for id, stamps := range stored {
		for _, s := range stamps {
			ts, err := time.Parse(time.RFC3339, s)
			if err != nil {
				continue
			}
			tally[id] = append(tally[id], ts)
		}
	}
	return tally
}

// SaveDayTally persists the whole tally cache
func (db *DB) SaveDayTally(tally models.DayTally) error {
	stored := make(map[string][]string, len(tally))
	for id, stamps := range tally {
		out := make([]string, len(stamps))
		for i, ts := range stamps {
			out[i] = ts.Format(time.RFC3339)
		}
		stored[id] = out
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return db.Set(KeyDayTally, string(data))
}

// ClearDayTally drops the whole cache, as happens on day rollover
func (db *DB) ClearDayTally() error {
	return db.Remove(KeyDayTally)
}
