package adherence

import (
	"time"

	"go.uber.org/zap"

	"medtrack/internal/db"
)

const dayStamp = "2006-01-02"

// Reconciler detects calendar-day rollover and resets the day tally
// cache. The reset is wholesale: the ledger keeps historical truth, so
// only same-day convenience counters are dropped.
type Reconciler struct {
	db  *db.DB
	log *zap.Logger
}

// NewReconciler creates a reconciler over the store
func NewReconciler(database *db.DB, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{db: database, log: log}
}

// Reconcile compares the persisted day stamp with now's date. On
// mismatch it clears the whole tally cache and persists the new stamp.
// Returns true when a rollover happened. Called at startup and from the
// scheduler's minute tick.
func (r *Reconciler) Reconcile(now time.Time) (bool, error) {
	today := now.Format(dayStamp)

	last, err := r.db.LastKnownDate()
	if err != nil {
		return false, err
	}
	if last == today {
		return false, nil
	}

	if last != "" {
		if err := r.db.ClearDayTally(); err != nil {
			return false, err
		}
		r.log.Info("day rollover, tally cache cleared",
			zap.String("from", last), zap.String("to", today))
	}

	return last != "", r.db.SetLastKnownDate(today)
}
