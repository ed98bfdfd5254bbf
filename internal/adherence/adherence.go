// Package adherence derives dose-adherence facts from the medication
// registry and the dose ledger: which medications are due on a day, how
// many of today's doses are done, and whether a treatment course has
// finished. The ledger is the source of truth; the day tally is a
// read-through cache for same-day counters.
package adherence

import (
	"time"

	"go.uber.org/zap"

	"medtrack/internal/db"
	"medtrack/internal/models"
)

// Engine answers adherence questions over the persistent store
type Engine struct {
	db  *db.DB
	log *zap.Logger
}

// New creates an adherence engine over the store
func New(database *db.DB, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{db: database, log: log}
}

// dayOf truncates t to local midnight
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return dayOf(a).Equal(dayOf(b))
}

// endDay returns the last day of the course, inclusive
func endDay(m models.Medication) time.Time {
	return dayOf(m.StartDate).AddDate(0, 0, m.DurationDays)
}

// ActiveOn reports whether a medication is due on the given day.
// Indefinite courses are always active; bounded courses are active from
// their start day through start day + duration, inclusive. Calendar-day
// comparison throughout: time of day never matters here.
func ActiveOn(m models.Medication, day time.Time) bool {
	if m.Indefinite() {
		return true
	}
	d := dayOf(day)
	return !d.Before(dayOf(m.StartDate)) && !d.After(endDay(m))
}

// CourseCompleted reports whether a bounded course is over on the given
// day. The boundary day still counts as active; completion flips at the
// following local midnight.
func CourseCompleted(m models.Medication, day time.Time) bool {
	if m.Indefinite() {
		return false
	}
	return dayOf(day).After(endDay(m))
}

// TakenCount counts taken events for a medication within events.
// Events referencing unknown medications are simply never matched.
func TakenCount(events []models.DoseEvent, medicationID string) int {
	n := 0
	for _, e := range events {
		if e.MedicationID == medicationID && e.Taken {
			n++
		}
	}
	return n
}

// Progress returns done/total as a percentage, 0 when nothing is
// scheduled
func Progress(total, done int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}

// MedicationStatus is one medication's standing for a single day
type MedicationStatus struct {
	Medication models.Medication
	Scheduled  int
	Taken      int
}

// DaySummary aggregates the day's due medications and dose counts
type DaySummary struct {
	Date           time.Time
	Medications    []MedicationStatus
	TotalDoses     int
	CompletedDoses int
}

// Progress returns the day's aggregate completion percentage
func (s DaySummary) Progress() float64 {
	return Progress(s.TotalDoses, s.CompletedDoses)
}

// Summary joins the registry with today's ledger events into the
// per-medication and aggregate counters every screen needs.
func (e *Engine) Summary(now time.Time) DaySummary {
	meds := e.db.Medications()
	today := e.db.TodayDoses(now)

	s := DaySummary{Date: dayOf(now)}
	for _, m := range meds {
		if !ActiveOn(m, now) {
			continue
		}
		s.Medications = append(s.Medications, MedicationStatus{
			Medication: m,
			Scheduled:  len(m.Times),
			Taken:      TakenCount(today, m.ID),
		})
		s.TotalDoses += len(m.Times)
	}
	for _, e := range today {
		if e.Taken {
			s.CompletedDoses++
		}
	}
	return s
}

// TakenToday reads the same-day counter for a medication from the
// tally cache. A tally whose last entry is from an earlier day counts
// as zero regardless of its cached length.
func (e *Engine) TakenToday(medicationID string, now time.Time) int {
	doses := e.db.DayTally()[medicationID]
	if len(doses) == 0 || !sameDay(doses[len(doses)-1], now) {
		return 0
	}
	return len(doses)
}

// TakeDose records one dose taken now: the tally for the medication
// accumulates within the same calendar day and restarts on a new one,
// the whole cache is persisted, and a taken event is appended to the
// ledger. The cache is not rolled back if the ledger append fails; the
// ledger stays authoritative and the cache re-derives on the next
// rollover.
func (e *Engine) TakeDose(medicationID string, now time.Time) (DaySummary, error) {
	tally := e.db.DayTally()
	doses := tally[medicationID]

	if len(doses) > 0 && sameDay(doses[len(doses)-1], now) {
		tally[medicationID] = append(doses, now)
	} else {
		tally[medicationID] = []time.Time{now}
	}

	if err := e.db.SaveDayTally(tally); err != nil {
		return DaySummary{}, err
	}
	if err := e.db.RecordDose(medicationID, true, now); err != nil {
		return DaySummary{}, err
	}

	e.log.Info("dose recorded",
		zap.String("medication_id", medicationID),
		zap.Time("at", now))

	return e.Summary(now), nil
}

// DayAdherence is one day's scheduled/taken totals
type DayAdherence struct {
	Date      time.Time
	Scheduled int
	Taken     int
}

// Percent returns the day's completion percentage
func (d DayAdherence) Percent() float64 {
	return Progress(d.Scheduled, d.Taken)
}

// Weekly computes adherence for the trailing seven days, oldest first,
// purely from the registry and the ledger.
func (e *Engine) Weekly(now time.Time) []DayAdherence {
	meds := e.db.Medications()
	history := e.db.DoseHistory()

	week := make([]DayAdherence, 0, 7)
	for i := 6; i >= 0; i-- {
		day := dayOf(now).AddDate(0, 0, -i)

		var dayEvents []models.DoseEvent
		for _, ev := range history {
			if sameDay(ev.Timestamp, day) {
				dayEvents = append(dayEvents, ev)
			}
		}

		da := DayAdherence{Date: day}
		for _, m := range meds {
			if !ActiveOn(m, day) {
				continue
			}
			scheduled := len(m.Times)
			taken := TakenCount(dayEvents, m.ID)
			if taken > scheduled {
				taken = scheduled
			}
			da.Scheduled += scheduled
			da.Taken += taken
		}
		week = append(week, da)
	}
	return week
}

// CompletedTreatments lists medications whose course has ended and that
// have at least one taken dose on record.
func (e *Engine) CompletedTreatments(now time.Time) []models.Medication {
	history := e.db.DoseHistory()

	var done []models.Medication
	for _, m := range e.db.Medications() {
		if CourseCompleted(m, now) && TakenCount(history, m.ID) > 0 {
			done = append(done, m)
		}
	}
	return done
}
