// Package reminder runs the periodic schedule check: once a minute it
// reconciles the day boundary and emits a reminder for every medication
// that is due right now and not yet fully taken. Delivery is
// best-effort; failures are logged and never block dose recording.
package reminder

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"medtrack/internal/adherence"
	"medtrack/internal/db"
	"medtrack/internal/models"
)

// Notifier receives due-dose reminders. The UI implements this by
// posting a message into the running program.
type Notifier interface {
	Notify(m models.Medication, at string)
}

// Scheduler drives the reminder ticks
type Scheduler struct {
	db         *db.DB
	engine     *adherence.Engine
	reconciler *adherence.Reconciler
	notifier   Notifier
	log        *zap.Logger
	cron       *cron.Cron
}

// New creates a scheduler; Start must be called to begin ticking
func New(database *db.DB, engine *adherence.Engine, rec *adherence.Reconciler, n Notifier, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		db:         database,
		engine:     engine,
		reconciler: rec,
		notifier:   n,
		log:        log,
	}
}

// Start registers the tick on the given cron spec and starts the cron
// runner in its own goroutine
func (s *Scheduler) Start(spec string) error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(spec, func() {
		s.Tick(time.Now())
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("reminder scheduler started", zap.String("spec", spec))
	return nil
}

// Stop halts the cron runner
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Tick runs one reminder pass for the given instant
func (s *Scheduler) Tick(now time.Time) {
	if _, err := s.reconciler.Reconcile(now); err != nil {
		s.log.Warn("day-boundary reconcile failed", zap.Error(err))
	}

	for _, m := range s.Due(now) {
		s.log.Info("reminder due",
			zap.String("medication", m.Name),
			zap.String("at", now.Format("15:04")))
		if s.notifier != nil {
			s.notifier.Notify(m, now.Format("15:04"))
		}
	}
}

// Due returns the medications with a scheduled time equal to now's
// HH:MM that are reminder-enabled, active today, and not yet fully
// taken today.
func (s *Scheduler) Due(now time.Time) []models.Medication {
	current := now.Format("15:04")
	today := s.db.TodayDoses(now)

	var due []models.Medication
	for _, m := range s.db.Medications() {
		if !m.ReminderEnabled || !adherence.ActiveOn(m, now) {
			continue
		}
		if adherence.TakenCount(today, m.ID) >= len(m.Times) {
			continue
		}
		for _, t := range m.Times {
			if t == current {
				due = append(due, m)
				break
			}
		}
	}
	return due
}
