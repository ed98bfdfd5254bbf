package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"medtrack/internal/models"
	"medtrack/internal/ui/views"
)

// ProgramNotifier delivers scheduler reminders into a running bubbletea
// program as messages. Send is safe to call from the cron goroutine.
type ProgramNotifier struct {
	p *tea.Program
}

// NewProgramNotifier wraps a program for reminder delivery
func NewProgramNotifier(p *tea.Program) *ProgramNotifier {
	return &ProgramNotifier{p: p}
}

// Notify posts a reminder message to the UI
func (n *ProgramNotifier) Notify(m models.Medication, at string) {
	n.p.Send(views.ReminderMsg{Medication: m, At: at})
}
