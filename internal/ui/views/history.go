package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"medtrack/internal/adherence"
	"medtrack/internal/models"
	"medtrack/internal/ui/keys"
	"medtrack/internal/ui/styles"
)

type historyDataMsg struct {
	completed []models.Medication
	weekly    []adherence.DayAdherence
}

// HistoryView lists completed treatments and the trailing week's
// adherence
type HistoryView struct {
	engine *adherence.Engine
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	completed []models.Medication
	weekly    []adherence.DayAdherence
	loaded    bool
}

// NewHistoryView creates the history view
func NewHistoryView(engine *adherence.Engine) *HistoryView {
	return &HistoryView{
		engine: engine,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *HistoryView) Init() tea.Cmd {
	return v.loadData
}

func (v *HistoryView) loadData() tea.Msg {
	now := time.Now()
	return historyDataMsg{
		completed: v.engine.CompletedTreatments(now),
		weekly:    v.engine.Weekly(now),
	}
}

func (v *HistoryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case historyDataMsg:
		v.completed = msg.completed
		v.weekly = msg.weekly
		v.loaded = true
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return BackHome{} }
		}
	}

	return v, nil
}

// View renders the view
func (v *HistoryView) View() string {
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	var b strings.Builder
	b.WriteString(s.Title.Render("Last 7 Days"))
	b.WriteString("\n\n")
	b.WriteString(v.renderWeekly())
	b.WriteString("\n")
	b.WriteString(s.Title.Render("Completed Treatments"))
	b.WriteString("\n\n")
	b.WriteString(v.renderCompleted())
	b.WriteString("\n")
	b.WriteString(s.Help.Render(s.HelpKey.Render("esc") + " back • " + s.HelpKey.Render("q") + " quit"))

	content := lipgloss.NewStyle().Width(contentWidth).Render(b.String())
	return styles.CenterView(content, v.width, v.height)
}

func (v *HistoryView) renderWeekly() string {
	s := v.styles

	const barWidth = 20
	var b strings.Builder
	for _, day := range v.weekly {
		pct := day.Percent()
		filled := int(pct / 100 * barWidth)

		bar := s.TakenBadge.Render(strings.Repeat("█", filled)) +
			s.TitleMuted.Render(strings.Repeat("░", barWidth-filled))

		label := day.Date.Format("Mon 02.01")
		if day.Scheduled == 0 {
			b.WriteString(fmt.Sprintf("%s  %s  %s\n", label, bar, s.TitleMuted.Render("nothing scheduled")))
			continue
		}
		b.WriteString(fmt.Sprintf("%s  %s  %d/%d (%.0f%%)\n",
			label, bar, day.Taken, day.Scheduled, pct))
	}
	return b.String()
}

func (v *HistoryView) renderCompleted() string {
	s := v.styles

	if len(v.completed) == 0 {
		return s.TitleMuted.Render("No completed treatments yet.")
	}

	var b strings.Builder
	for _, m := range v.completed {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(m.Color)).Render("●")
		b.WriteString(fmt.Sprintf("%s %s  %s  %s  %s\n",
			dot, m.Name, m.Dosage,
			s.TitleMuted.Render(fmt.Sprintf("started %s, %d days", m.StartDate.Format("02 Jan 2006"), m.DurationDays)),
			s.CompletedBadge.Render("finished")))
	}
	return b.String()
}
