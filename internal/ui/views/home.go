package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"medtrack/internal/adherence"
	"medtrack/internal/db"
	"medtrack/internal/ui/keys"
	"medtrack/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

type summaryMsg struct {
	summary  adherence.DaySummary
	counters map[string]int
}

type takeDoseErrMsg struct{ err error }

// HomeView shows the daily progress and today's medications
type HomeView struct {
	db     *db.DB
	engine *adherence.Engine
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	summary  adherence.DaySummary
	counters map[string]int // same-day tally counters, per medication
	cursor   int
	loaded   bool

	bar    progress.Model
	banner string
	errMsg string
}

// NewHomeView creates the home view
func NewHomeView(database *db.DB, engine *adherence.Engine) *HomeView {
	bar := progress.New(progress.WithDefaultGradient())
	return &HomeView{
		db:     database,
		engine: engine,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		bar:    bar,
	}
}

func (v *HomeView) Init() tea.Cmd {
	return v.loadSummary
}

func (v *HomeView) loadSummary() tea.Msg {
	now := time.Now()
	summary := v.engine.Summary(now)

	counters := make(map[string]int, len(summary.Medications))
	for _, ms := range summary.Medications {
		counters[ms.Medication.ID] = v.engine.TakenToday(ms.Medication.ID, now)
	}
	return summaryMsg{summary: summary, counters: counters}
}

func (v *HomeView) takeDose(medicationID string) tea.Cmd {
	return func() tea.Msg {
		if _, err := v.engine.TakeDose(medicationID, time.Now()); err != nil {
			return takeDoseErrMsg{err: err}
		}
		return v.loadSummary()
	}
}

func (v *HomeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.bar.Width = clamp(styles.ContentWidth(msg.Width)-8, 20, 50)
		return v, nil

	case summaryMsg:
		v.summary = msg.summary
		v.counters = msg.counters
		v.loaded = true
		v.errMsg = ""
		v.cursor = clamp(v.cursor, 0, max(len(v.summary.Medications)-1, 0))
		return v, nil

	case takeDoseErrMsg:
		// The dose was not recorded; leave counters untouched.
		v.errMsg = "Could not record dose, please try again"
		return v, nil

	case ReminderMsg:
		v.banner = fmt.Sprintf("Time to take %s (%s), scheduled %s",
			msg.Medication.Name, msg.Medication.Dosage, msg.At)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			v.banner = ""
			return v, nil
		case key.Matches(msg, v.keys.Up):
			v.cursor = clamp(v.cursor-1, 0, max(len(v.summary.Medications)-1, 0))
			return v, nil
		case key.Matches(msg, v.keys.Down):
			v.cursor = clamp(v.cursor+1, 0, max(len(v.summary.Medications)-1, 0))
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			if v.cursor < len(v.summary.Medications) {
				return v, v.takeDose(v.summary.Medications[v.cursor].Medication.ID)
			}
		case key.Matches(msg, v.keys.New):
			return v, func() tea.Msg { return ShowAdd{} }
		case msg.String() == "c":
			return v, func() tea.Msg { return ShowCalendar{} }
		case msg.String() == "h":
			return v, func() tea.Msg { return ShowHistory{} }
		}
	}

	return v, nil
}

// View renders the view
func (v *HomeView) View() string {
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	var b strings.Builder

	b.WriteString(s.Title.Render("Daily Progress"))
	b.WriteString("  ")
	b.WriteString(s.TitleMuted.Render(v.summary.Date.Format("Mon, 02 Jan 2006")))
	b.WriteString("\n\n")

	if v.banner != "" {
		b.WriteString(s.Banner.Render("⏰ " + v.banner))
		b.WriteString("\n\n")
	}
	if v.errMsg != "" {
		b.WriteString(s.ErrorText.Render(v.errMsg))
		b.WriteString("\n\n")
	}

	pct := v.summary.Progress()
	b.WriteString(v.bar.ViewAs(pct / 100))
	b.WriteString("\n")
	b.WriteString(s.TitleMuted.Render(
		fmt.Sprintf("%d of %d doses taken (%.0f%%)",
			v.summary.CompletedDoses, v.summary.TotalDoses, pct)))
	b.WriteString("\n\n")

	if len(v.summary.Medications) == 0 {
		b.WriteString(s.TitleMuted.Render("No medications due today. Press 'n' to add one."))
	}

	for i, ms := range v.summary.Medications {
		b.WriteString(v.renderCard(i, ms))
		b.WriteString("\n")
	}

	b.WriteString(v.renderHelp())

	content := lipgloss.NewStyle().Width(contentWidth).Render(b.String())
	return styles.CenterView(content, v.width, v.height)
}

func (v *HomeView) renderCard(i int, ms adherence.MedicationStatus) string {
	s := v.styles
	m := ms.Medication

	badge := s.PendingBadge.Render(fmt.Sprintf("%d/%d", ms.Taken, ms.Scheduled))
	if ms.Taken >= ms.Scheduled && ms.Scheduled > 0 {
		badge = s.TakenBadge.Render("✓ done")
	}

	// Day counter from the tally cache for the quick same-day number
	counter := v.counters[m.ID]

	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(m.Color)).Render("●")
	line := fmt.Sprintf("%s %s  %s  %s  today: %d  %s",
		dot, m.Name, m.Dosage, strings.Join(m.Times, ", "), counter, badge)

	if i == v.cursor {
		return s.ListSelected.Render(line)
	}
	return s.ListItem.Render(line)
}

func (v *HomeView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s take dose • %s add • %s calendar • %s history • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("c"),
			v.styles.HelpKey.Render("h"),
			v.styles.HelpKey.Render("q"),
		),
	)
}
