package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"medtrack/internal/adherence"
	"medtrack/internal/db"
	"medtrack/internal/models"
	"medtrack/internal/ui/keys"
	"medtrack/internal/ui/styles"
)

type calendarDataMsg struct {
	medications []models.Medication
	history     []models.DoseEvent
}

// CalendarView shows a month grid with per-day dose status
type CalendarView struct {
	db     *db.DB
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	selected    time.Time
	medications []models.Medication
	history     []models.DoseEvent
	loaded      bool
}

// NewCalendarView creates the calendar view anchored on today
func NewCalendarView(database *db.DB) *CalendarView {
	return &CalendarView{
		db:       database,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		selected: time.Now(),
	}
}

func (v *CalendarView) Init() tea.Cmd {
	return v.loadData
}

func (v *CalendarView) loadData() tea.Msg {
	return calendarDataMsg{
		medications: v.db.Medications(),
		history:     v.db.DoseHistory(),
	}
}

func (v *CalendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case calendarDataMsg:
		v.medications = msg.medications
		v.history = msg.history
		v.loaded = true
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return BackHome{} }
		case key.Matches(msg, v.keys.Left):
			v.selected = v.selected.AddDate(0, 0, -1)
			return v, nil
		case key.Matches(msg, v.keys.Right):
			v.selected = v.selected.AddDate(0, 0, 1)
			return v, nil
		case key.Matches(msg, v.keys.Up):
			v.selected = v.selected.AddDate(0, 0, -7)
			return v, nil
		case key.Matches(msg, v.keys.Down):
			v.selected = v.selected.AddDate(0, 0, 7)
			return v, nil
		case msg.String() == "[":
			v.selected = v.selected.AddDate(0, -1, 0)
			return v, nil
		case msg.String() == "]":
			v.selected = v.selected.AddDate(0, 1, 0)
			return v, nil
		case msg.String() == "t":
			v.selected = time.Now()
			return v, nil
		}
	}

	return v, nil
}

// dosesOn returns the ledger events on the given calendar day
func (v *CalendarView) dosesOn(day time.Time) []models.DoseEvent {
	var out []models.DoseEvent
	for _, e := range v.history {
		ey, em, ed := e.Timestamp.Date()
		dy, dm, dd := day.Date()
		if ey == dy && em == dm && ed == dd {
			out = append(out, e)
		}
	}
	return out
}

// View renders the view
func (v *CalendarView) View() string {
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	var b strings.Builder
	b.WriteString(s.Title.Render("Calendar"))
	b.WriteString("  ")
	b.WriteString(s.TitleMuted.Render(v.selected.Format("January 2006")))
	b.WriteString("\n\n")
	b.WriteString(v.renderMonth())
	b.WriteString("\n")
	b.WriteString(s.Title.Render(v.selected.Format("Mon, 02 Jan 2006")))
	b.WriteString("\n")
	b.WriteString(v.renderDayDetail())
	b.WriteString("\n")
	b.WriteString(s.Help.Render(
		fmt.Sprintf("%s day • %s week • %s month • %s today • %s back",
			s.HelpKey.Render("←/→"),
			s.HelpKey.Render("↑/↓"),
			s.HelpKey.Render("[/]"),
			s.HelpKey.Render("t"),
			s.HelpKey.Render("esc"),
		),
	))

	content := lipgloss.NewStyle().Width(contentWidth).Render(b.String())
	return styles.CenterView(content, v.width, v.height)
}

func (v *CalendarView) renderMonth() string {
	s := v.styles

	var b strings.Builder
	b.WriteString(s.TitleMuted.Render(" Mo  Tu  We  Th  Fr  Sa  Su"))
	b.WriteString("\n")

	first := time.Date(v.selected.Year(), v.selected.Month(), 1, 0, 0, 0, 0, v.selected.Location())
	// Monday-first column offset
	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("    ", offset))

	col := offset
	for day := first; day.Month() == v.selected.Month(); day = day.AddDate(0, 0, 1) {
		cell := fmt.Sprintf("%3d", day.Day())

		haveTaken := false
		for _, e := range v.dosesOn(day) {
			if e.Taken {
				haveTaken = true
				break
			}
		}

		switch {
		case day.Day() == v.selected.Day():
			cell = s.ListSelected.Render(cell)
		case haveTaken:
			cell = s.TakenBadge.Render(cell)
		default:
			cell = s.ListItem.UnsetPadding().Render(cell)
		}
		b.WriteString(cell + " ")

		col++
		if col%7 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (v *CalendarView) renderDayDetail() string {
	s := v.styles

	if len(v.medications) == 0 {
		return s.TitleMuted.Render("No medications registered.")
	}

	dayDoses := v.dosesOn(v.selected)
	now := time.Now()

	var b strings.Builder
	for _, m := range v.medications {
		taken := adherence.TakenCount(dayDoses, m.ID) > 0

		var badge string
		switch {
		case adherence.CourseCompleted(m, now):
			badge = s.CompletedBadge.Render("finished")
		case taken:
			badge = s.TakenBadge.Render("✓ taken")
		default:
			badge = s.PendingBadge.Render("not taken")
		}

		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(m.Color)).Render("●")
		b.WriteString(fmt.Sprintf("%s %s  %s  %s  %s\n",
			dot, m.Name, m.Dosage, strings.Join(m.Times, ", "), badge))
	}
	return b.String()
}
