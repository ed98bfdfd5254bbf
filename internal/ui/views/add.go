package views

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/google/uuid"

	"medtrack/internal/db"
	"medtrack/internal/models"
	"medtrack/internal/ui/keys"
	"medtrack/internal/ui/styles"
)

// Focus order in the add form
const (
	focusName = iota
	focusDosage
	focusFrequency
	focusDuration
	focusStartDate
	focusSupply
	focusRefillAt
	focusReminder
	focusRefillReminder
	focusSave
	focusCount
)

// AddView is the new-medication form
type AddView struct {
	db     *db.DB
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	name      textinput.Model
	dosage    textinput.Model
	startDate textinput.Model
	supply    textinput.Model
	refillAt  textinput.Model

	frequencyIdx   int
	durationIdx    int // -1 until chosen
	reminder       bool
	refillReminder bool

	focusIdx int
	errs     models.FieldErrors
}

// NewAddView creates the add-medication form
func NewAddView(database *db.DB) *AddView {
	name := textinput.New()
	name.Placeholder = "Medication name"
	name.CharLimit = 100
	name.Focus()

	dosage := textinput.New()
	dosage.Placeholder = "e.g. 500mg"
	dosage.CharLimit = 50

	startDate := textinput.New()
	startDate.Placeholder = "YYYY-MM-DD"
	startDate.CharLimit = 10
	startDate.SetValue(time.Now().Format("2006-01-02"))

	supply := textinput.New()
	supply.Placeholder = "0"
	supply.CharLimit = 5

	refillAt := textinput.New()
	refillAt.Placeholder = "0"
	refillAt.CharLimit = 5

	return &AddView{
		db:          database,
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		name:        name,
		dosage:      dosage,
		startDate:   startDate,
		supply:      supply,
		refillAt:    refillAt,
		durationIdx: -1,
		reminder:    true,
		errs:        models.FieldErrors{},
	}
}

func (v *AddView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *AddView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return BackHome{} }

		case msg.String() == "shift+tab":
			v.focusIdx = (v.focusIdx + focusCount - 1) % focusCount
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Tab):
			v.focusIdx = (v.focusIdx + 1) % focusCount
			v.updateFocus()
			return v, nil

		case msg.String() == "ctrl+s":
			return v.save()

		case key.Matches(msg, v.keys.Enter):
			switch v.focusIdx {
			case focusReminder:
				v.reminder = !v.reminder
				return v, nil
			case focusRefillReminder:
				v.refillReminder = !v.refillReminder
				return v, nil
			case focusSave:
				return v.save()
			default:
				v.focusIdx++
				v.updateFocus()
				return v, nil
			}

		case msg.String() == " ":
			switch v.focusIdx {
			case focusReminder:
				v.reminder = !v.reminder
				return v, nil
			case focusRefillReminder:
				v.refillReminder = !v.refillReminder
				return v, nil
			}

		case key.Matches(msg, v.keys.Left):
			switch v.focusIdx {
			case focusFrequency:
				v.frequencyIdx = (v.frequencyIdx + len(models.FrequencyPresets) - 1) % len(models.FrequencyPresets)
				return v, nil
			case focusDuration:
				if v.durationIdx <= 0 {
					v.durationIdx = len(models.DurationPresets) - 1
				} else {
					v.durationIdx--
				}
				return v, nil
			}

		case key.Matches(msg, v.keys.Right):
			switch v.focusIdx {
			case focusFrequency:
				v.frequencyIdx = (v.frequencyIdx + 1) % len(models.FrequencyPresets)
				return v, nil
			case focusDuration:
				v.durationIdx = (v.durationIdx + 1) % len(models.DurationPresets)
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case focusName:
		v.name, cmd = v.name.Update(msg)
	case focusDosage:
		v.dosage, cmd = v.dosage.Update(msg)
	case focusStartDate:
		v.startDate, cmd = v.startDate.Update(msg)
	case focusSupply:
		v.supply, cmd = v.supply.Update(msg)
	case focusRefillAt:
		v.refillAt, cmd = v.refillAt.Update(msg)
	}
	return v, cmd
}

func (v *AddView) updateFocus() {
	v.name.Blur()
	v.dosage.Blur()
	v.startDate.Blur()
	v.supply.Blur()
	v.refillAt.Blur()
	switch v.focusIdx {
	case focusName:
		v.name.Focus()
	case focusDosage:
		v.dosage.Focus()
	case focusStartDate:
		v.startDate.Focus()
	case focusSupply:
		v.supply.Focus()
	case focusRefillAt:
		v.refillAt.Focus()
	}
}

// save validates the form and appends the medication to the registry.
// Validation failures surface as per-field messages and block the save.
func (v *AddView) save() (tea.Model, tea.Cmd) {
	m := v.buildMedication()

	errs := m.Validate()
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(v.startDate.Value())); err != nil {
		errs["startDate"] = "Start date must be YYYY-MM-DD"
	}
	if v.durationIdx < 0 {
		errs["duration"] = "Duration is required"
	}
	v.errs = errs
	if len(errs) > 0 {
		return v, nil
	}

	if err := v.db.AddMedication(m); err != nil {
		v.errs = models.FieldErrors{"save": "Saving failed, please try again"}
		return v, nil
	}

	return v, func() tea.Msg { return MedicationAdded{Medication: m} }
}

func (v *AddView) buildMedication() models.Medication {
	freq := models.FrequencyPresets[v.frequencyIdx]

	duration := 0
	if v.durationIdx >= 0 {
		duration = models.DurationPresets[v.durationIdx].Days
	}

	start, _ := time.Parse("2006-01-02", strings.TrimSpace(v.startDate.Value()))
	supply, _ := strconv.Atoi(strings.TrimSpace(v.supply.Value()))
	refillAt, _ := strconv.Atoi(strings.TrimSpace(v.refillAt.Value()))

	return models.Medication{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(v.name.Value()),
		Dosage:          strings.TrimSpace(v.dosage.Value()),
		Times:           freq.Times,
		DosagePerDay:    len(freq.Times),
		StartDate:       start,
		DurationDays:    duration,
		Color:           models.Palette[rand.Intn(len(models.Palette))],
		ReminderEnabled: v.reminder,
		CurrentSupply:   supply,
		TotalSupply:     supply,
		RefillAt:        refillAt,
		RefillReminder:  v.refillReminder,
	}
}

// View renders the view
func (v *AddView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	freq := models.FrequencyPresets[v.frequencyIdx]
	durationLabel := "‹ choose ›"
	if v.durationIdx >= 0 {
		durationLabel = models.DurationPresets[v.durationIdx].Label
	}

	rows := []string{
		s.Title.Render("New Medication"),
		"",
		v.renderInput("Name:", v.name, focusName, inputWidth, "name"),
		v.renderInput("Dosage:", v.dosage, focusDosage, inputWidth, "dosage"),
		v.renderSelector("Frequency:", fmt.Sprintf("%s (%s)", freq.Label, strings.Join(freq.Times, ", ")), focusFrequency, "frequency"),
		v.renderSelector("Duration:", durationLabel, focusDuration, "duration"),
		v.renderInput("Start date:", v.startDate, focusStartDate, inputWidth, "startDate"),
		v.renderInput("Current supply:", v.supply, focusSupply, inputWidth, "supply"),
		v.renderInput("Refill when below:", v.refillAt, focusRefillAt, inputWidth, "refillAt"),
		v.renderToggle("Dose reminders:", v.reminder, focusReminder),
		v.renderToggle("Refill reminder:", v.refillReminder, focusRefillReminder),
		"",
		v.renderSave(),
		"",
		s.TitleMuted.Render("Tab: next • ←/→: choose • Ctrl+S: save • Esc: cancel"),
	}

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *AddView) renderInput(label string, in textinput.Model, focus int, width int, field string) string {
	s := v.styles

	style := s.Input
	if v.focusIdx == focus {
		style = s.InputFocused
	}
	if _, bad := v.errs[field]; bad {
		style = s.InputError
	}

	out := label + "\n" + style.Width(width).Render(in.View())
	if msg, bad := v.errs[field]; bad {
		out += "\n" + s.ErrorText.Render(msg)
	}
	return out
}

func (v *AddView) renderSelector(label, value string, focus int, field string) string {
	s := v.styles

	style := s.Button
	if v.focusIdx == focus {
		style = s.ButtonFocused
	}

	out := label + "\n" + style.Render("‹ "+value+" ›")
	if msg, bad := v.errs[field]; bad {
		out += "\n" + s.ErrorText.Render(msg)
	}
	return out
}

func (v *AddView) renderToggle(label string, on bool, focus int) string {
	s := v.styles

	mark := "[ ]"
	if on {
		mark = "[x]"
	}
	line := mark + " " + label
	if v.focusIdx == focus {
		return s.HelpKey.Render(line)
	}
	return line
}

func (v *AddView) renderSave() string {
	s := v.styles

	style := s.Button
	if v.focusIdx == focusSave {
		style = s.ButtonFocused
	}

	out := style.Render(" Save ")
	if msg, bad := v.errs["save"]; bad {
		out += "\n" + s.ErrorText.Render(msg)
	}
	return out
}
