package views

import "medtrack/internal/models"

// Navigation messages emitted by views and handled by the app shell.

// ShowAdd requests the add-medication form
type ShowAdd struct{}

// ShowCalendar requests the calendar view
type ShowCalendar struct{}

// ShowHistory requests the completed-treatments view
type ShowHistory struct{}

// BackHome requests the home view
type BackHome struct{}

// MedicationAdded reports a successful registry append
type MedicationAdded struct {
	Medication models.Medication
}

// ReminderMsg is posted by the reminder scheduler when a dose is due
type ReminderMsg struct {
	Medication models.Medication
	At         string
}
