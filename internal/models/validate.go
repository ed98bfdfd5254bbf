package models

import (
	"regexp"
	"strings"
)

var timeRe = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d$`)

// ValidTime reports whether s is a 24h "HH:MM" time string
func ValidTime(s string) bool {
	return timeRe.MatchString(s)
}

// FieldErrors maps a form field name to a user-visible message
type FieldErrors map[string]string

// Validate checks a medication before it enters the registry.
// Returns an empty map when the medication is acceptable.
func (m Medication) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(m.Name) == "" {
		errs["name"] = "Medication name is required"
	}
	if strings.TrimSpace(m.Dosage) == "" {
		errs["dosage"] = "Dosage is required"
	}
	if len(m.Times) == 0 {
		errs["frequency"] = "Frequency is required"
	} else {
		for _, t := range m.Times {
			if !ValidTime(t) {
				errs["times"] = "Times must use 24h HH:MM format"
				break
			}
		}
	}
	if m.DurationDays == 0 {
		errs["duration"] = "Duration is required"
	} else if m.DurationDays < 0 && m.DurationDays != DurationIndefinite {
		errs["duration"] = "Duration must be a positive number of days"
	}
	// Enforced only at creation time; len(Times) is authoritative afterwards.
	if len(m.Times) > 0 && m.DosagePerDay != len(m.Times) {
		errs["dosagePerDay"] = "Doses per day must match the number of times"
	}
	if m.StartDate.IsZero() {
		errs["startDate"] = "Start date is required"
	}

	return errs
}
