package models

import (
	"strings"
	"time"

	"fundwatch/internal/errorwrapper"
)

// EndDateLayout is the canonical end-date text format used by the
// source site, e.g. "14 March 2026".
const EndDateLayout = "2 January 2006"

// ParseEndDate parses an end-date string in the canonical layout.
// It tolerates surrounding whitespace and non-breaking spaces, which
// the site likes to sprinkle into definition-list values.
func ParseEndDate(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, " ", " "))
	if cleaned == "" {
		return time.Time{}, errorwrapper.NewParseError("end_date", raw, nil)
	}
	t, err := time.Parse(EndDateLayout, cleaned)
	if err != nil {
		return time.Time{}, errorwrapper.NewParseError("end_date", raw, err)
	}
	return t, nil
}

// FormatEndDate renders a date in the canonical layout.
func FormatEndDate(t time.Time) string {
	return t.Format(EndDateLayout)
}

// DayString renders a date as YYYY-MM-DD, the form used for state
// timestamps (last_reminder_sent, last_heartbeat).
func DayString(t time.Time) string {
	return t.Format("2006-01-02")
}
