// Package timeutil holds the elapsed-time arithmetic and the fixed display
// formats used by the job history and the timesheet template.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// ElapsedHours returns the wall-clock hours between start and end, computed
// as a millisecond-precision subtraction divided by 3,600,000. No rounding
// is applied; rounding is a presentation concern.
func ElapsedHours(start, end time.Time) float64 {
	return float64(end.Sub(start).Milliseconds()) / 3600000.0
}

// FormatClock renders a timestamp as 24-hour HH:MM for the history view.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatClock12 renders a timestamp as the timesheet template's 12-hour
// clock, e.g. "10:55 AM".
func FormatClock12(t time.Time) string {
	return t.Format("3:04 PM")
}

// FormatDate renders a date as e.g. "July 9, 2025".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// dayAbbrevs matches the timesheet template, which spells Thursday "THR".
var dayAbbrevs = [...]string{"SUN", "MON", "TUE", "WED", "THR", "FRI", "SAT"}

// DayAbbrev returns the template's three-letter day-of-week label.
func DayAbbrev(t time.Time) string {
	return dayAbbrevs[int(t.Weekday())]
}

// FormatDayLabel returns the template's date label, e.g. "JUL 9TH".
// Only days 1-3 get their exact ordinal; everything else is "TH", which is
// what the template uses (so the 21st renders as "21TH").
func FormatDayLabel(t time.Time) string {
	month := t.Format("Jan")
	day := t.Day()

	suffix := "TH"
	switch day {
	case 1:
		suffix = "ST"
	case 2:
		suffix = "ND"
	case 3:
		suffix = "RD"
	}

	return fmt.Sprintf("%s %d%s", strings.ToUpper(month), day, suffix)
}
