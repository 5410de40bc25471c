package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsedHours(t *testing.T) {
	start := time.Date(2025, 7, 9, 8, 0, 0, 0, time.Local)

	assert.InDelta(t, 2.5, ElapsedHours(start, start.Add(2*time.Hour+30*time.Minute)), 1e-9)
	assert.Zero(t, ElapsedHours(start, start))

	// Millisecond precision: 1ms is 1/3,600,000 of an hour.
	assert.InDelta(t, 1.0/3600000.0, ElapsedHours(start, start.Add(time.Millisecond)), 1e-12)
}

func TestFormatClock(t *testing.T) {
	ts := time.Date(2025, 7, 9, 10, 55, 0, 0, time.Local)
	assert.Equal(t, "10:55", FormatClock(ts))
	assert.Equal(t, "10:55 AM", FormatClock12(ts))

	evening := time.Date(2025, 7, 9, 17, 5, 0, 0, time.Local)
	assert.Equal(t, "17:05", FormatClock(evening))
	assert.Equal(t, "5:05 PM", FormatClock12(evening))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "July 9, 2025", FormatDate(time.Date(2025, 7, 9, 0, 0, 0, 0, time.Local)))
}

func TestDayAbbrev(t *testing.T) {
	// 2025-07-10 is a Thursday; the template spells it THR.
	assert.Equal(t, "THR", DayAbbrev(time.Date(2025, 7, 10, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "SUN", DayAbbrev(time.Date(2025, 7, 13, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "MON", DayAbbrev(time.Date(2025, 7, 14, 0, 0, 0, 0, time.Local)))
}

func TestFormatDayLabel(t *testing.T) {
	cases := map[int]string{
		1:  "JUL 1ST",
		2:  "JUL 2ND",
		3:  "JUL 3RD",
		4:  "JUL 4TH",
		9:  "JUL 9TH",
		21: "JUL 21TH", // template quirk: only 1-3 get exact ordinals
		31: "JUL 31TH",
	}
	for day, want := range cases {
		got := FormatDayLabel(time.Date(2025, 7, day, 12, 0, 0, 0, time.Local))
		assert.Equal(t, want, got)
	}
}
