package domain

import "time"

// Job represents one work engagement bounded by a start and (eventually)
// end timestamp, optionally tied to a Site.
type Job struct {
	ID          string
	SiteID      string // empty when no site is associated
	SiteName    string // resolved via join; presentation only
	StartTime   time.Time
	EndTime     time.Time // zero while the job is active
	TravelKm    float64   // derived at end: round-trip distance
	TravelHours float64   // derived at end: full start-to-end duration
	FuelCost    float64   // derived at end
	WorkSummary string
	CreatedAt   time.Time
}

// Active reports whether the job is still in progress.
func (j *Job) Active() bool {
	return j.EndTime.IsZero()
}

// FuelParams holds the session fuel configuration used to price travel.
type FuelParams struct {
	EfficiencyKmPerL float64
	PricePerL        float64
}

// RangeFilter selects a job-history window relative to "now".
type RangeFilter string

const (
	RangeAll   RangeFilter = "all"
	RangeToday RangeFilter = "today"
	RangeWeek  RangeFilter = "week"
	RangeMonth RangeFilter = "month"
)

// Valid reports whether the filter is one of the known windows.
func (r RangeFilter) Valid() bool {
	switch r {
	case RangeAll, RangeToday, RangeWeek, RangeMonth:
		return true
	}
	return false
}

// Summary holds the aggregate totals over a set of jobs.
type Summary struct {
	TotalHours    float64
	TotalKm       float64
	TotalFuelCost float64
}
