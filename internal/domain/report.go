package domain

import "time"

// TimesheetRow is one row of the exported timesheet. Day and Date are blank
// for every row after the first of a calendar day; the template relies on
// that to visually group days.
type TimesheetRow struct {
	Day        string
	Date       string
	TimeStart  string
	TimeEnd    string
	Hours      string
	Customer   string
	WorkOrder  string
	WorkHours  string
	TrainHours string
	OtherHours string
	Notes      string
}

// Timesheet is the tabular report consumed by the spreadsheet exporter.
// Rows hold one entry per job followed by the Totals and Summary rows, in
// the exact column layout of the paper template this replaces.
type Timesheet struct {
	Start time.Time
	End   time.Time
	Rows  []TimesheetRow

	TotalHours      float64
	TotalWorkHours  float64
	TotalTrainHours float64
	TotalOtherHours float64
	JobCount        int
}
