package service

import (
	"context"
	"fmt"
	"time"

	"logitrack/internal/domain"
	"logitrack/internal/repository"
	"logitrack/internal/timeutil"
)

// ReportService projects a date-filtered job set into the timesheet table
// consumed by the spreadsheet exporter. The column layout and the
// blank-propagation of the Day/Date labels reproduce the paper template
// this report replaces.
type ReportService struct {
	jobRepo repository.JobRepository
}

// NewReportService creates a new ReportService.
func NewReportService(jobRepo repository.JobRepository) *ReportService {
	return &ReportService{jobRepo: jobRepo}
}

// BuildTimesheet builds the timesheet for jobs created within
// [start 00:00:00, end 23:59:59] local time.
func (s *ReportService) BuildTimesheet(ctx context.Context, start, end time.Time) (*domain.Timesheet, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.Local)
	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.Local)

	jobs, err := s.jobRepo.GetRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return BuildTimesheet(jobs, from, to), nil
}

// BuildTimesheet projects jobs (ordered by creation time ascending) into
// the timesheet table. One row per job, grouped by calendar day: the first
// row of a day carries the day and date labels, later rows of the same day
// leave them blank. A Totals row and a Summary row follow the entries.
func BuildTimesheet(jobs []*domain.Job, start, end time.Time) *domain.Timesheet {
	sheet := &domain.Timesheet{
		Start:    start,
		End:      end,
		JobCount: len(jobs),
	}

	var lastDay string
	for _, job := range jobs {
		day := job.CreatedAt.Format("2006-01-02")
		firstOfDay := day != lastDay
		lastDay = day

		row := domain.TimesheetRow{
			TimeStart:  timeutil.FormatClock12(job.StartTime),
			Customer:   job.SiteName,
			WorkOrder:  job.SiteID,
			TrainHours: "0.00",
			OtherHours: "0.00",
			Notes:      job.WorkSummary,
		}

		if firstOfDay {
			row.Day = timeutil.DayAbbrev(job.CreatedAt)
			row.Date = timeutil.FormatDayLabel(job.CreatedAt)
		}

		if row.Customer == "" {
			row.Customer = "Unknown Site"
		}

		if !job.Active() {
			row.TimeEnd = timeutil.FormatClock12(job.EndTime)
			row.Hours = fmt.Sprintf("%.2f", job.TravelHours)
			row.WorkHours = fmt.Sprintf("%.2f", job.TravelHours)
			sheet.TotalHours += job.TravelHours
		}

		sheet.Rows = append(sheet.Rows, row)
	}

	sheet.TotalWorkHours = sheet.TotalHours

	sheet.Rows = append(sheet.Rows, domain.TimesheetRow{
		Date:       "Totals",
		Hours:      fmt.Sprintf("%.2f", sheet.TotalHours),
		WorkHours:  fmt.Sprintf("%.2f", sheet.TotalWorkHours),
		TrainHours: fmt.Sprintf("%.2f", sheet.TotalTrainHours),
		OtherHours: fmt.Sprintf("%.2f", sheet.TotalOtherHours),
	})

	// The template repeats the totals on a trailing Summary row laid out
	// for a different rendering convention.
	sheet.Rows = append(sheet.Rows, domain.TimesheetRow{
		Customer:   "Summary",
		WorkOrder:  fmt.Sprintf("%.2f", sheet.TotalHours),
		WorkHours:  fmt.Sprintf("%.2f", sheet.TotalWorkHours),
		TrainHours: fmt.Sprintf("%.2f", sheet.TotalTrainHours),
		OtherHours: fmt.Sprintf("%.2f", sheet.TotalOtherHours),
		Notes:      fmt.Sprintf("%.2f", sheet.TotalHours),
	})

	return sheet
}

// BiMonthlyRange returns the suggested reporting window for today: the
// first half of the month (1st-15th) through the 15th, otherwise the 16th
// through the last day of the month.
func BiMonthlyRange(today time.Time) (time.Time, time.Time) {
	year, month, day := today.Date()

	if day <= 15 {
		start := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
		end := time.Date(year, month, 15, 0, 0, 0, 0, today.Location())
		return start, end
	}

	start := time.Date(year, month, 16, 0, 0, 0, 0, today.Location())
	end := time.Date(year, month+1, 0, 0, 0, 0, 0, today.Location())
	return start, end
}
