// Package export serializes a timesheet into a downloadable XLSX workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"logitrack/internal/domain"
	"logitrack/internal/timeutil"
)

const sheetName = "Timesheet"

// columns is the template's column set, in order, with its widths.
var columns = []struct {
	header string
	width  float64
}{
	{"Day", 8},
	{"Date", 12},
	{"Time Start", 12},
	{"Time End", 12},
	{"Hours", 8},
	{"Customer", 15},
	{"Work Order", 15},
	{"Work Hours", 12},
	{"Train Hours", 12},
	{"Other Hours", 12},
	{"Notes", 50},
}

// WriteTimesheet renders the timesheet as an XLSX workbook and writes it
// to w.
func WriteTimesheet(sheet *domain.Timesheet, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col.header

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, name, name, col.width); err != nil {
			return err
		}
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			row.Day, row.Date, row.TimeStart, row.TimeEnd, row.Hours,
			row.Customer, row.WorkOrder, row.WorkHours, row.TrainHours,
			row.OtherHours, row.Notes,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// Filename derives the download name from the report range, e.g.
// "July 1, 2025 to July 15.xlsx".
func Filename(sheet *domain.Timesheet) string {
	return fmt.Sprintf("%s to %s.xlsx",
		timeutil.FormatDate(sheet.Start),
		sheet.End.Format("January 2"),
	)
}
