package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"logitrack/internal/domain"
	"logitrack/internal/export"
	"logitrack/internal/service"
)

// ReportHandler handles HTTP requests for timesheet reports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// TimesheetRowResponse mirrors one timesheet row.
type TimesheetRowResponse struct {
	Day        string `json:"day"`
	Date       string `json:"date"`
	TimeStart  string `json:"time_start"`
	TimeEnd    string `json:"time_end"`
	Hours      string `json:"hours"`
	Customer   string `json:"customer"`
	WorkOrder  string `json:"work_order"`
	WorkHours  string `json:"work_hours"`
	TrainHours string `json:"train_hours"`
	OtherHours string `json:"other_hours"`
	Notes      string `json:"notes"`
}

// TimesheetResponse is the JSON rendering of the timesheet table.
type TimesheetResponse struct {
	Start      string                 `json:"start"`
	End        string                 `json:"end"`
	JobCount   int                    `json:"job_count"`
	TotalHours float64                `json:"total_hours"`
	Rows       []TimesheetRowResponse `json:"rows"`
}

// RangeResponse is the suggested bi-monthly report window.
type RangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

const dateLayout = "2006-01-02"

func (h *ReportHandler) parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err1 := time.ParseInLocation(dateLayout, c.Query("start"), time.Local)
	end, err2 := time.ParseInLocation(dateLayout, c.Query("end"), time.Local)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start and end query parameters are required as YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// GetTimesheet handles GET /v1/reports/timesheet?start=&end=
func (h *ReportHandler) GetTimesheet(c *gin.Context) {
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	sheet, err := h.reportService.BuildTimesheet(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTimesheetResponse(sheet))
}

// DownloadTimesheet handles GET /v1/reports/timesheet.xlsx?start=&end=
func (h *ReportHandler) DownloadTimesheet(c *gin.Context) {
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	sheet, err := h.reportService.BuildTimesheet(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteTimesheet(sheet, &buf); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(sheet)+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// GetBiMonthlyRange handles GET /v1/reports/bimonthly-range
func (h *ReportHandler) GetBiMonthlyRange(c *gin.Context) {
	start, end := service.BiMonthlyRange(time.Now())
	respondJSON(c, http.StatusOK, RangeResponse{
		Start: start.Format(dateLayout),
		End:   end.Format(dateLayout),
	})
}

func toTimesheetResponse(sheet *domain.Timesheet) TimesheetResponse {
	resp := TimesheetResponse{
		Start:      sheet.Start.Format(dateLayout),
		End:        sheet.End.Format(dateLayout),
		JobCount:   sheet.JobCount,
		TotalHours: sheet.TotalHours,
		Rows:       make([]TimesheetRowResponse, 0, len(sheet.Rows)),
	}

	for _, row := range sheet.Rows {
		resp.Rows = append(resp.Rows, TimesheetRowResponse{
			Day:        row.Day,
			Date:       row.Date,
			TimeStart:  row.TimeStart,
			TimeEnd:    row.TimeEnd,
			Hours:      row.Hours,
			Customer:   row.Customer,
			WorkOrder:  row.WorkOrder,
			WorkHours:  row.WorkHours,
			TrainHours: row.TrainHours,
			OtherHours: row.OtherHours,
			Notes:      row.Notes,
		})
	}

	return resp
}
