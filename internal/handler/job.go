package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logitrack/internal/config"
	"logitrack/internal/domain"
	"logitrack/internal/service"
	"logitrack/internal/timeutil"
)

// JobHandler handles HTTP requests for the job lifecycle and history.
type JobHandler struct {
	jobService     *service.JobService
	historyService *service.HistoryService
	fuelDefaults   config.FuelConfig
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService *service.JobService, historyService *service.HistoryService, fuelDefaults config.FuelConfig) *JobHandler {
	return &JobHandler{
		jobService:     jobService,
		historyService: historyService,
		fuelDefaults:   fuelDefaults,
	}
}

// StartJobRequest is the HTTP request body for starting a job. Lat/Lng are
// pointers so a client without a geolocation fix is distinguishable from a
// client at (0, 0).
type StartJobRequest struct {
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
	SiteID string   `json:"site_id,omitempty"`
}

// EndJobRequest is the HTTP request body for ending the active job. Fuel
// parameters fall back to the configured session defaults when omitted.
// site_id lets a job that started without a site pick one up at end time.
type EndJobRequest struct {
	Lat            *float64 `json:"lat"`
	Lng            *float64 `json:"lng"`
	SiteID         string   `json:"site_id,omitempty"`
	FuelEfficiency *float64 `json:"fuel_efficiency"`
	FuelPrice      *float64 `json:"fuel_price"`
	WorkSummary    string   `json:"work_summary"`
}

// JobResponse is the HTTP response for job operations. StartClock/EndClock
// are the pre-rendered HH:MM labels the history list displays.
type JobResponse struct {
	ID          string  `json:"id"`
	SiteID      string  `json:"site_id,omitempty"`
	SiteName    string  `json:"site_name,omitempty"`
	Active      bool    `json:"active"`
	StartTime   string  `json:"start_time"`
	StartClock  string  `json:"start_clock"`
	EndTime     string  `json:"end_time,omitempty"`
	EndClock    string  `json:"end_clock,omitempty"`
	TravelKm    float64 `json:"travel_km"`
	TravelHours float64 `json:"travel_hours"`
	FuelCost    float64 `json:"fuel_cost"`
	WorkSummary string  `json:"work_summary,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// SummaryResponse is the HTTP response for history aggregates.
type SummaryResponse struct {
	TotalHours    float64 `json:"total_hours"`
	TotalKm       float64 `json:"total_km"`
	TotalFuelCost float64 `json:"total_fuel_cost"`
	JobCount      int     `json:"job_count"`
}

func toJobResponse(job *domain.Job) JobResponse {
	resp := JobResponse{
		ID:          job.ID,
		SiteID:      job.SiteID,
		SiteName:    job.SiteName,
		Active:      job.Active(),
		StartTime:   job.StartTime.Format("2006-01-02T15:04:05Z07:00"),
		StartClock:  timeutil.FormatClock(job.StartTime),
		TravelKm:    job.TravelKm,
		TravelHours: job.TravelHours,
		FuelCost:    job.FuelCost,
		WorkSummary: job.WorkSummary,
		CreatedAt:   job.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if !job.EndTime.IsZero() {
		resp.EndTime = job.EndTime.Format("2006-01-02T15:04:05Z07:00")
		resp.EndClock = timeutil.FormatClock(job.EndTime)
	}
	return resp
}

func toLocation(lat, lng *float64) *domain.Location {
	if lat == nil || lng == nil {
		return nil
	}
	return &domain.Location{Lat: *lat, Lng: *lng}
}

// Start handles POST /v1/jobs/start
func (h *JobHandler) Start(c *gin.Context) {
	var req StartJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	job, err := h.jobService.Start(c.Request.Context(), service.StartJobRequest{
		Location: toLocation(req.Lat, req.Lng),
		SiteID:   req.SiteID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toJobResponse(job))
}

// End handles POST /v1/jobs/end
func (h *JobHandler) End(c *gin.Context) {
	var req EndJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	fuel := domain.FuelParams{
		EfficiencyKmPerL: h.fuelDefaults.EfficiencyKmPerL,
		PricePerL:        h.fuelDefaults.PricePerL,
	}
	if req.FuelEfficiency != nil {
		fuel.EfficiencyKmPerL = *req.FuelEfficiency
	}
	if req.FuelPrice != nil {
		fuel.PricePerL = *req.FuelPrice
	}

	job, err := h.jobService.End(c.Request.Context(), service.EndJobRequest{
		Location:    toLocation(req.Lat, req.Lng),
		SiteID:      req.SiteID,
		Fuel:        fuel,
		WorkSummary: req.WorkSummary,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toJobResponse(job))
}

// GetCurrent handles GET /v1/jobs/current
func (h *JobHandler) GetCurrent(c *gin.Context) {
	job := h.jobService.Current()
	if job == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}

	respondJSON(c, http.StatusOK, toJobResponse(job))
}

// GetAll handles GET /v1/jobs?range=all|today|week|month
func (h *JobHandler) GetAll(c *gin.Context) {
	filter := domain.RangeFilter(c.DefaultQuery("range", string(domain.RangeAll)))

	jobs, err := h.historyService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		response = append(response, toJobResponse(job))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetSummary handles GET /v1/jobs/summary?range=all|today|week|month
func (h *JobHandler) GetSummary(c *gin.Context) {
	filter := domain.RangeFilter(c.DefaultQuery("range", string(domain.RangeAll)))

	jobs, err := h.historyService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	sum := h.historyService.Aggregate(jobs)
	respondJSON(c, http.StatusOK, SummaryResponse{
		TotalHours:    sum.TotalHours,
		TotalKm:       sum.TotalKm,
		TotalFuelCost: sum.TotalFuelCost,
		JobCount:      len(jobs),
	})
}

// Delete handles DELETE /v1/jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
