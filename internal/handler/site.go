package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"logitrack/internal/domain"
	"logitrack/internal/service"
)

// SiteHandler handles HTTP requests for the site registry.
type SiteHandler struct {
	siteService *service.SiteService
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(siteService *service.SiteService) *SiteHandler {
	return &SiteHandler{siteService: siteService}
}

// CreateSiteRequest is the HTTP request body for creating a site.
type CreateSiteRequest struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// SiteResponse is the HTTP response for site operations.
type SiteResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	FirstVisited string  `json:"first_visited"`
}

func toSiteResponse(site *domain.Site) SiteResponse {
	return SiteResponse{
		ID:           site.ID,
		Name:         site.Name,
		Lat:          site.Lat,
		Lng:          site.Lng,
		FirstVisited: site.FirstVisited.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Create handles POST /v1/sites
func (h *SiteHandler) Create(c *gin.Context) {
	var req CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	site, err := h.siteService.Create(c.Request.Context(), req.Name, req.Lat, req.Lng)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toSiteResponse(site))
}

// GetAll handles GET /v1/sites
func (h *SiteHandler) GetAll(c *gin.Context) {
	sites, err := h.siteService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]SiteResponse, 0, len(sites))
	for _, site := range sites {
		response = append(response, toSiteResponse(site))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetNearby handles GET /v1/sites/nearby?lat=&lng=
func (h *SiteHandler) GetNearby(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lat and lng query parameters are required"})
		return
	}

	sites, err := h.siteService.FindNearby(c.Request.Context(), lat, lng)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]SiteResponse, 0, len(sites))
	for _, site := range sites {
		response = append(response, toSiteResponse(site))
	}

	respondJSON(c, http.StatusOK, response)
}
