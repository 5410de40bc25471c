package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"logitrack/internal/repository"
	"logitrack/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrLocationUnavailable),
		errors.Is(err, service.ErrInvalidJobID),
		errors.Is(err, service.ErrInvalidSiteName),
		errors.Is(err, service.ErrInvalidFuelEfficiency),
		errors.Is(err, service.ErrInvalidRangeFilter),
		errors.Is(err, service.ErrInvalidDateRange):
		return http.StatusBadRequest

	// Lifecycle conflicts
	case errors.Is(err, service.ErrJobAlreadyActive),
		errors.Is(err, service.ErrNoActiveJob):
		return http.StatusConflict

	// Store write failures are retryable, not fatal.
	case isPersistenceError(err):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}

// isPersistenceError reports whether the error came from the remote store
// driver, so the client can present it as a retryable write failure.
func isPersistenceError(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr)
}
