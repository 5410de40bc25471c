package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"logitrack/internal/handler"
	"logitrack/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	SiteHandler   *handler.SiteHandler
	JobHandler    *handler.JobHandler
	ReportHandler *handler.ReportHandler
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application

	// FallbackStorage is reported by the health endpoint so the client
	// can show the degraded-persistence notice.
	FallbackStorage bool
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		storage := "remote"
		if deps.FallbackStorage {
			storage = "local"
		}
		c.JSON(200, gin.H{"status": "ok", "storage": storage})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Job lifecycle and history routes.
		jobs := v1.Group("/jobs")
		{
			jobs.POST("/start", deps.JobHandler.Start)
			jobs.POST("/end", deps.JobHandler.End)
			jobs.GET("/current", deps.JobHandler.GetCurrent)
			jobs.GET("", deps.JobHandler.GetAll)
			jobs.GET("/summary", deps.JobHandler.GetSummary)
			jobs.DELETE("/:id", deps.JobHandler.Delete)
		}

		// Site registry routes.
		sites := v1.Group("/sites")
		{
			sites.POST("", deps.SiteHandler.Create)
			sites.GET("", deps.SiteHandler.GetAll)
			sites.GET("/nearby", deps.SiteHandler.GetNearby)
		}

		// Report routes.
		reports := v1.Group("/reports")
		{
			reports.GET("/timesheet", deps.ReportHandler.GetTimesheet)
			reports.GET("/timesheet.xlsx", deps.ReportHandler.DownloadTimesheet)
			reports.GET("/bimonthly-range", deps.ReportHandler.GetBiMonthlyRange)
		}
	}

	return router
}
