package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/fretboard-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/fretboard-api/internal/api/middleware"
	"github.com/Conceptual-Machines/fretboard-api/internal/config"
	"github.com/Conceptual-Machines/fretboard-api/internal/metrics"
	"github.com/Conceptual-Machines/fretboard-api/internal/services"
)

func SetupRouter(cfg *config.Config, svc *services.GuideService, recorder metrics.Recorder, version string) (*gin.Engine, error) {
	auth, err := apimiddleware.Auth(cfg)
	if err != nil {
		return nil, err
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(recorder))

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(svc.Store())
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, svc.Store())
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	v1 := router.Group("/api/v1")
	v1.Use(auth)
	{
		guideHandler := handlers.NewGuideHandler(svc)
		v1.GET("/scales", guideHandler.ListScales)
		v1.GET("/instruments", guideHandler.ListInstruments)
		v1.POST("/guides", guideHandler.Generate)
		v1.POST("/harmonize", guideHandler.Harmonize)
		v1.POST("/diagram", guideHandler.Diagram)
	}

	return router, nil
}
