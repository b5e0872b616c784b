package api

import (
	"net/http"

	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/api/middleware"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/config"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/form"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/metrics"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/middleware"
	webhandlers "github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/web/handlers"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/pkg/embedded"
	"github.com/gin-gonic/gin"
)

// Dependencies are the collaborators the router wires into handlers
type Dependencies struct {
	Generator          webhandlers.Generator
	GenerationEndpoint string
	CloudWatch         *metrics.Client
}

func SetupRouter(cfg *config.Config, deps Dependencies, version string) *gin.Engine {
	if deps.CloudWatch == nil {
		deps.CloudWatch = metrics.Disabled(cfg.Environment)
	}

	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(deps.CloudWatch))

	// Embedded stylesheet
	router.StaticFS("/static", http.FS(embedded.Static()))

	formStore := form.NewStore(form.WithIdleTimeout(middleware.SessionMaxAge))

	// Health check
	healthHandler := handlers.NewHealthHandler(deps.GenerationEndpoint)
	router.GET("/health", healthHandler.HealthCheck)

	// JSON endpoints
	metricsHandler := handlers.NewMetricsHandler(version, formStore)
	router.GET("/api/metrics", metricsHandler.GetMetrics)
	router.GET("/api/catalog", handlers.GetCatalog)

	// Web pages (form state is per browser session)
	webHandler := webhandlers.NewWebHandler(formStore, deps.Generator, deps.CloudWatch)
	web := router.Group("/")
	web.Use(middleware.Session(middleware.NewSessionStore(cfg)))
	{
		web.GET("/", webHandler.Home)
		web.POST("/submit", webHandler.Submit)     // Full page, or results region for htmx
		web.POST("/language", webHandler.Language) // Full page, or form+results for htmx
	}

	return router
}
