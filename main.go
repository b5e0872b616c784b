package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/api"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/config"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/metrics"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/observability"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout = 2 * time.Second
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "prompt-orchestrator-ui@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            !cfg.IsProduction(),
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	if cfg.UsesDefaultSessionSecret() {
		if cfg.IsProduction() {
			log.Fatal("SESSION_SECRET must be set in production")
		}
		log.Println("⚠️  SESSION_SECRET not set, using development default")
	}

	cw, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("Failed to initialize CloudWatch metrics: %v", err)
		cw = metrics.Disabled(cfg.Environment)
	}

	generator := services.NewGenerationClient(
		cfg.GenerationServiceURL,
		services.WithLangfuse(observability.InitializeLangfuse(ctx, cfg)),
	)
	log.Printf("🔗 Generation service: %s", generator.Endpoint())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(cfg, api.Dependencies{
		Generator:          generator,
		GenerationEndpoint: generator.Endpoint(),
		CloudWatch:         cw,
	}, GetVersion())

	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
