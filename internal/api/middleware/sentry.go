package middleware

import (
	"net/http"
	"time"

	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/logger"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/metrics"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	httpStatusInternalServerError = http.StatusInternalServerError
	sentryFlushTimeout            = 2 * time.Second
)

// RequestTracking adds request ID and logging to all requests
func RequestTracking(cw *metrics.Client) gin.HandlerFunc {
	sentryMetrics := metrics.NewSentryMetrics()

	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		logger.LogAPIRequest(c, duration, statusCode, nil)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		sentryMetrics.RecordAPIRequest(c.Request.Context(), route, statusCode, duration)
		cw.RecordAPIRequest(route, statusCode, duration)
	}
}

// SentryMiddleware returns the Sentry middleware with custom configuration
func SentryMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         sentryFlushTimeout,
	})
}

// RecoverWithSentry recovers from panics and sends them to Sentry
func RecoverWithSentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				if hub := sentrygin.GetHubFromContext(c); hub != nil {
					hub.WithScope(func(scope *sentry.Scope) {
						scope.SetRequest(c.Request)
						scope.SetContext("request", map[string]interface{}{
							"request_id": c.GetString("request_id"),
							"session_id": c.GetString("session_id"),
							"method":     c.Request.Method,
							"path":       c.Request.URL.Path,
						})
						hub.RecoverWithContext(c.Request.Context(), err)
					})
				}

				logger.Warn("Panic recovered", logger.Fields{
					"request_id": c.GetString("request_id"),
					"error":      err,
					"path":       c.Request.URL.Path,
				})

				c.AbortWithStatusJSON(httpStatusInternalServerError, gin.H{
					"error":      "Internal server error",
					"request_id": c.GetString("request_id"),
				})
			}
		}()
		c.Next()
	}
}
