package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	generationEndpoint string
}

func NewHealthHandler(generationEndpoint string) *HealthHandler {
	return &HealthHandler{generationEndpoint: generationEndpoint}
}

// HealthCheck returns the health status of the UI server. The generation
// service is reported but not probed; it is only contacted on submit.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"generation_service": gin.H{
			"url": h.generationEndpoint,
		},
	})
}
