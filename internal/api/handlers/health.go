package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/fretboard-api/internal/cache"
)

type HealthHandler struct {
	store cache.Store
}

func NewHealthHandler(store cache.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"cache": gin.H{
			"backend": h.store.Name(),
		},
	})
}
