package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports process liveness and storage mode
type HealthHandler struct {
	offline func() bool
}

// NewHealthHandler creates a health handler. The offline probe reports
// whether the store is running on the local fallback database.
func NewHealthHandler(offline func() bool) *HealthHandler {
	return &HealthHandler{offline: offline}
}

// Health handles the GET /healthz endpoint
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"offline": h.offline(),
	})
}
