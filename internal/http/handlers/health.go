package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness plus which optional integrations came up at boot.
// A false entry means the matching endpoints answer 503.
type HealthHandler struct {
	deps map[string]bool
}

func NewHealthHandler(deps map[string]bool) *HealthHandler {
	cp := make(map[string]bool, len(deps))
	for k, v := range deps {
		cp[k] = v
	}
	return &HealthHandler{deps: cp}
}

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": h.deps})
}
