package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/listing-reel-backend/internal/http/response"
	"github.com/yungbote/listing-reel-backend/internal/services"
)

type ScriptHandler struct {
	scripts services.ScriptService
}

func NewScriptHandler(scripts services.ScriptService) *ScriptHandler {
	return &ScriptHandler{scripts: scripts}
}

// POST /api/scripts/plan
func (h *ScriptHandler) Plan(c *gin.Context) {
	var req services.ScriptPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	plan, err := h.scripts.Plan(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "plan_failed")
		return
	}
	response.RespondOK(c, gin.H{"plan": plan})
}

// POST /api/scripts/generate
func (h *ScriptHandler) Generate(c *gin.Context) {
	var req services.ScriptGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.scripts.Generate(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "script_generation_failed")
		return
	}
	response.RespondOK(c, res)
}
