package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/listing-reel-backend/internal/http/response"
	"github.com/yungbote/listing-reel-backend/internal/services"
)

type MusicHandler struct {
	beats services.BeatAnalysisService
}

func NewMusicHandler(beats services.BeatAnalysisService) *MusicHandler {
	return &MusicHandler{beats: beats}
}

type analyzeRequest struct {
	Key string `json:"key"`
}

// POST /api/music/analyze
func (h *MusicHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	analysis, err := h.beats.Analyze(c.Request.Context(), req.Key)
	if err != nil {
		response.RespondAPIError(c, err, "beat_analysis_failed")
		return
	}
	response.RespondOK(c, gin.H{"analysis": analysis})
}
