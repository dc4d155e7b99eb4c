package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/http/response"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/beatsync"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/tuning"
)

const maxPreviewImages = 200

type TimingHandler struct {
	tuning tuning.Config
}

func NewTimingHandler(cfg tuning.Config) *TimingHandler {
	return &TimingHandler{tuning: cfg.Normalize()}
}

type timingPreviewRequest struct {
	ImageURLs []string                  `json:"imageUrls"`
	Analysis  *types.PercussionAnalysis `json:"analysis"`
	// TrackDuration overrides analysis.duration when positive.
	TrackDuration float64 `json:"trackDuration"`
}

// POST /api/timings/preview
func (h *TimingHandler) Preview(c *gin.Context) {
	var req timingPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if len(req.ImageURLs) > maxPreviewImages {
		response.RespondError(c, http.StatusBadRequest, "too_many_images", fmt.Errorf("at most %d images", maxPreviewImages))
		return
	}
	dur := req.TrackDuration
	if dur <= 0 && req.Analysis != nil {
		dur = req.Analysis.Duration
	}
	events, source := beatsync.PickEvents(req.Analysis)
	slots := beatsync.CalculateTimings(events, len(req.ImageURLs), dur, beatsync.OptionsFrom(h.tuning))

	out := make([]types.ImageTiming, len(slots))
	for i, s := range slots {
		out[i] = types.ImageTiming{
			ImageURL: req.ImageURLs[i],
			Start:    s.Start,
			Duration: s.Duration,
			FadeIn:   s.FadeIn,
			FadeOut:  s.FadeOut,
		}
	}
	response.RespondOK(c, gin.H{"imageTiming": out, "eventSource": source})
}
