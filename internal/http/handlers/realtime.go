package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/listing-reel-backend/internal/http/response"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
	"github.com/yungbote/listing-reel-backend/internal/realtime"
	"github.com/yungbote/listing-reel-backend/internal/services"
)

type RealtimeHandler struct {
	log    *logger.Logger
	hub    *realtime.SSEHub
	videos services.VideoService
}

// NewRealtimeHandler streams video status events; videos may be nil to skip the existence check.
func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub, videos services.VideoService) *RealtimeHandler {
	return &RealtimeHandler{log: log.With("handler", "RealtimeHandler"), hub: hub, videos: videos}
}

// GET /api/videos/:id/stream
func (h *RealtimeHandler) VideoStream(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	if h.videos != nil {
		if _, err := h.videos.Get(c.Request.Context(), id); err != nil {
			response.RespondAPIError(c, err, "get_video_failed")
			return
		}
	}

	client := h.hub.NewSSEClient()
	h.hub.AddChannel(client, realtime.VideoChannel(id))
	h.log.Debug("SSE stream open", "video_id", id, "client_id", client.ID)

	h.hub.ServeHTTP(c.Writer, c.Request, client)
	h.hub.CloseClient(client)
}
