package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/listing-reel-backend/internal/http/response"
	"github.com/yungbote/listing-reel-backend/internal/services"
)

type VideoHandler struct {
	videos services.VideoService
}

func NewVideoHandler(videos services.VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// POST /api/videos
func (h *VideoHandler) Create(c *gin.Context) {
	var req services.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	video, err := h.videos.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "create_video_failed")
		return
	}
	response.RespondCreated(c, gin.H{"video": video})
}

// GET /api/videos/:id
func (h *VideoHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	video, err := h.videos.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "get_video_failed")
		return
	}
	response.RespondOK(c, gin.H{"video": video})
}

// GET /api/listings/:id/videos?limit=
func (h *VideoHandler) ListByListing(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	videos, err := h.videos.ListByListing(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		response.RespondAPIError(c, err, "list_videos_failed")
		return
	}
	response.RespondOK(c, gin.H{"videos": videos})
}
