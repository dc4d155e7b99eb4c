package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/http/response"
	"github.com/yungbote/listing-reel-backend/internal/platform/apierr"
	"github.com/yungbote/listing-reel-backend/internal/services"
)

const maxPhotosPerRequest = 60

type PhotoHandler struct {
	photos     services.PhotoService
	classifier services.ClassifierService
}

func NewPhotoHandler(photos services.PhotoService, classifier services.ClassifierService) *PhotoHandler {
	return &PhotoHandler{photos: photos, classifier: classifier}
}

// POST /api/photos
// multipart: listingId, photos (repeatable)
func (h *PhotoHandler) Upload(c *gin.Context) {
	listingID := strings.TrimSpace(c.PostForm("listingId"))
	if listingID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_listing_id", apierr.ErrInvalidArgument)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_form", err)
		return
	}
	files := form.File["photos"]
	if len(files) == 0 {
		files = form.File["photo"]
	}
	if len(files) == 0 {
		response.RespondError(c, http.StatusBadRequest, "missing_photos", apierr.ErrInvalidArgument)
		return
	}
	if len(files) > maxPhotosPerRequest {
		response.RespondError(c, http.StatusBadRequest, "too_many_photos", fmt.Errorf("at most %d photos per request", maxPhotosPerRequest))
		return
	}

	out := make([]*services.PhotoUpload, 0, len(files))
	for _, fh := range files {
		up, err := h.uploadOne(c, listingID, fh)
		if err != nil {
			response.RespondAPIError(c, err, "photo_upload_failed")
			return
		}
		out = append(out, up)
	}
	response.RespondCreated(c, gin.H{"photos": out})
}

func (h *PhotoHandler) uploadOne(c *gin.Context, listingID string, fh *multipart.FileHeader) (*services.PhotoUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, apierr.BadRequest("invalid_photo", err)
	}
	defer f.Close()
	return h.photos.Upload(c.Request.Context(), listingID, fh.Filename, f)
}

type classifyRequest struct {
	URLs []string `json:"urls"`
}

// POST /api/photos/classify
func (h *PhotoHandler) Classify(c *gin.Context) {
	if h.classifier == nil || !h.classifier.Enabled() {
		response.RespondAPIError(c, apierr.Unavailable("vision_unavailable", nil), "classification_failed")
		return
	}
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in := make([]services.ClassifyInput, 0, len(req.URLs))
	for _, u := range req.URLs {
		if u = strings.TrimSpace(u); u != "" {
			in = append(in, services.ClassifyInput{URL: u})
		}
	}
	if len(in) == 0 {
		response.RespondError(c, http.StatusBadRequest, "missing_urls", apierr.ErrInvalidArgument)
		return
	}
	if len(in) > maxPhotosPerRequest {
		response.RespondError(c, http.StatusBadRequest, "too_many_photos", fmt.Errorf("at most %d photos per request", maxPhotosPerRequest))
		return
	}
	var out []types.Classification
	if len(in) == 1 {
		one, err := h.classifier.Classify(c.Request.Context(), in[0])
		if err != nil {
			response.RespondAPIError(c, err, "classification_failed")
			return
		}
		out = []types.Classification{one}
	} else {
		out = h.classifier.ClassifyBatch(c.Request.Context(), in)
	}
	response.RespondOK(c, gin.H{"classifications": out})
}
