package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/platform/apierr"
	"github.com/yungbote/listing-reel-backend/internal/platform/gcp"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

// MaxPhotoBytes caps a single upload.
const MaxPhotoBytes = 25 << 20

// Listing ids become a storage path segment.
var listingIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
}

type PhotoUpload struct {
	Key            string               `json:"key"`
	URL            string               `json:"url"`
	Classification types.Classification `json:"classification"`
}

type PhotoService interface {
	Upload(ctx context.Context, listingID, filename string, file io.Reader) (*PhotoUpload, error)
}

type photoService struct {
	log        *logger.Logger
	bucket     gcp.BucketService
	classifier ClassifierService
}

func NewPhotoService(baseLog *logger.Logger, bucket gcp.BucketService, classifier ClassifierService) PhotoService {
	return &photoService{
		log:        baseLog.With("service", "PhotoService"),
		bucket:     bucket,
		classifier: classifier,
	}
}

func (s *photoService) Upload(ctx context.Context, listingID, filename string, file io.Reader) (*PhotoUpload, error) {
	if s.bucket == nil {
		return nil, apierr.Unavailable("storage_unavailable", nil)
	}
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return nil, apierr.BadRequest("missing_listing_id", apierr.ErrInvalidArgument)
	}
	if !listingIDPattern.MatchString(listingID) {
		return nil, apierr.BadRequest("invalid_listing_id", fmt.Errorf("listing id %q: %w", listingID, apierr.ErrInvalidArgument))
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !photoExtensions[ext] {
		return nil, apierr.BadRequest("unsupported_photo_type", fmt.Errorf("unsupported photo type %q", ext))
	}

	raw, err := io.ReadAll(io.LimitReader(file, MaxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	if len(raw) == 0 {
		return nil, apierr.BadRequest("empty_photo", apierr.ErrInvalidArgument)
	}
	if len(raw) > MaxPhotoBytes {
		return nil, apierr.BadRequest("photo_too_large", fmt.Errorf("photo exceeds %d bytes", MaxPhotoBytes))
	}

	key := PhotoKey(listingID, uuid.New(), ext)
	if err := s.bucket.UploadFile(ctx, gcp.BucketCategoryPhoto, key, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}
	publicURL := s.bucket.GetPublicURL(gcp.BucketCategoryPhoto, key)

	out := &PhotoUpload{
		Key: key,
		URL: publicURL,
		Classification: types.Classification{
			URL:      publicURL,
			Filename: filename,
			RoomType: types.RoomOther,
			Features: []string{},
		},
	}
	if s.classifier == nil {
		return out, nil
	}
	c, err := s.classifier.Classify(ctx, ClassifyInput{URL: publicURL, Filename: filename, Content: raw})
	if err != nil {
		s.log.Warn("photo classification failed", "key", key, "error", err)
		return out, nil
	}
	out.Classification = c
	return out, nil
}

// PhotoKey is the object key for an uploaded listing photo.
func PhotoKey(listingID string, id uuid.UUID, ext string) string {
	return fmt.Sprintf("listings/%s/photos/%s%s", listingID, id.String(), ext)
}
