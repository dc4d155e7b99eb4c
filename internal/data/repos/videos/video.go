package videos

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/platform/dbctx"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

type VideoRepo interface {
	Create(dbc dbctx.Context, video *types.Video) (*types.Video, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Video, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	ListByListing(dbc dbctx.Context, listingID string, limit int) ([]*types.Video, error)
}

type videoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	return &videoRepo{db: db, log: baseLog.With("repo", "VideoRepo")}
}

func (r *videoRepo) Create(dbc dbctx.Context, video *types.Video) (*types.Video, error) {
	if video == nil {
		return nil, errors.New("video required")
	}
	if err := dbc.DB(r.db).Create(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

// GetByID returns nil, nil when the record does not exist.
func (r *videoRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Video, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var v types.Video
	err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&v).Error
	if err != nil {
		return nil, err
	}
	if v.ID == uuid.Nil {
		return nil, nil
	}
	return &v, nil
}

func (r *videoRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	res := dbc.DB(r.db).Model(&types.Video{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		r.log.Warn("UpdateFields matched no rows", "video_id", id)
	}
	return nil
}

// ListByListing returns the newest videos first.
func (r *videoRepo) ListByListing(dbc dbctx.Context, listingID string, limit int) ([]*types.Video, error) {
	out := []*types.Video{}
	if listingID == "" {
		return out, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	err := dbc.DB(r.db).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
