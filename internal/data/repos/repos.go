package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/listing-reel-backend/internal/data/repos/videos"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

type VideoRepo = videos.VideoRepo

func NewVideoRepo(db *gorm.DB, log *logger.Logger) VideoRepo { return videos.NewVideoRepo(db, log) }
