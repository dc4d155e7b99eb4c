package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/listing-reel-backend/internal/data/repos"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

type Repos struct {
	Video repos.VideoRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Video: repos.NewVideoRepo(db, log),
	}
}
