package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(&types.Video{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
