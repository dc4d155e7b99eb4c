package videos

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type VideoStatus string

const (
	VideoStatusPending    VideoStatus = "pending"
	VideoStatusDispatched VideoStatus = "dispatched"
	VideoStatusFailed     VideoStatus = "failed"
)

// Video records one hand-off to the rendering workflow.
type Video struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID     string         `gorm:"column:listing_id;not null;index" json:"listing_id"`
	Status        string         `gorm:"column:status;not null;index" json:"status"`
	Stage         string         `gorm:"column:stage;not null;default:''" json:"stage"`
	Error         string         `gorm:"column:error" json:"error,omitempty"`
	Layout        string         `gorm:"column:layout;not null" json:"layout"`
	ImageCount    int            `gorm:"column:image_count;not null;default:0" json:"image_count"`
	WorkflowRunID string         `gorm:"column:workflow_run_id" json:"workflow_run_id,omitempty"`
	Payload       datatypes.JSON `gorm:"column:payload" json:"payload"`
	CreatedAt     time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;index" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Video) TableName() string { return "listing_video" }

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
