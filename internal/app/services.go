package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
	"github.com/yungbote/listing-reel-backend/internal/realtime"
	"github.com/yungbote/listing-reel-backend/internal/services"
)

type Services struct {
	Classifier services.ClassifierService
	Photo      services.PhotoService
	Narration  services.NarrationService
	Beats      services.BeatAnalysisService
	Script     services.ScriptService
	Workflow   services.WorkflowTrigger
	Video      services.VideoService
	Notifier   realtime.VideoNotifier
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients, hub *realtime.SSEHub) (Services, error) {
	log.Info("Wiring services...")

	layout, err := cfg.Layout()
	if err != nil {
		return Services{}, fmt.Errorf("load section layout: %w", err)
	}
	log.Info("Section layout selected", "layout", layout.Name, "sections", len(layout.Slots))

	classifier := services.NewClassifierService(log, clients.Vision, cfg.ClassifyConcurrency)
	var uploadClassifier services.ClassifierService
	if classifier.Enabled() {
		uploadClassifier = classifier
	}
	photo := services.NewPhotoService(log, clients.Bucket, uploadClassifier)

	var narration services.NarrationService
	if clients.Gemini != nil {
		narration = services.NewNarrationService(log, clients.Gemini)
	}
	script := services.NewScriptService(log, layout, cfg.Tuning, narration)
	beats := services.NewBeatAnalysisService(log, clients.Bucket, cfg.BeatAnalyzerCmd, cfg.BeatAnalyzerTimeout)

	var trigger services.WorkflowTrigger
	switch {
	case clients.Temporal != nil:
		trigger = services.NewTemporalTrigger(log, clients.Temporal, cfg.Temporal)
	case cfg.WorkflowMode == services.WorkflowModeWebhook && cfg.Webhook.URL != "":
		trigger = services.NewWebhookTrigger(log, clients.HTTP, cfg.Webhook)
	default:
		log.Warn("No workflow backend configured; video creation disabled", "mode", cfg.WorkflowMode)
	}

	var publisher realtime.Publisher
	if clients.SSEBus != nil {
		publisher = clients.SSEBus
	}
	notifier := realtime.NewVideoNotifier(log, hub, publisher)
	video := services.NewVideoService(db, log, reposet.Video, script, beats, trigger, notifier)

	return Services{
		Classifier: classifier,
		Photo:      photo,
		Narration:  narration,
		Beats:      beats,
		Script:     script,
		Workflow:   trigger,
		Video:      video,
		Notifier:   notifier,
	}, nil
}
