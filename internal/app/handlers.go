package app

import (
	"github.com/gin-gonic/gin"

	httpapi "github.com/yungbote/listing-reel-backend/internal/http"
	httpH "github.com/yungbote/listing-reel-backend/internal/http/handlers"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
	"github.com/yungbote/listing-reel-backend/internal/realtime"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Photo    *httpH.PhotoHandler
	Script   *httpH.ScriptHandler
	Timing   *httpH.TimingHandler
	Music    *httpH.MusicHandler
	Video    *httpH.VideoHandler
	Realtime *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, cfg Config, clients Clients, serviceset Services, hub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(map[string]bool{
			"storage":   clients.Bucket != nil,
			"vision":    serviceset.Classifier.Enabled(),
			"narration": serviceset.Narration != nil,
			"beats":     cfg.BeatAnalyzerCmd != "" && clients.Bucket != nil,
			"workflow":  serviceset.Workflow != nil,
			"sse_bus":   clients.SSEBus != nil,
		}),
		Photo:    httpH.NewPhotoHandler(serviceset.Photo, serviceset.Classifier),
		Script:   httpH.NewScriptHandler(serviceset.Script),
		Timing:   httpH.NewTimingHandler(cfg.Tuning),
		Music:    httpH.NewMusicHandler(serviceset.Beats),
		Video:    httpH.NewVideoHandler(serviceset.Video),
		Realtime: httpH.NewRealtimeHandler(log, hub, serviceset.Video),
	}
}

func wireRouter(log *logger.Logger, cfg Config, h Handlers) *gin.Engine {
	log.Info("Wiring router...")
	return httpapi.NewRouter(httpapi.RouterConfig{
		Log:             log,
		ServiceName:     cfg.Otel.ServiceName,
		CORSOrigins:     cfg.CORSOrigins,
		Tracing:         cfg.Otel.Enabled,
		HealthHandler:   h.Health,
		PhotoHandler:    h.Photo,
		ScriptHandler:   h.Script,
		TimingHandler:   h.Timing,
		MusicHandler:    h.Music,
		VideoHandler:    h.Video,
		RealtimeHandler: h.Realtime,
	})
}
