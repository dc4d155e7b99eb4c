package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/listing-reel-backend/internal/http/handlers"
	httpMW "github.com/yungbote/listing-reel-backend/internal/http/middleware"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	// Tracing wraps every request in an otelgin span.
	Tracing bool

	HealthHandler   *httpH.HealthHandler
	PhotoHandler    *httpH.PhotoHandler
	ScriptHandler   *httpH.ScriptHandler
	TimingHandler   *httpH.TimingHandler
	MusicHandler    *httpH.MusicHandler
	VideoHandler    *httpH.VideoHandler
	RealtimeHandler *httpH.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		name := cfg.ServiceName
		if name == "" {
			name = "listing-reel-backend"
		}
		r.Use(otelgin.Middleware(name))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Photos
		if cfg.PhotoHandler != nil {
			api.POST("/photos", cfg.PhotoHandler.Upload)
			api.POST("/photos/classify", cfg.PhotoHandler.Classify)
		}

		// Scripts
		if cfg.ScriptHandler != nil {
			api.POST("/scripts/plan", cfg.ScriptHandler.Plan)
			api.POST("/scripts/generate", cfg.ScriptHandler.Generate)
		}

		// Timings + music
		if cfg.TimingHandler != nil {
			api.POST("/timings/preview", cfg.TimingHandler.Preview)
		}
		if cfg.MusicHandler != nil {
			api.POST("/music/analyze", cfg.MusicHandler.Analyze)
		}

		// Videos
		if cfg.VideoHandler != nil {
			api.POST("/videos", cfg.VideoHandler.Create)
			api.GET("/videos/:id", cfg.VideoHandler.Get)
			api.GET("/listings/:id/videos", cfg.VideoHandler.ListByListing)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			api.GET("/videos/:id/stream", cfg.RealtimeHandler.VideoStream)
		}
	}

	return r
}
