package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	temporalsdkclient "go.temporal.io/sdk/client"

	"github.com/yungbote/listing-reel-backend/internal/platform/gcp"
	"github.com/yungbote/listing-reel-backend/internal/platform/gemini"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
	"github.com/yungbote/listing-reel-backend/internal/realtime/bus"
	"github.com/yungbote/listing-reel-backend/internal/services"
	"github.com/yungbote/listing-reel-backend/internal/temporalx"
)

// Clients holds the external integrations. Any of them may be nil; the services that
// depend on a missing client answer 503 instead of failing at boot.
type Clients struct {
	Bucket   gcp.BucketService
	Vision   gcp.Vision
	Gemini   gemini.Client
	Temporal temporalsdkclient.Client
	SSEBus   bus.Bus
	HTTP     *http.Client
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Object storage
	bucket, err := resolveBucketService(log)
	if err != nil {
		return Clients{}, err
	}
	out.Bucket = bucket

	// Redis
	if strings.TrimSpace(cfg.Redis.Addr) != "" {
		b, err := bus.NewRedisBus(log, cfg.Redis)
		if err != nil {
			out.Close(log)
			return Clients{}, fmt.Errorf("init redis SSE bus: %w", err)
		}
		out.SSEBus = b
	}

	// Vision
	if cfg.VisionEnabled {
		vision, err := gcp.NewVision(log)
		if err != nil {
			log.Warn("Vision unavailable; photo classification disabled", "error", err)
		} else {
			out.Vision = vision
		}
	}

	// Gemini
	if cfg.Gemini.APIKey != "" {
		llm, err := gemini.New(context.Background(), log, cfg.Gemini)
		if err != nil {
			log.Warn("Gemini unavailable; narration disabled", "error", err)
		} else {
			out.Gemini = llm
		}
	} else {
		log.Warn("GEMINI_API_KEY not set; narration disabled")
	}

	// Workflow dispatch
	switch cfg.WorkflowMode {
	case services.WorkflowModeTemporal:
		tc, err := temporalx.NewClient(log, cfg.Temporal)
		if err != nil {
			out.Close(log)
			return Clients{}, fmt.Errorf("init temporal client: %w", err)
		}
		out.Temporal = tc
	case services.WorkflowModeWebhook:
		out.HTTP = &http.Client{Timeout: cfg.Webhook.Timeout}
	default:
		out.Close(log)
		return Clients{}, fmt.Errorf("invalid WORKFLOW_MODE=%q (allowed: %q, %q)", cfg.WorkflowMode, services.WorkflowModeTemporal, services.WorkflowModeWebhook)
	}

	return out, nil
}

func (c Clients) Close(log *logger.Logger) {
	if c.Temporal != nil {
		c.Temporal.Close()
	}
	if c.SSEBus != nil {
		if err := c.SSEBus.Close(); err != nil {
			log.Warn("redis bus close failed", "error", err)
		}
	}
	if c.Vision != nil {
		if err := c.Vision.Close(); err != nil {
			log.Warn("vision close failed", "error", err)
		}
	}
	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			log.Warn("gemini close failed", "error", err)
		}
	}
}
