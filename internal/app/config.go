package app

import (
	"strings"
	"time"

	"github.com/yungbote/listing-reel-backend/internal/data/db"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/sections"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/tuning"
	"github.com/yungbote/listing-reel-backend/internal/observability"
	"github.com/yungbote/listing-reel-backend/internal/platform/envutil"
	"github.com/yungbote/listing-reel-backend/internal/platform/gemini"
	"github.com/yungbote/listing-reel-backend/internal/platform/httpx"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
	"github.com/yungbote/listing-reel-backend/internal/realtime/bus"
	"github.com/yungbote/listing-reel-backend/internal/services"
	"github.com/yungbote/listing-reel-backend/internal/temporalx"
)

type Config struct {
	Port        string
	CORSOrigins []string

	LayoutName string
	// LayoutFile, when set, replaces the built-in default layout.
	LayoutFile string
	Tuning     tuning.Config

	WorkflowMode string
	Webhook      services.WebhookConfig
	Temporal     temporalx.Config

	Postgres db.PostgresConfig
	Redis    bus.RedisConfig
	Gemini   gemini.Config
	Otel     observability.OtelConfig

	BeatAnalyzerCmd     string
	BeatAnalyzerTimeout time.Duration
	ClassifyConcurrency int
	VisionEnabled       bool
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:        envutil.String(log, "PORT", "8080"),
		CORSOrigins: splitList(envutil.String(log, "CORS_ALLOWED_ORIGINS", "")),

		LayoutName: envutil.String(log, "REEL_LAYOUT", sections.DefaultLayoutName),
		LayoutFile: envutil.String(log, "REEL_LAYOUT_FILE", ""),
		Tuning:     tuning.FromEnv(log),

		WorkflowMode: strings.ToLower(envutil.String(log, "WORKFLOW_MODE", services.WorkflowModeTemporal)),
		Webhook: services.WebhookConfig{
			URL:     envutil.String(log, "WORKFLOW_WEBHOOK_URL", ""),
			Token:   envutil.String(log, "WORKFLOW_WEBHOOK_TOKEN", ""),
			Timeout: time.Duration(envutil.Int(log, "WORKFLOW_WEBHOOK_TIMEOUT_SECONDS", 30)) * time.Second,
			Retry: httpx.RetryPolicy{
				Attempts: envutil.Int(log, "WORKFLOW_WEBHOOK_ATTEMPTS", 3),
				Backoff:  time.Duration(envutil.Int(log, "WORKFLOW_WEBHOOK_BACKOFF_MS", 500)) * time.Millisecond,
				MaxWait:  time.Duration(envutil.Int(log, "WORKFLOW_WEBHOOK_MAX_WAIT_MS", 10000)) * time.Millisecond,
			},
		},
		Temporal: temporalx.LoadConfig(log),

		Postgres: db.LoadPostgresConfig(log),
		Redis: bus.RedisConfig{
			Addr:     envutil.String(log, "REDIS_ADDR", ""),
			Password: envutil.String(log, "REDIS_PASSWORD", ""),
			DB:       envutil.Int(log, "REDIS_DB", 0),
			Channel:  envutil.String(log, "REDIS_SSE_CHANNEL", "listing-reel:sse"),
		},
		Gemini: gemini.Config{
			APIKey:      envutil.String(log, "GEMINI_API_KEY", ""),
			Model:       envutil.String(log, "GEMINI_MODEL", "gemini-1.5-flash"),
			Temperature: float32(envutil.Float(log, "GEMINI_TEMPERATURE", 0.7)),
			Timeout:     time.Duration(envutil.Int(log, "GEMINI_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Otel: observability.LoadOtelConfig(log),

		BeatAnalyzerCmd:     envutil.String(log, "BEAT_ANALYZER_CMD", ""),
		BeatAnalyzerTimeout: time.Duration(envutil.Int(log, "BEAT_ANALYZER_TIMEOUT_SECONDS", 120)) * time.Second,
		ClassifyConcurrency: envutil.Int(log, "CLASSIFY_CONCURRENCY", 4),
		VisionEnabled:       envutil.Bool(log, "VISION_ENABLED", true),
	}
}

// Layout resolves the default section layout: a file when configured, else a built-in.
func (c Config) Layout() (sections.Layout, error) {
	if strings.TrimSpace(c.LayoutFile) != "" {
		return sections.LoadFile(c.LayoutFile)
	}
	return sections.Builtin(c.LayoutName)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
