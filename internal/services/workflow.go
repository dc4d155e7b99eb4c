package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	enums "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	temporalsdkclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/observability"
	"github.com/yungbote/listing-reel-backend/internal/platform/httpx"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
	"github.com/yungbote/listing-reel-backend/internal/temporalx"
)

const (
	WorkflowModeTemporal = "temporal"
	WorkflowModeWebhook  = "webhook"
)

// WorkflowTrigger hands a finished payload to the external rendering workflow.
type WorkflowTrigger interface {
	Mode() string
	// Trigger returns the run identifier reported by the engine, possibly "".
	Trigger(ctx context.Context, videoID uuid.UUID, payload types.WorkflowPayload) (string, error)
}

type temporalTrigger struct {
	log    *logger.Logger
	client temporalsdkclient.Client
	cfg    temporalx.Config
}

func NewTemporalTrigger(baseLog *logger.Logger, client temporalsdkclient.Client, cfg temporalx.Config) WorkflowTrigger {
	return &temporalTrigger{
		log:    baseLog.With("service", "TemporalTrigger"),
		client: client,
		cfg:    cfg,
	}
}

func (t *temporalTrigger) Mode() string { return WorkflowModeTemporal }

func (t *temporalTrigger) Trigger(ctx context.Context, videoID uuid.UUID, payload types.WorkflowPayload) (string, error) {
	if t.client == nil {
		return "", fmt.Errorf("temporal not configured (TEMPORAL_ADDRESS)")
	}
	if videoID == uuid.Nil {
		return "", fmt.Errorf("missing video id")
	}
	ctx, span := observability.StartSpan(ctx, "workflow.trigger",
		attribute.String("workflow.mode", WorkflowModeTemporal),
		attribute.String("video.id", videoID.String()),
	)
	defer span.End()

	tq := strings.TrimSpace(t.cfg.TaskQueue)
	if tq == "" {
		tq = "listing-video-render"
	}
	wfType := strings.TrimSpace(t.cfg.WorkflowType)
	if wfType == "" {
		wfType = "RenderListingVideo"
	}
	opts := temporalsdkclient.StartWorkflowOptions{
		ID:                                       videoID.String(),
		TaskQueue:                                tq,
		WorkflowIDReusePolicy:                    enums.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
		WorkflowRunTimeout:                       t.cfg.RunTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    30 * time.Second,
			BackoffCoefficient: 1.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    3,
		},
	}
	run, err := t.client.ExecuteWorkflow(ctx, opts, wfType, payload)
	if err != nil {
		var started *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &started) {
			t.log.Info("Render workflow already started", "video_id", videoID, "run_id", started.RunId)
			return started.RunId, nil
		}
		span.RecordError(err)
		return "", fmt.Errorf("start render workflow: %w", err)
	}
	t.log.Info("Render workflow started", "video_id", videoID, "run_id", run.GetRunID(), "task_queue", tq)
	return run.GetRunID(), nil
}

type WebhookConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
	Retry   httpx.RetryPolicy
}

type webhookTrigger struct {
	log    *logger.Logger
	client *http.Client
	cfg    WebhookConfig
}

func NewWebhookTrigger(baseLog *logger.Logger, client *http.Client, cfg WebhookConfig) WorkflowTrigger {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &webhookTrigger{
		log:    baseLog.With("service", "WebhookTrigger"),
		client: client,
		cfg:    cfg,
	}
}

func (t *webhookTrigger) Mode() string { return WorkflowModeWebhook }

type webhookResponse struct {
	RunID       string `json:"runId"`
	ExecutionID string `json:"executionId"`
}

func (t *webhookTrigger) Trigger(ctx context.Context, videoID uuid.UUID, payload types.WorkflowPayload) (string, error) {
	if strings.TrimSpace(t.cfg.URL) == "" {
		return "", fmt.Errorf("workflow webhook not configured (WORKFLOW_WEBHOOK_URL)")
	}
	ctx, span := observability.StartSpan(ctx, "workflow.trigger",
		attribute.String("workflow.mode", WorkflowModeWebhook),
		attribute.String("video.id", videoID.String()),
	)
	defer span.End()

	headers := map[string]string{"X-Video-Id": videoID.String()}
	if tok := strings.TrimSpace(t.cfg.Token); tok != "" {
		headers["Authorization"] = "Bearer " + tok
	}
	var resp webhookResponse
	if err := httpx.PostJSON(ctx, t.client, t.cfg.URL, headers, payload, &resp, t.cfg.Retry); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("post render webhook: %w", err)
	}
	runID := resp.RunID
	if runID == "" {
		runID = resp.ExecutionID
	}
	t.log.Info("Render webhook accepted", "video_id", videoID, "run_id", runID)
	return runID, nil
}
