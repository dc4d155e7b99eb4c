package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/listing-reel-backend/internal/data/repos"
	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/payload"
	"github.com/yungbote/listing-reel-backend/internal/observability"
	"github.com/yungbote/listing-reel-backend/internal/platform/apierr"
	"github.com/yungbote/listing-reel-backend/internal/platform/ctxutil"
	"github.com/yungbote/listing-reel-backend/internal/platform/dbctx"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
	"github.com/yungbote/listing-reel-backend/internal/realtime"
)

const (
	videoStageQueued    = "queued"
	videoStageDispatch  = "dispatch"
	videoStageRendering = "rendering"
)

type CreateVideoRequest struct {
	ListingID string          `json:"listingId"`
	Layout    string          `json:"layout"`
	Images    []types.Image   `json:"images"`
	Sections  []types.Section `json:"sections"`
	// GenerateNarration asks the narration service to write sections that arrive without text.
	GenerateNarration bool             `json:"generateNarration"`
	Music             types.MusicTrack `json:"music"`
	Property          types.Property   `json:"property"`
	Style             types.Style      `json:"style"`
	Branding          types.Branding   `json:"branding"`
}

type VideoService interface {
	Create(ctx context.Context, req CreateVideoRequest) (*types.Video, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Video, error)
	ListByListing(ctx context.Context, listingID string, limit int) ([]*types.Video, error)
}

type videoService struct {
	db       *gorm.DB
	log      *logger.Logger
	videos   repos.VideoRepo
	scripts  ScriptService
	beats    BeatAnalysisService
	trigger  WorkflowTrigger
	notifier realtime.VideoNotifier
}

// NewVideoService wires the dispatch path. beats, trigger and notifier may be nil.
func NewVideoService(
	db *gorm.DB,
	baseLog *logger.Logger,
	videos repos.VideoRepo,
	scripts ScriptService,
	beats BeatAnalysisService,
	trigger WorkflowTrigger,
	notifier realtime.VideoNotifier,
) VideoService {
	return &videoService{
		db:       db,
		log:      baseLog.With("service", "VideoService"),
		videos:   videos,
		scripts:  scripts,
		beats:    beats,
		trigger:  trigger,
		notifier: notifier,
	}
}

func (s *videoService) Create(ctx context.Context, req CreateVideoRequest) (*types.Video, error) {
	if s.trigger == nil {
		return nil, apierr.Unavailable("workflow_unavailable", nil)
	}
	req.ListingID = strings.TrimSpace(req.ListingID)
	if req.ListingID == "" {
		return nil, apierr.BadRequest("missing_listing_id", apierr.ErrInvalidArgument)
	}
	if len(req.Images) == 0 {
		return nil, apierr.BadRequest("missing_images", apierr.ErrInvalidArgument)
	}

	videoID := uuid.New()
	ctx, span := observability.StartSpan(ctx, "video.create",
		attribute.String("video.id", videoID.String()),
		attribute.String("listing.id", req.ListingID),
	)
	defer span.End()
	log := s.log.With(ctxutil.LogFields(ctx)...)

	music := s.resolveMusic(ctx, req.Music)
	plan, err := s.scripts.Plan(ctx, ScriptPlanRequest{
		Layout:   req.Layout,
		Images:   req.Images,
		Analysis: music.Analysis,
	})
	if err != nil {
		return nil, err
	}

	secs := mergeContent(plan.Sections, req.Sections)
	if req.GenerateNarration && !hasContent(secs) {
		gen, err := s.scripts.Generate(ctx, ScriptGenerateRequest{
			ScriptPlanRequest: ScriptPlanRequest{Layout: req.Layout, Images: req.Images, Analysis: music.Analysis},
			Property:          req.Property,
			Style:             req.Style,
			Branding:          req.Branding,
		})
		if err != nil {
			return nil, err
		}
		secs = gen.Sections
	}

	doc := payload.Assemble(payload.Input{
		VideoID:   videoID.String(),
		ListingID: req.ListingID,
		Images:    req.Images,
		Sections:  secs,
		Mapping:   plan.Mapping,
		Music:     music,
		Property:  req.Property,
		Style:     req.Style,
		Branding:  req.Branding,
		Tuning:    s.scripts.Tuning(),
	})
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	dbc := dbctx.Context{Ctx: ctx, Tx: s.db}
	video, err := s.videos.Create(dbc, &types.Video{
		ID:         videoID,
		ListingID:  req.ListingID,
		Status:     string(types.VideoStatusPending),
		Stage:      videoStageQueued,
		Layout:     plan.Layout,
		ImageCount: len(req.Images),
		Payload:    datatypes.JSON(raw),
	})
	if err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	s.notify(func(n realtime.VideoNotifier) { n.VideoCreated(ctx, videoID, video) })

	runID, err := s.trigger.Trigger(ctx, videoID, doc)
	if err != nil {
		span.RecordError(err)
		log.Error("Render dispatch failed", "video_id", videoID, "mode", s.trigger.Mode(), "error", err)
		updates := map[string]interface{}{
			"status":     string(types.VideoStatusFailed),
			"stage":      videoStageDispatch,
			"error":      err.Error(),
			"updated_at": time.Now().UTC(),
		}
		if uerr := s.videos.UpdateFields(dbc, videoID, updates); uerr != nil {
			log.Warn("Failed to mark video failed", "video_id", videoID, "error", uerr)
		}
		s.notify(func(n realtime.VideoNotifier) {
			n.VideoFailed(ctx, videoID, map[string]any{"error": err.Error(), "stage": videoStageDispatch})
		})
		return nil, apierr.New(http.StatusBadGateway, "workflow_dispatch_failed", err)
	}

	if err := s.videos.UpdateFields(dbc, videoID, map[string]interface{}{
		"status":          string(types.VideoStatusDispatched),
		"stage":           videoStageRendering,
		"workflow_run_id": runID,
		"updated_at":      time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}
	out, err := s.videos.GetByID(dbc, videoID)
	if err != nil {
		return nil, fmt.Errorf("reload video: %w", err)
	}
	if out == nil {
		return nil, apierr.NotFound("video_not_found", nil)
	}
	log.Info("Video dispatched",
		"video_id", videoID,
		"listing_id", req.ListingID,
		"mode", s.trigger.Mode(),
		"run_id", runID,
		"photos", len(req.Images),
		"timed", len(doc.ImageTiming) > 0,
	)
	s.notify(func(n realtime.VideoNotifier) { n.VideoDispatched(ctx, videoID, out) })
	return out, nil
}

func (s *videoService) Get(ctx context.Context, id uuid.UUID) (*types.Video, error) {
	if id == uuid.Nil {
		return nil, apierr.BadRequest("invalid_video_id", apierr.ErrInvalidArgument)
	}
	v, err := s.videos.GetByID(dbctx.Context{Ctx: ctx, Tx: s.db}, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apierr.NotFound("video_not_found", nil)
	}
	return v, nil
}

func (s *videoService) ListByListing(ctx context.Context, listingID string, limit int) ([]*types.Video, error) {
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return nil, apierr.BadRequest("missing_listing_id", apierr.ErrInvalidArgument)
	}
	return s.videos.ListByListing(dbctx.Context{Ctx: ctx, Tx: s.db}, listingID, limit)
}

// resolveMusic fills in a missing analysis for enabled tracks. Analysis failures only cost
// the beat sync; the video still goes out with evenly paced photos.
func (s *videoService) resolveMusic(ctx context.Context, m types.MusicTrack) types.MusicTrack {
	if !m.Enabled || m.Analysis != nil || strings.TrimSpace(m.Key) == "" || s.beats == nil {
		return m
	}
	a, err := s.beats.Analyze(ctx, m.Key)
	if err != nil {
		s.log.With(ctxutil.LogFields(ctx)...).Warn("Beat analysis failed, timings disabled", "music_key", m.Key, "error", err)
		return m
	}
	m.Analysis = a
	return m
}

func (s *videoService) notify(fn func(n realtime.VideoNotifier)) {
	if s.notifier != nil {
		fn(s.notifier)
	}
}

// mergeContent copies narration from supplied sections onto the planned ones by type.
func mergeContent(planned, supplied []types.Section) []types.Section {
	out := make([]types.Section, len(planned))
	copy(out, planned)
	if len(supplied) == 0 {
		return out
	}
	byType := make(map[types.SectionType]string, len(supplied))
	for _, sec := range supplied {
		if _, ok := byType[sec.Type]; !ok {
			byType[sec.Type] = sec.Content
		}
	}
	for i := range out {
		out[i].Content = byType[out[i].Type]
	}
	return out
}

func hasContent(secs []types.Section) bool {
	for _, sec := range secs {
		if strings.TrimSpace(sec.Content) != "" {
			return true
		}
	}
	return false
}
