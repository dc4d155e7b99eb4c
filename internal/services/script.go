package services

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/sections"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/tuning"
	"github.com/yungbote/listing-reel-backend/internal/observability"
	"github.com/yungbote/listing-reel-backend/internal/platform/apierr"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

type ScriptPlanRequest struct {
	// Layout names a built-in layout; empty selects the configured default.
	Layout        string                    `json:"layout"`
	Images        []types.Image             `json:"images"`
	Analysis      *types.PercussionAnalysis `json:"analysis,omitempty"`
	TrackDuration float64                   `json:"trackDuration"`
}

type ScriptGenerateRequest struct {
	ScriptPlanRequest
	Property types.Property `json:"property"`
	Style    types.Style    `json:"style"`
	Branding types.Branding `json:"branding"`
}

type ScriptResult struct {
	Plan                       reel.Plan       `json:"plan"`
	Sections                   []types.Section `json:"sections"`
	Script                     string          `json:"script"`
	WordCount                  int             `json:"wordCount"`
	EstimatedNarrationDuration int             `json:"estimatedNarrationDuration"`
}

type ScriptService interface {
	Layout(name string) (sections.Layout, error)
	Plan(ctx context.Context, req ScriptPlanRequest) (*reel.Plan, error)
	Generate(ctx context.Context, req ScriptGenerateRequest) (*ScriptResult, error)
	Tuning() tuning.Config
}

type scriptService struct {
	log       *logger.Logger
	layout    sections.Layout
	tuning    tuning.Config
	narration NarrationService
}

// NewScriptService uses defaultLayout whenever a request does not name one.
func NewScriptService(baseLog *logger.Logger, defaultLayout sections.Layout, cfg tuning.Config, narration NarrationService) ScriptService {
	return &scriptService{
		log:       baseLog.With("service", "ScriptService"),
		layout:    defaultLayout,
		tuning:    cfg.Normalize(),
		narration: narration,
	}
}

func (s *scriptService) Tuning() tuning.Config { return s.tuning }

func (s *scriptService) Layout(name string) (sections.Layout, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, s.layout.Name) {
		return s.layout, nil
	}
	l, err := sections.Builtin(name)
	if err != nil {
		return sections.Layout{}, apierr.BadRequest("unknown_layout", err)
	}
	return l, nil
}

func (s *scriptService) Plan(ctx context.Context, req ScriptPlanRequest) (*reel.Plan, error) {
	layout, err := s.Layout(req.Layout)
	if err != nil {
		return nil, err
	}
	if err := ValidateImages(req.Images); err != nil {
		return nil, err
	}
	_, span := observability.StartSpan(ctx, "script.plan",
		attribute.String("layout", layout.Name),
		attribute.Int("photos", len(req.Images)),
	)
	defer span.End()

	plan := reel.BuildPlan(reel.PlanInput{
		Layout:        layout,
		Images:        req.Images,
		Analysis:      req.Analysis,
		TrackDuration: req.TrackDuration,
		Tuning:        s.tuning,
	})
	span.SetAttributes(attribute.Int("total_words", plan.TotalWords))
	return &plan, nil
}

func (s *scriptService) Generate(ctx context.Context, req ScriptGenerateRequest) (*ScriptResult, error) {
	if s.narration == nil {
		return nil, apierr.Unavailable("narration_unavailable", nil)
	}
	plan, err := s.Plan(ctx, req.ScriptPlanRequest)
	if err != nil {
		return nil, err
	}
	written, err := s.narration.Generate(ctx, NarrationRequest{
		Property: req.Property,
		Style:    req.Style,
		Branding: req.Branding,
		Sections: plan.Sections,
		Budgets:  plan.Budgets,
		Images:   req.Images,
	})
	if err != nil {
		return nil, err
	}
	script, words := JoinScript(written)
	s.log.Debug("Script generated", "layout", plan.Layout, "target_words", plan.TotalWords, "words", words)
	return &ScriptResult{
		Plan:                       *plan,
		Sections:                   written,
		Script:                     script,
		WordCount:                  words,
		EstimatedNarrationDuration: s.tuning.NarrationSeconds(words),
	}, nil
}

// JoinScript concatenates non-empty section texts in playback order.
func JoinScript(secs []types.Section) (string, int) {
	var parts []string
	for _, sec := range sections.PlaybackOrder(secs) {
		if c := strings.TrimSpace(sec.Content); c != "" {
			parts = append(parts, c)
		}
	}
	script := strings.Join(parts, "\n\n")
	return script, types.WordCount(script)
}

// ValidateImages rejects photos the mapper cannot key on.
func ValidateImages(images []types.Image) error {
	seen := make(map[string]bool, len(images))
	for i, img := range images {
		id := strings.TrimSpace(img.ID)
		if id == "" {
			return apierr.BadRequest("invalid_image", fmt.Errorf("image %d: missing id", i))
		}
		if seen[id] {
			return apierr.BadRequest("invalid_image", fmt.Errorf("image %q appears more than once", id))
		}
		seen[id] = true
		if strings.TrimSpace(img.URL) == "" && strings.TrimSpace(img.EnhancedURL) == "" {
			return apierr.BadRequest("invalid_image", fmt.Errorf("image %q: missing url", id))
		}
		if img.RoomType != "" && !img.RoomType.Valid() {
			return apierr.BadRequest("invalid_image", fmt.Errorf("image %q: unknown room type %q", id, img.RoomType))
		}
	}
	return nil
}
