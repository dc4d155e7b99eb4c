package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/budget"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/sections"
	"github.com/yungbote/listing-reel-backend/internal/observability"
	"github.com/yungbote/listing-reel-backend/internal/platform/apierr"
	"github.com/yungbote/listing-reel-backend/internal/platform/gemini"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

const narrationSystemPrompt = `You write voice-over scripts for short real estate listing videos.
Each section is read while its photos are on screen. Stay close to each section's word target.
Never invent facts that are not listed. Do not use emojis, hashtags or stage directions.
Respond with JSON only: {"sections":[{"type":"<section type>","content":"<narration>"}]}`

type NarrationRequest struct {
	Property types.Property
	Style    types.Style
	Branding types.Branding
	Sections []types.Section
	Budgets  []types.SectionWordBudget
	Images   []types.Image
}

type NarrationService interface {
	// Generate returns Sections with Content filled; sections the model skipped get "".
	Generate(ctx context.Context, req NarrationRequest) ([]types.Section, error)
}

type narrationService struct {
	log *logger.Logger
	llm gemini.Client
}

func NewNarrationService(baseLog *logger.Logger, llm gemini.Client) NarrationService {
	return &narrationService{log: baseLog.With("service", "NarrationService"), llm: llm}
}

func (s *narrationService) Generate(ctx context.Context, req NarrationRequest) ([]types.Section, error) {
	if s.llm == nil {
		return nil, apierr.Unavailable("narration_unavailable", nil)
	}
	if len(req.Sections) == 0 {
		return nil, apierr.BadRequest("missing_sections", apierr.ErrInvalidArgument)
	}
	ctx, span := observability.StartSpan(ctx, "narration.generate", attribute.Int("sections", len(req.Sections)))
	defer span.End()

	raw, err := s.llm.GenerateJSON(ctx, narrationSystemPrompt, BuildNarrationPrompt(req))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("generate narration: %w", err)
	}
	texts, err := ParseNarration(raw)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	out := make([]types.Section, len(req.Sections))
	copy(out, req.Sections)
	missing := 0
	for i := range out {
		content, ok := texts[out[i].Type]
		if !ok {
			missing++
		}
		out[i].Content = content
	}
	if missing > 0 {
		s.log.Warn("narration skipped sections", "missing", missing)
	}
	return out, nil
}

// BuildNarrationPrompt lists the property facts, then one block per section in playback order
// with its word target and the photo labels shown during it.
func BuildNarrationPrompt(req NarrationRequest) string {
	var sb strings.Builder
	p := req.Property

	sb.WriteString("PROPERTY\n")
	writeFact(&sb, "Address", strings.Join(nonEmpty(p.Address, p.City, p.State, p.Zip), ", "))
	writeFact(&sb, "Price", p.Price)
	if p.Bedrooms > 0 {
		writeFact(&sb, "Bedrooms", trimFloat(p.Bedrooms))
	}
	if p.Bathrooms > 0 {
		writeFact(&sb, "Bathrooms", trimFloat(p.Bathrooms))
	}
	if p.SquareFeet > 0 {
		writeFact(&sb, "Square feet", fmt.Sprintf("%d", p.SquareFeet))
	}
	writeFact(&sb, "Type", p.PropertyType)
	writeFact(&sb, "Description", p.Description)
	if len(p.Highlights) > 0 {
		writeFact(&sb, "Highlights", strings.Join(p.Highlights, "; "))
	}
	writeFact(&sb, "Tone", req.Style.Tone)
	writeFact(&sb, "Agent", strings.Join(nonEmpty(req.Branding.AgentName, req.Branding.Brokerage), ", "))

	byID := make(map[string]types.Image, len(req.Images))
	for _, img := range req.Images {
		byID[img.ID] = img
	}
	budgets := budget.ByType(req.Budgets)

	sb.WriteString("\nSECTIONS\n")
	for _, sec := range sections.PlaybackOrder(req.Sections) {
		b := budgets[sec.Type]
		fmt.Fprintf(&sb, "- type=%s target_words=%d photos=%d\n", sec.Type, b.TargetWords, len(sec.ImageIDs))
		var labels []string
		for _, id := range sec.ImageIDs {
			img, ok := byID[id]
			if !ok {
				continue
			}
			desc := string(img.RoomType)
			if img.Label != "" {
				desc += " (" + img.Label + ")"
			}
			if len(img.Features) > 0 {
				desc += ": " + strings.Join(img.Features, ", ")
			}
			labels = append(labels, desc)
		}
		if len(labels) > 0 {
			fmt.Fprintf(&sb, "  shows: %s\n", strings.Join(labels, " | "))
		}
	}
	return sb.String()
}

type narrationResponse struct {
	Sections []struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	} `json:"sections"`
}

// ParseNarration reads the model output. Code fences are tolerated; unknown section types
// are dropped and the first entry per type wins.
func ParseNarration(raw string) (map[types.SectionType]string, error) {
	raw = stripCodeFence(raw)
	var resp narrationResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("parse narration: %w", err)
	}
	out := make(map[types.SectionType]string, len(resp.Sections))
	for _, s := range resp.Sections {
		t := types.SectionType(strings.ToLower(strings.TrimSpace(s.Type)))
		if !t.Valid() {
			continue
		}
		if _, dup := out[t]; dup {
			continue
		}
		out[t] = strings.Join(strings.Fields(s.Content), " ")
	}
	return out, nil
}

func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```")
	if nl := strings.IndexByte(raw, '\n'); nl >= 0 {
		raw = raw[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "```"))
}

func writeFact(sb *strings.Builder, name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "%s: %s\n", name, value)
}

func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func trimFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
}
