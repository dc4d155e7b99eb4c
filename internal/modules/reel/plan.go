package reel

import (
	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/beatsync"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/budget"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/mapper"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/sections"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/tuning"
)

type PlanInput struct {
	Layout sections.Layout
	Images []types.Image
	// Analysis is optional; without it timings are spaced evenly over TrackDuration.
	Analysis      *types.PercussionAnalysis
	TrackDuration float64
	Tuning        tuning.Config
}

// Plan is everything the narration and render steps need before any text exists.
type Plan struct {
	Layout      string                    `json:"layout"`
	Sections    []types.Section           `json:"sections"`
	Mapping     map[string][]string       `json:"mapping"`
	Budgets     []types.SectionWordBudget `json:"budgets"`
	TotalWords  int                       `json:"totalWords"`
	Timings     []beatsync.Timing         `json:"timings"`
	EventSource beatsync.EventSource      `json:"eventSource"`
}

// BuildPlan maps photos to sections, sizes each section's narration and schedules the photos.
func BuildPlan(in PlanInput) Plan {
	cfg := in.Tuning.Normalize()
	secs := in.Layout.NewSections()
	mapping := mapper.MapImagesToSections(in.Images, secs, in.Layout, cfg)
	secs = mapper.Apply(secs, mapping)
	budgets := budget.Allocate(in.Layout, budget.CountsFromMapping(secs, mapping), cfg)

	dur := in.TrackDuration
	if dur <= 0 && in.Analysis != nil {
		dur = in.Analysis.Duration
	}
	events, source := beatsync.PickEvents(in.Analysis)
	timings := beatsync.CalculateTimings(events, len(in.Images), dur, beatsync.OptionsFrom(cfg))

	return Plan{
		Layout:      in.Layout.Name,
		Sections:    secs,
		Mapping:     mapping,
		Budgets:     budgets,
		TotalWords:  budget.Total(budgets),
		Timings:     timings,
		EventSource: source,
	}
}
