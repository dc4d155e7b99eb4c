package budget

import (
	"math"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/sections"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/tuning"
)

// Allocate derives a narration word target for every slot of the layout, in configuration
// order. Targets scale down uniformly when they exceed cfg.MaxTotalWords, but the per-section
// floor is re-applied afterwards, so the total may overrun the cap by a small margin.
func Allocate(layout sections.Layout, counts map[types.SectionType]int, cfg tuning.Config) []types.SectionWordBudget {
	cfg = cfg.Normalize()
	out := make([]types.SectionWordBudget, 0, len(layout.Slots))

	total := 0
	for _, slot := range layout.Slots {
		n := counts[slot.Type]
		if n < 0 {
			n = 0
		}
		b := types.SectionWordBudget{
			SectionType: slot.Type,
			ImageCount:  n,
			ClipSeconds: float64(n) * cfg.ClipSeconds,
		}
		if slot.Type == types.SectionClosing {
			b.ClipSeconds = cfg.ClosingSeconds
		}
		b.TargetWords = floored(b, roundTo(b.ClipSeconds*cfg.WordsPerSecond(), cfg.WordRounding), cfg)
		total += b.TargetWords
		out = append(out, b)
	}

	if total <= cfg.MaxTotalWords {
		return out
	}

	scale := float64(cfg.MaxTotalWords) / float64(total)
	for i := range out {
		out[i].TargetWords = floored(out[i], roundTo(float64(out[i].TargetWords)*scale, cfg.WordRounding), cfg)
	}
	return out
}

// Total sums the targets.
func Total(budgets []types.SectionWordBudget) int {
	sum := 0
	for _, b := range budgets {
		sum += b.TargetWords
	}
	return sum
}

// ByType indexes budgets by section type.
func ByType(budgets []types.SectionWordBudget) map[types.SectionType]types.SectionWordBudget {
	out := make(map[types.SectionType]types.SectionWordBudget, len(budgets))
	for _, b := range budgets {
		out[b.SectionType] = b
	}
	return out
}

// CountsFromMapping turns a section→images assignment into per-type image counts.
func CountsFromMapping(secs []types.Section, mapping map[string][]string) map[types.SectionType]int {
	out := make(map[types.SectionType]int, len(secs))
	for _, s := range secs {
		out[s.Type] = len(mapping[s.ID])
	}
	return out
}

// floored applies the minimum: eligible sections (photos on screen, or the closing card)
// never drop below MinSectionWords; empty sections stay silent.
func floored(b types.SectionWordBudget, words int, cfg tuning.Config) int {
	eligible := b.ImageCount > 0 || b.SectionType == types.SectionClosing
	if !eligible {
		return 0
	}
	if words < cfg.MinSectionWords {
		return cfg.MinSectionWords
	}
	return words
}

func roundTo(v float64, step int) int {
	if step <= 1 {
		return int(math.Round(v))
	}
	return int(math.Round(v/float64(step))) * step
}
