package mapper

import (
	"sort"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/sections"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/tuning"
)

// SortImages returns a copy ordered by the user's sequence (ID breaks ties).
func SortImages(images []types.Image) []types.Image {
	out := make([]types.Image, len(images))
	copy(out, images)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// MapImagesToSections assigns photos to sections and returns section ID → photo IDs.
//
// The opening always gets the first photos by position. Other sections then take every
// unclaimed photo whose room type they prefer, in configuration order. Any section still
// empty walks the fallback chain, where reuse is allowed. Every section is present in the
// result; with no photos all values are empty.
func MapImagesToSections(images []types.Image, secs []types.Section, layout sections.Layout, cfg tuning.Config) map[string][]string {
	return MapWithChain(images, secs, layout, cfg, DefaultChain())
}

// MapWithChain is MapImagesToSections with an explicit fallback chain.
func MapWithChain(images []types.Image, secs []types.Section, layout sections.Layout, cfg tuning.Config, chain []FallbackStrategy) map[string][]string {
	cfg = cfg.Normalize()
	pool := NewPool(SortImages(images))
	out := make(map[string][]string, len(secs))
	for _, s := range secs {
		out[s.ID] = []string{}
	}
	if len(pool.Sorted) == 0 {
		return out
	}

	for _, s := range secs {
		if s.Type != types.SectionOpening {
			continue
		}
		n := cfg.OpeningImageCount
		if n > len(pool.Sorted) {
			n = len(pool.Sorted)
		}
		for _, img := range pool.Sorted[:n] {
			out[s.ID] = append(out[s.ID], pool.claim(img).ID)
		}
		break
	}

	for _, s := range secs {
		if s.Type == types.SectionOpening {
			continue
		}
		slot := slotFor(layout, s)
		for _, img := range pool.Sorted {
			if pool.Used[img.ID] || !slot.Prefers(img.RoomType) {
				continue
			}
			out[s.ID] = append(out[s.ID], pool.claim(img).ID)
		}
	}

	for _, s := range secs {
		if len(out[s.ID]) > 0 {
			continue
		}
		slot := slotFor(layout, s)
		for _, strategy := range chain {
			if img, ok := strategy.Pick(slot, pool); ok {
				out[s.ID] = append(out[s.ID], img.ID)
				break
			}
		}
	}
	return out
}

// Apply copies sections with ImageIDs filled from mapping.
func Apply(secs []types.Section, mapping map[string][]string) []types.Section {
	out := make([]types.Section, len(secs))
	for i, s := range secs {
		ids := mapping[s.ID]
		s.ImageIDs = make([]string, len(ids))
		copy(s.ImageIDs, ids)
		out[i] = s
	}
	return out
}

func slotFor(layout sections.Layout, s types.Section) sections.Slot {
	if slot, ok := layout.Slot(s.Type); ok {
		return slot
	}
	return sections.Slot{Type: s.Type, Title: s.Title, Order: s.Order}
}
