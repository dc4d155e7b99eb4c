package mapper

import (
	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/sections"
)

// Pool is the sorted photo set plus the IDs already claimed by some section.
type Pool struct {
	Sorted []types.Image
	Used   map[string]bool
}

func NewPool(sorted []types.Image) *Pool {
	return &Pool{Sorted: sorted, Used: make(map[string]bool, len(sorted))}
}

func (p *Pool) claim(img types.Image) types.Image {
	p.Used[img.ID] = true
	return img
}

// FallbackStrategy picks a single photo for a section that the matched pass left empty.
type FallbackStrategy interface {
	Name() string
	Pick(slot sections.Slot, pool *Pool) (types.Image, bool)
}

// DefaultChain is tried in order until one strategy yields a photo.
func DefaultChain() []FallbackStrategy {
	return []FallbackStrategy{OtherRoom{}, PreferenceList{}, FirstImage{}}
}

// OtherRoom takes the first unclaimed photo the classifier could not place.
type OtherRoom struct{}

func (OtherRoom) Name() string { return "other_room" }

func (OtherRoom) Pick(_ sections.Slot, pool *Pool) (types.Image, bool) {
	for _, img := range pool.Sorted {
		if !pool.Used[img.ID] && img.RoomType == types.RoomOther {
			return pool.claim(img), true
		}
	}
	return types.Image{}, false
}

// PreferenceList walks the slot's fallback room types over the whole set; photos already
// shown elsewhere may be reused here.
type PreferenceList struct{}

func (PreferenceList) Name() string { return "preference_list" }

func (PreferenceList) Pick(slot sections.Slot, pool *Pool) (types.Image, bool) {
	for _, rt := range slot.FallbackFor() {
		for _, img := range pool.Sorted {
			if img.RoomType == rt {
				return pool.claim(img), true
			}
		}
	}
	return types.Image{}, false
}

// FirstImage reuses the first photo in sequence.
type FirstImage struct{}

func (FirstImage) Name() string { return "first_image" }

func (FirstImage) Pick(_ sections.Slot, pool *Pool) (types.Image, bool) {
	if len(pool.Sorted) == 0 {
		return types.Image{}, false
	}
	return pool.claim(pool.Sorted[0]), true
}
