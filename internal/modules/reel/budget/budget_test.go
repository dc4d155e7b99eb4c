package budget

import (
	"testing"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/sections"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/tuning"
)

func TestAllocateUnderCap(t *testing.T) {
	layout := sections.MustLayout("standard")
	got := Allocate(layout, map[types.SectionType]int{
		types.SectionOpening: 2,
		types.SectionLiving:  3,
		types.SectionPrivate: 1,
		types.SectionOutdoor: 0,
	}, tuning.Default())

	// 150 wpm => 2.5 words/s; 5 s per photo => 12.5 words per photo.
	want := map[types.SectionType]int{
		types.SectionOpening: 25, // 25.0
		types.SectionLiving:  40, // 37.5 -> 40
		types.SectionPrivate: 15, // 12.5 -> 15
		types.SectionOutdoor: 0,
		types.SectionClosing: 15, // fixed 5 s -> 12.5 -> 15
	}
	if len(got) != len(layout.Slots) {
		t.Fatalf("Allocate: want %d budgets got=%d", len(layout.Slots), len(got))
	}
	for i, b := range got {
		if b.SectionType != layout.Slots[i].Type {
			t.Fatalf("budget %d: want type %s got=%s", i, layout.Slots[i].Type, b.SectionType)
		}
		if b.TargetWords != want[b.SectionType] {
			t.Fatalf("%s: want=%d got=%d", b.SectionType, want[b.SectionType], b.TargetWords)
		}
	}
	if b := ByType(got)[types.SectionClosing]; b.ClipSeconds != 5 || b.ImageCount != 0 {
		t.Fatalf("closing: want fixed 5s with no photos, got=%+v", b)
	}
}

func TestAllocateScalesDownAndKeepsFloor(t *testing.T) {
	layout := sections.MustLayout("standard")
	cfg := tuning.Default()
	got := Allocate(layout, map[types.SectionType]int{
		types.SectionOpening: 2,
		types.SectionLiving:  20,
		types.SectionPrivate: 1,
		types.SectionOutdoor: 1,
	}, cfg)
	// raw: 25 + 250 + 15 + 15 + 15 = 320 > 180 => scale 0.5625
	byType := ByType(got)
	if byType[types.SectionLiving].TargetWords != 140 {
		t.Fatalf("living: want=140 got=%d", byType[types.SectionLiving].TargetWords)
	}
	for _, st := range []types.SectionType{types.SectionPrivate, types.SectionOutdoor, types.SectionClosing} {
		if byType[st].TargetWords != cfg.MinSectionWords {
			t.Fatalf("%s: want floor %d got=%d", st, cfg.MinSectionWords, byType[st].TargetWords)
		}
	}
}

func TestAllocateFloorOverrunIsTolerated(t *testing.T) {
	layout := sections.MustLayout("standard")
	cfg := tuning.Default()
	cfg.MaxTotalWords = 20
	got := Allocate(layout, map[types.SectionType]int{
		types.SectionOpening: 2,
		types.SectionLiving:  1,
		types.SectionPrivate: 1,
		types.SectionOutdoor: 1,
	}, cfg)
	for _, b := range got {
		if b.TargetWords < cfg.MinSectionWords {
			t.Fatalf("%s: floor violated got=%d", b.SectionType, b.TargetWords)
		}
	}
	if Total(got) <= cfg.MaxTotalWords {
		t.Fatalf("expected floor-induced overrun, total=%d", Total(got))
	}
}

func TestAllocateTotalStaysNearCap(t *testing.T) {
	layout := sections.MustLayout("standard")
	cfg := tuning.Default()
	for living := 0; living <= 40; living++ {
		for private := 0; private <= 12; private += 3 {
			for outdoor := 0; outdoor <= 6; outdoor += 2 {
				counts := map[types.SectionType]int{
					types.SectionOpening: 2,
					types.SectionLiving:  living,
					types.SectionPrivate: private,
					types.SectionOutdoor: outdoor,
				}
				got := Allocate(layout, counts, cfg)
				if total := Total(got); float64(total) > float64(cfg.MaxTotalWords)*1.2 {
					t.Fatalf("counts=%v total=%d exceeds 1.2x cap", counts, total)
				}
				for _, b := range got {
					if b.ImageCount > 0 && b.TargetWords < cfg.MinSectionWords {
						t.Fatalf("counts=%v %s below floor: %d", counts, b.SectionType, b.TargetWords)
					}
					if b.TargetWords%cfg.WordRounding != 0 {
						t.Fatalf("counts=%v %s not a multiple of %d: %d", counts, b.SectionType, cfg.WordRounding, b.TargetWords)
					}
				}
			}
		}
	}
}

func TestAllocateEmptySectionsStaySilent(t *testing.T) {
	got := Allocate(sections.MustLayout("compact"), nil, tuning.Default())
	for _, b := range got {
		switch b.SectionType {
		case types.SectionClosing:
			if b.TargetWords != 15 {
				t.Fatalf("closing: want=15 got=%d", b.TargetWords)
			}
		default:
			if b.TargetWords != 0 {
				t.Fatalf("%s: want=0 got=%d", b.SectionType, b.TargetWords)
			}
		}
	}
}

func TestCountsFromMapping(t *testing.T) {
	secs := sections.MustLayout("compact").NewSections()
	counts := CountsFromMapping(secs, map[string][]string{
		"opening": {"a", "b"},
		"living":  {"c"},
	})
	if counts[types.SectionOpening] != 2 || counts[types.SectionLiving] != 1 || counts[types.SectionPrivate] != 0 {
		t.Fatalf("CountsFromMapping: got=%v", counts)
	}
}
