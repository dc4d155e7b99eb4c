package sections

import (
	"strings"
	"testing"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
)

func TestBuiltinLayoutsAreValid(t *testing.T) {
	names := BuiltinNames()
	if len(names) != 3 {
		t.Fatalf("BuiltinNames: want 3 got=%v", names)
	}
	for _, name := range names {
		l, err := Builtin(name)
		if err != nil {
			t.Fatalf("Builtin(%q): %v", name, err)
		}
		if l.Name != name {
			t.Fatalf("Builtin(%q): name mismatch got=%q", name, l.Name)
		}
	}
}

func TestStandardLayoutShape(t *testing.T) {
	l := MustLayout("standard")
	want := []types.SectionType{types.SectionOpening, types.SectionLiving, types.SectionPrivate, types.SectionOutdoor, types.SectionClosing}
	if len(l.Slots) != len(want) {
		t.Fatalf("slots: want=%d got=%d", len(want), len(l.Slots))
	}
	for i, s := range l.Slots {
		if s.Type != want[i] {
			t.Fatalf("slot %d: want=%s got=%s", i, want[i], s.Type)
		}
	}
	compact := MustLayout("compact")
	if compact.Has(types.SectionOutdoor) || compact.Has(types.SectionAmenities) || len(compact.Slots) != 4 {
		t.Fatalf("compact layout should be the 4-slot variant: %+v", compact.Slots)
	}
}

func TestFallbackDefaults(t *testing.T) {
	l := MustLayout("standard")
	closing, _ := l.Slot(types.SectionClosing)
	got := closing.FallbackFor()
	want := []types.RoomType{types.RoomExterior, types.RoomOutdoor, types.RoomLiving, types.RoomEntry}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("closing fallback[%d]: want=%s got=%s", i, want[i], got[i])
		}
	}
	private, _ := l.Slot(types.SectionPrivate)
	if private.FallbackFor()[1] != types.RoomLiving {
		t.Fatalf("private fallback: got=%v", private.FallbackFor())
	}
}

func TestValidateRejectsBrokenLayouts(t *testing.T) {
	cases := map[string]string{
		"missing closing": "name: x\nslots:\n  - type: opening\n",
		"duplicate":       "name: x\nslots:\n  - type: opening\n  - type: opening\n  - type: closing\n",
		"bad section":     "name: x\nslots:\n  - type: opening\n  - type: garage\n  - type: closing\n",
		"bad room":        "name: x\nslots:\n  - type: opening\n    preferred: [attic]\n  - type: closing\n",
		"empty":           "name: x\nslots: []\n",
	}
	for name, raw := range cases {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestMustLayoutPanicsOnUnknown(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("MustLayout: expected panic")
		}
		if !strings.Contains(r.(string), "unknown layout") {
			t.Fatalf("MustLayout: unexpected panic %v", r)
		}
	}()
	MustLayout("does-not-exist")
}

func TestNewSectionsAndPlaybackOrder(t *testing.T) {
	l := Layout{Name: "custom", Slots: []Slot{
		{Type: types.SectionOpening, Order: 0},
		{Type: types.SectionClosing, Order: 2},
		{Type: types.SectionLiving, Order: 1},
	}}
	secs := l.NewSections()
	if len(secs) != 3 || secs[1].ID != "closing" || secs[1].ImageIDs == nil {
		t.Fatalf("NewSections: got=%+v", secs)
	}
	ordered := PlaybackOrder(secs)
	if ordered[1].Type != types.SectionLiving || ordered[2].Type != types.SectionClosing {
		t.Fatalf("PlaybackOrder: got=%+v", ordered)
	}
	if secs[1].Type != types.SectionClosing {
		t.Fatalf("PlaybackOrder must not mutate input")
	}
}
