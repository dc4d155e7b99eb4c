package sections

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
)

//go:embed layouts/*.yaml
var builtinFS embed.FS

const DefaultLayoutName = "standard"

// Slot configures one narrative section: where it plays and which photos it prefers.
type Slot struct {
	Type      types.SectionType `yaml:"type" json:"type"`
	Title     string            `yaml:"title" json:"title"`
	Order     int               `yaml:"order" json:"order"`
	Preferred []types.RoomType  `yaml:"preferred" json:"preferred"`
	Fallback  []types.RoomType  `yaml:"fallback" json:"fallback"`
}

// Layout is an ordered section configuration. Slot order is configuration order, which
// drives photo assignment; Slot.Order is playback order.
type Layout struct {
	Name  string `yaml:"name" json:"name"`
	Slots []Slot `yaml:"slots" json:"slots"`
}

var (
	closingFallback = []types.RoomType{types.RoomExterior, types.RoomOutdoor, types.RoomLiving, types.RoomEntry}
	defaultFallback = []types.RoomType{types.RoomExterior, types.RoomLiving, types.RoomEntry, types.RoomOutdoor}
)

// DefaultFallback is the reuse preference for a section type when its slot sets none.
func DefaultFallback(t types.SectionType) []types.RoomType {
	src := defaultFallback
	if t == types.SectionClosing {
		src = closingFallback
	}
	out := make([]types.RoomType, len(src))
	copy(out, src)
	return out
}

// FallbackFor returns the slot's fallback preference, or the section type default.
func (s Slot) FallbackFor() []types.RoomType {
	if len(s.Fallback) > 0 {
		return s.Fallback
	}
	return DefaultFallback(s.Type)
}

// Prefers reports whether a photo of room type rt belongs to this slot in the matched pass.
func (s Slot) Prefers(rt types.RoomType) bool {
	for _, p := range s.Preferred {
		if p == rt {
			return true
		}
	}
	return false
}

func (l Layout) Has(t types.SectionType) bool {
	_, ok := l.Slot(t)
	return ok
}

func (l Layout) Slot(t types.SectionType) (Slot, bool) {
	for _, s := range l.Slots {
		if s.Type == t {
			return s, true
		}
	}
	return Slot{}, false
}

// Validate checks the configuration invariants the engines rely on.
func (l Layout) Validate() error {
	if len(l.Slots) == 0 {
		return fmt.Errorf("layout %q has no slots", l.Name)
	}
	seen := map[types.SectionType]bool{}
	for i, s := range l.Slots {
		if !s.Type.Valid() {
			return fmt.Errorf("layout %q slot %d: invalid section type %q", l.Name, i, s.Type)
		}
		if seen[s.Type] {
			return fmt.Errorf("layout %q: section type %q appears more than once", l.Name, s.Type)
		}
		seen[s.Type] = true
		for _, rt := range append(append([]types.RoomType{}, s.Preferred...), s.Fallback...) {
			if !rt.Valid() {
				return fmt.Errorf("layout %q slot %q: invalid room type %q", l.Name, s.Type, rt)
			}
		}
	}
	for _, required := range []types.SectionType{types.SectionOpening, types.SectionClosing} {
		if !seen[required] {
			return fmt.Errorf("layout %q: missing mandatory section %q", l.Name, required)
		}
	}
	return nil
}

// NewSections instantiates one empty section per slot, in configuration order.
func (l Layout) NewSections() []types.Section {
	out := make([]types.Section, 0, len(l.Slots))
	for _, s := range l.Slots {
		out = append(out, types.Section{
			ID:       string(s.Type),
			Type:     s.Type,
			Title:    s.Title,
			Order:    s.Order,
			ImageIDs: []string{},
		})
	}
	return out
}

// PlaybackOrder returns a copy of sections sorted by Section.Order (stable).
func PlaybackOrder(in []types.Section) []types.Section {
	out := make([]types.Section, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func Parse(raw []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	l.Name = strings.TrimSpace(l.Name)
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

func LoadFile(path string) (Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout file: %w", err)
	}
	return Parse(raw)
}

// Builtin returns an embedded layout by name.
func Builtin(name string) (Layout, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultLayoutName
	}
	raw, err := builtinFS.ReadFile("layouts/" + name + ".yaml")
	if err != nil {
		return Layout{}, fmt.Errorf("unknown layout %q", name)
	}
	return Parse(raw)
}

// BuiltinNames lists the embedded layouts.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("layouts")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(out)
	return out
}

// MustLayout panics when the named layout is missing or broken; layouts are static
// configuration, so this can only happen through a programming error.
func MustLayout(name string) Layout {
	l, err := Builtin(name)
	if err != nil {
		panic(fmt.Sprintf("sections: %v", err))
	}
	return l
}
