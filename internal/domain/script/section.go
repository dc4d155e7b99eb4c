package script

import "strings"

// SectionType identifies one narrative slot of the listing video.
type SectionType string

const (
	SectionOpening   SectionType = "opening"
	SectionOutdoor   SectionType = "outdoor"
	SectionLiving    SectionType = "living"
	SectionPrivate   SectionType = "private"
	SectionAmenities SectionType = "amenities"
	SectionClosing   SectionType = "closing"
)

func (t SectionType) Valid() bool {
	switch t {
	case SectionOpening, SectionOutdoor, SectionLiving, SectionPrivate, SectionAmenities, SectionClosing:
		return true
	default:
		return false
	}
}

func (t SectionType) String() string { return string(t) }

// Section is one narrative slot with its narration text and the photos it talks over.
type Section struct {
	ID       string      `json:"id"`
	Type     SectionType `json:"type"`
	Title    string      `json:"title"`
	Order    int         `json:"order"`
	Content  string      `json:"content"`
	ImageIDs []string    `json:"imageIds"`
}

// WordCount counts whitespace-separated words, the same way the narration budget does.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// SectionWordBudget is the narration target derived for one section.
type SectionWordBudget struct {
	SectionType SectionType `json:"sectionType"`
	ImageCount  int         `json:"imageCount"`
	ClipSeconds float64     `json:"clipSeconds"`
	TargetWords int         `json:"targetWords"`
}
