package videos

// ImageTiming is one entry of the beat-synchronized display schedule.
type ImageTiming struct {
	ImageURL string   `json:"imageurl"`
	Start    float64  `json:"start"`
	Duration float64  `json:"duration"`
	FadeIn   *float64 `json:"fadeIn,omitempty"`
	FadeOut  *float64 `json:"fadeOut,omitempty"`
}

// SectionImageMapping lets the rendering workflow regroup clips per narrated section.
type SectionImageMapping struct {
	SectionIndex int    `json:"sectionIndex"`
	SectionType  string `json:"sectionType"`
	ImageIndices []int  `json:"imageIndices"`
	WordCount    int    `json:"wordCount"`
}

// WorkflowPayload is the exact document the external rendering workflow consumes.
type WorkflowPayload struct {
	VideoID   string `json:"videoId"`
	ListingID string `json:"listingId"`

	Images      []string      `json:"images"`
	ImageTiming []ImageTiming `json:"imageTiming,omitempty"`

	Script         string   `json:"script"`
	ScriptSections []string `json:"scriptSections"`

	MusicEnabled   bool      `json:"musicEnabled"`
	MusicURL       string    `json:"musicUrl"`
	MusicBpm       *float64  `json:"musicBpm,omitempty"`
	MusicBeats     []float64 `json:"musicBeats,omitempty"`
	MusicSnareHits []float64 `json:"musicSnareHits,omitempty"`
	MusicBassHits  []float64 `json:"musicBassHits,omitempty"`

	EstimatedNarrationDuration int                   `json:"estimatedNarrationDuration"`
	SectionImageMapping        []SectionImageMapping `json:"sectionImageMapping"`

	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Zip          string  `json:"zip"`
	Price        string  `json:"price"`
	Bedrooms     float64 `json:"bedrooms"`
	Bathrooms    float64 `json:"bathrooms"`
	SquareFeet   int     `json:"squareFeet"`
	PropertyType string  `json:"propertyType"`
	Description  string  `json:"description"`

	VideoStyle      string  `json:"videoStyle"`
	TransitionStyle string  `json:"transitionStyle"`
	VoiceID         string  `json:"voiceId"`
	MusicVolume     float64 `json:"musicVolume"`
	AspectRatio     string  `json:"aspectRatio"`

	AgentName   string `json:"agentName"`
	AgentPhone  string `json:"agentPhone"`
	AgentEmail  string `json:"agentEmail"`
	Brokerage   string `json:"brokerage"`
	LogoURL     string `json:"logoUrl"`
	HeadshotURL string `json:"headshotUrl"`
	BrandColor  string `json:"brandColor"`
}
