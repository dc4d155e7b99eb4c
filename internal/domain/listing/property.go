package listing

// Property holds the listing facts that are narrated and printed on screen.
type Property struct {
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Zip          string   `json:"zip"`
	Price        string   `json:"price"`
	Bedrooms     float64  `json:"bedrooms"`
	Bathrooms    float64  `json:"bathrooms"`
	SquareFeet   int      `json:"squareFeet"`
	PropertyType string   `json:"propertyType"`
	Description  string   `json:"description"`
	Highlights   []string `json:"highlights,omitempty"`
}

type Style struct {
	VideoStyle      string  `json:"videoStyle"`
	TransitionStyle string  `json:"transitionStyle"`
	VoiceID         string  `json:"voiceId"`
	Tone            string  `json:"tone"`
	MusicVolume     float64 `json:"musicVolume"`
	AspectRatio     string  `json:"aspectRatio"`
}

type Branding struct {
	AgentName   string `json:"agentName"`
	AgentPhone  string `json:"agentPhone"`
	AgentEmail  string `json:"agentEmail"`
	Brokerage   string `json:"brokerage"`
	LogoURL     string `json:"logoUrl"`
	HeadshotURL string `json:"headshotUrl"`
	BrandColor  string `json:"brandColor"`
}
