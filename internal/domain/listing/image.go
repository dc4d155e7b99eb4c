package listing

// Image is one uploaded listing photo after classification.
type Image struct {
	ID       string   `json:"id"`
	URL      string   `json:"url"`
	Filename string   `json:"filename,omitempty"`
	Order    int      `json:"order"`
	RoomType RoomType `json:"roomType"`
	Label    string   `json:"label,omitempty"`
	Features []string `json:"features,omitempty"`

	// EnhancedURL is only honored when Enhanced is set; the user may revert an enhancement
	// while the cached URL is still present.
	EnhancedURL string `json:"enhancedUrl,omitempty"`
	Enhanced    bool   `json:"enhanced,omitempty"`
}

// ResolvedURL returns the URL that should be sent downstream.
func (img Image) ResolvedURL() string {
	if img.Enhanced && img.EnhancedURL != "" {
		return img.EnhancedURL
	}
	return img.URL
}

// Classification is what the vision classifier returns for a single photo.
type Classification struct {
	URL      string   `json:"url"`
	Filename string   `json:"filename"`
	Label    string   `json:"label"`
	RoomType RoomType `json:"roomType"`
	Features []string `json:"features"`
}
