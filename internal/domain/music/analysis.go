package music

// PercussionAnalysis is the output of the external beat analysis step. Timestamps are in
// seconds; producers do not guarantee ascending order or uniqueness.
type PercussionAnalysis struct {
	SnareHits []float64 `json:"snareHits"`
	BassHits  []float64 `json:"bassHits"`
	Beats     []float64 `json:"beats"`
	BPM       *float64  `json:"bpm"`
	Duration  float64   `json:"duration"`
}

// HasEvents reports whether any percussion data is present.
func (a *PercussionAnalysis) HasEvents() bool {
	if a == nil {
		return false
	}
	return len(a.SnareHits) > 0 || len(a.BassHits) > 0 || len(a.Beats) > 0
}

// Track is the background music chosen for a video.
type Track struct {
	URL      string              `json:"url"`
	Key      string              `json:"key,omitempty"`
	Enabled  bool                `json:"enabled"`
	Analysis *PercussionAnalysis `json:"analysis,omitempty"`
}
