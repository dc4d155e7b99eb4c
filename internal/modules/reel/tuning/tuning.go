package tuning

import (
	"math"

	"github.com/yungbote/listing-reel-backend/internal/platform/envutil"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

// Config holds every numeric knob of the narration and timing engines.
type Config struct {
	WordsPerMinute        float64 `json:"wordsPerMinute" yaml:"words_per_minute"`
	ClipSeconds           float64 `json:"clipSeconds" yaml:"clip_seconds"`
	ClosingSeconds        float64 `json:"closingSeconds" yaml:"closing_seconds"`
	MinSectionWords       int     `json:"minSectionWords" yaml:"min_section_words"`
	WordRounding          int     `json:"wordRounding" yaml:"word_rounding"`
	MaxTotalWords         int     `json:"maxTotalWords" yaml:"max_total_words"`
	MinTransitionInterval float64 `json:"minTransitionInterval" yaml:"min_transition_interval"`
	FadeSeconds           float64 `json:"fadeSeconds" yaml:"fade_seconds"`
	OpeningImageCount     int     `json:"openingImageCount" yaml:"opening_image_count"`
}

func Default() Config {
	return Config{
		WordsPerMinute:        150,
		ClipSeconds:           5,
		ClosingSeconds:        5,
		MinSectionWords:       10,
		WordRounding:          5,
		MaxTotalWords:         180,
		MinTransitionInterval: 1.5,
		FadeSeconds:           0.5,
		OpeningImageCount:     2,
	}
}

// FromEnv starts from Default and applies REEL_* overrides.
func FromEnv(log *logger.Logger) Config {
	d := Default()
	cfg := Config{
		WordsPerMinute:        envutil.Float(log, "REEL_WORDS_PER_MINUTE", d.WordsPerMinute),
		ClipSeconds:           envutil.Float(log, "REEL_CLIP_SECONDS", d.ClipSeconds),
		ClosingSeconds:        envutil.Float(log, "REEL_CLOSING_SECONDS", d.ClosingSeconds),
		MinSectionWords:       envutil.Int(log, "REEL_MIN_SECTION_WORDS", d.MinSectionWords),
		WordRounding:          envutil.Int(log, "REEL_WORD_ROUNDING", d.WordRounding),
		MaxTotalWords:         envutil.Int(log, "REEL_MAX_TOTAL_WORDS", d.MaxTotalWords),
		MinTransitionInterval: envutil.Float(log, "REEL_MIN_TRANSITION_INTERVAL", d.MinTransitionInterval),
		FadeSeconds:           envutil.Float(log, "REEL_FADE_SECONDS", d.FadeSeconds),
		OpeningImageCount:     envutil.Int(log, "REEL_OPENING_IMAGE_COUNT", d.OpeningImageCount),
	}
	return cfg.Normalize()
}

// Normalize swaps unusable values for defaults so downstream arithmetic never divides by
// zero. MinSectionWords, MinTransitionInterval and FadeSeconds may legitimately be zero.
func (c Config) Normalize() Config {
	d := Default()
	if !positive(c.WordsPerMinute) {
		c.WordsPerMinute = d.WordsPerMinute
	}
	if !positive(c.ClipSeconds) {
		c.ClipSeconds = d.ClipSeconds
	}
	if !positive(c.ClosingSeconds) {
		c.ClosingSeconds = d.ClosingSeconds
	}
	if c.MinSectionWords < 0 {
		c.MinSectionWords = d.MinSectionWords
	}
	if c.WordRounding <= 0 {
		c.WordRounding = d.WordRounding
	}
	if c.MaxTotalWords <= 0 {
		c.MaxTotalWords = d.MaxTotalWords
	}
	if c.MinTransitionInterval < 0 || math.IsNaN(c.MinTransitionInterval) || math.IsInf(c.MinTransitionInterval, 0) {
		c.MinTransitionInterval = d.MinTransitionInterval
	}
	if c.FadeSeconds < 0 || math.IsNaN(c.FadeSeconds) || math.IsInf(c.FadeSeconds, 0) {
		c.FadeSeconds = d.FadeSeconds
	}
	if c.OpeningImageCount < 0 {
		c.OpeningImageCount = d.OpeningImageCount
	}
	return c
}

// WordsPerSecond is WordsPerMinute expressed per second.
func (c Config) WordsPerSecond() float64 {
	return c.Normalize().WordsPerMinute / 60
}

// NarrationSeconds estimates spoken duration for a word count, rounded up to whole seconds.
func (c Config) NarrationSeconds(words int) int {
	if words <= 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / c.WordsPerSecond()))
}

func positive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
