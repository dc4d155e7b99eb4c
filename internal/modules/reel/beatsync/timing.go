package beatsync

import (
	"math"

	"github.com/yungbote/listing-reel-backend/internal/modules/reel/tuning"
)

type Options struct {
	MinInterval float64
	FadeSeconds float64
}

// DefaultOptions matches tuning.Default: 1.5s between cuts, 0.5s fades.
func DefaultOptions() Options { return OptionsFrom(tuning.Default()) }

// withDefaults fills an unset Options from DefaultOptions. A non-zero struct keeps its
// FadeSeconds, but an unusable MinInterval still falls back to the default.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o == (Options{}) {
		return d
	}
	if !finitePositive(o.MinInterval) {
		o.MinInterval = d.MinInterval
	}
	return o
}

func OptionsFrom(cfg tuning.Config) Options {
	cfg = cfg.Normalize()
	return Options{MinInterval: cfg.MinTransitionInterval, FadeSeconds: cfg.FadeSeconds}
}

// Timing is one photo's slot on the music track.
type Timing struct {
	Start    float64  `json:"start"`
	Duration float64  `json:"duration"`
	FadeIn   *float64 `json:"fadeIn,omitempty"`
	FadeOut  *float64 `json:"fadeOut,omitempty"`
}

// End is Start+Duration.
func (t Timing) End() float64 { return round2(t.Start + t.Duration) }

// CalculateTimings lays numImages photos end to end over [0, trackDuration], cutting on
// the selected events. If the events cannot supply every cut, the rest of the track is
// split evenly between the remaining photos.
func CalculateTimings(events []float64, numImages int, trackDuration float64, opts Options) []Timing {
	if numImages <= 0 {
		return []Timing{}
	}
	end := 0.0
	if finitePositive(trackDuration) {
		end = round2(trackDuration)
	}

	opts = opts.withDefaults()
	cuts := SelectTransitionEvents(events, numImages-1, end, opts.MinInterval)
	// A hit at 0 only anchors the interval scan; cutting there would give photo 0 no time.
	for len(cuts) > 0 && cuts[0] <= 0 {
		cuts = cuts[1:]
	}
	starts := make([]float64, numImages)
	for i := 1; i <= len(cuts); i++ {
		starts[i] = round2(cuts[i-1])
	}
	if rest := numImages - len(cuts); rest > 1 {
		from := starts[len(cuts)]
		step := (end - from) / float64(rest)
		for j := 1; j < rest; j++ {
			starts[len(cuts)+j] = round2(from + step*float64(j))
		}
	}

	fade := opts.FadeSeconds
	if !finitePositive(fade) {
		fade = 0
	}
	out := make([]Timing, numImages)
	for i := range out {
		next := end
		if i+1 < numImages {
			next = starts[i+1]
		}
		t := Timing{Start: starts[i], Duration: math.Max(0, round2(next-starts[i]))}
		if i > 0 {
			v := fade
			t.FadeIn = &v
		}
		if i < numImages-1 {
			v := fade
			t.FadeOut = &v
		}
		out[i] = t
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
