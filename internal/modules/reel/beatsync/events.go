package beatsync

import (
	"math"
	"sort"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
)

// EventSource names the percussion stream transitions were cut on.
type EventSource string

const (
	SourceSnare EventSource = "snare"
	SourceBeats EventSource = "beats"
	SourceBass  EventSource = "bass"
	SourceNone  EventSource = "none"
)

// PickEvents prefers snare hits, then generic beats, then bass hits.
func PickEvents(a *types.PercussionAnalysis) ([]float64, EventSource) {
	if a == nil {
		return nil, SourceNone
	}
	switch {
	case len(a.SnareHits) > 0:
		return a.SnareHits, SourceSnare
	case len(a.Beats) > 0:
		return a.Beats, SourceBeats
	case len(a.BassHits) > 0:
		return a.BassHits, SourceBass
	}
	return nil, SourceNone
}

// SelectTransitionEvents picks at most numTransitions cut points from events.
//
// Events outside [0, trackDuration) are ignored; a hit at 0 is kept and anchors the
// interval scan. Kept events are at least minInterval apart.
// When more survive than needed they are decimated by index; with none left the cuts are
// spaced evenly over the track.
func SelectTransitionEvents(events []float64, numTransitions int, trackDuration, minInterval float64) []float64 {
	if numTransitions <= 0 {
		return []float64{}
	}
	clean := usable(events, trackDuration)
	if len(clean) == 0 {
		return evenlySpaced(numTransitions, trackDuration)
	}

	filtered := make([]float64, 0, len(clean))
	for _, e := range clean {
		if len(filtered) == 0 || e-filtered[len(filtered)-1] >= minInterval {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) <= numTransitions {
		return filtered
	}
	out := make([]float64, numTransitions)
	for i := range out {
		out[i] = filtered[i*len(filtered)/numTransitions]
	}
	return out
}

func usable(events []float64, trackDuration float64) []float64 {
	if !finitePositive(trackDuration) {
		return nil
	}
	out := make([]float64, 0, len(events))
	for _, e := range events {
		if math.IsNaN(e) || math.IsInf(e, 0) || e < 0 || e >= trackDuration {
			continue
		}
		out = append(out, e)
	}
	sort.Float64s(out)
	return out
}

func evenlySpaced(n int, trackDuration float64) []float64 {
	out := make([]float64, n)
	if !finitePositive(trackDuration) {
		return out
	}
	step := trackDuration / float64(n+1)
	for k := range out {
		out[k] = step * float64(k+1)
	}
	return out
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
