package beatsync

import (
	"math"
	"reflect"
	"testing"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/tuning"
)

var defaults = OptionsFrom(tuning.Default())

func assertPartition(t *testing.T, got []Timing, trackDuration float64) {
	t.Helper()
	if len(got) == 0 {
		return
	}
	if got[0].Start != 0 {
		t.Fatalf("first start: want=0 got=%v", got[0].Start)
	}
	for i := 0; i+1 < len(got); i++ {
		if math.Abs(got[i].End()-got[i+1].Start) > 0.01 {
			t.Fatalf("gap/overlap at %d: end=%v next start=%v", i, got[i].End(), got[i+1].Start)
		}
	}
	if last := got[len(got)-1]; math.Abs(last.End()-trackDuration) > 0.01 {
		t.Fatalf("last end: want=%v got=%v", trackDuration, last.End())
	}
	for i, tm := range got {
		if tm.Duration < 0 {
			t.Fatalf("timing %d: negative duration %v", i, tm.Duration)
		}
		if (i == 0) != (tm.FadeIn == nil) {
			t.Fatalf("timing %d: fadeIn presence wrong: %v", i, tm.FadeIn)
		}
		if (i == len(got)-1) != (tm.FadeOut == nil) {
			t.Fatalf("timing %d: fadeOut presence wrong: %v", i, tm.FadeOut)
		}
	}
}

func TestEvenSpacingWithoutEvents(t *testing.T) {
	got := CalculateTimings(nil, 5, 25, defaults)
	if len(got) != 5 {
		t.Fatalf("len: want=5 got=%d", len(got))
	}
	for i, tm := range got {
		if tm.Start != float64(i*5) || tm.Duration != 5 {
			t.Fatalf("timing %d: want start=%d duration=5 got=%+v", i, i*5, tm)
		}
	}
	assertPartition(t, got, 25)
	if *got[1].FadeIn != 0.5 || *got[0].FadeOut != 0.5 {
		t.Fatalf("fade: want=0.5 got in=%v out=%v", *got[1].FadeIn, *got[0].FadeOut)
	}
}

func TestSelectCollapsesCloseHits(t *testing.T) {
	got := SelectTransitionEvents([]float64{4.9, 5.0, 5.1, 10, 15, 20}, 3, 30, 1.5)
	if want := []float64{4.9, 10, 15}; !reflect.DeepEqual(got, want) {
		t.Fatalf("select: want=%v got=%v", want, got)
	}
}

func TestSelectReturnsFewerWhenSparse(t *testing.T) {
	got := SelectTransitionEvents([]float64{8, 3}, 4, 30, 1.5)
	if want := []float64{3, 8}; !reflect.DeepEqual(got, want) {
		t.Fatalf("select: want=%v got=%v", want, got)
	}
}

func TestSelectDropsUnusableEvents(t *testing.T) {
	events := []float64{math.NaN(), -1, 0, 2, math.Inf(1), 12, 40}
	got := SelectTransitionEvents(events, 3, 12, 1.5)
	if want := []float64{0, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("select: want=%v got=%v", want, got)
	}
}

func TestSelectKeepsHitAtZeroAsAnchor(t *testing.T) {
	got := SelectTransitionEvents([]float64{0, 1.0, 2.0}, 2, 10, 1.5)
	if want := []float64{0, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("select: want=%v got=%v", want, got)
	}
}

func TestTimingsSkipZeroLengthCutAtTrackStart(t *testing.T) {
	got := CalculateTimings([]float64{0, 1.0, 2.0}, 3, 10, defaults)
	want := []float64{0, 2, 6}
	for i, tm := range got {
		if tm.Start != want[i] {
			t.Fatalf("timing %d: want start=%v got=%v", i, want[i], tm.Start)
		}
		if tm.Duration <= 0 {
			t.Fatalf("timing %d: want positive duration got=%v", i, tm.Duration)
		}
	}
	assertPartition(t, got, 10)
}

func TestTimingsZeroOptionsUseDefaults(t *testing.T) {
	events := []float64{4.9, 5.0, 5.1, 10, 15, 20}
	got := CalculateTimings(events, 4, 30, Options{})
	if want := CalculateTimings(events, 4, 30, defaults); !reflect.DeepEqual(got, want) {
		t.Fatalf("zero options: want=%+v got=%+v", want, got)
	}
	if got[1].Start != 4.9 || got[1].Duration != 5.1 {
		t.Fatalf("near-tied hits not collapsed: got=%+v", got[1])
	}
	if *got[1].FadeIn != 0.5 {
		t.Fatalf("fade: want=0.5 got=%v", *got[1].FadeIn)
	}

	custom := CalculateTimings(events, 4, 30, Options{FadeSeconds: 0.25})
	if custom[1].Start != 4.9 || *custom[1].FadeIn != 0.25 {
		t.Fatalf("partial options: got=%+v fade=%v", custom[1], *custom[1].FadeIn)
	}
}

func TestSelectNoTransitions(t *testing.T) {
	if got := SelectTransitionEvents([]float64{1, 2, 3}, 0, 10, 1.5); len(got) != 0 {
		t.Fatalf("want empty got=%v", got)
	}
}

func TestSelectDecimationIsEvenByIndex(t *testing.T) {
	events := []float64{2, 4, 6, 8, 10, 12, 14, 16}
	got := SelectTransitionEvents(events, 4, 20, 1.5)
	if want := []float64{2, 6, 10, 14}; !reflect.DeepEqual(got, want) {
		t.Fatalf("select: want=%v got=%v", want, got)
	}
}

func TestTimingsOnBeats(t *testing.T) {
	got := CalculateTimings([]float64{4.9, 5.0, 5.1, 10, 15, 20}, 4, 30, defaults)
	starts := []float64{0, 4.9, 10, 15}
	durations := []float64{4.9, 5.1, 5, 15}
	for i, tm := range got {
		if tm.Start != starts[i] || tm.Duration != durations[i] {
			t.Fatalf("timing %d: want start=%v duration=%v got=%+v", i, starts[i], durations[i], tm)
		}
	}
	assertPartition(t, got, 30)
}

func TestTimingsSplitRemainderWhenCutsRunOut(t *testing.T) {
	got := CalculateTimings([]float64{6}, 4, 30, defaults)
	want := []float64{0, 6, 14, 22}
	for i, tm := range got {
		if tm.Start != want[i] {
			t.Fatalf("timing %d: want start=%v got=%v", i, want[i], tm.Start)
		}
	}
	assertPartition(t, got, 30)
}

func TestTimingsRoundToHundredths(t *testing.T) {
	got := CalculateTimings([]float64{1.23456, 7.891011}, 3, 10.005, defaults)
	if got[1].Start != 1.23 || got[2].Start != 7.89 {
		t.Fatalf("starts: want 1.23, 7.89 got=%v, %v", got[1].Start, got[2].Start)
	}
	if got[0].Duration != 1.23 || got[1].Duration != 6.66 {
		t.Fatalf("durations: want 1.23, 6.66 got=%v, %v", got[0].Duration, got[1].Duration)
	}
}

func TestTimingsPartitionProperty(t *testing.T) {
	eventSets := [][]float64{
		nil,
		{0.4, 0.5, 0.6},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		{29.99, 0.01, 15.5, 15.6, 3},
		{100, 200},
	}
	for _, events := range eventSets {
		for n := 1; n <= 12; n++ {
			for _, dur := range []float64{7.5, 30, 61.37} {
				got := CalculateTimings(events, n, dur, defaults)
				if len(got) != n {
					t.Fatalf("events=%v n=%d: want %d timings got=%d", events, n, n, len(got))
				}
				assertPartition(t, got, dur)
			}
		}
	}
}

func TestTimingsDegenerate(t *testing.T) {
	if got := CalculateTimings([]float64{1, 2}, 0, 10, defaults); len(got) != 0 {
		t.Fatalf("zero photos: want empty got=%v", got)
	}
	one := CalculateTimings([]float64{1, 2}, 1, 10, defaults)
	if len(one) != 1 || one[0].Start != 0 || one[0].Duration != 10 || one[0].FadeIn != nil || one[0].FadeOut != nil {
		t.Fatalf("single photo: got=%+v", one)
	}
	for _, dur := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		got := CalculateTimings([]float64{1, 2}, 3, dur, defaults)
		for i, tm := range got {
			if tm.Start != 0 || tm.Duration != 0 {
				t.Fatalf("duration %v timing %d: want zero-length got=%+v", dur, i, tm)
			}
		}
	}
}

func TestTimingsDeterministic(t *testing.T) {
	events := []float64{3.3, 1.1, 9.9, 6.6}
	a := CalculateTimings(events, 4, 12, defaults)
	b := CalculateTimings(events, 4, 12, defaults)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("runs differ: %v vs %v", a, b)
	}
	if events[0] != 3.3 {
		t.Fatalf("input events were reordered")
	}
}

func TestPickEvents(t *testing.T) {
	cases := []struct {
		name string
		in   *types.PercussionAnalysis
		want EventSource
	}{
		{"nil", nil, SourceNone},
		{"empty", &types.PercussionAnalysis{}, SourceNone},
		{"snare first", &types.PercussionAnalysis{SnareHits: []float64{1}, Beats: []float64{2}, BassHits: []float64{3}}, SourceSnare},
		{"beats over bass", &types.PercussionAnalysis{Beats: []float64{2}, BassHits: []float64{3}}, SourceBeats},
		{"bass only", &types.PercussionAnalysis{BassHits: []float64{3}}, SourceBass},
	}
	for _, tc := range cases {
		_, got := PickEvents(tc.in)
		if got != tc.want {
			t.Fatalf("%s: want=%s got=%s", tc.name, tc.want, got)
		}
	}
}
