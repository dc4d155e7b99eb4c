package reel

import (
	"reflect"
	"testing"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/beatsync"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/sections"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/tuning"
)

func TestBuildPlan(t *testing.T) {
	imgs := []types.Image{
		{ID: "1", Order: 0, RoomType: types.RoomExterior},
		{ID: "2", Order: 1, RoomType: types.RoomEntry},
		{ID: "3", Order: 2, RoomType: types.RoomKitchen},
		{ID: "4", Order: 3, RoomType: types.RoomBedroom},
		{ID: "5", Order: 4, RoomType: types.RoomOutdoor},
	}
	plan := BuildPlan(PlanInput{
		Layout:        sections.MustLayout("standard"),
		Images:        imgs,
		Analysis:      &types.PercussionAnalysis{SnareHits: []float64{4, 8, 12, 16}, Duration: 20},
		TrackDuration: 0,
		Tuning:        tuning.Default(),
	})

	if plan.Layout != "standard" || len(plan.Sections) != 5 {
		t.Fatalf("sections: want 5 standard got=%s/%d", plan.Layout, len(plan.Sections))
	}
	if want := []string{"3"}; !reflect.DeepEqual(plan.Mapping["living"], want) {
		t.Fatalf("living: want=%v got=%v", want, plan.Mapping["living"])
	}
	if want := []string{"3"}; !reflect.DeepEqual(plan.Sections[1].ImageIDs, want) {
		t.Fatalf("sections carry mapping: want=%v got=%v", want, plan.Sections[1].ImageIDs)
	}
	// opening 25, living 15, private 15, outdoor 15, closing 15.
	if plan.TotalWords != 85 {
		t.Fatalf("totalWords: want=85 got=%d", plan.TotalWords)
	}
	if plan.EventSource != beatsync.SourceSnare || len(plan.Timings) != 5 {
		t.Fatalf("timings: want 5 on snare got=%d on %s", len(plan.Timings), plan.EventSource)
	}
	if plan.Timings[4].Start != 16 || plan.Timings[4].Duration != 4 {
		t.Fatalf("last timing: want start=16 duration=4 got=%+v", plan.Timings[4])
	}
}

func TestBuildPlanWithoutPhotos(t *testing.T) {
	plan := BuildPlan(PlanInput{Layout: sections.MustLayout("compact"), TrackDuration: 30})
	if len(plan.Timings) != 0 {
		t.Fatalf("timings: want none got=%v", plan.Timings)
	}
	if plan.TotalWords != 15 || plan.EventSource != beatsync.SourceNone {
		t.Fatalf("want closing-only budget and no events got=%d/%s", plan.TotalWords, plan.EventSource)
	}
	for id, ids := range plan.Mapping {
		if ids == nil || len(ids) != 0 {
			t.Fatalf("%s: want empty got=%#v", id, ids)
		}
	}
}
