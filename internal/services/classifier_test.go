package services

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/platform/apierr"
	"github.com/yungbote/listing-reel-backend/internal/platform/gcp"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

func TestRoomTypeFromLabels(t *testing.T) {
	cases := []struct {
		name   string
		labels []gcp.Label
		want   types.RoomType
	}{
		{"none", nil, types.RoomOther},
		{"bathroom", []gcp.Label{{"Bathroom", 0.9}}, types.RoomBathroom},
		{"bed", []gcp.Label{{"Bed", 0.9}, {"Bedroom", 0.8}}, types.RoomBedroom},
		{"master beats bed", []gcp.Label{{"Bed", 0.9}, {"Master bedroom", 0.7}}, types.RoomMasterBedroom},
		{"pool over house", []gcp.Label{{"Swimming pool", 0.9}, {"House", 0.8}}, types.RoomOutdoor},
		{"exterior", []gcp.Label{{"House", 0.9}, {"Roof", 0.8}}, types.RoomExterior},
		{"low confidence ignored", []gcp.Label{{"Kitchen", 0.3}}, types.RoomOther},
		{"whole words only", []gcp.Label{{"Bedside table", 0.9}}, types.RoomOther},
		{"combined label", []gcp.Label{{"Kitchen & dining room table", 0.8}}, types.RoomKitchen},
		{"living", []gcp.Label{{"Couch", 0.8}, {"Fireplace", 0.7}}, types.RoomLiving},
		{"separators", []gcp.Label{{"Home-office", 0.8}}, types.RoomHomeOffice},
	}
	for _, tc := range cases {
		if got := RoomTypeFromLabels(tc.labels); got != tc.want {
			t.Fatalf("%s: want=%s got=%s", tc.name, tc.want, got)
		}
	}
}

func TestClassificationFromLabels(t *testing.T) {
	labels := []gcp.Label{
		{"Property", 0.88},
		{"Countertop", 0.9},
		{"Kitchen", 0.95},
		{"Cabinetry", 0.85},
		{"Real estate", 0.7},
		{"Tap", 0.55},
	}
	c := ClassificationFromLabels("https://cdn.test/a.jpg", "a.jpg", labels)
	if c.RoomType != types.RoomKitchen {
		t.Fatalf("room: want=kitchen got=%s", c.RoomType)
	}
	if c.Label != "Kitchen" {
		t.Fatalf("label: want=Kitchen got=%s", c.Label)
	}
	want := []string{"kitchen", "countertop", "cabinetry"}
	if !reflect.DeepEqual(c.Features, want) {
		t.Fatalf("features: want=%v got=%v", want, c.Features)
	}
}

func TestClassifyBatchDegradesFailures(t *testing.T) {
	vision := &fakeVision{
		labels: map[string][]gcp.Label{
			"https://cdn.test/listings/1/bath.jpg": {{"Bathtub", 0.9}},
			"https://cdn.test/listings/1/yard.jpg": {{"Lawn", 0.9}},
		},
		fail: map[string]bool{"https://cdn.test/listings/1/broken.jpg": true},
	}
	svc := NewClassifierService(logger.Nop(), vision, 2)
	in := []ClassifyInput{
		{URL: "https://cdn.test/listings/1/bath.jpg"},
		{URL: "https://cdn.test/listings/1/broken.jpg"},
		{URL: "https://cdn.test/listings/1/yard.jpg", Filename: "backyard.jpg"},
	}
	out := svc.ClassifyBatch(context.Background(), in)
	if len(out) != 3 {
		t.Fatalf("len: want=3 got=%d", len(out))
	}
	wantRooms := []types.RoomType{types.RoomBathroom, types.RoomOther, types.RoomOutdoor}
	for i, want := range wantRooms {
		if out[i].RoomType != want {
			t.Fatalf("photo %d: want=%s got=%s", i, want, out[i].RoomType)
		}
		if out[i].URL != in[i].URL {
			t.Fatalf("photo %d url: want=%s got=%s", i, in[i].URL, out[i].URL)
		}
	}
	if out[1].Filename != "broken.jpg" {
		t.Fatalf("derived filename: want=broken.jpg got=%q", out[1].Filename)
	}
	if out[2].Filename != "backyard.jpg" {
		t.Fatalf("explicit filename: want=backyard.jpg got=%q", out[2].Filename)
	}
	if vision.calls != 3 {
		t.Fatalf("vision calls: want=3 got=%d", vision.calls)
	}
}

func TestClassifyWithoutVision(t *testing.T) {
	svc := NewClassifierService(logger.Nop(), nil, 0)
	_, err := svc.Classify(context.Background(), ClassifyInput{URL: "https://cdn.test/a.jpg"})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusServiceUnavailable {
		t.Fatalf("want 503 api error, got %v", err)
	}
}
