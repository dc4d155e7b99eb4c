package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/platform/apierr"
	"github.com/yungbote/listing-reel-backend/internal/platform/gcp"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

func TestPhotoUploadStoresAndClassifies(t *testing.T) {
	bucket := newFakeBucket()
	vision := &fakeVision{labels: map[string][]gcp.Label{
		"kitchen-bytes": {{"Kitchen", 0.93}, {"Countertop", 0.81}},
	}}
	svc := NewPhotoService(logger.Nop(), bucket, NewClassifierService(logger.Nop(), vision, 1))

	up, err := svc.Upload(context.Background(), "listing-9", "Kitchen.JPG", strings.NewReader("kitchen-bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(up.Key, "listings/listing-9/photos/") || !strings.HasSuffix(up.Key, ".jpg") {
		t.Fatalf("key: got=%s", up.Key)
	}
	if up.URL != "https://cdn.test/photo/"+up.Key {
		t.Fatalf("url: got=%s", up.URL)
	}
	if got := bucket.objects["photo/"+up.Key]; !bytes.Equal(got, []byte("kitchen-bytes")) {
		t.Fatalf("stored bytes: got=%q", got)
	}
	if up.Classification.RoomType != types.RoomKitchen || up.Classification.URL != up.URL {
		t.Fatalf("classification: %+v", up.Classification)
	}
}

func TestPhotoUploadWithoutClassifier(t *testing.T) {
	svc := NewPhotoService(logger.Nop(), newFakeBucket(), nil)
	up, err := svc.Upload(context.Background(), "l", "a.png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if up.Classification.RoomType != types.RoomOther {
		t.Fatalf("room: want=other got=%s", up.Classification.RoomType)
	}
}

func TestPhotoUploadRejects(t *testing.T) {
	svc := NewPhotoService(logger.Nop(), newFakeBucket(), nil)
	cases := []struct {
		name      string
		listingID string
		filename  string
		body      string
	}{
		{"no listing", " ", "a.jpg", "x"},
		{"bad ext", "l", "a.gif", "x"},
		{"empty", "l", "a.jpg", ""},
	}
	for _, tc := range cases {
		_, err := svc.Upload(context.Background(), tc.listingID, tc.filename, strings.NewReader(tc.body))
		var ae *apierr.Error
		if !errors.As(err, &ae) || ae.Status != http.StatusBadRequest {
			t.Fatalf("%s: want 400, got %v", tc.name, err)
		}
	}
}

func TestPhotoUploadRejectsListingIDOutsideItsPrefix(t *testing.T) {
	bucket := newFakeBucket()
	svc := NewPhotoService(logger.Nop(), bucket, nil)
	for _, id := range []string{"other/photos", "../x", "a b", "l.1"} {
		_, err := svc.Upload(context.Background(), id, "a.jpg", strings.NewReader("x"))
		var ae *apierr.Error
		if !errors.As(err, &ae) || ae.Code != "invalid_listing_id" {
			t.Fatalf("%q: want invalid_listing_id got=%v", id, err)
		}
	}
	if n := len(bucket.objects); n != 0 {
		t.Fatalf("uploads: want=0 got=%d", n)
	}
}

func TestPhotoUploadWithoutBucket(t *testing.T) {
	svc := NewPhotoService(logger.Nop(), nil, nil)
	_, err := svc.Upload(context.Background(), "l", "a.jpg", strings.NewReader("x"))
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != "storage_unavailable" {
		t.Fatalf("want storage_unavailable, got %v", err)
	}
}
