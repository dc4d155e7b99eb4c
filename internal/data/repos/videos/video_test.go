package videos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/listing-reel-backend/internal/data/repos/testutil"
	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/platform/dbctx"
)

func TestVideoRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewVideoRepo(db, testutil.Logger(t))

	now := time.Now().UTC()
	older := &types.Video{
		ListingID: "lst-1",
		Status:    string(types.VideoStatusDispatched),
		Layout:    "standard",
		Payload:   datatypes.JSON([]byte(`{"images":[]}`)),
		CreatedAt: now.Add(-time.Hour),
		UpdatedAt: now.Add(-time.Hour),
	}
	if _, err := repo.Create(dbc, older); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if older.ID == uuid.Nil {
		t.Fatalf("Create: want generated id")
	}
	newer, err := repo.Create(dbc, &types.Video{
		ListingID: "lst-1",
		Status:    string(types.VideoStatusPending),
		Layout:    "compact",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(dbc, &types.Video{ListingID: "lst-2", Status: "pending", Layout: "standard"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(dbc, older.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v %v", got, err)
	}
	if got.Layout != "standard" || string(got.Payload) != `{"images":[]}` {
		t.Fatalf("GetByID: got layout=%q payload=%s", got.Layout, got.Payload)
	}
	if missing, err := repo.GetByID(dbc, uuid.New()); err != nil || missing != nil {
		t.Fatalf("GetByID missing: want nil,nil got=%v,%v", missing, err)
	}

	if err := repo.UpdateFields(dbc, newer.ID, map[string]interface{}{
		"status":          string(types.VideoStatusFailed),
		"error":           "workflow unavailable",
		"workflow_run_id": "run-1",
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	got, _ = repo.GetByID(dbc, newer.ID)
	if got.Status != "failed" || got.Error != "workflow unavailable" || got.WorkflowRunID != "run-1" {
		t.Fatalf("UpdateFields: got=%+v", got)
	}

	list, err := repo.ListByListing(dbc, "lst-1", 0)
	if err != nil {
		t.Fatalf("ListByListing: %v", err)
	}
	if len(list) != 2 || list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Fatalf("ListByListing: want newest first, got=%d items", len(list))
	}
	if empty, _ := repo.ListByListing(dbc, "", 5); len(empty) != 0 {
		t.Fatalf("ListByListing empty id: got=%v", empty)
	}
}
