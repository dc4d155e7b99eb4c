package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/sections"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/tuning"
	"github.com/yungbote/listing-reel-backend/internal/platform/apierr"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

func newScriptService(llm *fakeLLM) ScriptService {
	var narration NarrationService
	if llm != nil {
		narration = NewNarrationService(logger.Nop(), llm)
	}
	return NewScriptService(logger.Nop(), sections.MustLayout("standard"), tuning.Default(), narration)
}

func TestScriptPlanUsesNamedLayout(t *testing.T) {
	svc := newScriptService(nil)
	plan, err := svc.Plan(context.Background(), ScriptPlanRequest{
		Layout: "compact",
		Images: testImages(types.RoomExterior, types.RoomLiving),
	})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.Layout != "compact" {
		t.Fatalf("layout: want=compact got=%s", plan.Layout)
	}
	if len(plan.Budgets) != len(plan.Sections) {
		t.Fatalf("budgets=%d sections=%d", len(plan.Budgets), len(plan.Sections))
	}
	if len(plan.Timings) != 2 {
		t.Fatalf("timings: want=2 got=%d", len(plan.Timings))
	}
}

func TestScriptPlanRejectsUnknownLayout(t *testing.T) {
	svc := newScriptService(nil)
	_, err := svc.Plan(context.Background(), ScriptPlanRequest{Layout: "mansion"})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != "unknown_layout" {
		t.Fatalf("want unknown_layout, got %v", err)
	}
}

func TestScriptGenerate(t *testing.T) {
	llm := &fakeLLM{response: `{"sections":[{"type":"closing","content":"See it soon."},{"type":"opening","content":"Meet your next home."}]}`}
	svc := newScriptService(llm)
	res, err := svc.Generate(context.Background(), ScriptGenerateRequest{
		ScriptPlanRequest: ScriptPlanRequest{Images: testImages(types.RoomExterior)},
		Property:          types.Property{Address: "1 Oak"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Script != "Meet your next home.\n\nSee it soon." {
		t.Fatalf("script: got=%q", res.Script)
	}
	if res.WordCount != 7 {
		t.Fatalf("words: want=7 got=%d", res.WordCount)
	}
	// 7 words at 150 wpm is 2.8s, rounded up.
	if res.EstimatedNarrationDuration != 3 {
		t.Fatalf("duration: want=3 got=%d", res.EstimatedNarrationDuration)
	}
}

func TestScriptGenerateWithoutNarration(t *testing.T) {
	svc := newScriptService(nil)
	_, err := svc.Generate(context.Background(), ScriptGenerateRequest{})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %v", err)
	}
}

func TestValidateImages(t *testing.T) {
	cases := []struct {
		name   string
		images []types.Image
		ok     bool
	}{
		{"empty", nil, true},
		{"valid", testImages(types.RoomKitchen), true},
		{"enhanced only", []types.Image{{ID: "a", EnhancedURL: "e", Enhanced: true}}, true},
		{"missing id", []types.Image{{URL: "u"}}, false},
		{"missing url", []types.Image{{ID: "a"}}, false},
		{"bad room", []types.Image{{ID: "a", URL: "u", RoomType: "attic"}}, false},
	}
	for _, tc := range cases {
		err := ValidateImages(tc.images)
		if (err == nil) != tc.ok {
			t.Fatalf("%s: want ok=%v got err=%v", tc.name, tc.ok, err)
		}
	}
}
