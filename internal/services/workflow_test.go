package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/platform/httpx"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
	"github.com/yungbote/listing-reel-backend/internal/temporalx"
)

func TestWebhookTriggerPostsPayload(t *testing.T) {
	videoID := uuid.New()
	var got types.WorkflowPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("authorization: got=%q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Video-Id") != videoID.String() {
			t.Errorf("video header: got=%q", r.Header.Get("X-Video-Id"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"executionId":"exec-42"}`))
	}))
	defer srv.Close()

	trig := NewWebhookTrigger(logger.Nop(), srv.Client(), WebhookConfig{URL: srv.URL, Token: "secret"})
	if trig.Mode() != WorkflowModeWebhook {
		t.Fatalf("mode: want=%s got=%s", WorkflowModeWebhook, trig.Mode())
	}
	runID, err := trig.Trigger(context.Background(), videoID, types.WorkflowPayload{
		VideoID: videoID.String(),
		Images:  []string{"a.jpg"},
	})
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if runID != "exec-42" {
		t.Fatalf("run id: want=exec-42 got=%s", runID)
	}
	if got.VideoID != videoID.String() || len(got.Images) != 1 {
		t.Fatalf("payload not delivered: %+v", got)
	}
}

func TestWebhookTriggerRetriesUnavailable(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"runId":"run-1"}`))
	}))
	defer srv.Close()

	trig := NewWebhookTrigger(logger.Nop(), srv.Client(), WebhookConfig{
		URL:   srv.URL,
		Retry: httpx.RetryPolicy{Attempts: 3, Backoff: time.Millisecond, MaxWait: 10 * time.Millisecond},
	})
	runID, err := trig.Trigger(context.Background(), uuid.New(), types.WorkflowPayload{})
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if runID != "run-1" {
		t.Fatalf("run id: want=run-1 got=%s", runID)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("calls: want=2 got=%d", n)
	}
}

func TestWebhookTriggerFailsOnClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	trig := NewWebhookTrigger(logger.Nop(), srv.Client(), WebhookConfig{
		URL:   srv.URL,
		Retry: httpx.RetryPolicy{Attempts: 3, Backoff: time.Millisecond},
	})
	if _, err := trig.Trigger(context.Background(), uuid.New(), types.WorkflowPayload{}); err == nil {
		t.Fatalf("expected error on 400")
	}
}

func TestWebhookTriggerRequiresURL(t *testing.T) {
	trig := NewWebhookTrigger(logger.Nop(), nil, WebhookConfig{})
	if _, err := trig.Trigger(context.Background(), uuid.New(), types.WorkflowPayload{}); err == nil {
		t.Fatalf("expected error without url")
	}
}

func TestTemporalTriggerRequiresClient(t *testing.T) {
	trig := NewTemporalTrigger(logger.Nop(), nil, temporalx.Config{})
	if trig.Mode() != WorkflowModeTemporal {
		t.Fatalf("mode: want=%s got=%s", WorkflowModeTemporal, trig.Mode())
	}
	if _, err := trig.Trigger(context.Background(), uuid.New(), types.WorkflowPayload{}); err == nil {
		t.Fatalf("expected error without temporal client")
	}
}
