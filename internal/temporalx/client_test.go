package temporalx

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

func TestBackoff(t *testing.T) {
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{5, time.Second},
	}
	for _, tc := range cases {
		if got := Backoff(100*time.Millisecond, time.Second, tc.attempt); got != tc.want {
			t.Fatalf("attempt %d: want=%v got=%v", tc.attempt, tc.want, got)
		}
	}
	if got := Backoff(0, 0, 1); got != 250*time.Millisecond {
		t.Fatalf("zero base: want=250ms got=%v", got)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{status.Error(codes.Unavailable, "down"), true},
		{status.Error(codes.ResourceExhausted, "slow down"), true},
		{status.Error(codes.InvalidArgument, "bad"), false},
		{context.DeadlineExceeded, true},
		{errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := IsRetryable(tc.err); got != tc.want {
			t.Fatalf("%v: want=%v got=%v", tc.err, tc.want, got)
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TEMPORAL_ADDRESS", "")
	t.Setenv("TEMPORAL_TASK_QUEUE", "")
	t.Setenv("TEMPORAL_DIAL_TIMEOUT_SECONDS", "-3")
	cfg := LoadConfig(logger.Nop())
	if cfg.Enabled() {
		t.Fatalf("want disabled without address")
	}
	if cfg.TaskQueue != "listing-video-render" || cfg.WorkflowType != "RenderListingVideo" {
		t.Fatalf("defaults: got queue=%q type=%q", cfg.TaskQueue, cfg.WorkflowType)
	}
	if cfg.DialTimeout != 0 {
		t.Fatalf("negative timeout should clamp to 0, got=%v", cfg.DialTimeout)
	}
	c, err := NewClient(logger.Nop(), cfg)
	if c != nil || err != nil {
		t.Fatalf("disabled client: want nil,nil got=%v,%v", c, err)
	}
}
