package logger

import (
	"strings"
	"testing"
)

func TestScrubRedactsSecretsAndHashesContacts(t *testing.T) {
	t.Setenv("LOG_REDACTION_ENABLED", "true")

	got := scrub([]interface{}{
		"gemini_api_key", "abc123",
		"agent_email", "agent@example.com",
		"video_id", "v-1",
	})
	if len(got) != 6 {
		t.Fatalf("scrub: want 6 entries got=%d", len(got))
	}
	if got[1] != "[REDACTED]" {
		t.Fatalf("api key: want redacted got=%v", got[1])
	}
	hashed, _ := got[3].(string)
	if !strings.HasPrefix(hashed, "hash:") || strings.Contains(hashed, "example.com") {
		t.Fatalf("agent email: want hash got=%q", hashed)
	}
	if got[5] != "v-1" {
		t.Fatalf("video id: want passthrough got=%v", got[5])
	}
}

func TestScrubKeepsDanglingKey(t *testing.T) {
	got := scrub([]interface{}{"a", 1, "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Fatalf("scrub dangling: got=%v", got)
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "production", "test"} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		log.With("mode", mode).Debug("logger ready")
	}
}
