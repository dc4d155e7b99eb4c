package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/platform/gcp"
)

type fakeVision struct {
	mu     sync.Mutex
	labels map[string][]gcp.Label
	fail   map[string]bool
	calls  int
}

func (f *fakeVision) LabelImage(ctx context.Context, uri string, content []byte) ([]gcp.Label, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	key := uri
	if len(content) > 0 {
		key = string(content)
	}
	if f.fail[key] {
		return nil, fmt.Errorf("vision down for %s", key)
	}
	return f.labels[key], nil
}

func (f *fakeVision) Close() error { return nil }

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: map[string][]byte{}}
}

func (b *fakeBucket) key(cat gcp.BucketCategory, key string) string {
	return string(cat) + "/" + key
}

func (b *fakeBucket) UploadFile(ctx context.Context, cat gcp.BucketCategory, key string, file io.Reader) error {
	raw, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[b.key(cat, key)] = raw
	return nil
}

func (b *fakeBucket) DownloadFile(ctx context.Context, cat gcp.BucketCategory, key string) (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	raw, ok := b.objects[b.key(cat, key)]
	if !ok {
		return nil, gcp.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func (b *fakeBucket) DeleteFile(ctx context.Context, cat gcp.BucketCategory, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, b.key(cat, key))
	return nil
}

func (b *fakeBucket) GetPublicURL(cat gcp.BucketCategory, key string) string {
	return "https://cdn.test/" + string(cat) + "/" + strings.TrimLeft(key, "/")
}

type fakeLLM struct {
	response string
	err      error
	system   string
	prompt   string
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	f.system = system
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

type fakeTrigger struct {
	runID   string
	err     error
	calls   int
	payload types.WorkflowPayload
}

func (f *fakeTrigger) Mode() string { return "fake" }

func (f *fakeTrigger) Trigger(ctx context.Context, videoID uuid.UUID, payload types.WorkflowPayload) (string, error) {
	f.calls++
	f.payload = payload
	return f.runID, f.err
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *fakeNotifier) record(ev string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *fakeNotifier) VideoCreated(ctx context.Context, id uuid.UUID, data any) {
	n.record("created")
}

func (n *fakeNotifier) VideoDispatched(ctx context.Context, id uuid.UUID, data any) {
	n.record("dispatched")
}

func (n *fakeNotifier) VideoFailed(ctx context.Context, id uuid.UUID, data any) {
	n.record("failed")
}

func testImages(rooms ...types.RoomType) []types.Image {
	out := make([]types.Image, len(rooms))
	for i, rt := range rooms {
		out[i] = types.Image{
			ID:       fmt.Sprintf("img-%02d", i),
			URL:      fmt.Sprintf("https://cdn.test/photo/%02d.jpg", i),
			Order:    i,
			RoomType: rt,
		}
	}
	return out
}
