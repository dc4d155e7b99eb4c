package realtime

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

// Publisher fans a message out across instances.
type Publisher interface {
	Publish(ctx context.Context, msg SSEMessage) error
}

type VideoNotifier interface {
	VideoCreated(ctx context.Context, videoID uuid.UUID, data any)
	VideoDispatched(ctx context.Context, videoID uuid.UUID, data any)
	VideoFailed(ctx context.Context, videoID uuid.UUID, data any)
}

type videoNotifier struct {
	log *logger.Logger
	hub *SSEHub
	bus Publisher
}

// NewVideoNotifier publishes through bus when set, otherwise straight to the local hub.
func NewVideoNotifier(log *logger.Logger, hub *SSEHub, bus Publisher) VideoNotifier {
	return &videoNotifier{log: log.With("service", "VideoNotifier"), hub: hub, bus: bus}
}

func (n *videoNotifier) VideoCreated(ctx context.Context, videoID uuid.UUID, data any) {
	n.emit(ctx, videoID, SSEEventVideoCreated, data)
}

func (n *videoNotifier) VideoDispatched(ctx context.Context, videoID uuid.UUID, data any) {
	n.emit(ctx, videoID, SSEEventVideoDispatched, data)
}

func (n *videoNotifier) VideoFailed(ctx context.Context, videoID uuid.UUID, data any) {
	n.emit(ctx, videoID, SSEEventVideoFailed, data)
}

func (n *videoNotifier) emit(ctx context.Context, videoID uuid.UUID, event SSEEvent, data any) {
	msg := SSEMessage{Channel: VideoChannel(videoID), Event: event, Data: data}
	if n.bus != nil {
		err := n.bus.Publish(ctx, msg)
		if err == nil {
			return
		}
		n.log.Warn("Bus publish failed; delivering locally", "video_id", videoID, "event", event, "error", err)
	}
	if n.hub != nil {
		n.hub.Broadcast(msg)
	}
}
