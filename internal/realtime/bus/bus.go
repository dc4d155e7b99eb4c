package bus

import (
	"context"

	"github.com/yungbote/listing-reel-backend/internal/realtime"
)

// Bus relays SSE messages between API instances so a client connected to any instance
// sees events raised on another.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}
