package eventbus

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventBus is the publish/subscribe surface the module routers depend on.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// NewInMemoryEventBus returns a process-local bus. It is used by tests and by
// `serve --in-memory` for local development without a NATS server.
func NewInMemoryEventBus(logger *slog.Logger) EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 256,
			Persistent:          false,
		},
		watermill.NewSlogLogger(logger),
	)
}
