package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// StreamSubjects maps a JetStream stream name to the subject it captures.
// Each module owns one stream named after its subject prefix.
var StreamSubjects = map[string]string{
	"user":  "user.>",
	"club":  "club.>",
	"event": "event.>",
}

// NATSConfig configures the NATS-backed event bus.
type NATSConfig struct {
	URL        string
	QueueGroup string
	AckWait    time.Duration
}

// NATSEventBus publishes and subscribes through NATS JetStream.
type NATSEventBus struct {
	publisher  *nats.Publisher
	subscriber *nats.Subscriber
	conn       *nc.Conn
	js         jetstream.JetStream
	logger     *slog.Logger
}

var _ EventBus = (*NATSEventBus)(nil)

// NewNATSEventBus connects to NATS, provisions the module streams and builds
// the watermill publisher and subscriber.
func NewNATSEventBus(ctx context.Context, cfg NATSConfig, logger *slog.Logger) (*NATSEventBus, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.AckWait == 0 {
		cfg.AckWait = 30 * time.Second
	}

	options := []nc.Option{
		nc.Name("clubhouse"),
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				logger.Error("Error in subscription",
					slog.String("subject", s.Subject),
					slog.String("queue", s.Queue),
					slog.Any("error", err),
				)
				return
			}
			logger.Error("Error in connection", slog.Any("error", err))
		}),
	}

	conn, err := nc.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	bus := &NATSEventBus{conn: conn, js: js, logger: logger}
	if err := bus.ensureStreams(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	wmLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}
	jsConfig := nats.JetStreamConfig{
		Disabled:      false,
		AutoProvision: false,
	}

	bus.publisher, err = nats.NewPublisher(
		nats.PublisherConfig{
			URL:         cfg.URL,
			NatsOptions: options,
			Marshaler:   marshaler,
			JetStream:   jsConfig,
		},
		wmLogger,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create Watermill NATS publisher: %w", err)
	}

	bus.subscriber, err = nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:              cfg.URL,
			QueueGroupPrefix: cfg.QueueGroup,
			SubscribersCount: 1,
			AckWaitTimeout:   cfg.AckWait,
			NatsOptions:      options,
			Unmarshaler:      marshaler,
			JetStream:        jsConfig,
		},
		wmLogger,
	)
	if err != nil {
		_ = bus.publisher.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to create Watermill NATS subscriber: %w", err)
	}

	return bus, nil
}

// ensureStreams creates or updates the per-module streams.
func (b *NATSEventBus) ensureStreams(ctx context.Context) error {
	for name, subject := range StreamSubjects {
		_, err := b.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:     name,
			Subjects: []string{subject},
			MaxAge:   24 * time.Hour,
		})
		if err != nil {
			return fmt.Errorf("failed to create stream %s: %w", name, err)
		}
		b.logger.Info("Stream ready", slog.String("stream", name), slog.String("subject", subject))
	}
	return nil
}

// Publish publishes messages to topic.
func (b *NATSEventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
	}
	if err := b.publisher.Publish(topic, messages...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe subscribes to topic.
func (b *NATSEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.subscriber.Subscribe(ctx, topic)
}

// Healthy reports whether the underlying NATS connection is up.
func (b *NATSEventBus) Healthy() error {
	if b.conn == nil || !b.conn.IsConnected() {
		return errors.New("nats connection is not established")
	}
	return nil
}

// Close closes the publisher, the subscriber and the connection.
func (b *NATSEventBus) Close() error {
	var errs []error
	if b.subscriber != nil {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close subscriber: %w", err))
		}
	}
	if b.publisher != nil {
		if err := b.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close publisher: %w", err))
		}
	}
	if b.conn != nil {
		b.conn.Close()
	}
	return errors.Join(errs...)
}
