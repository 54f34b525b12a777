package handlerwrapper

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/Black-And-White-Club/clubhouse/internal/events"
	"github.com/Black-And-White-Club/clubhouse/internal/identity"
	"github.com/Black-And-White-Club/clubhouse/internal/ratelimit"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"
)

type pingPayload struct {
	Name string `json:"name"`
}

type pongPayload struct {
	Greeting string `json:"greeting"`
	Actor    string `json:"actor"`
}

func newBus(t *testing.T) *gochannel.GoChannel {
	t.Helper()
	bus := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, watermill.NopLogger{})
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func subscribe(t *testing.T, bus *gochannel.GoChannel, topic string) <-chan *message.Message {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch, err := bus.Subscribe(ctx, topic)
	require.NoError(t, err)
	return ch
}

func receive(t *testing.T, ch <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-ch:
		msg.Ack()
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func inbound(t *testing.T, payload any, actor string) *message.Message {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	msg := message.NewMessage(watermill.NewUUID(), body)
	middleware.SetCorrelationID("corr-1", msg)
	if actor != "" {
		msg.Metadata.Set(identity.MetadataActorKey, actor)
	}
	return msg
}

func pong(ctx context.Context, p *pingPayload) ([]Result, error) {
	actor, _ := identity.ActorFromContext(ctx)
	return []Result{{
		Topic:   ReplyTopic(ctx, "ping.done"),
		Payload: &pongPayload{Greeting: "hello " + p.Name, Actor: actor.String()},
	}}, nil
}

func TestWrapTransformingTyped_PublishesResults(t *testing.T) {
	bus := newBus(t)
	done := subscribe(t, bus, "ping.done")
	actor := uuid.New()

	h := WrapTransformingTyped("ping", "ping.failed", Deps{
		Logger:    slog.Default(),
		Tracer:    noop.NewTracerProvider().Tracer("test"),
		Publisher: bus,
	}, pong)

	require.NoError(t, h(inbound(t, pingPayload{Name: "ada"}, actor.String())))

	out := receive(t, done)
	var got pongPayload
	require.NoError(t, json.Unmarshal(out.Payload, &got))
	assert.Equal(t, "hello ada", got.Greeting)
	assert.Equal(t, actor.String(), got.Actor)
	assert.Equal(t, "corr-1", middleware.MessageCorrelationID(out))
	assert.Equal(t, actor.String(), out.Metadata.Get(identity.MetadataActorKey))
	assert.Equal(t, out.UUID, out.Metadata.Get("Nats-Msg-Id"))
}

func TestWrapTransformingTyped_ReplyTo(t *testing.T) {
	bus := newBus(t)
	inbox := subscribe(t, bus, "_INBOX.42")

	h := WrapTransformingTyped("ping", "ping.failed", Deps{Publisher: bus}, pong)

	msg := inbound(t, pingPayload{Name: "bob"}, "")
	msg.Metadata.Set(MetadataReplyTo, "_INBOX.42")
	require.NoError(t, h(msg))

	out := receive(t, inbox)
	assert.Contains(t, string(out.Payload), "hello bob")
}

func TestWrapTransformingTyped_MalformedPayload(t *testing.T) {
	bus := newBus(t)
	failed := subscribe(t, bus, "ping.failed")
	called := false

	h := WrapTransformingTyped("ping", "ping.failed", Deps{Publisher: bus},
		func(ctx context.Context, p *pingPayload) ([]Result, error) {
			called = true
			return nil, nil
		})

	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	require.NoError(t, h(msg))

	out := receive(t, failed)
	var failure events.FailurePayload
	require.NoError(t, json.Unmarshal(out.Payload, &failure))
	assert.Equal(t, apperrors.CodeInvalidArgument, failure.Code)
	assert.False(t, called)
}

func TestWrapTransformingTyped_HandlerErrorNacks(t *testing.T) {
	bus := newBus(t)
	boom := errors.New("database unavailable")

	h := WrapTransformingTyped("ping", "ping.failed", Deps{Publisher: bus},
		func(ctx context.Context, p *pingPayload) ([]Result, error) {
			return nil, boom
		})

	err := h(inbound(t, pingPayload{Name: "ada"}, ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "ping")
}

func TestWrapTransformingTyped_ThrottlesPerActor(t *testing.T) {
	bus := newBus(t)
	done := subscribe(t, bus, "ping.done")
	failed := subscribe(t, bus, "ping.failed")
	limiter := ratelimit.NewKeyedLimiter(rate.Every(time.Hour), 1)
	actor := uuid.NewString()

	h := WrapTransformingTyped("ping", "ping.failed", Deps{Publisher: bus, Limiter: limiter}, pong)

	require.NoError(t, h(inbound(t, pingPayload{Name: "first"}, actor)))
	receive(t, done)

	require.NoError(t, h(inbound(t, pingPayload{Name: "second"}, actor)))
	out := receive(t, failed)
	var failure events.FailurePayload
	require.NoError(t, json.Unmarshal(out.Payload, &failure))
	assert.Equal(t, apperrors.CodeRateLimited, failure.Code)

	require.NoError(t, h(inbound(t, pingPayload{Name: "other"}, uuid.NewString())))
	receive(t, done)
}

func TestFailureOrError(t *testing.T) {
	results, err := FailureOrError("x.failed", apperrors.ErrClubNotFound)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "x.failed", results[0].Topic)
	assert.Equal(t, apperrors.CodeClubNotFound, results[0].Payload.(*events.FailurePayload).Code)

	infra := errors.New("timeout")
	results, err = FailureOrError("x.failed", infra)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, infra)
}
