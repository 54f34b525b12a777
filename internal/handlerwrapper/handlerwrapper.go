// Package handlerwrapper adapts typed, transformation-style handlers to
// watermill message handlers. A handler receives a decoded payload and returns
// the results to publish; the wrapper owns decoding, tracing, correlation,
// per-actor throttling and publishing.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/Black-And-White-Club/clubhouse/internal/events"
	"github.com/Black-And-White-Club/clubhouse/internal/identity"
	"github.com/Black-And-White-Club/clubhouse/internal/observability"
	"github.com/Black-And-White-Club/clubhouse/internal/ratelimit"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

// CtxKeyReplyTo holds the reply_to metadata of the inbound message.
const CtxKeyReplyTo ctxKey = "reply_to"

// MetadataReplyTo is the metadata key a caller sets to override the success
// reply subject.
const MetadataReplyTo = "reply_to"

// Result is one outbound message produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// Deps bundles what the wrapper needs to run a handler.
type Deps struct {
	Logger    *slog.Logger
	Tracer    trace.Tracer
	Publisher message.Publisher
	Limiter   *ratelimit.KeyedLimiter
}

// ReplyTopic returns the reply_to subject from ctx, or fallback.
func ReplyTopic(ctx context.Context, fallback string) string {
	if rt, ok := ctx.Value(CtxKeyReplyTo).(string); ok && rt != "" {
		return rt
	}
	return fallback
}

// WrapTransformingTyped decodes the message payload into T, runs handler and
// publishes every returned Result. Malformed payloads and throttled actors are
// answered on failureTopic and acknowledged. A handler error is returned so
// the message is nacked and redelivered.
func WrapTransformingTyped[T any](
	handlerName string,
	failureTopic string,
	deps Deps,
	handler func(context.Context, *T) ([]Result, error),
) message.NoPublishHandlerFunc {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(msg *message.Message) error {
		ctx := msg.Context()
		correlationID := middleware.MessageCorrelationID(msg)
		ctx = observability.WithCorrelationID(ctx, correlationID)

		var span trace.Span
		if deps.Tracer != nil {
			ctx, span = deps.Tracer.Start(ctx, handlerName, trace.WithAttributes(
				attribute.String("message.uuid", msg.UUID),
				attribute.String("correlation_id", correlationID),
			))
		} else {
			span = trace.SpanFromContext(ctx)
		}
		defer span.End()

		actor, hasActor := identity.ActorFromMessage(msg)
		if hasActor {
			ctx = identity.WithActor(ctx, actor)
		}
		if rt := msg.Metadata.Get(MetadataReplyTo); rt != "" {
			ctx = context.WithValue(ctx, CtxKeyReplyTo, rt)
		}

		if deps.Limiter != nil && hasActor && !deps.Limiter.Allow(actor.String()) {
			logger.WarnContext(ctx, "Actor throttled",
				observability.CorrelationAttr(ctx),
				slog.String("handler", handlerName),
				slog.String("actor_id", actor.String()),
			)
			return publishResults(ctx, deps.Publisher, msg, []Result{{
				Topic:   failureTopic,
				Payload: events.FailureFrom(apperrors.ErrRateLimited),
			}})
		}

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.WarnContext(ctx, "Failed to decode payload",
				observability.CorrelationAttr(ctx),
				slog.String("handler", handlerName),
				observability.ErrorAttr(err),
			)
			span.SetStatus(codes.Error, "invalid payload")
			return publishResults(ctx, deps.Publisher, msg, []Result{{
				Topic:   failureTopic,
				Payload: events.FailureFrom(apperrors.Invalid("malformed payload: %v", err)),
			}})
		}

		results, err := handler(ctx, payload)
		if err != nil {
			logger.ErrorContext(ctx, "Handler failed",
				observability.CorrelationAttr(ctx),
				slog.String("handler", handlerName),
				observability.ErrorAttr(err),
			)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("%s: %w", handlerName, err)
		}

		return publishResults(ctx, deps.Publisher, msg, results)
	}
}

func publishResults(ctx context.Context, pub message.Publisher, in *message.Message, results []Result) error {
	for _, r := range results {
		if r.Topic == "" {
			continue
		}
		out, err := newResultMessage(in, r)
		if err != nil {
			return err
		}
		out.SetContext(ctx)
		if err := pub.Publish(r.Topic, out); err != nil {
			return fmt.Errorf("failed to publish to %s: %w", r.Topic, err)
		}
	}
	return nil
}

func newResultMessage(in *message.Message, r Result) (*message.Message, error) {
	body, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", r.Topic, err)
	}

	out := message.NewMessage(watermill.NewUUID(), body)
	middleware.SetCorrelationID(middleware.MessageCorrelationID(in), out)
	if actor := in.Metadata.Get(identity.MetadataActorKey); actor != "" {
		out.Metadata.Set(identity.MetadataActorKey, actor)
	}
	out.Metadata.Set("Nats-Msg-Id", out.UUID)
	for k, v := range r.Metadata {
		out.Metadata.Set(k, v)
	}
	return out, nil
}

// FailureOrError turns a service error into handler output. Domain failures
// become a single failure Result on topic; anything else is returned as an
// infrastructure error.
func FailureOrError(topic string, err error) ([]Result, error) {
	if _, ok := apperrors.As(err); ok {
		return []Result{{Topic: topic, Payload: events.FailureFrom(err)}}, nil
	}
	return nil, err
}
