// Package identity resolves the authenticated caller of a request. Tokens are
// verified upstream; by the time a message reaches this service the gateway
// has stamped the caller's user UUID into the message metadata.
package identity

import (
	"context"

	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// MetadataActorKey is the message metadata key carrying the caller's user UUID.
const MetadataActorKey = "actor_id"

type actorKey struct{}

// WithActor returns a context carrying the caller's user UUID.
func WithActor(ctx context.Context, actorID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFromContext returns the caller stored by WithActor.
func ActorFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actorKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// ActorFromMessage parses the caller's user UUID from message metadata.
func ActorFromMessage(msg *message.Message) (uuid.UUID, bool) {
	raw := msg.Metadata.Get(MetadataActorKey)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// Resolver resolves the authenticated caller of a request.
type Resolver interface {
	Resolve(ctx context.Context) (uuid.UUID, error)
}

// ContextResolver resolves the caller from the request context.
type ContextResolver struct{}

// NewContextResolver creates a ContextResolver.
func NewContextResolver() ContextResolver {
	return ContextResolver{}
}

// Resolve returns the caller or apperrors.ErrUnauthenticated.
func (ContextResolver) Resolve(ctx context.Context) (uuid.UUID, error) {
	if id, ok := ActorFromContext(ctx); ok {
		return id, nil
	}
	return uuid.Nil, apperrors.ErrUnauthenticated
}
