package userrouter

import (
	"context"
	"log/slog"

	userhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/handlers"
	userevents "github.com/Black-And-White-Club/clubhouse/internal/events/user"
	"github.com/Black-And-White-Club/clubhouse/internal/handlerwrapper"
	"github.com/Black-And-White-Club/clubhouse/internal/ratelimit"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// UserRouter handles Watermill handler registration for user events.
type UserRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	tracer     trace.Tracer
	limiter    *ratelimit.KeyedLimiter
}

// NewUserRouter creates a new UserRouter.
func NewUserRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
	limiter *ratelimit.KeyedLimiter,
) *UserRouter {
	return &UserRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
		limiter:    limiter,
	}
}

// Configure sets up the router with handlers.
func (r *UserRouter) Configure(_ context.Context, handlers userhandlers.Handlers) error {
	r.registerHandlers(handlers)
	return nil
}

// handlerDeps bundles dependencies for handler registration.
type handlerDeps struct {
	router     *message.Router
	subscriber message.Subscriber
	wrapper    handlerwrapper.Deps
}

// registerHandlers wires NATS subjects to handler methods.
func (r *UserRouter) registerHandlers(handlers userhandlers.Handlers) {
	deps := handlerDeps{
		router:     r.router,
		subscriber: r.subscriber,
		wrapper: handlerwrapper.Deps{
			Logger:    r.logger,
			Tracer:    r.tracer,
			Publisher: r.publisher,
			Limiter:   r.limiter,
		},
	}

	registerHandler(deps, userevents.UserCreateRequestedV1, userevents.UserCreateFailedV1, handlers.HandleUserCreateRequest)
	registerHandler(deps, userevents.UserInfoRequestedV1, userevents.UserInfoFailedV1, handlers.HandleUserInfoRequest)

	r.logger.Info("User module handlers registered successfully")
}

// registerHandler is a generic function for type-safe Watermill handler registration.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	failureTopic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "user." + topic

	deps.router.AddNoPublisherHandler(
		handlerName,
		topic,
		deps.subscriber,
		handlerwrapper.WrapTransformingTyped(handlerName, failureTopic, deps.wrapper, handler),
	)
}

// Close shuts down the router.
func (r *UserRouter) Close() error {
	return r.router.Close()
}
