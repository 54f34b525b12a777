package clubrouter

import (
	"context"
	"log/slog"

	clubhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/handlers"
	clubevents "github.com/Black-And-White-Club/clubhouse/internal/events/club"
	"github.com/Black-And-White-Club/clubhouse/internal/handlerwrapper"
	"github.com/Black-And-White-Club/clubhouse/internal/ratelimit"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// ClubRouter handles Watermill handler registration for club events.
type ClubRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	tracer     trace.Tracer
	limiter    *ratelimit.KeyedLimiter
}

// NewClubRouter creates a new ClubRouter.
func NewClubRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
	limiter *ratelimit.KeyedLimiter,
) *ClubRouter {
	return &ClubRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
		limiter:    limiter,
	}
}

// Configure sets up the router with handlers.
func (r *ClubRouter) Configure(_ context.Context, handlers clubhandlers.Handlers) error {
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
func (r *ClubRouter) registerHandlers(handlers clubhandlers.Handlers) {
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

	r.logger.Info("Registering club module handlers",
		slog.String("create_subject", clubevents.ClubCreateRequestedV1),
		slog.String("join_subject", clubevents.ClubJoinRequestedV1),
		slog.String("leave_subject", clubevents.ClubLeaveRequestedV1),
		slog.String("role_subject", clubevents.ClubRoleAssignRequestedV1),
		slog.String("info_subject", clubevents.ClubInfoRequestedV1),
	)

	registerHandler(deps, clubevents.ClubCreateRequestedV1, clubevents.ClubCreateFailedV1, handlers.HandleCreateClub)
	registerHandler(deps, clubevents.ClubJoinRequestedV1, clubevents.ClubJoinFailedV1, handlers.HandleJoinClub)
	registerHandler(deps, clubevents.ClubLeaveRequestedV1, clubevents.ClubLeaveFailedV1, handlers.HandleLeaveClub)
	registerHandler(deps, clubevents.ClubRoleAssignRequestedV1, clubevents.ClubRoleAssignFailedV1, handlers.HandleAssignRole)
	registerHandler(deps, clubevents.ClubInfoRequestedV1, clubevents.ClubInfoFailedV1, handlers.HandleClubInfoRequest)
}

// registerHandler is a generic function for type-safe Watermill handler registration.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	failureTopic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "club." + topic

	deps.router.AddNoPublisherHandler(
		handlerName,
		topic,
		deps.subscriber,
		handlerwrapper.WrapTransformingTyped(handlerName, failureTopic, deps.wrapper, handler),
	)
}

// Close shuts down the router.
func (r *ClubRouter) Close() error {
	return r.router.Close()
}
