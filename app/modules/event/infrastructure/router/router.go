package eventrouter

import (
	"context"
	"log/slog"

	eventhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/event/infrastructure/handlers"
	attendanceevents "github.com/Black-And-White-Club/clubhouse/internal/events/attendance"
	"github.com/Black-And-White-Club/clubhouse/internal/handlerwrapper"
	"github.com/Black-And-White-Club/clubhouse/internal/ratelimit"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// EventRouter handles Watermill handler registration for event module messages.
type EventRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	tracer     trace.Tracer
	limiter    *ratelimit.KeyedLimiter
}

// NewEventRouter creates a new EventRouter.
func NewEventRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
	limiter *ratelimit.KeyedLimiter,
) *EventRouter {
	return &EventRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
		limiter:    limiter,
	}
}

// Configure sets up the router with handlers.
func (r *EventRouter) Configure(_ context.Context, handlers eventhandlers.Handlers) error {
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
func (r *EventRouter) registerHandlers(handlers eventhandlers.Handlers) {
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

	registerHandler(deps, attendanceevents.EventCreateRequestedV1, attendanceevents.EventCreateFailedV1, handlers.HandleCreateEvent)
	registerHandler(deps, attendanceevents.EventRegisterRequestedV1, attendanceevents.EventRegisterFailedV1, handlers.HandleRegister)
	registerHandler(deps, attendanceevents.EventCheckInRequestedV1, attendanceevents.EventCheckInFailedV1, handlers.HandleCheckIn)
	registerHandler(deps, attendanceevents.EventCancelRequestedV1, attendanceevents.EventCancelFailedV1, handlers.HandleCancel)
	registerHandler(deps, attendanceevents.EventInfoRequestedV1, attendanceevents.EventInfoFailedV1, handlers.HandleEventInfoRequest)

	r.logger.Info("Event module handlers registered", slog.Int("handlers", 5))
}

// registerHandler is a generic function for type-safe Watermill handler registration.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	failureTopic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "event." + topic

	deps.router.AddNoPublisherHandler(
		handlerName,
		topic,
		deps.subscriber,
		handlerwrapper.WrapTransformingTyped(handlerName, failureTopic, deps.wrapper, handler),
	)
}

// Close shuts down the router.
func (r *EventRouter) Close() error {
	return r.router.Close()
}
