package eventhandlers

import (
	"context"
	"log/slog"

	eventservice "github.com/Black-And-White-Club/clubhouse/app/modules/event/application"
	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	attendanceevents "github.com/Black-And-White-Club/clubhouse/internal/events/attendance"
	"github.com/Black-And-White-Club/clubhouse/internal/handlerwrapper"
	"github.com/Black-And-White-Club/clubhouse/internal/identity"
	"github.com/Black-And-White-Club/clubhouse/internal/observability"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// EventHandlers implements the Handlers interface.
type EventHandlers struct {
	service  eventservice.Service
	resolver identity.Resolver
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewEventHandlers creates a new EventHandlers instance.
func NewEventHandlers(
	service eventservice.Service,
	resolver identity.Resolver,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &EventHandlers{
		service:  service,
		resolver: resolver,
		logger:   logger,
		tracer:   tracer,
	}
}

// HandleCreateEvent creates an event in a club the caller belongs to.
func (h *EventHandlers) HandleCreateEvent(ctx context.Context, payload *attendanceevents.EventCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "EventHandlers.HandleCreateEvent")
	defer span.End()

	actor, err := h.resolver.Resolve(ctx)
	if err != nil {
		return handlerwrapper.FailureOrError(attendanceevents.EventCreateFailedV1, err)
	}
	clubUUID, err := uuid.Parse(payload.ClubUUID)
	if err != nil {
		return handlerwrapper.FailureOrError(attendanceevents.EventCreateFailedV1, apperrors.Invalid("invalid club uuid %q", payload.ClubUUID))
	}

	res, err := h.service.CreateEvent(ctx, eventservice.CreateEventRequest{
		ClubUUID:     clubUUID,
		CreatorUUID:  actor,
		Title:        payload.Title,
		Description:  payload.Description,
		Location:     payload.Location,
		Date:         payload.Date,
		Timezone:     payload.Timezone,
		MaxAttendees: payload.MaxAttendees,
	})
	if err != nil {
		return handlerwrapper.FailureOrError(attendanceevents.EventCreateFailedV1, err)
	}

	h.logger.InfoContext(ctx, "Event created",
		observability.CorrelationAttr(ctx),
		slog.String("event_uuid", res.Event.UUID.String()),
		slog.String("club_uuid", clubUUID.String()),
		slog.Time("starts_at", res.Event.StartsAt),
	)

	return reply(ctx, attendanceevents.EventCreatedV1, res, actor), nil
}

// HandleRegister registers the caller or puts them on the waitlist.
func (h *EventHandlers) HandleRegister(ctx context.Context, payload *attendanceevents.EventAttendanceRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "EventHandlers.HandleRegister")
	defer span.End()

	actor, eventUUID, err := h.actorAndEvent(ctx, payload.EventUUID)
	if err != nil {
		return handlerwrapper.FailureOrError(attendanceevents.EventRegisterFailedV1, err)
	}

	res, err := h.service.RegisterForEvent(ctx, eventUUID, actor)
	if err != nil {
		return handlerwrapper.FailureOrError(attendanceevents.EventRegisterFailedV1, err)
	}
	span.SetAttributes(attribute.String("state", string(res.State)))

	return reply(ctx, attendanceevents.EventRegisteredV1, res, actor), nil
}

// HandleCheckIn checks the caller in.
func (h *EventHandlers) HandleCheckIn(ctx context.Context, payload *attendanceevents.EventAttendanceRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "EventHandlers.HandleCheckIn")
	defer span.End()

	actor, eventUUID, err := h.actorAndEvent(ctx, payload.EventUUID)
	if err != nil {
		return handlerwrapper.FailureOrError(attendanceevents.EventCheckInFailedV1, err)
	}

	res, err := h.service.CheckInToEvent(ctx, eventUUID, actor)
	if err != nil {
		return handlerwrapper.FailureOrError(attendanceevents.EventCheckInFailedV1, err)
	}

	return reply(ctx, attendanceevents.EventCheckedInV1, res, actor), nil
}

// HandleCancel cancels the caller's registration. A promotion from the
// waitlist is announced on its own subject.
func (h *EventHandlers) HandleCancel(ctx context.Context, payload *attendanceevents.EventAttendanceRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "EventHandlers.HandleCancel")
	defer span.End()

	actor, eventUUID, err := h.actorAndEvent(ctx, payload.EventUUID)
	if err != nil {
		return handlerwrapper.FailureOrError(attendanceevents.EventCancelFailedV1, err)
	}

	res, err := h.service.CancelRegistration(ctx, eventUUID, actor)
	if err != nil {
		return handlerwrapper.FailureOrError(attendanceevents.EventCancelFailedV1, err)
	}

	out := reply(ctx, attendanceevents.EventRegistrationCancelledV1, res, actor)
	if res.Promoted != nil {
		out = append(out, handlerwrapper.Result{
			Topic: attendanceevents.EventAttendeePromotedV1,
			Payload: &attendanceevents.AttendeePromotedPayloadV1{
				EventUUID:   eventUUID.String(),
				UserUUID:    res.Promoted.UserUUID.String(),
				CancelledBy: actor.String(),
				Attendee:    *res.Promoted,
			},
		})
	}
	return out, nil
}

// HandleEventInfoRequest returns the event view.
func (h *EventHandlers) HandleEventInfoRequest(ctx context.Context, payload *attendanceevents.EventInfoRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "EventHandlers.HandleEventInfoRequest")
	defer span.End()

	eventUUID, err := uuid.Parse(payload.EventUUID)
	if err != nil {
		return handlerwrapper.FailureOrError(attendanceevents.EventInfoFailedV1, apperrors.Invalid("invalid event uuid %q", payload.EventUUID))
	}

	event, err := h.service.GetEvent(ctx, eventUUID)
	if err != nil {
		return handlerwrapper.FailureOrError(attendanceevents.EventInfoFailedV1, err)
	}

	return []handlerwrapper.Result{{
		Topic:   handlerwrapper.ReplyTopic(ctx, attendanceevents.EventInfoV1),
		Payload: &attendanceevents.EventPayloadV1{Event: event, Message: "event found"},
	}}, nil
}

func (h *EventHandlers) actorAndEvent(ctx context.Context, rawEventUUID string) (uuid.UUID, uuid.UUID, error) {
	actor, err := h.resolver.Resolve(ctx)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	eventUUID, err := uuid.Parse(rawEventUUID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.Invalid("invalid event uuid %q", rawEventUUID)
	}
	return actor, eventUUID, nil
}

func reply(ctx context.Context, topic string, res *eventservice.EventResult, actor uuid.UUID) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic: handlerwrapper.ReplyTopic(ctx, topic),
		Payload: &attendanceevents.EventPayloadV1{
			Event:    res.Event,
			UserUUID: actor.String(),
			State:    res.State,
			Position: res.Position,
			Message:  res.Message,
		},
	}}
}
