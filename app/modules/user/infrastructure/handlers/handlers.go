package userhandlers

import (
	"context"
	"log/slog"

	userservice "github.com/Black-And-White-Club/clubhouse/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/clubhouse/app/modules/user/domain"
	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	userevents "github.com/Black-And-White-Club/clubhouse/internal/events/user"
	"github.com/Black-And-White-Club/clubhouse/internal/handlerwrapper"
	"github.com/Black-And-White-Club/clubhouse/internal/observability"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// UserHandlers implements the Handlers interface.
type UserHandlers struct {
	service userservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewUserHandlers creates a new UserHandlers instance.
func NewUserHandlers(
	service userservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &UserHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// HandleUserCreateRequest registers a new user.
func (h *UserHandlers) HandleUserCreateRequest(ctx context.Context, payload *userevents.UserCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "UserHandlers.HandleUserCreateRequest")
	defer span.End()

	h.logger.InfoContext(ctx, "User create request received",
		observability.CorrelationAttr(ctx),
	)

	user, err := h.service.CreateUser(ctx, userdomain.Registration{
		Name:  payload.Name,
		Email: payload.Email,
		Phone: payload.Phone,
	})
	if err != nil {
		return handlerwrapper.FailureOrError(userevents.UserCreateFailedV1, err)
	}

	h.logger.InfoContext(ctx, "User created",
		observability.CorrelationAttr(ctx),
		slog.String("user_uuid", user.UUID.String()),
	)

	return []handlerwrapper.Result{{
		Topic: handlerwrapper.ReplyTopic(ctx, userevents.UserCreatedV1),
		Payload: &userevents.UserPayloadV1{
			User:    user,
			Message: "user created",
		},
	}}, nil
}

// HandleUserInfoRequest returns a user and the clubs they belong to.
func (h *UserHandlers) HandleUserInfoRequest(ctx context.Context, payload *userevents.UserInfoRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "UserHandlers.HandleUserInfoRequest")
	defer span.End()

	userUUID, err := uuid.Parse(payload.UserUUID)
	if err != nil {
		h.logger.WarnContext(ctx, "Invalid user UUID in request",
			slog.String("user_uuid", payload.UserUUID),
			slog.String("error", err.Error()),
		)
		return handlerwrapper.FailureOrError(userevents.UserInfoFailedV1, apperrors.Invalid("invalid user uuid %q", payload.UserUUID))
	}

	user, err := h.service.GetUser(ctx, userUUID)
	if err != nil {
		return handlerwrapper.FailureOrError(userevents.UserInfoFailedV1, err)
	}

	return []handlerwrapper.Result{{
		Topic: handlerwrapper.ReplyTopic(ctx, userevents.UserInfoV1),
		Payload: &userevents.UserPayloadV1{
			User:    user,
			Message: "user found",
		},
	}}, nil
}
