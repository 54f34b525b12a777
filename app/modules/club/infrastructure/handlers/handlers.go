package clubhandlers

import (
	"context"
	"log/slog"

	clubservice "github.com/Black-And-White-Club/clubhouse/app/modules/club/application"
	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	clubevents "github.com/Black-And-White-Club/clubhouse/internal/events/club"
	"github.com/Black-And-White-Club/clubhouse/internal/handlerwrapper"
	"github.com/Black-And-White-Club/clubhouse/internal/identity"
	"github.com/Black-And-White-Club/clubhouse/internal/observability"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// ClubHandlers implements the Handlers interface.
type ClubHandlers struct {
	service  clubservice.Service
	resolver identity.Resolver
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewClubHandlers creates a new ClubHandlers instance.
func NewClubHandlers(
	service clubservice.Service,
	resolver identity.Resolver,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &ClubHandlers{
		service:  service,
		resolver: resolver,
		logger:   logger,
		tracer:   tracer,
	}
}

// HandleCreateClub creates a club founded by the caller.
func (h *ClubHandlers) HandleCreateClub(ctx context.Context, payload *clubevents.ClubCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ClubHandlers.HandleCreateClub")
	defer span.End()

	actor, err := h.resolver.Resolve(ctx)
	if err != nil {
		return handlerwrapper.FailureOrError(clubevents.ClubCreateFailedV1, err)
	}

	res, err := h.service.CreateClub(ctx, actor, payload.Name, payload.Category)
	if err != nil {
		return handlerwrapper.FailureOrError(clubevents.ClubCreateFailedV1, err)
	}

	h.logger.InfoContext(ctx, "Club created",
		observability.CorrelationAttr(ctx),
		slog.String("club_uuid", res.Club.UUID.String()),
		slog.String("president_uuid", actor.String()),
	)

	return successResult(ctx, clubevents.ClubCreatedV1, res, actor), nil
}

// HandleJoinClub adds the caller to a club.
func (h *ClubHandlers) HandleJoinClub(ctx context.Context, payload *clubevents.ClubMembershipRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ClubHandlers.HandleJoinClub")
	defer span.End()

	actor, clubUUID, err := h.actorAndClub(ctx, payload.ClubUUID)
	if err != nil {
		return handlerwrapper.FailureOrError(clubevents.ClubJoinFailedV1, err)
	}

	res, err := h.service.JoinClub(ctx, clubUUID, actor)
	if err != nil {
		return handlerwrapper.FailureOrError(clubevents.ClubJoinFailedV1, err)
	}

	h.logger.InfoContext(ctx, "Member joined club",
		observability.CorrelationAttr(ctx),
		slog.String("club_uuid", clubUUID.String()),
		slog.String("user_uuid", actor.String()),
		slog.Int("member_count", res.Club.MemberCount),
	)

	return successResult(ctx, clubevents.ClubMemberJoinedV1, res, actor), nil
}

// HandleLeaveClub removes the caller from a club.
func (h *ClubHandlers) HandleLeaveClub(ctx context.Context, payload *clubevents.ClubMembershipRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ClubHandlers.HandleLeaveClub")
	defer span.End()

	actor, clubUUID, err := h.actorAndClub(ctx, payload.ClubUUID)
	if err != nil {
		return handlerwrapper.FailureOrError(clubevents.ClubLeaveFailedV1, err)
	}

	res, err := h.service.LeaveClub(ctx, clubUUID, actor)
	if err != nil {
		return handlerwrapper.FailureOrError(clubevents.ClubLeaveFailedV1, err)
	}

	h.logger.InfoContext(ctx, "Member left club",
		observability.CorrelationAttr(ctx),
		slog.String("club_uuid", clubUUID.String()),
		slog.String("user_uuid", actor.String()),
		slog.Int("member_count", res.Club.MemberCount),
	)

	return successResult(ctx, clubevents.ClubMemberLeftV1, res, actor), nil
}

// HandleAssignRole changes a member's role on behalf of the caller.
func (h *ClubHandlers) HandleAssignRole(ctx context.Context, payload *clubevents.ClubRoleAssignRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ClubHandlers.HandleAssignRole")
	defer span.End()

	actor, clubUUID, err := h.actorAndClub(ctx, payload.ClubUUID)
	if err != nil {
		return handlerwrapper.FailureOrError(clubevents.ClubRoleAssignFailedV1, err)
	}
	target, err := uuid.Parse(payload.UserUUID)
	if err != nil {
		return handlerwrapper.FailureOrError(clubevents.ClubRoleAssignFailedV1, apperrors.Invalid("invalid user uuid %q", payload.UserUUID))
	}

	res, err := h.service.AssignRole(ctx, clubUUID, target, payload.Role, actor)
	if err != nil {
		return handlerwrapper.FailureOrError(clubevents.ClubRoleAssignFailedV1, err)
	}

	h.logger.InfoContext(ctx, "Member role assigned",
		observability.CorrelationAttr(ctx),
		slog.String("club_uuid", clubUUID.String()),
		slog.String("user_uuid", target.String()),
		slog.String("role", payload.Role),
	)

	return successResult(ctx, clubevents.ClubRoleAssignedV1, res, target), nil
}

// HandleClubInfoRequest returns the club view.
func (h *ClubHandlers) HandleClubInfoRequest(ctx context.Context, payload *clubevents.ClubInfoRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ClubHandlers.HandleClubInfoRequest")
	defer span.End()

	clubUUID, err := uuid.Parse(payload.ClubUUID)
	if err != nil {
		h.logger.WarnContext(ctx, "Invalid club UUID in request",
			slog.String("club_uuid", payload.ClubUUID),
			slog.String("error", err.Error()),
		)
		return handlerwrapper.FailureOrError(clubevents.ClubInfoFailedV1, apperrors.Invalid("invalid club uuid %q", payload.ClubUUID))
	}

	club, err := h.service.GetClub(ctx, clubUUID)
	if err != nil {
		return handlerwrapper.FailureOrError(clubevents.ClubInfoFailedV1, err)
	}

	return []handlerwrapper.Result{{
		Topic: handlerwrapper.ReplyTopic(ctx, clubevents.ClubInfoV1),
		Payload: &clubevents.ClubPayloadV1{
			Club:    club,
			Message: "club found",
		},
	}}, nil
}

func (h *ClubHandlers) actorAndClub(ctx context.Context, rawClubUUID string) (uuid.UUID, uuid.UUID, error) {
	actor, err := h.resolver.Resolve(ctx)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	clubUUID, err := uuid.Parse(rawClubUUID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.Invalid("invalid club uuid %q", rawClubUUID)
	}
	return actor, clubUUID, nil
}

func successResult(ctx context.Context, topic string, res *clubservice.ClubResult, subject uuid.UUID) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic: handlerwrapper.ReplyTopic(ctx, topic),
		Payload: &clubevents.ClubPayloadV1{
			Club:     res.Club,
			UserUUID: subject.String(),
			Message:  res.Message,
		},
	}}
}
