package clubhandlers

import (
	"context"

	clubevents "github.com/Black-And-White-Club/clubhouse/internal/events/club"
	"github.com/Black-And-White-Club/clubhouse/internal/handlerwrapper"
)

// Handlers defines the interface for club event handlers.
type Handlers interface {
	// HandleCreateClub creates a club founded by the caller.
	HandleCreateClub(ctx context.Context, payload *clubevents.ClubCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleJoinClub adds the caller to a club.
	HandleJoinClub(ctx context.Context, payload *clubevents.ClubMembershipRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleLeaveClub removes the caller from a club.
	HandleLeaveClub(ctx context.Context, payload *clubevents.ClubMembershipRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleAssignRole changes a member's role on behalf of the caller.
	HandleAssignRole(ctx context.Context, payload *clubevents.ClubRoleAssignRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleClubInfoRequest returns the club view.
	HandleClubInfoRequest(ctx context.Context, payload *clubevents.ClubInfoRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
