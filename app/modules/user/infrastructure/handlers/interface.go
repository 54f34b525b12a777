package userhandlers

import (
	"context"

	userevents "github.com/Black-And-White-Club/clubhouse/internal/events/user"
	"github.com/Black-And-White-Club/clubhouse/internal/handlerwrapper"
)

// Handlers defines the interface for user event handlers.
type Handlers interface {
	HandleUserCreateRequest(ctx context.Context, payload *userevents.UserCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleUserInfoRequest(ctx context.Context, payload *userevents.UserInfoRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
