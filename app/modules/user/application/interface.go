package userservice

import (
	"context"

	userdomain "github.com/Black-And-White-Club/clubhouse/app/modules/user/domain"
	"github.com/google/uuid"
)

// Service defines the user operations. Domain failures are returned as
// *apperrors.Error; any other error is an infrastructure failure.
type Service interface {
	// CreateUser registers a new user. A taken email is a conflict.
	CreateUser(ctx context.Context, reg userdomain.Registration) (*userdomain.User, error)

	// GetUser returns a user with the clubs they belong to.
	GetUser(ctx context.Context, userUUID uuid.UUID) (*userdomain.User, error)
}
