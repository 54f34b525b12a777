package clubservice

import (
	"context"

	clubdomain "github.com/Black-And-White-Club/clubhouse/app/modules/club/domain"
	"github.com/google/uuid"
)

// ClubResult is returned by every mutating club operation.
type ClubResult struct {
	Club    *clubdomain.Club
	Message string
}

// Service defines the club membership and role operations. Domain failures
// are returned as *apperrors.Error; any other error is an infrastructure
// failure.
type Service interface {
	// CreateClub creates a club whose founder becomes its sole member and
	// president.
	CreateClub(ctx context.Context, founderUUID uuid.UUID, name, category string) (*ClubResult, error)

	// JoinClub adds userUUID to the club with the Member role.
	JoinClub(ctx context.Context, clubUUID, userUUID uuid.UUID) (*ClubResult, error)

	// LeaveClub removes userUUID from the club.
	LeaveClub(ctx context.Context, clubUUID, userUUID uuid.UUID) (*ClubResult, error)

	// AssignRole changes a member's role. Only the president may do so.
	AssignRole(ctx context.Context, clubUUID, targetUUID uuid.UUID, newRole string, requesterUUID uuid.UUID) (*ClubResult, error)

	// GetClub returns the club view.
	GetClub(ctx context.Context, clubUUID uuid.UUID) (*clubdomain.Club, error)
}
