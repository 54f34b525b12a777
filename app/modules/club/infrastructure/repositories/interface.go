package clubdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for club and membership persistence.
//
// Error semantics:
//   - ErrNotFound: the club does not exist (Get* methods)
//   - ErrMembershipNotFound: the (club, user) membership does not exist
//   - ErrDuplicateMembership: AddMember hit the (club, user) unique constraint
//   - other errors: infrastructure failures
type Repository interface {
	// Create inserts a new club.
	Create(ctx context.Context, db bun.IDB, club *Club) error

	// GetByUUID retrieves a club by its UUID.
	GetByUUID(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) (*Club, error)

	// GetByUUIDForUpdate retrieves a club and locks its row until the
	// surrounding transaction ends.
	GetByUUIDForUpdate(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) (*Club, error)

	// ListMembers returns a club's memberships ordered by join time.
	ListMembers(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) ([]Membership, error)

	// GetMembership returns one membership row.
	GetMembership(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID) (*Membership, error)

	// AddMember inserts a membership row.
	AddMember(ctx context.Context, db bun.IDB, membership *Membership) error

	// RemoveMember deletes a membership row.
	RemoveMember(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID) error

	// UpdateMemberRole changes the role stored on a membership row.
	UpdateMemberRole(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID, role string) error

	// ListMembershipsForUser returns a user's memberships ordered by join time.
	ListMembershipsForUser(ctx context.Context, db bun.IDB, userUUID uuid.UUID) ([]Membership, error)
}
