package userdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for user data.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (Get* methods)
//   - ErrDuplicateEmail: Create hit the unique email index
//   - other errors: infrastructure failures
type Repository interface {
	// Create inserts a new user.
	Create(ctx context.Context, db bun.IDB, user *User) error

	// GetByUUID retrieves a user by UUID.
	GetByUUID(ctx context.Context, db bun.IDB, userUUID uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by normalized email.
	GetByEmail(ctx context.Context, db bun.IDB, email string) (*User, error)

	// Exists reports whether a user with userUUID exists.
	Exists(ctx context.Context, db bun.IDB, userUUID uuid.UUID) (bool, error)
}
