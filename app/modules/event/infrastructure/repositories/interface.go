package eventdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for event, attendee and waitlist
// persistence.
//
// Error semantics:
//   - ErrNotFound: the event does not exist (Get* methods)
//   - ErrRegistrationNotFound: no attendee or waitlist row for the user
//   - ErrDuplicateRegistration: an insert hit the (event, user) unique constraint
//   - other errors: infrastructure failures
type Repository interface {
	// Create inserts a new event.
	Create(ctx context.Context, db bun.IDB, event *Event) error

	// GetByUUID retrieves an event by its UUID.
	GetByUUID(ctx context.Context, db bun.IDB, eventUUID uuid.UUID) (*Event, error)

	// GetByUUIDForUpdate retrieves an event and locks its row until the
	// surrounding transaction ends.
	GetByUUIDForUpdate(ctx context.Context, db bun.IDB, eventUUID uuid.UUID) (*Event, error)

	// ListAttendees returns attendees in registration order.
	ListAttendees(ctx context.Context, db bun.IDB, eventUUID uuid.UUID) ([]Attendee, error)

	// ListWaitlist returns the waitlist in queue order.
	ListWaitlist(ctx context.Context, db bun.IDB, eventUUID uuid.UUID) ([]WaitlistEntry, error)

	// AddAttendee inserts an attendee row.
	AddAttendee(ctx context.Context, db bun.IDB, attendee *Attendee) error

	// RemoveAttendee deletes an attendee row.
	RemoveAttendee(ctx context.Context, db bun.IDB, eventUUID, userUUID uuid.UUID) error

	// MarkCheckedIn sets an attendee's status to checked_in.
	MarkCheckedIn(ctx context.Context, db bun.IDB, eventUUID, userUUID uuid.UUID, at time.Time) error

	// AddToWaitlist appends a waitlist row.
	AddToWaitlist(ctx context.Context, db bun.IDB, entry *WaitlistEntry) error

	// RemoveFromWaitlist deletes a waitlist row.
	RemoveFromWaitlist(ctx context.Context, db bun.IDB, eventUUID, userUUID uuid.UUID) error
}
