package eventdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/clubhouse/db/bundb"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	// ErrNotFound is returned when an event is not found.
	ErrNotFound = errors.New("event not found")

	// ErrRegistrationNotFound is returned when the user holds no row for the event.
	ErrRegistrationNotFound = errors.New("registration not found")

	// ErrDuplicateRegistration is returned when the user already holds a row.
	ErrDuplicateRegistration = errors.New("registration already exists")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new event repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Create inserts a new event.
func (r *Impl) Create(ctx context.Context, db bun.IDB, event *Event) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if event.UUID == uuid.Nil {
		event.UUID = uuid.New()
	}
	event.CreatedAt = now
	event.UpdatedAt = now
	if _, err := db.NewInsert().Model(event).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetByUUID retrieves an event by its UUID.
func (r *Impl) GetByUUID(ctx context.Context, db bun.IDB, eventUUID uuid.UUID) (*Event, error) {
	return r.getEvent(ctx, r.resolveDB(db), eventUUID, false)
}

// GetByUUIDForUpdate retrieves an event and takes a row lock on it.
func (r *Impl) GetByUUIDForUpdate(ctx context.Context, db bun.IDB, eventUUID uuid.UUID) (*Event, error) {
	return r.getEvent(ctx, r.resolveDB(db), eventUUID, true)
}

func (r *Impl) getEvent(ctx context.Context, db bun.IDB, eventUUID uuid.UUID, lock bool) (*Event, error) {
	event := new(Event)
	q := db.NewSelect().
		Model(event).
		Where("e.uuid = ?", eventUUID)
	if lock {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event by UUID: %w", err)
	}
	return event, nil
}

// ListAttendees returns attendees in the order they took a seat.
func (r *Impl) ListAttendees(ctx context.Context, db bun.IDB, eventUUID uuid.UUID) ([]Attendee, error) {
	db = r.resolveDB(db)
	var attendees []Attendee
	err := db.NewSelect().
		Model(&attendees).
		Where("ea.event_uuid = ?", eventUUID).
		Order("ea.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list event attendees: %w", err)
	}
	return attendees, nil
}

// ListWaitlist returns the waitlist in insertion order. Rows are only
// inserted under the event row lock, so id order is queue order whatever
// added_at says.
func (r *Impl) ListWaitlist(ctx context.Context, db bun.IDB, eventUUID uuid.UUID) ([]WaitlistEntry, error) {
	db = r.resolveDB(db)
	var entries []WaitlistEntry
	err := db.NewSelect().
		Model(&entries).
		Where("ew.event_uuid = ?", eventUUID).
		Order("ew.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list event waitlist: %w", err)
	}
	return entries, nil
}

// AddAttendee inserts an attendee row.
func (r *Impl) AddAttendee(ctx context.Context, db bun.IDB, attendee *Attendee) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(attendee).Exec(ctx); err != nil {
		if bundb.IsUniqueViolation(err) {
			return ErrDuplicateRegistration
		}
		return fmt.Errorf("failed to add event attendee: %w", err)
	}
	return nil
}

// RemoveAttendee deletes an attendee row.
func (r *Impl) RemoveAttendee(ctx context.Context, db bun.IDB, eventUUID, userUUID uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Attendee)(nil)).
		Where("event_uuid = ?", eventUUID).
		Where("user_uuid = ?", userUUID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove event attendee: %w", err)
	}
	return requireRow(result)
}

// MarkCheckedIn sets an attendee's status to checked_in.
func (r *Impl) MarkCheckedIn(ctx context.Context, db bun.IDB, eventUUID, userUUID uuid.UUID, at time.Time) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Attendee)(nil)).
		Set("status = ?", "checked_in").
		Set("checked_in_at = ?", at).
		Where("event_uuid = ?", eventUUID).
		Where("user_uuid = ?", userUUID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to check in attendee: %w", err)
	}
	return requireRow(result)
}

// AddToWaitlist appends a waitlist row.
func (r *Impl) AddToWaitlist(ctx context.Context, db bun.IDB, entry *WaitlistEntry) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(entry).Exec(ctx); err != nil {
		if bundb.IsUniqueViolation(err) {
			return ErrDuplicateRegistration
		}
		return fmt.Errorf("failed to add waitlist entry: %w", err)
	}
	return nil
}

// RemoveFromWaitlist deletes a waitlist row.
func (r *Impl) RemoveFromWaitlist(ctx context.Context, db bun.IDB, eventUUID, userUUID uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*WaitlistEntry)(nil)).
		Where("event_uuid = ?", eventUUID).
		Where("user_uuid = ?", userUUID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove waitlist entry: %w", err)
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}
