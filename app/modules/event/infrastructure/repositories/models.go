package eventdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Event is the stored event row. Attendees and the waitlist live in their
// own tables.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	UUID         uuid.UUID `bun:"uuid,pk,type:uuid"`
	ClubUUID     uuid.UUID `bun:"club_uuid,type:uuid,notnull"`
	Title        string    `bun:"title,notnull"`
	Description  string    `bun:"description,notnull,default:''"`
	Location     string    `bun:"location,notnull,default:''"`
	StartsAt     time.Time `bun:"starts_at,notnull"`
	MaxAttendees *int      `bun:"max_attendees"`
	CreatedBy    uuid.UUID `bun:"created_by,type:uuid,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Attendee is a registered or checked-in user of an event.
type Attendee struct {
	bun.BaseModel `bun:"table:event_attendees,alias:ea"`

	ID           int64      `bun:"id,pk,autoincrement"`
	EventUUID    uuid.UUID  `bun:"event_uuid,type:uuid,notnull"`
	UserUUID     uuid.UUID  `bun:"user_uuid,type:uuid,notnull"`
	Status       string     `bun:"status,notnull"`
	RegisteredAt time.Time  `bun:"registered_at,notnull"`
	CheckedInAt  *time.Time `bun:"checked_in_at"`
}

// WaitlistEntry is a waitlisted user. Queue order is id order.
type WaitlistEntry struct {
	bun.BaseModel `bun:"table:event_waitlist,alias:ew"`

	ID        int64     `bun:"id,pk,autoincrement"`
	EventUUID uuid.UUID `bun:"event_uuid,type:uuid,notnull"`
	UserUUID  uuid.UUID `bun:"user_uuid,type:uuid,notnull"`
	AddedAt   time.Time `bun:"added_at,notnull"`
}
