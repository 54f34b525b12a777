package eventservice

import (
	"context"

	eventdomain "github.com/Black-And-White-Club/clubhouse/app/modules/event/domain"
	"github.com/google/uuid"
)

// CreateEventRequest describes a new event. Date is RFC 3339 or an English
// phrase such as "next friday at 7pm", read in Timezone.
type CreateEventRequest struct {
	ClubUUID     uuid.UUID `json:"club_uuid"`
	CreatorUUID  uuid.UUID `json:"creator_uuid"`
	Title        string    `json:"title" label:"event title" validate:"required,max=200"`
	Description  string    `json:"description"`
	Location     string    `json:"location" validate:"max=200"`
	Date         string    `json:"date"`
	Timezone     string    `json:"timezone"`
	MaxAttendees *int      `json:"max_attendees" label:"max attendees" validate:"omitempty,gte=1"`
}

// EventResult is returned by every mutating event operation. State is the
// caller's state after the operation; Position is set when the caller was
// waitlisted; Promoted is set when a cancellation promoted the waitlist head.
type EventResult struct {
	Event    *eventdomain.Event
	Message  string
	State    eventdomain.State
	Position int
	Promoted *eventdomain.Attendee
}

// Service defines event creation and attendance operations. Domain failures
// are returned as *apperrors.Error; any other error is an infrastructure
// failure.
type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*EventResult, error)
	RegisterForEvent(ctx context.Context, eventUUID, userUUID uuid.UUID) (*EventResult, error)
	CheckInToEvent(ctx context.Context, eventUUID, userUUID uuid.UUID) (*EventResult, error)
	CancelRegistration(ctx context.Context, eventUUID, userUUID uuid.UUID) (*EventResult, error)
	GetEvent(ctx context.Context, eventUUID uuid.UUID) (*eventdomain.Event, error)
}
