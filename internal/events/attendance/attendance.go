// Package attendanceevents is the message contract of the event module.
// Every request except info carries the caller in the actor_id metadata.
package attendanceevents

import (
	eventdomain "github.com/Black-And-White-Club/clubhouse/app/modules/event/domain"
)

// Subjects.
const (
	EventCreateRequestedV1 = "event.create.requested.v1"
	EventCreatedV1         = "event.created.v1"
	EventCreateFailedV1    = "event.create.failed.v1"

	EventRegisterRequestedV1 = "event.register.requested.v1"
	EventRegisteredV1        = "event.registered.v1"
	EventRegisterFailedV1    = "event.register.failed.v1"

	EventCheckInRequestedV1 = "event.checkin.requested.v1"
	EventCheckedInV1        = "event.checked_in.v1"
	EventCheckInFailedV1    = "event.checkin.failed.v1"

	EventCancelRequestedV1       = "event.cancel.requested.v1"
	EventRegistrationCancelledV1 = "event.registration.cancelled.v1"
	EventCancelFailedV1          = "event.cancel.failed.v1"
	EventAttendeePromotedV1      = "event.attendee.promoted.v1"

	EventInfoRequestedV1 = "event.info.requested.v1"
	EventInfoV1          = "event.info.v1"
	EventInfoFailedV1    = "event.info.failed.v1"
)

// EventCreateRequestedPayloadV1 creates an event in a club the caller belongs
// to. Date is RFC 3339 or an English phrase read in Timezone.
type EventCreateRequestedPayloadV1 struct {
	ClubUUID     string `json:"club_uuid"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Location     string `json:"location,omitempty"`
	Date         string `json:"date"`
	Timezone     string `json:"timezone,omitempty"`
	MaxAttendees *int   `json:"max_attendees,omitempty"`
}

// EventAttendanceRequestedPayloadV1 is the payload of register, check-in and
// cancel requests.
type EventAttendanceRequestedPayloadV1 struct {
	EventUUID string `json:"event_uuid"`
}

// EventInfoRequestedPayloadV1 asks for the event view.
type EventInfoRequestedPayloadV1 struct {
	EventUUID string `json:"event_uuid"`
}

// EventPayloadV1 is the success payload of every event operation. State and
// Position describe the caller after the operation.
type EventPayloadV1 struct {
	Event    *eventdomain.Event `json:"event"`
	UserUUID string             `json:"user_uuid,omitempty"`
	State    eventdomain.State  `json:"state,omitempty"`
	Position int                `json:"position,omitempty"`
	Message  string             `json:"message"`
}

// AttendeePromotedPayloadV1 announces that a waitlisted user took a freed seat.
type AttendeePromotedPayloadV1 struct {
	EventUUID   string               `json:"event_uuid"`
	UserUUID    string               `json:"user_uuid"`
	CancelledBy string               `json:"cancelled_by"`
	Attendee    eventdomain.Attendee `json:"attendee"`
}
