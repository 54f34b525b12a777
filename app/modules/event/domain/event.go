package eventdomain

import (
	"time"

	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/google/uuid"
)

// AttendeeStatus is the stored status of an attendee row.
type AttendeeStatus string

const (
	StatusRegistered AttendeeStatus = "registered"
	StatusCheckedIn  AttendeeStatus = "checked_in"
)

// State is a user's position in an event's admission lifecycle.
type State string

const (
	StateUnregistered State = "unregistered"
	StateWaitlisted   State = "waitlisted"
	StateRegistered   State = "registered"
	StateCheckedIn    State = "checked_in"
)

// Attendee is an admitted user.
type Attendee struct {
	UserUUID     uuid.UUID      `json:"user_uuid"`
	Status       AttendeeStatus `json:"status"`
	RegisteredAt time.Time      `json:"registered_at"`
	CheckedInAt  *time.Time     `json:"checked_in_at,omitempty"`
}

// WaitlistEntry is a queued user. Position is 1-based and always reflects
// the entry's index in the list.
type WaitlistEntry struct {
	UserUUID uuid.UUID `json:"user_uuid"`
	Position int       `json:"position"`
	AddedAt  time.Time `json:"added_at"`
}

// Event is the admission aggregate. Attendees and WaitingList are kept in
// insertion order; the head of WaitingList is the next user to promote.
type Event struct {
	UUID         uuid.UUID       `json:"uuid"`
	ClubUUID     uuid.UUID       `json:"club_uuid"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Location     string          `json:"location,omitempty"`
	StartsAt     time.Time       `json:"starts_at"`
	MaxAttendees *int            `json:"max_attendees,omitempty"`
	CreatedBy    uuid.UUID       `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	Attendees    []Attendee      `json:"attendees"`
	WaitingList  []WaitlistEntry `json:"waiting_list"`
}

// StateOf returns userUUID's admission state.
func (e *Event) StateOf(userUUID uuid.UUID) State {
	for _, a := range e.Attendees {
		if a.UserUUID == userUUID {
			if a.Status == StatusCheckedIn {
				return StateCheckedIn
			}
			return StateRegistered
		}
	}
	for _, w := range e.WaitingList {
		if w.UserUUID == userUUID {
			return StateWaitlisted
		}
	}
	return StateUnregistered
}

// HasCapacity reports whether another attendee fits. The waitlist never
// counts against capacity.
func (e *Event) HasCapacity() bool {
	return e.MaxAttendees == nil || len(e.Attendees) < *e.MaxAttendees
}

// RegisterOutcome describes the row written by Register.
type RegisterOutcome struct {
	State    State
	Attendee *Attendee
	Waitlist *WaitlistEntry
}

// Register admits userUUID, or queues them when the event is full.
func (e *Event) Register(userUUID uuid.UUID, now time.Time) (RegisterOutcome, error) {
	if e.StateOf(userUUID) != StateUnregistered {
		return RegisterOutcome{}, apperrors.ErrAlreadyRegistered
	}

	if e.HasCapacity() {
		a := Attendee{UserUUID: userUUID, Status: StatusRegistered, RegisteredAt: now}
		e.Attendees = append(e.Attendees, a)
		return RegisterOutcome{State: StateRegistered, Attendee: &a}, nil
	}

	w := WaitlistEntry{UserUUID: userUUID, Position: len(e.WaitingList) + 1, AddedAt: now}
	e.WaitingList = append(e.WaitingList, w)
	return RegisterOutcome{State: StateWaitlisted, Waitlist: &w}, nil
}

// CheckInOutcome describes the row updated by CheckIn.
type CheckInOutcome struct {
	Attendee         Attendee
	AlreadyCheckedIn bool
}

// CheckIn marks an attendee as present. Waitlisted users cannot check in.
func (e *Event) CheckIn(userUUID uuid.UUID, now time.Time) (CheckInOutcome, error) {
	for i := range e.Attendees {
		a := &e.Attendees[i]
		if a.UserUUID != userUUID {
			continue
		}
		if a.Status == StatusCheckedIn {
			return CheckInOutcome{Attendee: *a, AlreadyCheckedIn: true}, nil
		}
		at := now
		a.Status = StatusCheckedIn
		a.CheckedInAt = &at
		return CheckInOutcome{Attendee: *a}, nil
	}
	return CheckInOutcome{}, apperrors.ErrNotRegistered
}

// CancelOutcome describes the rows touched by Cancel.
type CancelOutcome struct {
	Previous State
	// Promoted is the attendee created from the waitlist head, if any.
	Promoted *Attendee
}

// Cancel removes userUUID from the event. When an attendee leaves and the
// waitlist is non-empty, the head of the waitlist is promoted. Cancelling a
// user who holds neither state changes nothing.
func (e *Event) Cancel(userUUID uuid.UUID, now time.Time) CancelOutcome {
	prev := e.StateOf(userUUID)

	switch prev {
	case StateRegistered, StateCheckedIn:
		e.Attendees = removeAttendee(e.Attendees, userUUID)
		out := CancelOutcome{Previous: prev}
		if len(e.WaitingList) > 0 && e.HasCapacity() {
			head := e.WaitingList[0]
			e.WaitingList = e.WaitingList[1:]
			promoted := Attendee{UserUUID: head.UserUUID, Status: StatusRegistered, RegisteredAt: now}
			e.Attendees = append(e.Attendees, promoted)
			out.Promoted = &promoted
		}
		e.Renumber()
		return out
	case StateWaitlisted:
		e.WaitingList = removeWaitlisted(e.WaitingList, userUUID)
		e.Renumber()
		return CancelOutcome{Previous: prev}
	default:
		return CancelOutcome{Previous: StateUnregistered}
	}
}

// Renumber sets each waitlist position from its index.
func (e *Event) Renumber() {
	for i := range e.WaitingList {
		e.WaitingList[i].Position = i + 1
	}
}

// PositionOf returns userUUID's 1-based waitlist position, or 0.
func (e *Event) PositionOf(userUUID uuid.UUID) int {
	for i, w := range e.WaitingList {
		if w.UserUUID == userUUID {
			return i + 1
		}
	}
	return 0
}

func removeAttendee(list []Attendee, userUUID uuid.UUID) []Attendee {
	out := list[:0:0]
	for _, a := range list {
		if a.UserUUID != userUUID {
			out = append(out, a)
		}
	}
	return out
}

func removeWaitlisted(list []WaitlistEntry, userUUID uuid.UUID) []WaitlistEntry {
	out := list[:0:0]
	for _, w := range list {
		if w.UserUUID != userUUID {
			out = append(out, w)
		}
	}
	return out
}
