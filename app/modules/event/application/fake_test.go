package eventservice

import (
	"context"
	"time"

	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	eventdb "github.com/Black-And-White-Club/clubhouse/app/modules/event/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Event Repo
// ------------------------

// FakeEventRepo keeps events, attendees and the waitlist in memory in
// insertion order unless a Func override is set.
type FakeEventRepo struct {
	trace []string

	events    map[uuid.UUID]eventdb.Event
	attendees []eventdb.Attendee
	waitlist  []eventdb.WaitlistEntry
	nextID    int64

	CreateFunc             func(ctx context.Context, db bun.IDB, event *eventdb.Event) error
	GetByUUIDForUpdateFunc func(ctx context.Context, db bun.IDB, eventUUID uuid.UUID) (*eventdb.Event, error)
	AddAttendeeFunc        func(ctx context.Context, db bun.IDB, attendee *eventdb.Attendee) error
	AddToWaitlistFunc      func(ctx context.Context, db bun.IDB, entry *eventdb.WaitlistEntry) error
}

func NewFakeEventRepo() *FakeEventRepo {
	return &FakeEventRepo{
		trace:  []string{},
		events: map[uuid.UUID]eventdb.Event{},
	}
}

func (f *FakeEventRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// seedEvent stores an event with the given capacity; nil means unlimited.
func (f *FakeEventRepo) seedEvent(eventUUID uuid.UUID, maxAttendees *int) {
	f.events[eventUUID] = eventdb.Event{
		UUID:         eventUUID,
		ClubUUID:     uuid.New(),
		Title:        "Open Board Night",
		StartsAt:     time.Date(2026, 11, 6, 19, 0, 0, 0, time.UTC),
		MaxAttendees: maxAttendees,
	}
}

// --- Repository Interface Implementation ---

func (f *FakeEventRepo) Create(ctx context.Context, db bun.IDB, event *eventdb.Event) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, event)
	}
	if event.UUID == uuid.Nil {
		event.UUID = uuid.New()
	}
	f.events[event.UUID] = *event
	return nil
}

func (f *FakeEventRepo) GetByUUID(ctx context.Context, db bun.IDB, eventUUID uuid.UUID) (*eventdb.Event, error) {
	f.record("GetByUUID")
	return f.lookup(eventUUID)
}

func (f *FakeEventRepo) GetByUUIDForUpdate(ctx context.Context, db bun.IDB, eventUUID uuid.UUID) (*eventdb.Event, error) {
	f.record("GetByUUIDForUpdate")
	if f.GetByUUIDForUpdateFunc != nil {
		return f.GetByUUIDForUpdateFunc(ctx, db, eventUUID)
	}
	return f.lookup(eventUUID)
}

func (f *FakeEventRepo) lookup(eventUUID uuid.UUID) (*eventdb.Event, error) {
	event, ok := f.events[eventUUID]
	if !ok {
		return nil, eventdb.ErrNotFound
	}
	return &event, nil
}

func (f *FakeEventRepo) ListAttendees(ctx context.Context, db bun.IDB, eventUUID uuid.UUID) ([]eventdb.Attendee, error) {
	f.record("ListAttendees")
	var out []eventdb.Attendee
	for _, a := range f.attendees {
		if a.EventUUID == eventUUID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *FakeEventRepo) ListWaitlist(ctx context.Context, db bun.IDB, eventUUID uuid.UUID) ([]eventdb.WaitlistEntry, error) {
	f.record("ListWaitlist")
	var out []eventdb.WaitlistEntry
	for _, w := range f.waitlist {
		if w.EventUUID == eventUUID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *FakeEventRepo) holds(eventUUID, userUUID uuid.UUID) bool {
	for _, a := range f.attendees {
		if a.EventUUID == eventUUID && a.UserUUID == userUUID {
			return true
		}
	}
	for _, w := range f.waitlist {
		if w.EventUUID == eventUUID && w.UserUUID == userUUID {
			return true
		}
	}
	return false
}

func (f *FakeEventRepo) AddAttendee(ctx context.Context, db bun.IDB, attendee *eventdb.Attendee) error {
	f.record("AddAttendee")
	if f.AddAttendeeFunc != nil {
		return f.AddAttendeeFunc(ctx, db, attendee)
	}
	if f.holds(attendee.EventUUID, attendee.UserUUID) {
		return eventdb.ErrDuplicateRegistration
	}
	f.nextID++
	attendee.ID = f.nextID
	f.attendees = append(f.attendees, *attendee)
	return nil
}

func (f *FakeEventRepo) RemoveAttendee(ctx context.Context, db bun.IDB, eventUUID, userUUID uuid.UUID) error {
	f.record("RemoveAttendee")
	for i, a := range f.attendees {
		if a.EventUUID == eventUUID && a.UserUUID == userUUID {
			f.attendees = append(f.attendees[:i], f.attendees[i+1:]...)
			return nil
		}
	}
	return eventdb.ErrRegistrationNotFound
}

func (f *FakeEventRepo) MarkCheckedIn(ctx context.Context, db bun.IDB, eventUUID, userUUID uuid.UUID, at time.Time) error {
	f.record("MarkCheckedIn")
	for i, a := range f.attendees {
		if a.EventUUID == eventUUID && a.UserUUID == userUUID {
			checkedIn := at
			f.attendees[i].Status = "checked_in"
			f.attendees[i].CheckedInAt = &checkedIn
			return nil
		}
	}
	return eventdb.ErrRegistrationNotFound
}

func (f *FakeEventRepo) AddToWaitlist(ctx context.Context, db bun.IDB, entry *eventdb.WaitlistEntry) error {
	f.record("AddToWaitlist")
	if f.AddToWaitlistFunc != nil {
		return f.AddToWaitlistFunc(ctx, db, entry)
	}
	if f.holds(entry.EventUUID, entry.UserUUID) {
		return eventdb.ErrDuplicateRegistration
	}
	f.nextID++
	entry.ID = f.nextID
	f.waitlist = append(f.waitlist, *entry)
	return nil
}

func (f *FakeEventRepo) RemoveFromWaitlist(ctx context.Context, db bun.IDB, eventUUID, userUUID uuid.UUID) error {
	f.record("RemoveFromWaitlist")
	for i, w := range f.waitlist {
		if w.EventUUID == eventUUID && w.UserUUID == userUUID {
			f.waitlist = append(f.waitlist[:i], f.waitlist[i+1:]...)
			return nil
		}
	}
	return eventdb.ErrRegistrationNotFound
}

// --- Accessors for assertions ---

func (f *FakeEventRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ eventdb.Repository = (*FakeEventRepo)(nil)

// ------------------------
// Fake Club Directory
// ------------------------

// FakeClubDirectory knows one club and its members.
type FakeClubDirectory struct {
	ClubUUID uuid.UUID
	Members  map[uuid.UUID]bool

	GetByUUIDFunc func(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) (*clubdb.Club, error)
}

func (f *FakeClubDirectory) GetByUUID(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) (*clubdb.Club, error) {
	if f.GetByUUIDFunc != nil {
		return f.GetByUUIDFunc(ctx, db, clubUUID)
	}
	if clubUUID != f.ClubUUID {
		return nil, clubdb.ErrNotFound
	}
	return &clubdb.Club{UUID: clubUUID, Name: "Chess"}, nil
}

func (f *FakeClubDirectory) GetMembership(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID) (*clubdb.Membership, error) {
	if clubUUID != f.ClubUUID || !f.Members[userUUID] {
		return nil, clubdb.ErrMembershipNotFound
	}
	return &clubdb.Membership{ClubUUID: clubUUID, UserUUID: userUUID, Role: "Member"}, nil
}

var _ ClubDirectory = (*FakeClubDirectory)(nil)
