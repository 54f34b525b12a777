package eventservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	eventdomain "github.com/Black-And-White-Club/clubhouse/app/modules/event/domain"
	eventdb "github.com/Black-And-White-Club/clubhouse/app/modules/event/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/Black-And-White-Club/clubhouse/internal/results"
	"github.com/Black-And-White-Club/clubhouse/internal/validation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type eventOpResult = results.OperationResult[*EventResult, error]

// CreateEvent creates an event in a club the creator belongs to.
func (s *EventService) CreateEvent(ctx context.Context, req CreateEventRequest) (*EventResult, error) {
	createTx := func(ctx context.Context, db bun.IDB) (eventOpResult, error) {
		return s.createEventLogic(ctx, db, req)
	}

	result, err := withTelemetry(s, ctx, "CreateEvent", req.ClubUUID.String(), func(ctx context.Context) (eventOpResult, error) {
		return runInTx(s, ctx, createTx)
	})
	return unwrap(result, err)
}

func (s *EventService) createEventLogic(ctx context.Context, db bun.IDB, req CreateEventRequest) (eventOpResult, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Location = strings.TrimSpace(req.Location)
	req.Description = strings.TrimSpace(req.Description)
	if err := validation.Struct(req); err != nil {
		return classify(err)
	}

	startsAt, err := s.parser.Parse(req.Date, req.Timezone, s.clock)
	if err != nil {
		return classify(err)
	}

	if _, err := s.clubs.GetByUUID(ctx, db, req.ClubUUID); err != nil {
		if errors.Is(err, clubdb.ErrNotFound) {
			return failure(apperrors.ErrClubNotFound)
		}
		return eventOpResult{}, fmt.Errorf("failed to load club: %w", err)
	}
	if _, err := s.clubs.GetMembership(ctx, db, req.ClubUUID, req.CreatorUUID); err != nil {
		if errors.Is(err, clubdb.ErrMembershipNotFound) {
			return failure(apperrors.ErrNotMember)
		}
		return eventOpResult{}, fmt.Errorf("failed to check membership: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return eventOpResult{}, err
	}

	row := &eventdb.Event{
		ClubUUID:     req.ClubUUID,
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		StartsAt:     startsAt,
		MaxAttendees: req.MaxAttendees,
		CreatedBy:    req.CreatorUUID,
	}
	if err := s.repo.Create(ctx, db, row); err != nil {
		return eventOpResult{}, fmt.Errorf("failed to create event: %w", err)
	}

	return results.SuccessResult[*EventResult, error](&EventResult{
		Event:   toAggregate(row, nil, nil),
		Message: "event created",
	}), nil
}

// GetEvent returns the event with its attendees and waitlist.
func (s *EventService) GetEvent(ctx context.Context, eventUUID uuid.UUID) (*eventdomain.Event, error) {
	getTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*eventdomain.Event, error], error) {
		row, err := s.repo.GetByUUID(ctx, db, eventUUID)
		if err != nil {
			if errors.Is(err, eventdb.ErrNotFound) {
				return results.FailureResult[*eventdomain.Event, error](apperrors.ErrEventNotFound), nil
			}
			return results.OperationResult[*eventdomain.Event, error]{}, fmt.Errorf("failed to get event: %w", err)
		}
		agg, err := s.loadAggregate(ctx, db, row)
		if err != nil {
			return results.OperationResult[*eventdomain.Event, error]{}, err
		}
		return results.SuccessResult[*eventdomain.Event, error](agg), nil
	}

	result, err := withTelemetry(s, ctx, "GetEvent", eventUUID.String(), func(ctx context.Context) (results.OperationResult[*eventdomain.Event, error], error) {
		return runInTx(s, ctx, getTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// loadAggregate reads the attendee and waitlist rows of an event.
func (s *EventService) loadAggregate(ctx context.Context, db bun.IDB, row *eventdb.Event) (*eventdomain.Event, error) {
	attendees, err := s.repo.ListAttendees(ctx, db, row.UUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}
	waitlist, err := s.repo.ListWaitlist(ctx, db, row.UUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist: %w", err)
	}
	return toAggregate(row, attendees, waitlist), nil
}

func toAggregate(row *eventdb.Event, attendees []eventdb.Attendee, waitlist []eventdb.WaitlistEntry) *eventdomain.Event {
	agg := &eventdomain.Event{
		UUID:         row.UUID,
		ClubUUID:     row.ClubUUID,
		Title:        row.Title,
		Description:  row.Description,
		Location:     row.Location,
		StartsAt:     row.StartsAt,
		MaxAttendees: row.MaxAttendees,
		CreatedBy:    row.CreatedBy,
		CreatedAt:    row.CreatedAt,
		Attendees:    make([]eventdomain.Attendee, 0, len(attendees)),
		WaitingList:  make([]eventdomain.WaitlistEntry, 0, len(waitlist)),
	}
	for _, a := range attendees {
		agg.Attendees = append(agg.Attendees, eventdomain.Attendee{
			UserUUID:     a.UserUUID,
			Status:       eventdomain.AttendeeStatus(a.Status),
			RegisteredAt: a.RegisteredAt,
			CheckedInAt:  a.CheckedInAt,
		})
	}
	for _, w := range waitlist {
		agg.WaitingList = append(agg.WaitingList, eventdomain.WaitlistEntry{
			UserUUID: w.UserUUID,
			AddedAt:  w.AddedAt,
		})
	}
	agg.Renumber()
	return agg
}

func failure(err *apperrors.Error) (eventOpResult, error) {
	return results.FailureResult[*EventResult, error](err), nil
}

// classify turns a domain failure into a failure result and passes
// infrastructure errors through.
func classify(err error) (eventOpResult, error) {
	if appErr, ok := apperrors.As(err); ok {
		return failure(appErr)
	}
	return eventOpResult{}, err
}

func unwrap(result eventOpResult, err error) (*EventResult, error) {
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}
