package eventservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	eventdomain "github.com/Black-And-White-Club/clubhouse/app/modules/event/domain"
	eventdb "github.com/Black-And-White-Club/clubhouse/app/modules/event/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/Black-And-White-Club/clubhouse/internal/observability"
	"github.com/Black-And-White-Club/clubhouse/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RegisterForEvent registers the user, or waitlists them when the event is
// full.
func (s *EventService) RegisterForEvent(ctx context.Context, eventUUID, userUUID uuid.UUID) (*EventResult, error) {
	registerTx := func(ctx context.Context, db bun.IDB) (eventOpResult, error) {
		return s.registerLogic(ctx, db, eventUUID, userUUID)
	}

	result, err := withTelemetry(s, ctx, "RegisterForEvent", eventUUID.String(), func(ctx context.Context) (eventOpResult, error) {
		return runInTx(s, ctx, registerTx)
	})
	return unwrap(result, err)
}

func (s *EventService) registerLogic(ctx context.Context, db bun.IDB, eventUUID, userUUID uuid.UUID) (eventOpResult, error) {
	agg, err := s.lockEvent(ctx, db, eventUUID)
	if err != nil {
		return classify(err)
	}

	now := s.clock.Now().UTC()
	outcome, err := agg.Register(userUUID, now)
	if err != nil {
		return classify(err)
	}

	if err := ctx.Err(); err != nil {
		return eventOpResult{}, err
	}

	if outcome.State == eventdomain.StateRegistered {
		err = s.repo.AddAttendee(ctx, db, &eventdb.Attendee{
			EventUUID:    eventUUID,
			UserUUID:     userUUID,
			Status:       string(eventdomain.StatusRegistered),
			RegisteredAt: now,
		})
	} else {
		err = s.repo.AddToWaitlist(ctx, db, &eventdb.WaitlistEntry{
			EventUUID: eventUUID,
			UserUUID:  userUUID,
			AddedAt:   now,
		})
	}
	if err != nil {
		if errors.Is(err, eventdb.ErrDuplicateRegistration) {
			return failure(apperrors.ErrAlreadyRegistered)
		}
		return eventOpResult{}, fmt.Errorf("failed to register: %w", err)
	}

	res := &EventResult{Event: agg, State: outcome.State, Message: "registered for event"}
	if outcome.Waitlist != nil {
		res.Position = outcome.Waitlist.Position
		res.Message = fmt.Sprintf("event is full, added to waitlist at position %d", res.Position)
	}
	return results.SuccessResult[*EventResult, error](res), nil
}

// CheckInToEvent marks a registered attendee as checked in. Checking in twice
// succeeds without changing the first check-in time.
func (s *EventService) CheckInToEvent(ctx context.Context, eventUUID, userUUID uuid.UUID) (*EventResult, error) {
	checkInTx := func(ctx context.Context, db bun.IDB) (eventOpResult, error) {
		return s.checkInLogic(ctx, db, eventUUID, userUUID)
	}

	result, err := withTelemetry(s, ctx, "CheckInToEvent", eventUUID.String(), func(ctx context.Context) (eventOpResult, error) {
		return runInTx(s, ctx, checkInTx)
	})
	return unwrap(result, err)
}

func (s *EventService) checkInLogic(ctx context.Context, db bun.IDB, eventUUID, userUUID uuid.UUID) (eventOpResult, error) {
	agg, err := s.lockEvent(ctx, db, eventUUID)
	if err != nil {
		return classify(err)
	}

	outcome, err := agg.CheckIn(userUUID, s.clock.Now().UTC())
	if err != nil {
		return classify(err)
	}
	if outcome.AlreadyCheckedIn {
		return results.SuccessResult[*EventResult, error](&EventResult{
			Event:   agg,
			State:   eventdomain.StateCheckedIn,
			Message: "already checked in",
		}), nil
	}

	if err := ctx.Err(); err != nil {
		return eventOpResult{}, err
	}

	if err := s.repo.MarkCheckedIn(ctx, db, eventUUID, userUUID, *outcome.Attendee.CheckedInAt); err != nil {
		if errors.Is(err, eventdb.ErrRegistrationNotFound) {
			return failure(apperrors.ErrNotRegistered)
		}
		return eventOpResult{}, fmt.Errorf("failed to check in: %w", err)
	}

	return results.SuccessResult[*EventResult, error](&EventResult{
		Event:   agg,
		State:   eventdomain.StateCheckedIn,
		Message: "checked in",
	}), nil
}

// CancelRegistration removes the user from the attendees or the waitlist.
// When an attendee cancels, the head of the waitlist takes the freed seat.
// Cancelling without a registration is a no-op.
func (s *EventService) CancelRegistration(ctx context.Context, eventUUID, userUUID uuid.UUID) (*EventResult, error) {
	cancelTx := func(ctx context.Context, db bun.IDB) (eventOpResult, error) {
		return s.cancelLogic(ctx, db, eventUUID, userUUID)
	}

	result, err := withTelemetry(s, ctx, "CancelRegistration", eventUUID.String(), func(ctx context.Context) (eventOpResult, error) {
		return runInTx(s, ctx, cancelTx)
	})
	return unwrap(result, err)
}

func (s *EventService) cancelLogic(ctx context.Context, db bun.IDB, eventUUID, userUUID uuid.UUID) (eventOpResult, error) {
	agg, err := s.lockEvent(ctx, db, eventUUID)
	if err != nil {
		return classify(err)
	}

	outcome := agg.Cancel(userUUID, s.clock.Now().UTC())
	res := &EventResult{Event: agg, State: eventdomain.StateUnregistered}

	switch outcome.Previous {
	case eventdomain.StateUnregistered:
		res.Message = "not registered for this event"
		return results.SuccessResult[*EventResult, error](res), nil
	case eventdomain.StateWaitlisted:
		if err := ctx.Err(); err != nil {
			return eventOpResult{}, err
		}
		if err := s.repo.RemoveFromWaitlist(ctx, db, eventUUID, userUUID); err != nil {
			return eventOpResult{}, fmt.Errorf("failed to leave waitlist: %w", err)
		}
		res.Message = "removed from waitlist"
		return results.SuccessResult[*EventResult, error](res), nil
	}

	if err := ctx.Err(); err != nil {
		return eventOpResult{}, err
	}
	if err := s.repo.RemoveAttendee(ctx, db, eventUUID, userUUID); err != nil {
		return eventOpResult{}, fmt.Errorf("failed to remove attendee: %w", err)
	}
	res.Message = "registration cancelled"

	if p := outcome.Promoted; p != nil {
		if err := s.repo.RemoveFromWaitlist(ctx, db, eventUUID, p.UserUUID); err != nil {
			return eventOpResult{}, fmt.Errorf("failed to dequeue waitlist head: %w", err)
		}
		if err := s.repo.AddAttendee(ctx, db, &eventdb.Attendee{
			EventUUID:    eventUUID,
			UserUUID:     p.UserUUID,
			Status:       string(p.Status),
			RegisteredAt: p.RegisteredAt,
		}); err != nil {
			return eventOpResult{}, fmt.Errorf("failed to promote waitlist head: %w", err)
		}
		res.Promoted = p
		s.logger.InfoContext(ctx, "Waitlisted user promoted",
			observability.CorrelationAttr(ctx),
			slog.String("event_uuid", eventUUID.String()),
			slog.String("user_uuid", p.UserUUID.String()),
		)
	}

	return results.SuccessResult[*EventResult, error](res), nil
}

// lockEvent loads the event row with FOR UPDATE, then its attendee and
// waitlist rows.
func (s *EventService) lockEvent(ctx context.Context, db bun.IDB, eventUUID uuid.UUID) (*eventdomain.Event, error) {
	row, err := s.repo.GetByUUIDForUpdate(ctx, db, eventUUID)
	if err != nil {
		if errors.Is(err, eventdb.ErrNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	return s.loadAggregate(ctx, db, row)
}
