package eventhandlers

import (
	"context"

	eventservice "github.com/Black-And-White-Club/clubhouse/app/modules/event/application"
	eventdomain "github.com/Black-And-White-Club/clubhouse/app/modules/event/domain"
	"github.com/google/uuid"
)

type FakeEventService struct {
	trace []string

	CreateEventFunc        func(ctx context.Context, req eventservice.CreateEventRequest) (*eventservice.EventResult, error)
	RegisterForEventFunc   func(ctx context.Context, eventUUID, userUUID uuid.UUID) (*eventservice.EventResult, error)
	CheckInToEventFunc     func(ctx context.Context, eventUUID, userUUID uuid.UUID) (*eventservice.EventResult, error)
	CancelRegistrationFunc func(ctx context.Context, eventUUID, userUUID uuid.UUID) (*eventservice.EventResult, error)
	GetEventFunc           func(ctx context.Context, eventUUID uuid.UUID) (*eventdomain.Event, error)
}

func NewFakeEventService() *FakeEventService {
	return &FakeEventService{trace: []string{}}
}

func (f *FakeEventService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeEventService) Trace() []string {
	return f.trace
}

func (f *FakeEventService) CreateEvent(ctx context.Context, req eventservice.CreateEventRequest) (*eventservice.EventResult, error) {
	f.record("CreateEvent")
	if f.CreateEventFunc != nil {
		return f.CreateEventFunc(ctx, req)
	}
	return &eventservice.EventResult{
		Event:   &eventdomain.Event{UUID: uuid.New(), ClubUUID: req.ClubUUID, Title: req.Title, CreatedBy: req.CreatorUUID},
		Message: "event created",
	}, nil
}

func (f *FakeEventService) RegisterForEvent(ctx context.Context, eventUUID, userUUID uuid.UUID) (*eventservice.EventResult, error) {
	f.record("RegisterForEvent")
	if f.RegisterForEventFunc != nil {
		return f.RegisterForEventFunc(ctx, eventUUID, userUUID)
	}
	return &eventservice.EventResult{Event: &eventdomain.Event{UUID: eventUUID}, State: eventdomain.StateRegistered}, nil
}

func (f *FakeEventService) CheckInToEvent(ctx context.Context, eventUUID, userUUID uuid.UUID) (*eventservice.EventResult, error) {
	f.record("CheckInToEvent")
	if f.CheckInToEventFunc != nil {
		return f.CheckInToEventFunc(ctx, eventUUID, userUUID)
	}
	return &eventservice.EventResult{Event: &eventdomain.Event{UUID: eventUUID}, State: eventdomain.StateCheckedIn}, nil
}

func (f *FakeEventService) CancelRegistration(ctx context.Context, eventUUID, userUUID uuid.UUID) (*eventservice.EventResult, error) {
	f.record("CancelRegistration")
	if f.CancelRegistrationFunc != nil {
		return f.CancelRegistrationFunc(ctx, eventUUID, userUUID)
	}
	return &eventservice.EventResult{Event: &eventdomain.Event{UUID: eventUUID}, State: eventdomain.StateUnregistered}, nil
}

func (f *FakeEventService) GetEvent(ctx context.Context, eventUUID uuid.UUID) (*eventdomain.Event, error) {
	f.record("GetEvent")
	if f.GetEventFunc != nil {
		return f.GetEventFunc(ctx, eventUUID)
	}
	return &eventdomain.Event{UUID: eventUUID}, nil
}

var _ eventservice.Service = (*FakeEventService)(nil)
