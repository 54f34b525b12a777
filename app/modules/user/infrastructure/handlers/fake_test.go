package userhandlers

import (
	"context"

	userservice "github.com/Black-And-White-Club/clubhouse/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/clubhouse/app/modules/user/domain"
	"github.com/google/uuid"
)

// ------------------------
// Fake User Service
// ------------------------

type FakeUserService struct {
	trace []string

	CreateUserFunc func(ctx context.Context, reg userdomain.Registration) (*userdomain.User, error)
	GetUserFunc    func(ctx context.Context, userUUID uuid.UUID) (*userdomain.User, error)
}

func NewFakeUserService() *FakeUserService {
	return &FakeUserService{trace: []string{}}
}

func (f *FakeUserService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserService) Trace() []string {
	return f.trace
}

func (f *FakeUserService) CreateUser(ctx context.Context, reg userdomain.Registration) (*userdomain.User, error) {
	f.record("CreateUser")
	if f.CreateUserFunc != nil {
		return f.CreateUserFunc(ctx, reg)
	}
	return &userdomain.User{UUID: uuid.New(), Name: reg.Name, Email: reg.Email}, nil
}

func (f *FakeUserService) GetUser(ctx context.Context, userUUID uuid.UUID) (*userdomain.User, error) {
	f.record("GetUser")
	if f.GetUserFunc != nil {
		return f.GetUserFunc(ctx, userUUID)
	}
	return &userdomain.User{UUID: userUUID}, nil
}

var _ userservice.Service = (*FakeUserService)(nil)
