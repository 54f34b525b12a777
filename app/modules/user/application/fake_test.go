package userservice

import (
	"context"

	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake User Repo
// ------------------------

type FakeUserRepo struct {
	trace []string

	CreateFunc     func(ctx context.Context, db bun.IDB, user *userdb.User) error
	GetByUUIDFunc  func(ctx context.Context, db bun.IDB, userUUID uuid.UUID) (*userdb.User, error)
	GetByEmailFunc func(ctx context.Context, db bun.IDB, email string) (*userdb.User, error)
	ExistsFunc     func(ctx context.Context, db bun.IDB, userUUID uuid.UUID) (bool, error)
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{trace: []string{}}
}

func (f *FakeUserRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserRepo) Create(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, user)
	}
	if user.UUID == uuid.Nil {
		user.UUID = uuid.New()
	}
	return nil
}

func (f *FakeUserRepo) GetByUUID(ctx context.Context, db bun.IDB, userUUID uuid.UUID) (*userdb.User, error) {
	f.record("GetByUUID")
	if f.GetByUUIDFunc != nil {
		return f.GetByUUIDFunc(ctx, db, userUUID)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) GetByEmail(ctx context.Context, db bun.IDB, email string) (*userdb.User, error) {
	f.record("GetByEmail")
	if f.GetByEmailFunc != nil {
		return f.GetByEmailFunc(ctx, db, email)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) Exists(ctx context.Context, db bun.IDB, userUUID uuid.UUID) (bool, error) {
	f.record("Exists")
	if f.ExistsFunc != nil {
		return f.ExistsFunc(ctx, db, userUUID)
	}
	return false, nil
}

func (f *FakeUserRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ userdb.Repository = (*FakeUserRepo)(nil)

// ------------------------
// Fake Membership Reader
// ------------------------

type FakeMembershipReader struct {
	ListMembershipsForUserFunc func(ctx context.Context, db bun.IDB, userUUID uuid.UUID) ([]clubdb.Membership, error)
}

func (f *FakeMembershipReader) ListMembershipsForUser(ctx context.Context, db bun.IDB, userUUID uuid.UUID) ([]clubdb.Membership, error) {
	if f.ListMembershipsForUserFunc != nil {
		return f.ListMembershipsForUserFunc(ctx, db, userUUID)
	}
	return nil, nil
}

var _ MembershipReader = (*FakeMembershipReader)(nil)
