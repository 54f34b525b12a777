package clubservice

import (
	"context"
	"time"

	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Club Repo
// ------------------------

// FakeClubRepo keeps clubs and memberships in memory unless a Func override is
// set, so scenario tests can drive several operations against one state.
type FakeClubRepo struct {
	trace []string

	clubs       map[uuid.UUID]clubdb.Club
	memberships []clubdb.Membership
	nextID      int64
	clock       time.Time

	CreateFunc                 func(ctx context.Context, db bun.IDB, club *clubdb.Club) error
	GetByUUIDFunc              func(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) (*clubdb.Club, error)
	GetByUUIDForUpdateFunc     func(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) (*clubdb.Club, error)
	ListMembersFunc            func(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) ([]clubdb.Membership, error)
	GetMembershipFunc          func(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID) (*clubdb.Membership, error)
	AddMemberFunc              func(ctx context.Context, db bun.IDB, membership *clubdb.Membership) error
	RemoveMemberFunc           func(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID) error
	UpdateMemberRoleFunc       func(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID, role string) error
	ListMembershipsForUserFunc func(ctx context.Context, db bun.IDB, userUUID uuid.UUID) ([]clubdb.Membership, error)
}

func NewFakeClubRepo() *FakeClubRepo {
	return &FakeClubRepo{
		trace: []string{},
		clubs: map[uuid.UUID]clubdb.Club{},
		clock: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *FakeClubRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// seedClub stores a club with its president as the only member.
func (f *FakeClubRepo) seedClub(clubUUID, presidentUUID uuid.UUID) {
	f.clubs[clubUUID] = clubdb.Club{UUID: clubUUID, Name: "Chess", Category: "General", PresidentUUID: presidentUUID}
	f.addMembership(clubUUID, presidentUUID, "President")
}

// seedMember adds a membership row with the given role.
func (f *FakeClubRepo) seedMember(clubUUID, userUUID uuid.UUID, role string) {
	f.addMembership(clubUUID, userUUID, role)
}

func (f *FakeClubRepo) addMembership(clubUUID, userUUID uuid.UUID, role string) {
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	f.memberships = append(f.memberships, clubdb.Membership{
		ID:       f.nextID,
		ClubUUID: clubUUID,
		UserUUID: userUUID,
		Role:     role,
		JoinedAt: f.clock,
	})
}

// --- Repository Interface Implementation ---

func (f *FakeClubRepo) Create(ctx context.Context, db bun.IDB, club *clubdb.Club) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, club)
	}
	if club.UUID == uuid.Nil {
		club.UUID = uuid.New()
	}
	f.clubs[club.UUID] = *club
	return nil
}

func (f *FakeClubRepo) GetByUUID(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) (*clubdb.Club, error) {
	f.record("GetByUUID")
	if f.GetByUUIDFunc != nil {
		return f.GetByUUIDFunc(ctx, db, clubUUID)
	}
	return f.lookup(clubUUID)
}

func (f *FakeClubRepo) GetByUUIDForUpdate(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) (*clubdb.Club, error) {
	f.record("GetByUUIDForUpdate")
	if f.GetByUUIDForUpdateFunc != nil {
		return f.GetByUUIDForUpdateFunc(ctx, db, clubUUID)
	}
	return f.lookup(clubUUID)
}

func (f *FakeClubRepo) lookup(clubUUID uuid.UUID) (*clubdb.Club, error) {
	club, ok := f.clubs[clubUUID]
	if !ok {
		return nil, clubdb.ErrNotFound
	}
	return &club, nil
}

func (f *FakeClubRepo) ListMembers(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) ([]clubdb.Membership, error) {
	f.record("ListMembers")
	if f.ListMembersFunc != nil {
		return f.ListMembersFunc(ctx, db, clubUUID)
	}
	var out []clubdb.Membership
	for _, m := range f.memberships {
		if m.ClubUUID == clubUUID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *FakeClubRepo) GetMembership(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID) (*clubdb.Membership, error) {
	f.record("GetMembership")
	if f.GetMembershipFunc != nil {
		return f.GetMembershipFunc(ctx, db, clubUUID, userUUID)
	}
	for _, m := range f.memberships {
		if m.ClubUUID == clubUUID && m.UserUUID == userUUID {
			found := m
			return &found, nil
		}
	}
	return nil, clubdb.ErrMembershipNotFound
}

func (f *FakeClubRepo) AddMember(ctx context.Context, db bun.IDB, membership *clubdb.Membership) error {
	f.record("AddMember")
	if f.AddMemberFunc != nil {
		return f.AddMemberFunc(ctx, db, membership)
	}
	for _, m := range f.memberships {
		if m.ClubUUID == membership.ClubUUID && m.UserUUID == membership.UserUUID {
			return clubdb.ErrDuplicateMembership
		}
	}
	f.addMembership(membership.ClubUUID, membership.UserUUID, membership.Role)
	return nil
}

func (f *FakeClubRepo) RemoveMember(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID) error {
	f.record("RemoveMember")
	if f.RemoveMemberFunc != nil {
		return f.RemoveMemberFunc(ctx, db, clubUUID, userUUID)
	}
	for i, m := range f.memberships {
		if m.ClubUUID == clubUUID && m.UserUUID == userUUID {
			f.memberships = append(f.memberships[:i], f.memberships[i+1:]...)
			return nil
		}
	}
	return clubdb.ErrMembershipNotFound
}

func (f *FakeClubRepo) UpdateMemberRole(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID, role string) error {
	f.record("UpdateMemberRole")
	if f.UpdateMemberRoleFunc != nil {
		return f.UpdateMemberRoleFunc(ctx, db, clubUUID, userUUID, role)
	}
	for i, m := range f.memberships {
		if m.ClubUUID == clubUUID && m.UserUUID == userUUID {
			f.memberships[i].Role = role
			return nil
		}
	}
	return clubdb.ErrMembershipNotFound
}

func (f *FakeClubRepo) ListMembershipsForUser(ctx context.Context, db bun.IDB, userUUID uuid.UUID) ([]clubdb.Membership, error) {
	f.record("ListMembershipsForUser")
	if f.ListMembershipsForUserFunc != nil {
		return f.ListMembershipsForUserFunc(ctx, db, userUUID)
	}
	var out []clubdb.Membership
	for _, m := range f.memberships {
		if m.UserUUID == userUUID {
			out = append(out, m)
		}
	}
	return out, nil
}

// --- Accessors for assertions ---

func (f *FakeClubRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ clubdb.Repository = (*FakeClubRepo)(nil)

// ------------------------
// Fake User Directory
// ------------------------

type FakeUserDirectory struct {
	ExistsFunc func(ctx context.Context, db bun.IDB, userUUID uuid.UUID) (bool, error)
}

func (f *FakeUserDirectory) Exists(ctx context.Context, db bun.IDB, userUUID uuid.UUID) (bool, error) {
	if f.ExistsFunc != nil {
		return f.ExistsFunc(ctx, db, userUUID)
	}
	return true, nil
}

var _ UserDirectory = (*FakeUserDirectory)(nil)
