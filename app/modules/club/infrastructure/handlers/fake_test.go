package clubhandlers

import (
	"context"

	clubservice "github.com/Black-And-White-Club/clubhouse/app/modules/club/application"
	clubdomain "github.com/Black-And-White-Club/clubhouse/app/modules/club/domain"
	"github.com/google/uuid"
)

// ------------------------
// Fake Club Service
// ------------------------

type FakeClubService struct {
	trace []string

	CreateClubFunc func(ctx context.Context, founderUUID uuid.UUID, name, category string) (*clubservice.ClubResult, error)
	JoinClubFunc   func(ctx context.Context, clubUUID, userUUID uuid.UUID) (*clubservice.ClubResult, error)
	LeaveClubFunc  func(ctx context.Context, clubUUID, userUUID uuid.UUID) (*clubservice.ClubResult, error)
	AssignRoleFunc func(ctx context.Context, clubUUID, targetUUID uuid.UUID, newRole string, requesterUUID uuid.UUID) (*clubservice.ClubResult, error)
	GetClubFunc    func(ctx context.Context, clubUUID uuid.UUID) (*clubdomain.Club, error)
}

func NewFakeClubService() *FakeClubService {
	return &FakeClubService{trace: []string{}}
}

func (f *FakeClubService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeClubService) Trace() []string {
	return f.trace
}

func (f *FakeClubService) CreateClub(ctx context.Context, founderUUID uuid.UUID, name, category string) (*clubservice.ClubResult, error) {
	f.record("CreateClub")
	if f.CreateClubFunc != nil {
		return f.CreateClubFunc(ctx, founderUUID, name, category)
	}
	return &clubservice.ClubResult{
		Club:    &clubdomain.Club{UUID: uuid.New(), Name: name, PresidentUUID: founderUUID, MemberCount: 1},
		Message: "club created",
	}, nil
}

func (f *FakeClubService) JoinClub(ctx context.Context, clubUUID, userUUID uuid.UUID) (*clubservice.ClubResult, error) {
	f.record("JoinClub")
	if f.JoinClubFunc != nil {
		return f.JoinClubFunc(ctx, clubUUID, userUUID)
	}
	return &clubservice.ClubResult{Club: &clubdomain.Club{UUID: clubUUID, MemberCount: 2}, Message: "joined club"}, nil
}

func (f *FakeClubService) LeaveClub(ctx context.Context, clubUUID, userUUID uuid.UUID) (*clubservice.ClubResult, error) {
	f.record("LeaveClub")
	if f.LeaveClubFunc != nil {
		return f.LeaveClubFunc(ctx, clubUUID, userUUID)
	}
	return &clubservice.ClubResult{Club: &clubdomain.Club{UUID: clubUUID, MemberCount: 1}, Message: "left club"}, nil
}

func (f *FakeClubService) AssignRole(ctx context.Context, clubUUID, targetUUID uuid.UUID, newRole string, requesterUUID uuid.UUID) (*clubservice.ClubResult, error) {
	f.record("AssignRole")
	if f.AssignRoleFunc != nil {
		return f.AssignRoleFunc(ctx, clubUUID, targetUUID, newRole, requesterUUID)
	}
	return &clubservice.ClubResult{Club: &clubdomain.Club{UUID: clubUUID}, Message: "role updated to " + newRole}, nil
}

func (f *FakeClubService) GetClub(ctx context.Context, clubUUID uuid.UUID) (*clubdomain.Club, error) {
	f.record("GetClub")
	if f.GetClubFunc != nil {
		return f.GetClubFunc(ctx, clubUUID)
	}
	return &clubdomain.Club{UUID: clubUUID}, nil
}

var _ clubservice.Service = (*FakeClubService)(nil)
