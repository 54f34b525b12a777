package clubservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	clubdomain "github.com/Black-And-White-Club/clubhouse/app/modules/club/domain"
	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/Black-And-White-Club/clubhouse/internal/results"
	"github.com/Black-And-White-Club/clubhouse/internal/validation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type clubOpResult = results.OperationResult[*ClubResult, error]

type createClubInput struct {
	Name     string `json:"name" label:"club name" validate:"required,max=100"`
	Category string `json:"category" validate:"max=50"`
}

// CreateClub creates a club with its founder as president.
func (s *ClubService) CreateClub(ctx context.Context, founderUUID uuid.UUID, name, category string) (*ClubResult, error) {
	createTx := func(ctx context.Context, db bun.IDB) (clubOpResult, error) {
		return s.createClubLogic(ctx, db, founderUUID, name, category)
	}

	result, err := withTelemetry(s, ctx, "CreateClub", founderUUID.String(), func(ctx context.Context) (clubOpResult, error) {
		return runInTx(s, ctx, createTx)
	})
	return unwrap(result, err)
}

func (s *ClubService) createClubLogic(ctx context.Context, db bun.IDB, founderUUID uuid.UUID, name, category string) (clubOpResult, error) {
	input := createClubInput{
		Name:     strings.TrimSpace(name),
		Category: strings.TrimSpace(category),
	}
	if err := validation.Struct(input); err != nil {
		return classify(err)
	}
	name, category = input.Name, input.Category
	if category == "" {
		category = clubdomain.DefaultCategory
	}

	if err := s.requireUser(ctx, db, founderUUID); err != nil {
		return classify(err)
	}

	if err := ctx.Err(); err != nil {
		return clubOpResult{}, err
	}

	club := &clubdb.Club{
		Name:          name,
		Category:      category,
		PresidentUUID: founderUUID,
	}
	if err := s.repo.Create(ctx, db, club); err != nil {
		return clubOpResult{}, fmt.Errorf("failed to create club: %w", err)
	}
	if err := s.repo.AddMember(ctx, db, &clubdb.Membership{
		ClubUUID: club.UUID,
		UserUUID: founderUUID,
		Role:     clubdomain.RolePresident.String(),
	}); err != nil {
		return clubOpResult{}, fmt.Errorf("failed to seed founder membership: %w", err)
	}

	return s.successView(ctx, db, club, "club created")
}

// JoinClub adds a member with the Member role.
func (s *ClubService) JoinClub(ctx context.Context, clubUUID, userUUID uuid.UUID) (*ClubResult, error) {
	joinTx := func(ctx context.Context, db bun.IDB) (clubOpResult, error) {
		return s.joinClubLogic(ctx, db, clubUUID, userUUID)
	}

	result, err := withTelemetry(s, ctx, "JoinClub", clubUUID.String(), func(ctx context.Context) (clubOpResult, error) {
		return runInTx(s, ctx, joinTx)
	})
	return unwrap(result, err)
}

func (s *ClubService) joinClubLogic(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID) (clubOpResult, error) {
	club, err := s.lockClub(ctx, db, clubUUID)
	if err != nil {
		return classify(err)
	}

	if err := s.requireUser(ctx, db, userUUID); err != nil {
		return classify(err)
	}

	_, err = s.repo.GetMembership(ctx, db, clubUUID, userUUID)
	switch {
	case err == nil:
		return results.FailureResult[*ClubResult, error](apperrors.ErrAlreadyMember), nil
	case !errors.Is(err, clubdb.ErrMembershipNotFound):
		return clubOpResult{}, fmt.Errorf("failed to check membership: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return clubOpResult{}, err
	}

	if err := s.repo.AddMember(ctx, db, &clubdb.Membership{
		ClubUUID: clubUUID,
		UserUUID: userUUID,
		Role:     clubdomain.RoleMember.String(),
	}); err != nil {
		if errors.Is(err, clubdb.ErrDuplicateMembership) {
			return results.FailureResult[*ClubResult, error](apperrors.ErrAlreadyMember), nil
		}
		return clubOpResult{}, fmt.Errorf("failed to add member: %w", err)
	}

	return s.successView(ctx, db, club, "joined club")
}

// LeaveClub removes a member. The president cannot leave while holding the
// presidency.
func (s *ClubService) LeaveClub(ctx context.Context, clubUUID, userUUID uuid.UUID) (*ClubResult, error) {
	leaveTx := func(ctx context.Context, db bun.IDB) (clubOpResult, error) {
		return s.leaveClubLogic(ctx, db, clubUUID, userUUID)
	}

	result, err := withTelemetry(s, ctx, "LeaveClub", clubUUID.String(), func(ctx context.Context) (clubOpResult, error) {
		return runInTx(s, ctx, leaveTx)
	})
	return unwrap(result, err)
}

func (s *ClubService) leaveClubLogic(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID) (clubOpResult, error) {
	club, err := s.lockClub(ctx, db, clubUUID)
	if err != nil {
		return classify(err)
	}

	if _, err := s.repo.GetMembership(ctx, db, clubUUID, userUUID); err != nil {
		if errors.Is(err, clubdb.ErrMembershipNotFound) {
			return results.FailureResult[*ClubResult, error](apperrors.ErrNotMember), nil
		}
		return clubOpResult{}, fmt.Errorf("failed to check membership: %w", err)
	}

	if userUUID == club.PresidentUUID {
		return results.FailureResult[*ClubResult, error](apperrors.ErrPresidentCannotLeave), nil
	}

	if err := ctx.Err(); err != nil {
		return clubOpResult{}, err
	}

	if err := s.repo.RemoveMember(ctx, db, clubUUID, userUUID); err != nil {
		if errors.Is(err, clubdb.ErrMembershipNotFound) {
			return results.FailureResult[*ClubResult, error](apperrors.ErrNotMember), nil
		}
		return clubOpResult{}, fmt.Errorf("failed to remove member: %w", err)
	}

	return s.successView(ctx, db, club, "left club")
}

// GetClub returns the club view.
func (s *ClubService) GetClub(ctx context.Context, clubUUID uuid.UUID) (*clubdomain.Club, error) {
	getClubTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*clubdomain.Club, error], error) {
		return s.getClubLogic(ctx, db, clubUUID)
	}

	result, err := withTelemetry(s, ctx, "GetClub", clubUUID.String(), func(ctx context.Context) (results.OperationResult[*clubdomain.Club, error], error) {
		return runInTx(s, ctx, getClubTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

func (s *ClubService) getClubLogic(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) (results.OperationResult[*clubdomain.Club, error], error) {
	club, err := s.repo.GetByUUID(ctx, db, clubUUID)
	if err != nil {
		if errors.Is(err, clubdb.ErrNotFound) {
			return results.FailureResult[*clubdomain.Club, error](apperrors.ErrClubNotFound), nil
		}
		return results.OperationResult[*clubdomain.Club, error]{}, fmt.Errorf("failed to get club: %w", err)
	}

	view, err := s.loadView(ctx, db, club)
	if err != nil {
		return results.OperationResult[*clubdomain.Club, error]{}, err
	}
	return results.SuccessResult[*clubdomain.Club, error](view), nil
}

// lockClub loads the club row with FOR UPDATE so concurrent membership
// changes on the same club serialize.
func (s *ClubService) lockClub(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) (*clubdb.Club, error) {
	club, err := s.repo.GetByUUIDForUpdate(ctx, db, clubUUID)
	if err != nil {
		if errors.Is(err, clubdb.ErrNotFound) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to load club: %w", err)
	}
	return club, nil
}

func (s *ClubService) requireUser(ctx context.Context, db bun.IDB, userUUID uuid.UUID) error {
	exists, err := s.users.Exists(ctx, db, userUUID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// loadView builds the club view from the membership relation.
func (s *ClubService) loadView(ctx context.Context, db bun.IDB, club *clubdb.Club) (*clubdomain.Club, error) {
	rows, err := s.repo.ListMembers(ctx, db, club.UUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]clubdomain.Member, 0, len(rows))
	for _, row := range rows {
		role, ok := clubdomain.ParseRole(row.Role)
		if !ok {
			role = clubdomain.RoleMember
		}
		members = append(members, clubdomain.Member{
			UserUUID:    row.UserUUID,
			Role:        role,
			JoinedAt:    row.JoinedAt,
			Permissions: role.Permissions(),
		})
	}

	return &clubdomain.Club{
		UUID:          club.UUID,
		Name:          club.Name,
		Category:      club.Category,
		PresidentUUID: club.PresidentUUID,
		Members:       members,
		MemberCount:   len(members),
		CreatedAt:     club.CreatedAt,
	}, nil
}

func (s *ClubService) successView(ctx context.Context, db bun.IDB, club *clubdb.Club, message string) (clubOpResult, error) {
	view, err := s.loadView(ctx, db, club)
	if err != nil {
		return clubOpResult{}, err
	}
	return results.SuccessResult[*ClubResult, error](&ClubResult{Club: view, Message: message}), nil
}

// classify turns a domain failure into a failure result and passes
// infrastructure errors through.
func classify(err error) (clubOpResult, error) {
	if appErr, ok := apperrors.As(err); ok {
		return results.FailureResult[*ClubResult, error](appErr), nil
	}
	return clubOpResult{}, err
}

func unwrap(result clubOpResult, err error) (*ClubResult, error) {
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}
