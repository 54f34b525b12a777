package userservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	clubdomain "github.com/Black-And-White-Club/clubhouse/app/modules/club/domain"
	userdomain "github.com/Black-And-White-Club/clubhouse/app/modules/user/domain"
	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/Black-And-White-Club/clubhouse/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// GetUser returns a user together with the clubs they belong to.
func (s *UserService) GetUser(ctx context.Context, userUUID uuid.UUID) (*userdomain.User, error) {
	getUserTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*userdomain.User, error], error) {
		return s.getUserLogic(ctx, db, userUUID)
	}

	result, err := withTelemetry(s, ctx, "GetUser", userUUID.String(), func(ctx context.Context) (results.OperationResult[*userdomain.User, error], error) {
		return runInTx(s, ctx, getUserTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

func (s *UserService) getUserLogic(ctx context.Context, db bun.IDB, userUUID uuid.UUID) (results.OperationResult[*userdomain.User, error], error) {
	user, err := s.repo.GetByUUID(ctx, db, userUUID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return results.FailureResult[*userdomain.User, error](apperrors.ErrUserNotFound), nil
		}
		return results.OperationResult[*userdomain.User, error]{}, fmt.Errorf("failed to get user: %w", err)
	}

	memberships, err := s.memberships.ListMembershipsForUser(ctx, db, userUUID)
	if err != nil {
		return results.OperationResult[*userdomain.User, error]{}, fmt.Errorf("failed to list user clubs: %w", err)
	}

	clubs := make([]clubdomain.ClubRole, 0, len(memberships))
	for _, m := range memberships {
		role, ok := clubdomain.ParseRole(m.Role)
		if !ok {
			s.logger.WarnContext(ctx, "Membership carries unknown role",
				slog.String("club_uuid", m.ClubUUID.String()),
				slog.String("role", m.Role),
			)
			role = clubdomain.RoleMember
		}
		clubs = append(clubs, clubdomain.ClubRole{
			ClubUUID: m.ClubUUID,
			Role:     role,
			JoinedAt: m.JoinedAt,
		})
	}

	return results.SuccessResult[*userdomain.User, error](toDomainUser(user, clubs)), nil
}
