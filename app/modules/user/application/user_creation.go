package userservice

import (
	"context"
	"errors"
	"fmt"

	clubdomain "github.com/Black-And-White-Club/clubhouse/app/modules/club/domain"
	userdomain "github.com/Black-And-White-Club/clubhouse/app/modules/user/domain"
	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/Black-And-White-Club/clubhouse/internal/results"
	"github.com/uptrace/bun"
)

// CreateUser registers a new user.
func (s *UserService) CreateUser(ctx context.Context, reg userdomain.Registration) (*userdomain.User, error) {
	reg = reg.Normalize()

	createUserTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*userdomain.User, error], error) {
		return s.createUserLogic(ctx, db, reg)
	}

	result, err := withTelemetry(s, ctx, "CreateUser", reg.Email, func(ctx context.Context) (results.OperationResult[*userdomain.User, error], error) {
		return runInTx(s, ctx, createUserTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

func (s *UserService) createUserLogic(ctx context.Context, db bun.IDB, reg userdomain.Registration) (results.OperationResult[*userdomain.User, error], error) {
	if err := reg.Validate(); err != nil {
		if appErr, ok := apperrors.As(err); ok {
			return results.FailureResult[*userdomain.User, error](appErr), nil
		}
		return results.OperationResult[*userdomain.User, error]{}, err
	}

	_, err := s.repo.GetByEmail(ctx, db, reg.Email)
	switch {
	case err == nil:
		return results.FailureResult[*userdomain.User, error](apperrors.ErrEmailTaken), nil
	case !errors.Is(err, userdb.ErrNotFound):
		return results.OperationResult[*userdomain.User, error]{}, fmt.Errorf("failed to check existing user: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return results.OperationResult[*userdomain.User, error]{}, err
	}

	user := &userdb.User{
		Name:  reg.Name,
		Email: reg.Email,
	}
	if reg.Phone != "" {
		phone := reg.Phone
		user.Phone = &phone
	}

	if err := s.repo.Create(ctx, db, user); err != nil {
		if errors.Is(err, userdb.ErrDuplicateEmail) {
			return results.FailureResult[*userdomain.User, error](apperrors.ErrEmailTaken), nil
		}
		return results.OperationResult[*userdomain.User, error]{}, fmt.Errorf("failed to create user: %w", err)
	}

	return results.SuccessResult[*userdomain.User, error](toDomainUser(user, nil)), nil
}

func toDomainUser(u *userdb.User, clubs []clubdomain.ClubRole) *userdomain.User {
	out := &userdomain.User{
		UUID:      u.UUID,
		Name:      u.Name,
		Email:     u.Email,
		Clubs:     clubs,
		CreatedAt: u.CreatedAt,
	}
	if out.Clubs == nil {
		out.Clubs = []clubdomain.ClubRole{}
	}
	if u.Phone != nil {
		out.Phone = *u.Phone
	}
	return out
}
