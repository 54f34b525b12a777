package clubservice

import (
	"context"
	"errors"
	"fmt"

	clubdomain "github.com/Black-And-White-Club/clubhouse/app/modules/club/domain"
	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/Black-And-White-Club/clubhouse/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AssignRole changes a member's role on behalf of the club president.
func (s *ClubService) AssignRole(ctx context.Context, clubUUID, targetUUID uuid.UUID, newRole string, requesterUUID uuid.UUID) (*ClubResult, error) {
	assignTx := func(ctx context.Context, db bun.IDB) (clubOpResult, error) {
		return s.assignRoleLogic(ctx, db, clubUUID, targetUUID, newRole, requesterUUID)
	}

	result, err := withTelemetry(s, ctx, "AssignRole", clubUUID.String(), func(ctx context.Context) (clubOpResult, error) {
		return runInTx(s, ctx, assignTx)
	})
	return unwrap(result, err)
}

func (s *ClubService) assignRoleLogic(ctx context.Context, db bun.IDB, clubUUID, targetUUID uuid.UUID, newRole string, requesterUUID uuid.UUID) (clubOpResult, error) {
	club, err := s.lockClub(ctx, db, clubUUID)
	if err != nil {
		return classify(err)
	}

	// Non-presidents fail with Forbidden before membership is consulted.
	targetIsMember := false
	if requesterUUID == club.PresidentUUID {
		_, err := s.repo.GetMembership(ctx, db, clubUUID, targetUUID)
		switch {
		case err == nil:
			targetIsMember = true
		case !errors.Is(err, clubdb.ErrMembershipNotFound):
			return clubOpResult{}, fmt.Errorf("failed to check membership: %w", err)
		}
	}

	role, err := clubdomain.AuthorizeRoleChange(club.PresidentUUID, requesterUUID, targetUUID, targetIsMember, newRole)
	if err != nil {
		return results.FailureResult[*ClubResult, error](err), nil
	}

	if err := ctx.Err(); err != nil {
		return clubOpResult{}, err
	}

	if err := s.repo.UpdateMemberRole(ctx, db, clubUUID, targetUUID, role.String()); err != nil {
		if errors.Is(err, clubdb.ErrMembershipNotFound) {
			return results.FailureResult[*ClubResult, error](apperrors.ErrMemberNotFound), nil
		}
		return clubOpResult{}, fmt.Errorf("failed to update role: %w", err)
	}

	return s.successView(ctx, db, club, fmt.Sprintf("role updated to %s", role))
}
