package clubdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/clubhouse/db/bundb"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	// ErrNotFound is returned when a club is not found.
	ErrNotFound = errors.New("club not found")

	// ErrMembershipNotFound is returned when a user is not a member of a club.
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrDuplicateMembership is returned when a membership row already exists.
	ErrDuplicateMembership = errors.New("membership already exists")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new club repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Create inserts a new club.
func (r *Impl) Create(ctx context.Context, db bun.IDB, club *Club) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if club.UUID == uuid.Nil {
		club.UUID = uuid.New()
	}
	club.CreatedAt = now
	club.UpdatedAt = now
	if _, err := db.NewInsert().Model(club).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create club: %w", err)
	}
	return nil
}

// GetByUUID retrieves a club by its UUID.
func (r *Impl) GetByUUID(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) (*Club, error) {
	return r.getClub(ctx, r.resolveDB(db), clubUUID, false)
}

// GetByUUIDForUpdate retrieves a club and takes a row lock on it.
func (r *Impl) GetByUUIDForUpdate(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) (*Club, error) {
	return r.getClub(ctx, r.resolveDB(db), clubUUID, true)
}

func (r *Impl) getClub(ctx context.Context, db bun.IDB, clubUUID uuid.UUID, lock bool) (*Club, error) {
	club := new(Club)
	q := db.NewSelect().
		Model(club).
		Where("c.uuid = ?", clubUUID)
	if lock {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get club by UUID: %w", err)
	}
	return club, nil
}

// ListMembers returns a club's memberships ordered by join time.
func (r *Impl) ListMembers(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) ([]Membership, error) {
	db = r.resolveDB(db)
	var members []Membership
	err := db.NewSelect().
		Model(&members).
		Where("cm.club_uuid = ?", clubUUID).
		Order("cm.joined_at ASC", "cm.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list club members: %w", err)
	}
	return members, nil
}

// GetMembership returns one membership row.
func (r *Impl) GetMembership(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID) (*Membership, error) {
	db = r.resolveDB(db)
	membership := new(Membership)
	err := db.NewSelect().
		Model(membership).
		Where("cm.club_uuid = ?", clubUUID).
		Where("cm.user_uuid = ?", userUUID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return membership, nil
}

// AddMember inserts a membership row.
func (r *Impl) AddMember(ctx context.Context, db bun.IDB, membership *Membership) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = now
	}
	membership.UpdatedAt = now
	if _, err := db.NewInsert().Model(membership).Exec(ctx); err != nil {
		if bundb.IsUniqueViolation(err) {
			return ErrDuplicateMembership
		}
		return fmt.Errorf("failed to add club member: %w", err)
	}
	return nil
}

// RemoveMember deletes a membership row.
func (r *Impl) RemoveMember(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Membership)(nil)).
		Where("club_uuid = ?", clubUUID).
		Where("user_uuid = ?", userUUID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove club member: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

// UpdateMemberRole changes the role stored on a membership row.
func (r *Impl) UpdateMemberRole(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID, role string) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Membership)(nil)).
		Set("role = ?", role).
		Set("updated_at = ?", time.Now().UTC()).
		Where("club_uuid = ?", clubUUID).
		Where("user_uuid = ?", userUUID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

// ListMembershipsForUser returns a user's memberships ordered by join time.
func (r *Impl) ListMembershipsForUser(ctx context.Context, db bun.IDB, userUUID uuid.UUID) ([]Membership, error) {
	db = r.resolveDB(db)
	var memberships []Membership
	err := db.NewSelect().
		Model(&memberships).
		Where("cm.user_uuid = ?", userUUID).
		Order("cm.joined_at ASC", "cm.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list user memberships: %w", err)
	}
	return memberships, nil
}
