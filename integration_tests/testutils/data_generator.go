package testutils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	clubdomain "github.com/Black-And-White-Club/clubhouse/app/modules/club/domain"
	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
)

// TestDataGenerator provides methods to create test data for integration tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	s := time.Now().UnixNano()
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed the generator was built with.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// Name returns a person's full name.
func (g *TestDataGenerator) Name() string {
	return g.faker.Name()
}

// Email returns a unique-looking lower-case email address.
func (g *TestDataGenerator) Email() string {
	return strings.ToLower(fmt.Sprintf("%s.%d@%s", g.faker.Username(), g.faker.Number(1000, 9999), g.faker.DomainName()))
}

// ClubName returns a plausible club name.
func (g *TestDataGenerator) ClubName() string {
	return fmt.Sprintf("%s %s Club", g.faker.City(), g.faker.Hobby())
}

// EventTitle returns a plausible event title.
func (g *TestDataGenerator) EventTitle() string {
	return fmt.Sprintf("%s %s", g.faker.HipsterWord(), g.faker.RandomString([]string{"Meetup", "Workshop", "Social", "Tournament"}))
}

// GenerateUser returns an unsaved user row.
func (g *TestDataGenerator) GenerateUser() *userdb.User {
	return &userdb.User{
		Name:  g.Name(),
		Email: g.Email(),
	}
}

// InsertUsers inserts n users and returns their UUIDs in insertion order.
func (g *TestDataGenerator) InsertUsers(ctx context.Context, db bun.IDB, n int) ([]uuid.UUID, error) {
	repo := userdb.NewRepository(db)
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		u := g.GenerateUser()
		if err := repo.Create(ctx, db, u); err != nil {
			return nil, fmt.Errorf("failed to insert user %d: %w", i, err)
		}
		ids = append(ids, u.UUID)
	}
	return ids, nil
}

// InsertClub inserts a club presided by president with the given members.
func (g *TestDataGenerator) InsertClub(ctx context.Context, db bun.IDB, president uuid.UUID, members ...uuid.UUID) (uuid.UUID, error) {
	repo := clubdb.NewRepository(db)
	club := &clubdb.Club{
		Name:          g.ClubName(),
		Category:      clubdomain.DefaultCategory,
		PresidentUUID: president,
	}
	if err := repo.Create(ctx, db, club); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert club: %w", err)
	}

	add := func(user uuid.UUID, role clubdomain.Role) error {
		return repo.AddMember(ctx, db, &clubdb.Membership{
			ClubUUID: club.UUID,
			UserUUID: user,
			Role:     string(role),
		})
	}
	if err := add(president, clubdomain.RolePresident); err != nil {
		return uuid.Nil, fmt.Errorf("failed to add president: %w", err)
	}
	for _, m := range members {
		if err := add(m, clubdomain.RoleMember); err != nil {
			return uuid.Nil, fmt.Errorf("failed to add member: %w", err)
		}
	}
	return club.UUID, nil
}
