//go:build integration

package eventintegrationtests

import (
	"context"
	"sync"
	"testing"
	"time"

	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	eventservice "github.com/Black-And-White-Club/clubhouse/app/modules/event/application"
	"github.com/Black-And-White-Club/clubhouse/app/modules/event/eventtime"
	eventdb "github.com/Black-And-White-Club/clubhouse/app/modules/event/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/integration_tests/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDeps holds dependencies needed by individual tests.
type TestDeps struct {
	Ctx     context.Context
	Service *eventservice.EventService
	Data    *testutils.TestDataGenerator
}

// SetupTestEventService truncates the tables and returns a service over the
// shared database.
func SetupTestEventService(t *testing.T) TestDeps {
	t.Helper()
	require.NoError(t, testEnv.Reset())

	service := newEventService(eventtime.RealClock{})

	ctx, cancel := context.WithTimeout(testEnv.Ctx, 30*time.Second)
	t.Cleanup(cancel)

	return TestDeps{Ctx: ctx, Service: service, Data: testutils.NewTestDataGenerator()}
}

func newEventService(clock eventtime.Clock) *eventservice.EventService {
	obs := testEnv.Observability()
	return eventservice.NewEventService(
		eventdb.NewRepository(testEnv.DB),
		clubdb.NewRepository(testEnv.DB),
		eventtime.NewParser("UTC"),
		clock,
		obs.Logger,
		obs.Metrics,
		obs.Tracer,
		testEnv.DB,
	)
}

// manualClock returns whatever instant was last set.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// seedEvent creates a club whose president and members are fresh users, and
// an event in it with the given capacity. It returns the event UUID and the
// member UUIDs (president first).
func seedEvent(t *testing.T, deps TestDeps, members int, capacity *int) (uuid.UUID, []uuid.UUID) {
	t.Helper()

	users, err := deps.Data.InsertUsers(deps.Ctx, testEnv.DB, members)
	require.NoError(t, err)
	clubUUID, err := deps.Data.InsertClub(deps.Ctx, testEnv.DB, users[0], users[1:]...)
	require.NoError(t, err)

	res, err := deps.Service.CreateEvent(deps.Ctx, eventservice.CreateEventRequest{
		ClubUUID:     clubUUID,
		CreatorUUID:  users[0],
		Title:        deps.Data.EventTitle(),
		Location:     "Main Hall",
		Date:         time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		MaxAttendees: capacity,
	})
	require.NoError(t, err)
	return res.Event.UUID, users
}

func capacity(n int) *int { return &n }
