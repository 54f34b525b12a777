package event

import (
	"context"
	"fmt"
	"sync"

	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	eventservice "github.com/Black-And-White-Club/clubhouse/app/modules/event/application"
	"github.com/Black-And-White-Club/clubhouse/app/modules/event/eventtime"
	eventhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/event/infrastructure/handlers"
	eventdb "github.com/Black-And-White-Club/clubhouse/app/modules/event/infrastructure/repositories"
	eventrouter "github.com/Black-And-White-Club/clubhouse/app/modules/event/infrastructure/router"
	"github.com/Black-And-White-Club/clubhouse/internal/eventbus"
	"github.com/Black-And-White-Club/clubhouse/internal/identity"
	"github.com/Black-And-White-Club/clubhouse/internal/observability"
	"github.com/Black-And-White-Club/clubhouse/internal/ratelimit"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the event module.
type Module struct {
	EventService  eventservice.Service
	EventRouter   *eventrouter.EventRouter
	cancelFunc    context.CancelFunc
	observability *observability.Observability
}

// NewEventModule creates and initializes a new event module. defaultTimezone
// is used for event dates that name no timezone.
func NewEventModule(
	ctx context.Context,
	obs *observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	limiter *ratelimit.KeyedLimiter,
	db *bun.DB,
	defaultTimezone string,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "event.NewEventModule initializing")

	repo := eventdb.NewRepository(db)
	clubs := clubdb.NewRepository(db)
	parser := eventtime.NewParser(defaultTimezone)
	if _, err := parser.ResolveTimezone(""); err != nil {
		return nil, fmt.Errorf("invalid default timezone %q: %w", defaultTimezone, err)
	}

	service := eventservice.NewEventService(repo, clubs, parser, eventtime.RealClock{}, logger, obs.Metrics, tracer, db)

	handlers := eventhandlers.NewEventHandlers(service, identity.NewContextResolver(), logger, tracer)

	eventRouter := eventrouter.NewEventRouter(logger, router, eventBus, eventBus, tracer, limiter)
	if err := eventRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure event router: %w", err)
	}

	return &Module{
		EventService:  service,
		EventRouter:   eventRouter,
		observability: obs,
	}, nil
}

// Run starts the event module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting event module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Event module goroutine stopped")
}

// Close shuts down the event module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping event module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.EventRouter != nil {
		if err := m.EventRouter.Close(); err != nil {
			return fmt.Errorf("error closing EventRouter: %w", err)
		}
	}

	logger.Info("Event module stopped")
	return nil
}
