package club

import (
	"context"
	"fmt"
	"sync"

	clubservice "github.com/Black-And-White-Club/clubhouse/app/modules/club/application"
	clubhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/handlers"
	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	clubrouter "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/router"
	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/internal/eventbus"
	"github.com/Black-And-White-Club/clubhouse/internal/identity"
	"github.com/Black-And-White-Club/clubhouse/internal/observability"
	"github.com/Black-And-White-Club/clubhouse/internal/ratelimit"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the club module.
type Module struct {
	ClubService   clubservice.Service
	ClubRouter    *clubrouter.ClubRouter
	cancelFunc    context.CancelFunc
	observability *observability.Observability
}

// NewClubModule creates and initializes a new club module.
func NewClubModule(
	ctx context.Context,
	obs *observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	limiter *ratelimit.KeyedLimiter,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "club.NewClubModule initializing")

	// 1. Repositories; users are read through the user module's table.
	repo := clubdb.NewRepository(db)
	users := userdb.NewRepository(db)

	// 2. Service
	service := clubservice.NewClubService(repo, users, logger, obs.Metrics, tracer, db)

	// 3. Handlers
	handlers := clubhandlers.NewClubHandlers(service, identity.NewContextResolver(), logger, tracer)

	// 4. Router
	clubRouter := clubrouter.NewClubRouter(logger, router, eventBus, eventBus, tracer, limiter)
	if err := clubRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure club router: %w", err)
	}

	return &Module{
		ClubService:   service,
		ClubRouter:    clubRouter,
		observability: obs,
	}, nil
}

// Run starts the club module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting club module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Club module goroutine stopped")
}

// Close shuts down the club module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping club module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.ClubRouter != nil {
		if err := m.ClubRouter.Close(); err != nil {
			return fmt.Errorf("error closing ClubRouter: %w", err)
		}
	}

	logger.Info("Club module stopped")
	return nil
}
