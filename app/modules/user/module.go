package user

import (
	"context"
	"fmt"
	"sync"

	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	userservice "github.com/Black-And-White-Club/clubhouse/app/modules/user/application"
	userhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/handlers"
	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
	userrouter "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/router"
	"github.com/Black-And-White-Club/clubhouse/internal/eventbus"
	"github.com/Black-And-White-Club/clubhouse/internal/observability"
	"github.com/Black-And-White-Club/clubhouse/internal/ratelimit"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the user module.
type Module struct {
	UserService   userservice.Service
	UserRouter    *userrouter.UserRouter
	cancelFunc    context.CancelFunc
	observability *observability.Observability
}

// NewUserModule creates and initializes a new user module.
func NewUserModule(
	ctx context.Context,
	obs *observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	limiter *ratelimit.KeyedLimiter,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "user.NewUserModule initializing")

	repo := userdb.NewRepository(db)
	memberships := clubdb.NewRepository(db)

	service := userservice.NewUserService(repo, memberships, logger, obs.Metrics, tracer, db)

	handlers := userhandlers.NewUserHandlers(service, logger, tracer)

	userRouter := userrouter.NewUserRouter(logger, router, eventBus, eventBus, tracer, limiter)
	if err := userRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure user router: %w", err)
	}

	return &Module{
		UserService:   service,
		UserRouter:    userRouter,
		observability: obs,
	}, nil
}

// Run starts the user module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting user module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "User module goroutine stopped")
}

// Close shuts down the user module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping user module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.UserRouter != nil {
		if err := m.UserRouter.Close(); err != nil {
			logger.Error("Error closing UserRouter from module", "error", err)
			return fmt.Errorf("error closing UserRouter: %w", err)
		}
	}

	logger.Info("User module stopped")
	return nil
}
