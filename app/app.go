package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Black-And-White-Club/clubhouse/app/modules/club"
	"github.com/Black-And-White-Club/clubhouse/app/modules/event"
	"github.com/Black-And-White-Club/clubhouse/app/modules/user"
	"github.com/Black-And-White-Club/clubhouse/config"
	"github.com/Black-And-White-Club/clubhouse/db/bundb"
	"github.com/Black-And-White-Club/clubhouse/internal/eventbus"
	"github.com/Black-And-White-Club/clubhouse/internal/observability"
	"github.com/Black-And-White-Club/clubhouse/internal/ops"
	"github.com/Black-And-White-Club/clubhouse/internal/ratelimit"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// App wires the database, the event bus and the domain modules together.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Router        *message.Router
	UserModule    *user.Module
	ClubModule    *club.Module
	EventModule   *event.Module
	Ops           *ops.Server

	closeOnce sync.Once
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs, err := observability.New(config.ToObsConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Logger

	app := &App{Config: cfg, Observability: obs}

	app.DB, err = bundb.Open(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.NATS.InMemory {
		logger.WarnContext(ctx, "Using in-memory event bus; messages are not durable")
		app.EventBus = eventbus.NewInMemoryEventBus(logger)
	} else {
		bus, err := eventbus.NewNATSEventBus(ctx, eventbus.NATSConfig{
			URL:        cfg.NATS.URL,
			QueueGroup: cfg.NATS.QueueGroup,
			AckWait:    cfg.NATS.AckWait,
		}, logger)
		if err != nil {
			_ = app.DB.Close()
			return nil, fmt.Errorf("failed to initialize event bus: %w", err)
		}
		app.EventBus = bus
	}

	app.Router, err = newRouter(obs)
	if err != nil {
		app.closeInfra()
		return nil, err
	}

	var limiter *ratelimit.KeyedLimiter
	if cfg.Events.ActorRateLimit > 0 {
		limiter = ratelimit.NewKeyedLimiter(rate.Limit(cfg.Events.ActorRateLimit), cfg.Events.ActorRateLimitBurst)
	}

	if err := app.initModules(ctx, limiter); err != nil {
		app.closeInfra()
		return nil, err
	}

	var busHealth ops.HealthChecker
	if hc, ok := app.EventBus.(ops.HealthChecker); ok {
		busHealth = hc
	}
	app.Ops = ops.NewServer(ops.Config{
		Address:        cfg.Ops.Address,
		RateLimit:      cfg.Ops.RateLimit,
		RateLimitBurst: cfg.Ops.RateLimitBurst,
	}, app.DB, busHealth, obs.Registry, logger)

	return app, nil
}

func newRouter(obs *observability.Observability) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: 30 * time.Second,
	}, watermill.NewSlogLogger(obs.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}

	metrics.NewPrometheusMetricsBuilder(obs.Registry, "", "").AddPrometheusRouterMetrics(router)

	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			Logger:          watermill.NewSlogLogger(obs.Logger),
		}.Middleware,
	)
	return router, nil
}

func (app *App) initModules(ctx context.Context, limiter *ratelimit.KeyedLimiter) error {
	obs := app.Observability
	var err error

	app.UserModule, err = user.NewUserModule(ctx, obs, app.EventBus, app.Router, limiter, app.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize user module: %w", err)
	}

	app.ClubModule, err = club.NewClubModule(ctx, obs, app.EventBus, app.Router, limiter, app.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize club module: %w", err)
	}

	app.EventModule, err = event.NewEventModule(ctx, obs, app.EventBus, app.Router, limiter, app.DB, app.Config.Events.DefaultTimezone)
	if err != nil {
		return fmt.Errorf("failed to initialize event module: %w", err)
	}

	return nil
}

// Run starts the message router, the modules and the ops server, and blocks
// until ctx is cancelled or one of them fails.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.Router.Run(ctx); err != nil {
			return fmt.Errorf("message router stopped: %w", err)
		}
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(3)
	go app.UserModule.Run(ctx, &wg)
	go app.ClubModule.Run(ctx, &wg)
	go app.EventModule.Run(ctx, &wg)

	g.Go(func() error {
		return app.Ops.Run(ctx)
	})

	logger.InfoContext(ctx, "Clubhouse started",
		slog.String("version", config.Version),
		slog.String("ops_address", app.Config.Ops.Address),
	)

	err := g.Wait()
	wg.Wait()
	return err
}

// Close releases the router, the modules and the infrastructure connections.
func (app *App) Close() error {
	var errs []error
	app.closeOnce.Do(func() {
		logger := app.Observability.Logger
		logger.Info("Shutting down clubhouse")

		if app.EventModule != nil {
			errs = append(errs, app.EventModule.Close())
		}
		if app.ClubModule != nil {
			errs = append(errs, app.ClubModule.Close())
		}
		if app.UserModule != nil {
			errs = append(errs, app.UserModule.Close())
		}
		errs = append(errs, app.closeInfra())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs = append(errs, app.Observability.Shutdown(ctx))
	})
	return errors.Join(errs...)
}

func (app *App) closeInfra() error {
	var errs []error
	if app.Router != nil {
		errs = append(errs, app.Router.Close())
	}
	if app.EventBus != nil {
		errs = append(errs, app.EventBus.Close())
	}
	if app.DB != nil {
		errs = append(errs, app.DB.Close())
	}
	return errors.Join(errs...)
}
