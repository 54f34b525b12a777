package eventservice

import (
	"context"
	"log/slog"

	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/modules/event/eventtime"
	eventdb "github.com/Black-And-White-Club/clubhouse/app/modules/event/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/internal/observability"
	"github.com/Black-And-White-Club/clubhouse/internal/operation"
	"github.com/Black-And-White-Club/clubhouse/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// ClubDirectory reads clubs and memberships. It is backed by the club
// module's repository.
type ClubDirectory interface {
	GetByUUID(ctx context.Context, db bun.IDB, clubUUID uuid.UUID) (*clubdb.Club, error)
	GetMembership(ctx context.Context, db bun.IDB, clubUUID, userUUID uuid.UUID) (*clubdb.Membership, error)
}

// EventService implements the Service interface.
type EventService struct {
	repo    eventdb.Repository
	clubs   ClubDirectory
	parser  *eventtime.Parser
	clock   eventtime.Clock
	logger  *slog.Logger
	metrics observability.Metrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewEventService creates a new EventService. A nil clock reads the wall
// clock.
func NewEventService(
	repo eventdb.Repository,
	clubs ClubDirectory,
	parser *eventtime.Parser,
	clock eventtime.Clock,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	if parser == nil {
		parser = eventtime.NewParser("")
	}
	if clock == nil {
		clock = eventtime.RealClock{}
	}
	return &EventService{
		repo:    repo,
		clubs:   clubs,
		parser:  parser,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
	}
}

func (s *EventService) telemetry() operation.Telemetry {
	return operation.Telemetry{
		Service:       "EventService",
		IdentifierKey: "event_uuid",
		Logger:        s.logger,
		Metrics:       s.metrics,
		Tracer:        s.tracer,
	}
}

func withTelemetry[S any, F any](
	s *EventService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operation.Func[S, F],
) (results.OperationResult[S, F], error) {
	return operation.WithTelemetry(s.telemetry(), ctx, operationName, identifier, op)
}

func runInTx[S any, F any](s *EventService, ctx context.Context, fn operation.TxFunc[S, F]) (results.OperationResult[S, F], error) {
	return operation.RunInTx(ctx, s.db, fn)
}
