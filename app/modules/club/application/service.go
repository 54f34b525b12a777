package clubservice

import (
	"context"
	"log/slog"

	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/internal/observability"
	"github.com/Black-And-White-Club/clubhouse/internal/operation"
	"github.com/Black-And-White-Club/clubhouse/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// UserDirectory answers whether a user exists. It is backed by the user
// module's repository.
type UserDirectory interface {
	Exists(ctx context.Context, db bun.IDB, userUUID uuid.UUID) (bool, error)
}

// ClubService implements the Service interface.
type ClubService struct {
	repo    clubdb.Repository
	users   UserDirectory
	logger  *slog.Logger
	metrics observability.Metrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewClubService creates a new ClubService.
func NewClubService(
	repo clubdb.Repository,
	users UserDirectory,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ClubService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClubService{
		repo:    repo,
		users:   users,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
	}
}

func (s *ClubService) telemetry() operation.Telemetry {
	return operation.Telemetry{
		Service:       "ClubService",
		IdentifierKey: "club_uuid",
		Logger:        s.logger,
		Metrics:       s.metrics,
		Tracer:        s.tracer,
	}
}

func withTelemetry[S any, F any](
	s *ClubService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operation.Func[S, F],
) (results.OperationResult[S, F], error) {
	return operation.WithTelemetry(s.telemetry(), ctx, operationName, identifier, op)
}

func runInTx[S any, F any](s *ClubService, ctx context.Context, fn operation.TxFunc[S, F]) (results.OperationResult[S, F], error) {
	return operation.RunInTx(ctx, s.db, fn)
}
