package userservice

import (
	"context"
	"log/slog"

	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/internal/observability"
	"github.com/Black-And-White-Club/clubhouse/internal/operation"
	"github.com/Black-And-White-Club/clubhouse/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// MembershipReader reads the membership relation owned by the club module.
type MembershipReader interface {
	ListMembershipsForUser(ctx context.Context, db bun.IDB, userUUID uuid.UUID) ([]clubdb.Membership, error)
}

// UserService implements the Service interface.
type UserService struct {
	repo        userdb.Repository
	memberships MembershipReader
	logger      *slog.Logger
	metrics     observability.Metrics
	tracer      trace.Tracer
	db          *bun.DB
}

// NewUserService creates a new UserService.
func NewUserService(
	repo userdb.Repository,
	memberships MembershipReader,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		repo:        repo,
		memberships: memberships,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
		db:          db,
	}
}

func (s *UserService) telemetry() operation.Telemetry {
	return operation.Telemetry{
		Service:       "UserService",
		IdentifierKey: "user_uuid",
		Logger:        s.logger,
		Metrics:       s.metrics,
		Tracer:        s.tracer,
	}
}

func withTelemetry[S any, F any](
	s *UserService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operation.Func[S, F],
) (results.OperationResult[S, F], error) {
	return operation.WithTelemetry(s.telemetry(), ctx, operationName, identifier, op)
}

func runInTx[S any, F any](s *UserService, ctx context.Context, fn operation.TxFunc[S, F]) (results.OperationResult[S, F], error) {
	return operation.RunInTx(ctx, s.db, fn)
}
