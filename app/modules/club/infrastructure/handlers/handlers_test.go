package clubhandlers

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	clubservice "github.com/Black-And-White-Club/clubhouse/app/modules/club/application"
	clubdomain "github.com/Black-And-White-Club/clubhouse/app/modules/club/domain"
	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/Black-And-White-Club/clubhouse/internal/events"
	clubevents "github.com/Black-And-White-Club/clubhouse/internal/events/club"
	"github.com/Black-And-White-Club/clubhouse/internal/handlerwrapper"
	"github.com/Black-And-White-Club/clubhouse/internal/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestHandlers(svc *FakeClubService) Handlers {
	return NewClubHandlers(svc, identity.NewContextResolver(), slog.Default(), noop.NewTracerProvider().Tracer("test"))
}

func failureCode(t *testing.T, r handlerwrapper.Result) apperrors.Code {
	t.Helper()
	failure, ok := r.Payload.(*events.FailurePayload)
	require.True(t, ok, "expected failure payload, got %T", r.Payload)
	return failure.Code
}

func TestHandleCreateClub(t *testing.T) {
	actor := uuid.New()

	tests := []struct {
		name         string
		ctx          context.Context
		setupService func(*FakeClubService)
		wantTopic    string
		wantCode     apperrors.Code
		wantTrace    []string
		wantErr      bool
	}{
		{
			name:         "created",
			ctx:          identity.WithActor(context.Background(), actor),
			setupService: func(f *FakeClubService) {},
			wantTopic:    clubevents.ClubCreatedV1,
			wantTrace:    []string{"CreateClub"},
		},
		{
			name:         "no actor",
			ctx:          context.Background(),
			setupService: func(f *FakeClubService) {},
			wantTopic:    clubevents.ClubCreateFailedV1,
			wantCode:     apperrors.CodeUnauthenticated,
			wantTrace:    []string{},
		},
		{
			name: "founder unknown",
			ctx:  identity.WithActor(context.Background(), actor),
			setupService: func(f *FakeClubService) {
				f.CreateClubFunc = func(ctx context.Context, founderUUID uuid.UUID, name, category string) (*clubservice.ClubResult, error) {
					return nil, apperrors.ErrUserNotFound
				}
			},
			wantTopic: clubevents.ClubCreateFailedV1,
			wantCode:  apperrors.CodeUserNotFound,
			wantTrace: []string{"CreateClub"},
		},
		{
			name: "infrastructure error",
			ctx:  identity.WithActor(context.Background(), actor),
			setupService: func(f *FakeClubService) {
				f.CreateClubFunc = func(ctx context.Context, founderUUID uuid.UUID, name, category string) (*clubservice.ClubResult, error) {
					return nil, errors.New("connection reset")
				}
			},
			wantErr:   true,
			wantTrace: []string{"CreateClub"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeClubService()
			tt.setupService(svc)
			h := newTestHandlers(svc)

			results, err := h.HandleCreateClub(tt.ctx, &clubevents.ClubCreateRequestedPayloadV1{Name: "Chess"})
			assert.Equal(t, tt.wantTrace, svc.Trace())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, results)
				return
			}
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, tt.wantTopic, results[0].Topic)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, failureCode(t, results[0]))
				return
			}
			success, ok := results[0].Payload.(*clubevents.ClubPayloadV1)
			require.True(t, ok)
			assert.Equal(t, actor, success.Club.PresidentUUID)
			assert.Equal(t, actor.String(), success.UserUUID)
		})
	}
}

func TestHandleJoinAndLeave(t *testing.T) {
	actor := uuid.New()
	clubUUID := uuid.New()
	authed := identity.WithActor(context.Background(), actor)

	t.Run("join publishes member joined", func(t *testing.T) {
		svc := NewFakeClubService()
		var gotClub, gotUser uuid.UUID
		svc.JoinClubFunc = func(ctx context.Context, c, u uuid.UUID) (*clubservice.ClubResult, error) {
			gotClub, gotUser = c, u
			return &clubservice.ClubResult{Club: &clubdomain.Club{UUID: c, MemberCount: 2}, Message: "joined club"}, nil
		}

		results, err := newTestHandlers(svc).HandleJoinClub(authed, &clubevents.ClubMembershipRequestedPayloadV1{ClubUUID: clubUUID.String()})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, clubevents.ClubMemberJoinedV1, results[0].Topic)
		assert.Equal(t, clubUUID, gotClub)
		assert.Equal(t, actor, gotUser)
	})

	t.Run("join already member", func(t *testing.T) {
		svc := NewFakeClubService()
		svc.JoinClubFunc = func(ctx context.Context, c, u uuid.UUID) (*clubservice.ClubResult, error) {
			return nil, apperrors.ErrAlreadyMember
		}

		results, err := newTestHandlers(svc).HandleJoinClub(authed, &clubevents.ClubMembershipRequestedPayloadV1{ClubUUID: clubUUID.String()})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, clubevents.ClubJoinFailedV1, results[0].Topic)
		assert.Equal(t, apperrors.CodeAlreadyMember, failureCode(t, results[0]))
	})

	t.Run("join malformed club uuid", func(t *testing.T) {
		svc := NewFakeClubService()

		results, err := newTestHandlers(svc).HandleJoinClub(authed, &clubevents.ClubMembershipRequestedPayloadV1{ClubUUID: "chess"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, apperrors.CodeInvalidArgument, failureCode(t, results[0]))
		assert.Empty(t, svc.Trace())
	})

	t.Run("leave publishes member left", func(t *testing.T) {
		svc := NewFakeClubService()

		results, err := newTestHandlers(svc).HandleLeaveClub(authed, &clubevents.ClubMembershipRequestedPayloadV1{ClubUUID: clubUUID.String()})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, clubevents.ClubMemberLeftV1, results[0].Topic)
		assert.Equal(t, []string{"LeaveClub"}, svc.Trace())
	})

	t.Run("president cannot leave", func(t *testing.T) {
		svc := NewFakeClubService()
		svc.LeaveClubFunc = func(ctx context.Context, c, u uuid.UUID) (*clubservice.ClubResult, error) {
			return nil, apperrors.ErrPresidentCannotLeave
		}

		results, err := newTestHandlers(svc).HandleLeaveClub(authed, &clubevents.ClubMembershipRequestedPayloadV1{ClubUUID: clubUUID.String()})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, clubevents.ClubLeaveFailedV1, results[0].Topic)
		assert.Equal(t, apperrors.CodePresidentCannotLeave, failureCode(t, results[0]))
	})
}

func TestHandleAssignRole(t *testing.T) {
	actor := uuid.New()
	target := uuid.New()
	clubUUID := uuid.New()

	tests := []struct {
		name         string
		payload      clubevents.ClubRoleAssignRequestedPayloadV1
		setupService func(*FakeClubService)
		wantTopic    string
		wantCode     apperrors.Code
	}{
		{
			name:         "assigned",
			payload:      clubevents.ClubRoleAssignRequestedPayloadV1{ClubUUID: clubUUID.String(), UserUUID: target.String(), Role: "Treasurer"},
			setupService: func(f *FakeClubService) {},
			wantTopic:    clubevents.ClubRoleAssignedV1,
		},
		{
			name:         "malformed target",
			payload:      clubevents.ClubRoleAssignRequestedPayloadV1{ClubUUID: clubUUID.String(), UserUUID: "bob", Role: "Treasurer"},
			setupService: func(f *FakeClubService) {},
			wantTopic:    clubevents.ClubRoleAssignFailedV1,
			wantCode:     apperrors.CodeInvalidArgument,
		},
		{
			name:    "forbidden",
			payload: clubevents.ClubRoleAssignRequestedPayloadV1{ClubUUID: clubUUID.String(), UserUUID: target.String(), Role: "Treasurer"},
			setupService: func(f *FakeClubService) {
				f.AssignRoleFunc = func(ctx context.Context, c, tgt uuid.UUID, role string, requester uuid.UUID) (*clubservice.ClubResult, error) {
					return nil, apperrors.ErrForbidden
				}
			},
			wantTopic: clubevents.ClubRoleAssignFailedV1,
			wantCode:  apperrors.CodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeClubService()
			tt.setupService(svc)
			h := newTestHandlers(svc)

			payload := tt.payload
			results, err := h.HandleAssignRole(identity.WithActor(context.Background(), actor), &payload)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, tt.wantTopic, results[0].Topic)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, failureCode(t, results[0]))
				return
			}
			success, ok := results[0].Payload.(*clubevents.ClubPayloadV1)
			require.True(t, ok)
			assert.Equal(t, target.String(), success.UserUUID)
			assert.Equal(t, "role updated to Treasurer", success.Message)
		})
	}
}

func TestHandleClubInfoRequest(t *testing.T) {
	clubUUID := uuid.New()

	t.Run("found with reply_to", func(t *testing.T) {
		svc := NewFakeClubService()
		ctx := context.WithValue(context.Background(), handlerwrapper.CtxKeyReplyTo, "_INBOX.club")

		results, err := newTestHandlers(svc).HandleClubInfoRequest(ctx, &clubevents.ClubInfoRequestedPayloadV1{ClubUUID: clubUUID.String()})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "_INBOX.club", results[0].Topic)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewFakeClubService()
		svc.GetClubFunc = func(ctx context.Context, id uuid.UUID) (*clubdomain.Club, error) {
			return nil, apperrors.ErrClubNotFound
		}

		results, err := newTestHandlers(svc).HandleClubInfoRequest(context.Background(), &clubevents.ClubInfoRequestedPayloadV1{ClubUUID: clubUUID.String()})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, clubevents.ClubInfoFailedV1, results[0].Topic)
		assert.Equal(t, apperrors.CodeClubNotFound, failureCode(t, results[0]))
	})
}
