package eventhandlers

import (
	"context"

	attendanceevents "github.com/Black-And-White-Club/clubhouse/internal/events/attendance"
	"github.com/Black-And-White-Club/clubhouse/internal/handlerwrapper"
)

// Handlers defines the interface for event handlers.
type Handlers interface {
	HandleCreateEvent(ctx context.Context, payload *attendanceevents.EventCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRegister(ctx context.Context, payload *attendanceevents.EventAttendanceRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCheckIn(ctx context.Context, payload *attendanceevents.EventAttendanceRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCancel(ctx context.Context, payload *attendanceevents.EventAttendanceRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleEventInfoRequest(ctx context.Context, payload *attendanceevents.EventInfoRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
