// Package events holds the payload shapes shared by every module's message
// contract. Module-specific subjects and payloads live in the subpackages.
package events

import (
	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
)

// FailurePayload is published on a request's failure subject.
type FailurePayload struct {
	Kind    apperrors.Kind `json:"kind"`
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

// FailureFrom converts err into a FailurePayload. Errors that are not
// *apperrors.Error are reported as validation failures with the raw message.
func FailureFrom(err error) *FailurePayload {
	if appErr, ok := apperrors.As(err); ok {
		return &FailurePayload{
			Kind:    appErr.Kind,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}
	return &FailurePayload{
		Kind:    apperrors.KindValidation,
		Code:    apperrors.CodeInvalidArgument,
		Message: err.Error(),
	}
}
