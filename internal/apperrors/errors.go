// Package apperrors defines the typed failures returned by the club and event
// services. Every failure carries a Kind (the taxonomy callers switch on) and a
// stable Code (what clients match against).
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindAuthorization Kind = "authorization"
	KindConflict      Kind = "conflict"
)

// Code is a stable, machine-checkable failure identifier.
type Code string

const (
	CodeInvalidArgument      Code = "INVALID_ARGUMENT"
	CodeInvalidRole          Code = "INVALID_ROLE"
	CodeSelfDemotion         Code = "SELF_DEMOTION"
	CodeNotRegistered        Code = "NOT_REGISTERED"
	CodePresidentCannotLeave Code = "PRESIDENT_CANNOT_LEAVE"
	CodeEventInPast          Code = "EVENT_IN_PAST"

	CodeUserNotFound   Code = "USER_NOT_FOUND"
	CodeClubNotFound   Code = "CLUB_NOT_FOUND"
	CodeEventNotFound  Code = "EVENT_NOT_FOUND"
	CodeMemberNotFound Code = "MEMBER_NOT_FOUND"
	CodeNotMember      Code = "NOT_MEMBER"

	CodeForbidden       Code = "FORBIDDEN"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeRateLimited     Code = "RATE_LIMITED"

	CodeAlreadyMember     Code = "ALREADY_MEMBER"
	CodeAlreadyRegistered Code = "ALREADY_REGISTERED"
	CodeEmailTaken        Code = "EMAIL_TAKEN"
)

// Error is a typed application failure.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Cause   error
}

// New creates an Error with the given kind, code and message.
func New(kind Kind, code Code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, code Code, format string, args ...any) *Error {
	return New(kind, code, fmt.Sprintf(format, args...))
}

// Wrap creates an Error that keeps cause in its chain.
func Wrap(cause error, kind Kind, code Code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error by code, so sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// Sentinels for errors.Is comparisons. Messages on returned errors may differ.
var (
	ErrInvalidArgument      = New(KindValidation, CodeInvalidArgument, "invalid argument")
	ErrInvalidRole          = New(KindValidation, CodeInvalidRole, "invalid role")
	ErrSelfDemotion         = New(KindValidation, CodeSelfDemotion, "the president cannot demote themselves")
	ErrNotRegistered        = New(KindValidation, CodeNotRegistered, "user is not registered for this event")
	ErrPresidentCannotLeave = New(KindValidation, CodePresidentCannotLeave, "the president cannot leave the club")
	ErrEventInPast          = New(KindValidation, CodeEventInPast, "event date must be in the future")

	ErrUserNotFound   = New(KindNotFound, CodeUserNotFound, "user not found")
	ErrClubNotFound   = New(KindNotFound, CodeClubNotFound, "club not found")
	ErrEventNotFound  = New(KindNotFound, CodeEventNotFound, "event not found")
	ErrMemberNotFound = New(KindNotFound, CodeMemberNotFound, "member not found in club")
	ErrNotMember      = New(KindNotFound, CodeNotMember, "user is not a member of this club")

	ErrForbidden       = New(KindAuthorization, CodeForbidden, "only the club president can perform this action")
	ErrUnauthenticated = New(KindAuthorization, CodeUnauthenticated, "authentication required")
	ErrRateLimited     = New(KindAuthorization, CodeRateLimited, "too many requests")

	ErrAlreadyMember     = New(KindConflict, CodeAlreadyMember, "user is already a member of this club")
	ErrAlreadyRegistered = New(KindConflict, CodeAlreadyRegistered, "user is already registered or waitlisted for this event")
	ErrEmailTaken        = New(KindConflict, CodeEmailTaken, "user already exists")
)

// Invalid returns a validation error for a malformed or missing field.
func Invalid(format string, args ...any) *Error {
	return Newf(KindValidation, CodeInvalidArgument, format, args...)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return ""
}

// CodeOf returns the Code of err, or "" if err is not an *Error.
func CodeOf(err error) Code {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ""
}
