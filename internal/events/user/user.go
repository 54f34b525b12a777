// Package userevents is the message contract of the user module.
package userevents

import (
	userdomain "github.com/Black-And-White-Club/clubhouse/app/modules/user/domain"
)

// Subjects.
const (
	// UserCreateRequestedV1 asks for a new user registration.
	UserCreateRequestedV1 = "user.create.requested.v1"
	// UserCreatedV1 carries the registered user.
	UserCreatedV1 = "user.created.v1"
	// UserCreateFailedV1 carries a registration failure.
	UserCreateFailedV1 = "user.create.failed.v1"

	// UserInfoRequestedV1 asks for a user and their clubs.
	UserInfoRequestedV1 = "user.info.requested.v1"
	// UserInfoV1 carries the requested user.
	UserInfoV1 = "user.info.v1"
	// UserInfoFailedV1 carries a lookup failure.
	UserInfoFailedV1 = "user.info.failed.v1"
)

// UserCreateRequestedPayloadV1 is the payload of UserCreateRequestedV1.
type UserCreateRequestedPayloadV1 struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// UserInfoRequestedPayloadV1 is the payload of UserInfoRequestedV1.
type UserInfoRequestedPayloadV1 struct {
	UserUUID string `json:"user_uuid"`
}

// UserPayloadV1 is the success payload of every user operation.
type UserPayloadV1 struct {
	User    *userdomain.User `json:"user"`
	Message string           `json:"message"`
}
