// Package clubevents is the message contract of the club module. Every
// request except info carries the caller in the actor_id metadata.
package clubevents

import (
	clubdomain "github.com/Black-And-White-Club/clubhouse/app/modules/club/domain"
)

// Subjects.
const (
	ClubCreateRequestedV1 = "club.create.requested.v1"
	ClubCreatedV1         = "club.created.v1"
	ClubCreateFailedV1    = "club.create.failed.v1"

	ClubJoinRequestedV1 = "club.join.requested.v1"
	ClubMemberJoinedV1  = "club.member.joined.v1"
	ClubJoinFailedV1    = "club.join.failed.v1"

	ClubLeaveRequestedV1 = "club.leave.requested.v1"
	ClubMemberLeftV1     = "club.member.left.v1"
	ClubLeaveFailedV1    = "club.leave.failed.v1"

	ClubRoleAssignRequestedV1 = "club.role.assign.requested.v1"
	ClubRoleAssignedV1        = "club.role.assigned.v1"
	ClubRoleAssignFailedV1    = "club.role.assign.failed.v1"

	ClubInfoRequestedV1 = "club.info.requested.v1"
	ClubInfoV1          = "club.info.v1"
	ClubInfoFailedV1    = "club.info.failed.v1"
)

// ClubCreateRequestedPayloadV1 creates a club founded by the caller.
type ClubCreateRequestedPayloadV1 struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// ClubMembershipRequestedPayloadV1 is the payload of join and leave requests.
type ClubMembershipRequestedPayloadV1 struct {
	ClubUUID string `json:"club_uuid"`
}

// ClubRoleAssignRequestedPayloadV1 assigns Role to UserUUID on behalf of the
// caller.
type ClubRoleAssignRequestedPayloadV1 struct {
	ClubUUID string `json:"club_uuid"`
	UserUUID string `json:"user_uuid"`
	Role     string `json:"role"`
}

// ClubInfoRequestedPayloadV1 asks for the club view.
type ClubInfoRequestedPayloadV1 struct {
	ClubUUID string `json:"club_uuid"`
}

// ClubPayloadV1 is the success payload of every club operation. UserUUID is
// the member the operation acted on, when there is one.
type ClubPayloadV1 struct {
	Club     *clubdomain.Club `json:"club"`
	UserUUID string           `json:"user_uuid,omitempty"`
	Message  string           `json:"message"`
}
