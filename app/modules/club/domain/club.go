package clubdomain

import (
	"time"

	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/google/uuid"
)

// DefaultCategory is assigned to clubs created without one.
const DefaultCategory = "General"

// Member is one entry of a club's member list.
type Member struct {
	UserUUID    uuid.UUID    `json:"user_uuid"`
	Role        Role         `json:"role"`
	JoinedAt    time.Time    `json:"joined_at"`
	Permissions []Permission `json:"permissions"`
}

// Club is the club view returned by every club operation. Members and
// MemberCount are derived from the membership relation.
type Club struct {
	UUID          uuid.UUID `json:"uuid"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	PresidentUUID uuid.UUID `json:"president_uuid"`
	Members       []Member  `json:"members"`
	MemberCount   int       `json:"member_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Member returns the member entry for userUUID.
func (c *Club) Member(userUUID uuid.UUID) (Member, bool) {
	for _, m := range c.Members {
		if m.UserUUID == userUUID {
			return m, true
		}
	}
	return Member{}, false
}

// ClubRole is one entry of a user's club list.
type ClubRole struct {
	ClubUUID uuid.UUID `json:"club_uuid"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// AuthorizeRoleChange applies the role authority rules and returns the
// canonical role to store. Checks run in a fixed order: requester authority,
// target membership, role validity, self-demotion.
func AuthorizeRoleChange(presidentUUID, requesterUUID, targetUUID uuid.UUID, targetIsMember bool, newRole string) (Role, error) {
	if requesterUUID != presidentUUID {
		return "", apperrors.ErrForbidden
	}
	if !targetIsMember {
		return "", apperrors.Newf(apperrors.KindNotFound, apperrors.CodeMemberNotFound,
			"user %s is not a member of this club", targetUUID)
	}
	role, ok := ParseRole(newRole)
	if !ok {
		return "", apperrors.Newf(apperrors.KindValidation, apperrors.CodeInvalidRole,
			"invalid role %q: must be one of President, Treasurer, HR, Event Manager, Member", newRole)
	}
	if targetUUID == requesterUUID && role != RolePresident {
		return "", apperrors.ErrSelfDemotion
	}
	if targetUUID != requesterUUID && role == RolePresident {
		return "", apperrors.Newf(apperrors.KindValidation, apperrors.CodeInvalidRole,
			"a club has exactly one president")
	}
	return role, nil
}
