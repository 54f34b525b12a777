package clubdomain

import (
	"strings"
)

// Role is a member's role within a club.
type Role string

const (
	RolePresident    Role = "President"
	RoleTreasurer    Role = "Treasurer"
	RoleHR           Role = "HR"
	RoleEventManager Role = "Event Manager"
	RoleMember       Role = "Member"
)

// Roles lists every valid role.
var Roles = []Role{RolePresident, RoleTreasurer, RoleHR, RoleEventManager, RoleMember}

// IsValid checks if the role is one of the enumerated roles.
func (r Role) IsValid() bool {
	switch r {
	case RolePresident, RoleTreasurer, RoleHR, RoleEventManager, RoleMember:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// ParseRole maps input to its canonical Role, ignoring case and surrounding
// whitespace, so "president" and "event manager" are accepted.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Roles {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return "", false
}

// Permission is a capability granted by a role.
type Permission string

const (
	PermCreateEvent       Permission = "create_event"
	PermEditEvent         Permission = "edit_event"
	PermDeleteEvent       Permission = "delete_event"
	PermManageBudget      Permission = "manage_budget"
	PermManageMembers     Permission = "manage_members"
	PermSendAnnouncements Permission = "send_announcements"
)

var rolePermissions = map[Role][]Permission{
	RolePresident: {
		PermCreateEvent, PermEditEvent, PermDeleteEvent,
		PermManageBudget, PermManageMembers, PermSendAnnouncements,
	},
	RoleTreasurer:    {PermManageBudget},
	RoleHR:           {PermManageMembers, PermSendAnnouncements},
	RoleEventManager: {PermCreateEvent, PermEditEvent, PermDeleteEvent, PermSendAnnouncements},
	RoleMember:       {},
}

// Permissions returns the capabilities granted by r.
func (r Role) Permissions() []Permission {
	perms := rolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// Can reports whether r grants p.
func (r Role) Can(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}
