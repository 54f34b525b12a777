package userdomain

import (
	"strings"
	"time"

	clubdomain "github.com/Black-And-White-Club/clubhouse/app/modules/club/domain"
	"github.com/Black-And-White-Club/clubhouse/internal/validation"
	"github.com/google/uuid"
)

// User is the user view. Clubs is derived from the membership relation,
// ordered by join time.
type User struct {
	UUID      uuid.UUID             `json:"uuid"`
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	Phone     string                `json:"phone,omitempty"`
	Clubs     []clubdomain.ClubRole `json:"clubs"`
	CreatedAt time.Time             `json:"created_at"`
}

// Registration is the input to user creation.
type Registration struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty" validate:"max=32"`
}

// Normalize trims every field and lower-cases the email.
func (r Registration) Normalize() Registration {
	return Registration{
		Name:  strings.TrimSpace(r.Name),
		Email: strings.ToLower(strings.TrimSpace(r.Email)),
		Phone: strings.TrimSpace(r.Phone),
	}
}

// Validate checks the required fields of a normalized registration.
func (r Registration) Validate() error {
	return validation.Struct(r)
}
