package clubdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Club is a club row. Members are stored in club_memberships.
type Club struct {
	bun.BaseModel `bun:"table:clubs,alias:c"`
	UUID          uuid.UUID `bun:"uuid,pk,type:uuid,default:gen_random_uuid()"`
	Name          string    `bun:"name,notnull"`
	Category      string    `bun:"category,notnull"`
	PresidentUUID uuid.UUID `bun:"president_uuid,type:uuid,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Membership is the single source of truth for who belongs to a club.
// Both the club members view and the user clubs view are read from it.
type Membership struct {
	bun.BaseModel `bun:"table:club_memberships,alias:cm"`
	ID            int64     `bun:"id,pk,autoincrement"`
	ClubUUID      uuid.UUID `bun:"club_uuid,type:uuid,notnull"`
	UserUUID      uuid.UUID `bun:"user_uuid,type:uuid,notnull"`
	Role          string    `bun:"role,notnull"`
	JoinedAt      time.Time `bun:"joined_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
