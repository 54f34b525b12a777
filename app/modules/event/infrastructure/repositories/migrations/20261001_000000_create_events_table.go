package eventmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Print(" [up] creating events table")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS events (
				uuid UUID PRIMARY KEY,
				club_uuid UUID NOT NULL,
				title VARCHAR(200) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				location VARCHAR(200) NOT NULL DEFAULT '',
				starts_at TIMESTAMPTZ NOT NULL,
				max_attendees INTEGER NULL CHECK (max_attendees IS NULL OR max_attendees > 0),
				created_by UUID NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_events_club_starts ON events(club_uuid, starts_at);
		`)
		if err != nil {
			return fmt.Errorf("failed to create events table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Print(" [down] dropping events table")
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS events CASCADE;`)
		return err
	})
}
