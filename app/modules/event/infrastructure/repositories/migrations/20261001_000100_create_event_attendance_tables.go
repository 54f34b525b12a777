package eventmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Print(" [up] creating event_attendees and event_waitlist tables")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS event_attendees (
					id BIGSERIAL PRIMARY KEY,
					event_uuid UUID NOT NULL REFERENCES events(uuid) ON DELETE CASCADE,
					user_uuid UUID NOT NULL,
					status VARCHAR(16) NOT NULL DEFAULT 'registered',
					registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					checked_in_at TIMESTAMPTZ NULL,
					CONSTRAINT uq_event_attendees_event_user UNIQUE (event_uuid, user_uuid),
					CONSTRAINT chk_event_attendees_status CHECK (status IN ('registered', 'checked_in'))
				);
				CREATE INDEX IF NOT EXISTS idx_event_attendees_order ON event_attendees(event_uuid, id);
			`); err != nil {
				return fmt.Errorf("failed to create event_attendees table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS event_waitlist (
					id BIGSERIAL PRIMARY KEY,
					event_uuid UUID NOT NULL REFERENCES events(uuid) ON DELETE CASCADE,
					user_uuid UUID NOT NULL,
					added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT uq_event_waitlist_event_user UNIQUE (event_uuid, user_uuid)
				);
				CREATE INDEX IF NOT EXISTS idx_event_waitlist_order ON event_waitlist(event_uuid, id);
			`); err != nil {
				return fmt.Errorf("failed to create event_waitlist table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Print(" [down] dropping event_attendees and event_waitlist tables")
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS event_waitlist; DROP TABLE IF EXISTS event_attendees;`)
		return err
	})
}
