package clubmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Print(" [up] creating club_memberships table")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS club_memberships (
					id BIGSERIAL PRIMARY KEY,
					club_uuid UUID NOT NULL REFERENCES clubs(uuid) ON DELETE CASCADE,
					user_uuid UUID NOT NULL,
					role VARCHAR(32) NOT NULL DEFAULT 'Member',
					joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT uq_club_memberships_club_user UNIQUE (club_uuid, user_uuid),
					CONSTRAINT chk_club_memberships_role CHECK (role IN ('President', 'Treasurer', 'HR', 'Event Manager', 'Member'))
				);
			`); err != nil {
				return fmt.Errorf("failed to create club_memberships table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_club_memberships_user_uuid ON club_memberships(user_uuid, joined_at);
				CREATE INDEX IF NOT EXISTS idx_club_memberships_club_joined ON club_memberships(club_uuid, joined_at);
			`); err != nil {
				return fmt.Errorf("failed to create club_memberships indexes: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Print(" [down] dropping club_memberships table")
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS club_memberships;`)
		return err
	})
}
