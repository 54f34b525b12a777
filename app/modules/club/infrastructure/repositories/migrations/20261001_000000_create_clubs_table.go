package clubmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Print(" [up] creating clubs table")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS clubs (
				uuid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name VARCHAR(100) NOT NULL,
				category VARCHAR(50) NOT NULL DEFAULT 'General',
				president_uuid UUID NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_clubs_president_uuid ON clubs(president_uuid);
		`)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Print(" [down] dropping clubs table")
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS clubs;`)
		return err
	})
}
