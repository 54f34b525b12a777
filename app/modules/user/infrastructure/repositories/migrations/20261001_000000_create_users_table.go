package usermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Print(" [up] creating users table")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS users (
				uuid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name VARCHAR(100) NOT NULL,
				email VARCHAR(255) NOT NULL,
				phone VARCHAR(32),
				created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
			);
			CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);
		`)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Print(" [down] dropping users table")
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS users;`)
		return err
	})
}
