package testutils

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	clubmigrations "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories/migrations"
	eventmigrations "github.com/Black-And-White-Club/clubhouse/app/modules/event/infrastructure/repositories/migrations"
	usermigrations "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories/migrations"
)

// appTables lists every application table, children first.
var appTables = []string{"event_waitlist", "event_attendees", "events", "club_memberships", "clubs", "users"}

// RunMigrations runs all module migrations in a deterministic order.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	orderedModules := []struct {
		name       string
		migrations *migrate.Migrations
		table      string
	}{
		{"user", usermigrations.Migrations, usermigrations.TableName},
		{"club", clubmigrations.Migrations, clubmigrations.TableName},
		{"event", eventmigrations.Migrations, eventmigrations.TableName},
	}

	for _, mod := range orderedModules {
		migrator := migrate.NewMigrator(db, mod.migrations,
			migrate.WithTableName(mod.table),
			migrate.WithLocksTableName(mod.table+"_locks"),
		)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to initialize %s migration tables: %w", mod.name, err)
		}
		group, err := migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.name, err)
		}
		if group.IsZero() {
			log.Printf("No %s migrations to run", mod.name)
		} else {
			log.Printf("Ran %s migrations group #%d", mod.name, group.ID)
		}
	}
	return nil
}

// TruncateTables truncates the specified tables.
func TruncateTables(ctx context.Context, db bun.IDB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}

	quoted := make([]string, len(tables))
	for i, table := range tables {
		quoted[i] = fmt.Sprintf(`"%s"`, table)
	}

	query := "TRUNCATE TABLE " + strings.Join(quoted, ", ") + " CASCADE"
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables %v: %w", tables, err)
	}
	return nil
}

// CleanAllIntegrationTables truncates all tables for isolation between tests.
func CleanAllIntegrationTables(ctx context.Context, db bun.IDB) error {
	return TruncateTables(ctx, db, appTables...)
}
