package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Black-And-White-Club/clubhouse/config"
	"github.com/Black-And-White-Club/clubhouse/db/bundb"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	clubmigrations "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories/migrations"
	eventmigrations "github.com/Black-And-White-Club/clubhouse/app/modules/event/infrastructure/repositories/migrations"
	usermigrations "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories/migrations"
)

// moduleOrder is the order migrations run in. Rollback walks it backwards.
var moduleOrder = []string{"user", "club", "event"}

func main() {
	cliApp := &cli.App{
		Name:  "bun",
		Usage: "clubhouse database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			newMultiModuleDBCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// NewMigrators returns one migrator per module, each with its own
// bookkeeping table.
func NewMigrators(db *bun.DB) map[string]*migrate.Migrator {
	return map[string]*migrate.Migrator{
		"user":  newMigrator(db, usermigrations.Migrations, usermigrations.TableName),
		"club":  newMigrator(db, clubmigrations.Migrations, clubmigrations.TableName),
		"event": newMigrator(db, eventmigrations.Migrations, eventmigrations.TableName),
	}
}

func newMigrator(db *bun.DB, migrations *migrate.Migrations, table string) *migrate.Migrator {
	return migrate.NewMigrator(db, migrations,
		migrate.WithTableName(table),
		migrate.WithLocksTableName(table+"_locks"),
	)
}

// withMigrators opens the database for a single command run.
func withMigrators(c *cli.Context, fn func(ctx context.Context, migrators map[string]*migrate.Migrator) error) error {
	cfg, err := config.LoadConfigWith(c.String("config"), func(cfg *config.Config) {
		// migrations never touch the bus
		cfg.NATS.InMemory = true
	})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := bundb.Open(c.Context, cfg.Postgres, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(c.Context, NewMigrators(db))
}

func newMultiModuleDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, migrators map[string]*migrate.Migrator) error {
						for _, moduleName := range moduleOrder {
							fmt.Printf("Initializing migrations for module: %s\n", moduleName)
							if err := migrators[moduleName].Init(ctx); err != nil {
								return fmt.Errorf("failed to initialize migrations for module %s: %w", moduleName, err)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, migrators map[string]*migrate.Migrator) error {
						for _, moduleName := range moduleOrder {
							migrator := migrators[moduleName]
							if err := migrator.Lock(ctx); err != nil {
								return err
							}
							fmt.Printf("Running migrations for module: %s\n", moduleName)
							group, err := migrator.Migrate(ctx)
							_ = migrator.Unlock(ctx)
							if err != nil {
								return fmt.Errorf("failed to migrate module %s: %w", moduleName, err)
							}
							if group.IsZero() {
								fmt.Printf("No new migrations to run for module: %s\n", moduleName)
							} else {
								fmt.Printf("Migrated module: %s to %s\n", moduleName, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, migrators map[string]*migrate.Migrator) error {
						for i := len(moduleOrder) - 1; i >= 0; i-- {
							moduleName := moduleOrder[i]
							migrator := migrators[moduleName]
							if err := migrator.Lock(ctx); err != nil {
								return err
							}
							fmt.Printf("Rolling back migrations for module: %s\n", moduleName)
							group, err := migrator.Rollback(ctx)
							_ = migrator.Unlock(ctx)
							if err != nil {
								return fmt.Errorf("failed to roll back module %s: %w", moduleName, err)
							}
							if group.IsZero() {
								fmt.Printf("No groups to roll back for module: %s\n", moduleName)
							} else {
								fmt.Printf("Rolled back module: %s to %s\n", moduleName, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, migrators map[string]*migrate.Migrator) error {
						moduleName := c.Args().First()
						migrator, ok := migrators[moduleName]
						if !ok {
							return fmt.Errorf("invalid module name: %s", moduleName)
						}

						name := strings.Join(c.Args().Tail(), "_")
						mf, err := migrator.CreateGoMigration(ctx, name)
						if err != nil {
							return err
						}
						fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
						return nil
					})
				},
			},
			{
				Name:      "create_sql",
				Usage:     "create up and down SQL migrations",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, migrators map[string]*migrate.Migrator) error {
						moduleName := c.Args().First()
						migrator, ok := migrators[moduleName]
						if !ok {
							return fmt.Errorf("invalid module name: %s", moduleName)
						}

						name := strings.Join(c.Args().Tail(), "_")
						files, err := migrator.CreateSQLMigrations(ctx, name)
						if err != nil {
							return err
						}

						for _, mf := range files {
							fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
						}
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, migrators map[string]*migrate.Migrator) error {
						for _, moduleName := range moduleOrder {
							ms, err := migrators[moduleName].MigrationsWithStatus(ctx)
							if err != nil {
								return err
							}
							fmt.Printf("Migrations for module: %s\n", moduleName)
							fmt.Printf("  %s\n", ms)
							fmt.Printf("  Applied: %s\n", ms.Applied())
							fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
						}
						return nil
					})
				},
			},
		},
	}
}
