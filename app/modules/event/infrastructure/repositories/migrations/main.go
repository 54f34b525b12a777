package eventmigrations

import "github.com/uptrace/bun/migrate"

// TableName is the bookkeeping table for event module migrations.
const TableName = "event_migrations"

var Migrations = migrate.NewMigrations()

func init() {
	// Derive each migration's ID from the registering file name.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
