// Package migrations owns the versioned database schema. SQL files under
// sql/ are embedded into the binary and applied with tern; the version is
// stored in the schema_version table.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"invoiceapi/services/logger"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
)

//go:embed sql/*.sql
var embedded embed.FS

const versionTable = "schema_version"

// Files returns the embedded migration directory.
func Files() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

// Driver runs migrations over a single connection.
type Driver struct {
	conn     *pgx.Conn
	migrator *tern.Migrator
	logger   logger.Logger
}

// Open connects to dsn and loads the embedded migrations.
func Open(ctx context.Context, dsn string, log logger.Logger) (*Driver, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("constructing database migrator: %w", err)
	}
	if err := m.LoadMigrations(Files()); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("loading database migrations: %w", err)
	}

	m.OnStart = func(sequence int32, name, direction, _ string) {
		log.Info("migration %03d %s (%s)", sequence, name, direction)
	}

	return &Driver{conn: conn, migrator: m, logger: log}, nil
}

func (d *Driver) Close(ctx context.Context) error {
	return d.conn.Close(ctx)
}

// Latest is the version reached after all migrations are applied.
func (d *Driver) Latest() int32 {
	return int32(len(d.migrator.Migrations))
}

// Status returns the applied and latest versions.
func (d *Driver) Status(ctx context.Context) (current, latest int32, err error) {
	current, err = d.migrator.GetCurrentVersion(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("retrieving current database migration version: %w", err)
	}
	return current, d.Latest(), nil
}

// Upgrade migrates to head.
func (d *Driver) Upgrade(ctx context.Context) error {
	from, _, err := d.Status(ctx)
	if err != nil {
		return err
	}
	if err := d.migrator.Migrate(ctx); err != nil {
		return err
	}
	if from == d.Latest() {
		d.logger.Info("database schema up to date, version %d", from)
	} else {
		d.logger.Info("migrated database schema, from %d to %d", from, d.Latest())
	}
	return nil
}

// Downgrade reverts every migration, back to version 0 (base).
func (d *Driver) Downgrade(ctx context.Context) error {
	from, _, err := d.Status(ctx)
	if err != nil {
		return err
	}
	if err := d.migrator.MigrateTo(ctx, 0); err != nil {
		return err
	}
	d.logger.Info("downgraded database schema, from %d to 0", from)
	return nil
}
