package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"invoiceapi/config"
	"invoiceapi/migrations"
	"invoiceapi/services/logger"

	"github.com/urfave/cli/v2"
)

func main() {
	config.LoadEnv()

	app := &cli.App{
		Name:  "migrate",
		Usage: "manage the invoice database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "postgres DSN",
				EnvVars: []string{"DATABASE_URL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "upgrade",
				Usage: "apply all pending migrations (head)",
				Action: withDriver(func(ctx context.Context, d *migrations.Driver) error {
					return d.Upgrade(ctx)
				}),
			},
			{
				Name:  "downgrade",
				Usage: "revert every migration (base)",
				Action: withDriver(func(ctx context.Context, d *migrations.Driver) error {
					return d.Downgrade(ctx)
				}),
			},
			{
				Name:  "status",
				Usage: "print current and latest schema version",
				Action: withDriver(func(ctx context.Context, d *migrations.Driver) error {
					current, latest, err := d.Status(ctx)
					if err != nil {
						return err
					}
					fmt.Printf("current=%d latest=%d\n", current, latest)
					return nil
				}),
			},
			{
				Name:  "revision",
				Usage: "create a new empty migration file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Required: true},
					&cli.StringFlag{Name: "dir", Value: "migrations/sql", Usage: "migration source directory"},
				},
				Action: func(c *cli.Context) error {
					path, err := migrations.CreateRevision(c.String("dir"), c.String("message"))
					if err != nil {
						return err
					}
					fmt.Println(path)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func withDriver(fn func(ctx context.Context, d *migrations.Driver) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		dsn := c.String("database-url")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}
		ctx := c.Context
		d, err := migrations.Open(ctx, dsn, logger.NewDefaultLogger(logger.InfoLevel, true))
		if err != nil {
			return err
		}
		defer d.Close(ctx)
		return fn(ctx, d)
	}
}
