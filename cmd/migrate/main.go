// Comando migrate: aplica o revierte el esquema PostgreSQL embebido.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/agromarket-api/internal/infrastructure/postgres"
	"github.com/jhoicas/agromarket-api/pkg/config"
	"github.com/jhoicas/agromarket-api/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "migraciones del esquema de AgroMarket",
		Before: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})
			c.App.Metadata = map[string]interface{}{"dsn": cfg.DB.ConnectionString()}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "aplica todas las migraciones pendientes",
				Action: withMigrator(func(c *cli.Context, m *postgres.Migrator) error {
					return m.Up()
				}),
			},
			{
				Name:  "down",
				Usage: "revierte todas las migraciones",
				Action: withMigrator(func(c *cli.Context, m *postgres.Migrator) error {
					return m.Down()
				}),
			},
			{
				Name:  "version",
				Usage: "muestra la versión actual del esquema",
				Action: withMigrator(func(c *cli.Context, m *postgres.Migrator) error {
					v, dirty, err := m.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "version=%d dirty=%t\n", v, dirty)
					return nil
				}),
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withMigrator abre el migrador, ejecuta fn y lo cierra.
func withMigrator(fn func(*cli.Context, *postgres.Migrator) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		dsn, _ := c.App.Metadata["dsn"].(string)
		m, err := postgres.NewMigrator(dsn)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer func() { _ = m.Close() }()
		if err := fn(c, m); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		return nil
	}
}
