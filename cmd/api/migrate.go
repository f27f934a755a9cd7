package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strutynskyi/movie-catalog/internal/app"
	"github.com/strutynskyi/movie-catalog/internal/config"
)

// migrateCmd applies the embedded schema migrations. The DSN comes from the
// same sources as the server configuration.
func migrateCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, err := migrationDSN(cmd)
			if err != nil {
				return err
			}

			return app.MigrateUp(dsn)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("steps must be at least 1, got %d", steps)
			}

			dsn, err := migrationDSN(cmd)
			if err != nil {
				return err
			}

			return app.MigrateDown(dsn, steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.PersistentFlags().String("db-dsn", "", "PostgreSQL DSN")
	cmd.AddCommand(up, down)

	return cmd
}

func migrationDSN(cmd *cobra.Command) (string, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return "", err
	}

	if cfg.DB.DSN == "" {
		return "", errors.New("database DSN is required, set --db-dsn or CATALOG_DB_DSN")
	}

	return cfg.DB.DSN, nil
}
