package cmd

import (
	"errors"
	"fmt"

	"goodwill-valuation/config"
	"goodwill-valuation/migrations"
	"goodwill-valuation/pkg/database"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"
)

func newMigrator(cfg *config.Config) (*migrate.Migrate, error) {
	if cfg.DB.Driver != database.DriverPostgres && cfg.DB.Driver != "" {
		return nil, fmt.Errorf("migrations run against postgres only; use database.auto_migrate for %s", cfg.DB.Driver)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, database.PostgresURL(cfg.DB))
	if err != nil {
		return nil, fmt.Errorf("create migration instance: %w", err)
	}
	return m, nil
}

func runMigrations(cmd *cobra.Command, direction string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			cmd.PrintErrf("Migration source error on close: %v\n", srcErr)
		}
		if dbErr != nil {
			cmd.PrintErrf("Migration database error on close: %v\n", dbErr)
		}
	}()

	var migrationErr error
	switch direction {
	case "up":
		migrationErr = m.Up()
	case "down":
		migrationErr = m.Steps(-1)
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}

	if errors.Is(migrationErr, migrate.ErrNoChange) {
		cmd.Println("No migrations to apply.")
		return nil
	}
	if migrationErr != nil {
		return fmt.Errorf("migration failed: %w", migrationErr)
	}

	if direction == "up" {
		cmd.Println("Applied migrations successfully.")
	} else {
		cmd.Println("Reverted last migration successfully.")
	}
	return nil
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all available database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(cmd, "up")
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the last database migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(cmd, "down")
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the postgres schema",
}

func init() {
	migrateCmd.AddCommand(upCmd)
	migrateCmd.AddCommand(downCmd)
}
