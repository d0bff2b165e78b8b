package main

import (
	"errors"

	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/migrations"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/bootstrap"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/logger"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate command group.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(m *migrations.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert every migration, dropping all tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(m *migrations.Migrator) error {
				if err := m.Down(); err != nil {
					return err
				}
				cmd.Println("All migrations reverted")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(m *migrations.Migrator) error {
				return printVersion(cmd, m)
			})
		},
	})

	return cmd
}

func withMigrator(fn func(m *migrations.Migrator) error) error {
	cfg, _, err := bootstrap.LoadConfigAndSetupLogger(configFile)
	if err != nil {
		return err
	}

	lgr := logger.Component("migrate")

	m, err := migrations.NewMigrator(cfg.GetPostgresConnectionString())
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize migrator")
		return err
	}

	if err := errors.Join(fn(m), m.Close()); err != nil {
		lgr.Error().Err(err).Msg("Migration command failed")
		return err
	}
	return nil
}

func printVersion(cmd *cobra.Command, m *migrations.Migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if dirty {
		cmd.Printf("Schema version %d (dirty)\n", version)
		return nil
	}
	cmd.Printf("Schema version %d\n", version)
	return nil
}
