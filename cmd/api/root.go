package main

import (
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/bootstrap"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/logger"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/server"
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command. Without a subcommand it serves the API.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "teacherauth",
		Short:        "Teacher account API",
		Long:         `Registration, login and cookie sessions for teacher accounts, backed by PostgreSQL.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", bootstrap.DefaultConfigPath, "config file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	srv, err := server.NewServer(configFile)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		return err
	}

	// Run blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		return err
	}

	logger.Info().Msg("Application finished gracefully.")
	return nil
}
