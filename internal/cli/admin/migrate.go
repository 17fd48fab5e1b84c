package admin

import (
	"encoding/json"
	"fmt"

	"github.com/smarterworkco/GPT-UI/internal/config"
	"github.com/smarterworkco/GPT-UI/internal/database"
	"github.com/smarterworkco/GPT-UI/internal/logging"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long:  "Apply or roll back schema migrations against BIZHUB_DATABASE_URL",
	}

	cmd.AddCommand(migrateUpCmd())
	cmd.AddCommand(migrateDownCmd())

	return cmd
}

func migrateUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, 0)
		},
	}
	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	return cmd
}

func migrateDownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			if steps <= 0 {
				return fmt.Errorf("--steps must be positive")
			}
			return runMigrate(cmd, steps)
		},
	}
	cmd.Flags().Int("steps", 1, "Number of migrations to roll back")
	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	return cmd
}

// runMigrate applies pending migrations when down is 0, otherwise rolls back
// down steps.
func runMigrate(cmd *cobra.Command, down int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.HasDatabase() {
		return fmt.Errorf("BIZHUB_DATABASE_URL is not set")
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Development: cfg.Debug})
	if err != nil {
		return err
	}
	defer logger.Sync()

	var status database.MigrationStatus
	if down > 0 {
		status, err = database.MigrateDown(cfg.DatabaseURL, cfg.MigrationsPath, down, logger)
	} else {
		status, err = database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, logger)
	}
	if err != nil {
		return err
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "json" {
		data := map[string]interface{}{
			"version": status.Version,
			"dirty":   status.Dirty,
			"applied": status.Applied,
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	}

	if status.Applied {
		fmt.Fprintf(cmd.OutOrStdout(), "Schema now at version %d\n", status.Version)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Schema already at version %d\n", status.Version)
	}
	return nil
}
