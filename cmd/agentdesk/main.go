package main

import (
	"fmt"
	"os"

	"github.com/aussiebroadwan/agentdesk/internal/desk/app"
	"github.com/spf13/cobra"
)

var (
	dbDriver     string
	databaseFile string
	databaseURL  string

	rootCmd = &cobra.Command{
		Use:   "agentdesk",
		Short: "Subscription desk for sales agents and their clients",
		Long: `agentdesk serves the agent and client subscription API.

Configuration is read from the environment and an optional .env file.
The database flags override DB_DRIVER, DATABASE_FILE and DATABASE_URL.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "database driver (sqlite, postgres)")
	rootCmd.PersistentFlags().StringVar(&databaseFile, "database-file", "", "SQLite database file")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection string")

	rootCmd.AddCommand(serveCmd, migrateCmd, createAdminCmd, backfillApprovalCmd, versionCmd)
}

// loadConfig applies the command line overrides to the environment config.
func loadConfig() app.Config {
	cfg := app.LoadConfig()
	if dbDriver != "" {
		cfg.DBDriver = dbDriver
	}
	if databaseFile != "" {
		cfg.DatabaseFile = databaseFile
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
