package main

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/agentdesk/internal/desk/app"
	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/pkg/cryptox"
	"github.com/spf13/cobra"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string

	backfillStatus string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			return app.Migrate(cmd.Context(), cfg, app.NewLogger(cfg))
		},
	}

	createAdminCmd = &cobra.Command{
		Use:   "create-admin",
		Short: "Create an approved admin account",
		Long: `Create an approved admin account directly in the database.

When --password is omitted a random password is generated and printed once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return createAdmin(cmd.Context(), cmd)
		},
	}

	backfillApprovalCmd = &cobra.Command{
		Use:   "backfill-approval",
		Short: "Set the approval status of agents that have none",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseApprovalStatus(backfillStatus)
			if err != nil {
				return err
			}

			cfg := loadConfig()
			n, err := app.BackfillApproval(cmd.Context(), cfg, app.NewLogger(cfg), status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d agent(s) set to %s\n", n, status)
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of agentdesk",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "agentdesk version %s\n", app.BuildVersion)
		},
	}
)

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "display name")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "login e-mail")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "login password (generated when empty)")
	_ = createAdminCmd.MarkFlagRequired("name")
	_ = createAdminCmd.MarkFlagRequired("email")

	backfillApprovalCmd.Flags().StringVar(&backfillStatus, "status", string(domain.ApprovalApproved), "status to assign (pending, approved, rejected)")
}

func serve() error {
	application, err := app.New(loadConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run()
}

func createAdmin(ctx context.Context, cmd *cobra.Command) error {
	password := adminPassword
	generated := password == ""
	if generated {
		p, err := cryptox.GeneratePassword(20)
		if err != nil {
			return err
		}
		password = p
	}

	cfg := loadConfig()
	a, err := app.CreateAdmin(ctx, cfg, app.NewLogger(cfg), domain.BootstrapData{
		AdminName:     adminName,
		AdminEmail:    adminEmail,
		AdminPassword: password,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "admin %s created (%s)\n", a.Email, a.ID)
	if generated {
		fmt.Fprintf(out, "password: %s\n", password)
	}
	return nil
}
