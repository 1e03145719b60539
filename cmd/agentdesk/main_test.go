package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		dbDriver, databaseFile, databaseURL = "", "", ""
		adminName, adminEmail, adminPassword = "", "", ""
		backfillStatus = "approved"
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "agentdesk version ")
}

func TestDatabaseFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_FILE", "env.db")

	dbDriver = "sqlite"
	databaseFile = "flag.db"
	t.Cleanup(func() { dbDriver, databaseFile = "", "" })

	cfg := loadConfig()
	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, "flag.db", cfg.DatabaseFile)
}

func TestCreateAdminAndBackfill(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PEPPER_FILE", filepath.Join(dir, "pepper"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DB_DRIVER", "sqlite")
	db := filepath.Join(dir, "desk.db")

	out, err := execute(t, "create-admin", "--database-file", db, "--name", "Root", "--email", "root@example.com")
	require.NoError(t, err)
	require.Contains(t, out, "admin root@example.com created")
	require.Contains(t, out, "password: ")

	out, err = execute(t, "backfill-approval", "--database-file", db)
	require.NoError(t, err)
	require.Contains(t, out, "0 agent(s) set to approved")

	_, err = execute(t, "backfill-approval", "--database-file", db, "--status", "maybe")
	require.Error(t, err)
}
