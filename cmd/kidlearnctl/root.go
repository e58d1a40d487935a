package main

import (
	"github.com/spf13/cobra"

	"kidlearn/internal/config"
	"kidlearn/internal/database"
	"kidlearn/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "kidlearnctl",
	Short: "Maintenance tool for the KidLearn server",
	Long: `kidlearnctl backs up and restores the KidLearn database and sends
progress reports. It reads the same environment as the server:

  DATABASE_TYPE    sqlite, postgres or mysql (default: sqlite)
  DB_PATH          SQLite database path (default: ./kidlearn.db)
  DATABASE_URL     PostgreSQL or MySQL connection URL`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (overrides DB_PATH)")
	rootCmd.PersistentFlags().String("log-mode", "", "Log mode: development or production (overrides LOG_MODE)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

// env is what every database-backed command needs
type env struct {
	cfg *config.Config
	log *logger.Logger
	db  *database.DB
}

func (e *env) Close() {
	e.db.Close()
	e.log.Sync()
}

// openEnv loads config, applies flag overrides and opens a migrated database
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg := config.Load()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DatabaseType = "sqlite"
		cfg.DatabasePath = p
	}
	if m, _ := cmd.Flags().GetString("log-mode"); m != "" {
		cfg.LogMode = m
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	// Keep the schema current before touching data
	if err := db.RunMigrations(cmd.Context()); err != nil {
		db.Close()
		return nil, err
	}

	return &env{cfg: cfg, log: log, db: db}, nil
}
