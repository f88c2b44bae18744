package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-pg/pg/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Wintario/sin-city-sentinels/config"
	"github.com/Wintario/sin-city-sentinels/internal/db"
)

var (
	configPath  string
	databaseURL string
	debug       bool
)

func main() {
	_ = godotenv.Load()

	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Sin City Sentinels maintenance commands",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to TOML configuration file")
	root.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "database connection URL, overrides [Database]")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(migrateCommand(), seedCommand(), userCommand())

	return root
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath, databaseURL)
}

// connect opens the store and verifies it is reachable.
func connect(ctx context.Context, cfg config.Config, logger *slog.Logger) (*db.Repository, error) {
	conn := pg.Connect(&cfg.Database)
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if debug {
		conn.AddQueryHook(db.NewQueryHook(logger, cfg.App.SlowQuery.Duration))
	}

	return db.New(conn), nil
}
