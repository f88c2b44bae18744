package main

import (
	"github.com/spf13/cobra"

	"github.com/Wintario/sin-city-sentinels/internal/db"
)

func migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			connConfig, err := db.ConnConfig(&cfg.Database)
			if err != nil {
				return err
			}

			if err := db.Migrate(cmd.Context(), connConfig); err != nil {
				return err
			}

			newLogger().Info("migrations applied")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print migration status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			connConfig, err := db.ConnConfig(&cfg.Database)
			if err != nil {
				return err
			}

			return db.MigrationStatus(cmd.Context(), connConfig)
		},
	})

	return cmd
}
