package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocato/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Connect(cmd.Context(), cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Connect() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := database.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Migrated the %s database\n", db.DriverName())
			return nil
		},
	}
}
