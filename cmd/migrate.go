package cmd

import (
	"fmt"

	"laundry/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeDatabase(db) }()

			if err = postgres.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("migrating: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d tables in %s\n", len(postgres.Models()), cfg.DBName)
			return nil
		},
	}
}
