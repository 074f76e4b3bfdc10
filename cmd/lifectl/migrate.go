package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifetracker/pkg/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		if cfg.DB.Driver != "postgres" {
			return fmt.Errorf("migrate requires db.driver postgres, got %q", cfg.DB.Driver)
		}

		pool, err := db.NewConnection(cfg.DB, log)
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := db.Migrate(cmd.Context(), pool, log)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
			return nil
		}
		for _, v := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", v)
		}
		return nil
	},
}
