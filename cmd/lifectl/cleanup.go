package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifetracker/internal/app"
	"lifetracker/internal/service/tracker"
)

var cleanupTrackingCmd = &cobra.Command{
	Use:   "cleanup-tracking <username>",
	Short: "Delete old habit tracking rows for a user",
	Long: `Delete habit tracking rows dated before the retention cutoff.

The cutoff is the older of --older-than-days and --keep-last-days counted back
from today. Without --habit every habit of the user is cleaned.

Examples:
  lifectl cleanup-tracking alice
  lifectl cleanup-tracking alice --older-than-days 180 --habit <id>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		habitIDs, _ := cmd.Flags().GetStringSlice("habit")

		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		a, err := app.New(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.Repos.Users.GetByUsername(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("user %s: %w", args[0], err)
		}

		req := tracker.CleanupRequest{HabitIDs: habitIDs}
		if cmd.Flags().Changed("older-than-days") {
			n, _ := cmd.Flags().GetInt("older-than-days")
			req.OlderThanDays = &n
		}
		if cmd.Flags().Changed("keep-last-days") {
			n, _ := cmd.Flags().GetInt("keep-last-days")
			req.KeepLastDays = &n
		}

		res, err := a.Tracker.Cleanup(cmd.Context(), u.ID, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records across %d habits", res.Message, res.CleanedRecords, res.HabitsAffected)
		if res.CutoffDate != "" {
			fmt.Fprintf(cmd.OutOrStdout(), " (before %s)", res.CutoffDate)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	cleanupTrackingCmd.Flags().StringSlice("habit", nil, "habit id to clean, repeatable")
	cleanupTrackingCmd.Flags().Int("older-than-days", 30, "delete rows older than this many days")
	cleanupTrackingCmd.Flags().Int("keep-last-days", 7, "always keep this many recent days")
}
