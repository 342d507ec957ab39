package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sidra/content-factory/internal/adapter/postgres"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, db, err := postgres.NewMigrator(dsn)
		if err != nil {
			return err
		}
		defer db.Close()

		results, err := provider.Up(cmd.Context())
		if err != nil {
			return fmt.Errorf("up: %w", err)
		}
		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %05d %s (%s)\n", r.Source.Version, r.Source.Path, r.Duration.Round(time.Millisecond))
		}
		return nil
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, db, err := postgres.NewMigrator(dsn)
		if err != nil {
			return err
		}
		defer db.Close()

		r, err := provider.Down(cmd.Context())
		if err != nil {
			return fmt.Errorf("down: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rolled back %05d %s\n", r.Source.Version, r.Source.Path)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they are applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, db, err := postgres.NewMigrator(dsn)
		if err != nil {
			return err
		}
		defer db.Close()

		statuses, err := provider.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tSTATE\tAPPLIED AT\tFILE")
		for _, s := range statuses {
			applied := "-"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%05d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
		}
		return w.Flush()
	},
}
