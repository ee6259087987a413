package main

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/helixml/sitekit"
)

func migrateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "migrate", func(ctx context.Context, _ *sitekit.Client, logger *slog.Logger) error {
				logger.InfoContext(ctx, "schema up to date")
				return nil
			})
		},
	}
}

func migrationsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrations",
		Short: "List applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "migrations", func(ctx context.Context, client *sitekit.Client, _ *slog.Logger) error {
				applied, err := client.Migrations.Applied(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tAPPLIED\tCHECKSUM\tDESCRIPTION")
				for _, a := range applied {
					fmt.Fprintf(w, "%s\t%s\t%.12s\t%s\n", a.Version(), a.AppliedAt().Format(time.RFC3339), a.Checksum(), a.Description())
				}
				return w.Flush()
			})
		},
	}
}
