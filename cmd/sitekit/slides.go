package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/helixml/sitekit"
)

func slidesCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slides",
		Short: "Inspect and repair slide page bindings",
	}
	cmd.AddCommand(slidesAuditCmd(flags))
	cmd.AddCommand(slidesBackfillCmd(flags))
	return cmd
}

func slidesAuditCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Show how every slide is bound",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "slides.audit", func(ctx context.Context, client *sitekit.Client, _ *slog.Logger) error {
				audit, err := client.Slides.Audit(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "home rotation: %d\n", audit.Home)
				fmt.Fprintf(out, "page bound:    %d (%d through legacy links)\n", audit.PageBound, audit.Legacy)

				pages := make([]string, 0, len(audit.Pages))
				for p := range audit.Pages {
					pages = append(pages, p)
				}
				sort.Strings(pages)
				for _, p := range pages {
					fmt.Fprintf(out, "  %-40s %d\n", p, audit.Pages[p])
				}

				if len(audit.Ambiguous) > 0 {
					fmt.Fprintf(out, "ambiguous:     %d\n", len(audit.Ambiguous))
					for _, a := range audit.Ambiguous {
						fmt.Fprintf(out, "  %s %q: %s\n", a.ID, a.Title, a.Reason)
					}
				}
				return nil
			})
		},
	}
}

func slidesBackfillCmd(flags *globalFlags) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Write explicit page bindings for legacy-bound slides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "slides.backfill", func(ctx context.Context, client *sitekit.Client, logger *slog.Logger) error {
				report, err := client.Slides.BackfillBindings(ctx, dryRun)
				report.Record(client.Metrics())
				logReport(ctx, logger, report)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without writing")
	return cmd
}
