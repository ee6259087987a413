package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/helixml/sitekit"
	"github.com/helixml/sitekit/application/service"
)

func classifyCmd(flags *globalFlags) *cobra.Command {
	var params service.ClassifyParams

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Normalize investor document types and titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "classify", func(ctx context.Context, client *sitekit.Client, logger *slog.Logger) error {
				report, err := client.Classify(ctx, params)
				for _, id := range report.Unclassified {
					logger.WarnContext(ctx, "document has no taxonomy code", slog.String("id", id))
				}
				for _, id := range report.YearConflicts {
					logger.WarnContext(ctx, "document year disagrees with title", slog.String("id", id))
				}
				for _, id := range report.AmbiguousModifiers {
					logger.WarnContext(ctx, "document title names more than one meeting kind", slog.String("id", id))
				}
				logReport(ctx, logger, report.Report)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&params.DryRun, "dry-run", false, "Report decisions without writing")
	cmd.Flags().BoolVar(&params.PurgePromotional, "purge-promotional", false, "Delete documents matched by a delete rule")
	cmd.Flags().StringSliceVar(&params.Types, "type", nil, "Only documents currently carrying these codes (repeatable)")

	return cmd
}
