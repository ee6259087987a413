package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/helixml/sitekit"
	"github.com/helixml/sitekit/infrastructure/seed"
)

func seedCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed FILE...",
		Short: "Apply seed files through the migration ledger",
		Long: `Apply YAML seed files in the order given. Each file is recorded in the
migration ledger under its version; a file already applied with the same
content is skipped, and a changed file reusing a version is rejected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds := make([]seed.Seed, 0, len(args))
			for _, path := range args {
				s, err := seed.Load(path)
				if err != nil {
					return err
				}
				seeds = append(seeds, s)
			}
			return run(cmd, flags, "seed", func(ctx context.Context, client *sitekit.Client, logger *slog.Logger) error {
				report, err := client.Seed(ctx, seeds...)
				logReport(ctx, logger, report)
				return err
			})
		},
	}
}
