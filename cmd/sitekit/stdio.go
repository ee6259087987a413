package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/helixml/sitekit"
	"github.com/helixml/sitekit/internal/mcp"
)

func stdioCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve read-only content queries over MCP on stdio",
		Long: `Start a Model Context Protocol server on stdio exposing read-only tools:
the menu forest, page slides and taxonomy previews. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "stdio", func(ctx context.Context, client *sitekit.Client, logger *slog.Logger) error {
				logger.InfoContext(ctx, "starting MCP server", slog.String("version", version))
				return mcp.NewServer(client.Navigation, client.Slides, client.Classifier, version, logger).ServeStdio()
			})
		},
	}
}
