// Package main is the entry point for the sitekit maintenance CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/helixml/sitekit/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags override the environment for a single invocation.
type globalFlags struct {
	envFile   string
	dbURL     string
	logLevel  string
	logFormat string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:   "sitekit",
		Short: "Maintain bilingual site content",
		Long: `sitekit maintains the content configuration of the corporate website:
navigation menus, page slides, investor document taxonomy and business lines.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", "", "Path to .env file")
	pf.StringVar(&flags.dbURL, "db-url", "", "Database URL (sqlite:///path or postgres://...)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format (pretty or json)")

	cmd.AddCommand(migrateCmd(flags))
	cmd.AddCommand(seedCmd(flags))
	cmd.AddCommand(classifyCmd(flags))
	cmd.AddCommand(menuCmd(flags))
	cmd.AddCommand(slidesCmd(flags))
	cmd.AddCommand(migrationsCmd(flags))
	cmd.AddCommand(stdioCmd(flags))
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from the .env file and environment, then
// applies command-line overrides.
func (f *globalFlags) loadConfig() (config.AppConfig, error) {
	cfg, err := config.LoadConfig(f.envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}

	var opts []config.AppConfigOption
	if f.dbURL != "" {
		opts = append(opts, config.WithDBURL(f.dbURL))
	}
	if f.logLevel != "" {
		opts = append(opts, config.WithLogLevel(f.logLevel))
	}
	switch strings.ToLower(f.logFormat) {
	case "":
	case string(config.LogFormatJSON):
		opts = append(opts, config.WithLogFormat(config.LogFormatJSON))
	case string(config.LogFormatPretty):
		opts = append(opts, config.WithLogFormat(config.LogFormatPretty))
	default:
		return config.AppConfig{}, fmt.Errorf("unknown log format %q", f.logFormat)
	}
	return cfg.Apply(opts...), nil
}
