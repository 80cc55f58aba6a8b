// tokenctl is a developer tool for the token engine: it renders and lints
// token templates from the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sveltycms/tokens/pkg/logging"
)

// Build-time variables set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

// rootFlagVals holds the persistent flags shared by all subcommands.
var rootFlagVals struct {
	logLevel  string
	logFormat string
	logFile   string
}

var rootCmd = &cobra.Command{
	Use:     "tokenctl",
	Short:   "Render and lint token templates",
	Version: fmt.Sprintf("%s (%s)", Version, Commit),
	Long: `tokenctl works with the {{namespace.path | modifier}} template syntax
used for emails, notifications, SEO strings and templated JSON payloads.

Contexts are JSON files whose top-level keys become namespaces; security
policies are YAML files listing denied fields per namespace.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlagVals.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlagVals.logFormat, "log-format", "text", "Log format (text, json)")
	pf.StringVar(&rootFlagVals.logFile, "log-file", "", "Also write JSON logs to this file")

	rootCmd.AddCommand(renderCmd, validateCmd, pathsCmd)
}

// newLogger builds the CLI logger from the persistent flags. With
// --log-file, records fan out to stderr and a JSON file.
func newLogger() (*slog.Logger, error) {
	cfg := logging.Config{
		Level:  logging.ParseLevel(rootFlagVals.logLevel),
		Format: logging.ParseFormat(rootFlagVals.logFormat),
		Output: os.Stderr,
	}
	if rootFlagVals.logFile == "" {
		return logging.New(cfg), nil
	}

	f, err := os.OpenFile(rootFlagVals.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	handler := logging.NewMultiHandler(
		logging.New(cfg).Handler(),
		slog.NewJSONHandler(f, &slog.HandlerOptions{Level: cfg.Level}),
	)
	return slog.New(handler), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
