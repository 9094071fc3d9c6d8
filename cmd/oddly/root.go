// ABOUTME: Root cobra command and shared setup for CLI subcommands
// ABOUTME: Loads env config, builds a logger and the application graph on demand

package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	stdlogger "oddly-enough-api/infrastructure/logger/standard"
	"oddly-enough-api/internal/app"
	"oddly-enough-api/pkg/config"
)

var (
	flagVerbose bool
	flagJSON    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "oddly",
		Short:         "Odd news aggregator tools",
		Long:          "oddly runs ingestion, page extraction, classification and cache maintenance outside the HTTP server.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log at debug level")
	root.PersistentFlags().BoolVar(&flagJSON, "json", false, "print JSON instead of text")

	root.AddCommand(newFetchCmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newFlushCmd())
	return root
}

// loadApp builds the application from the environment. The CLI logs warnings
// and above unless --verbose is set.
func loadApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logCfg := cfg.Log
	logCfg.Level = "warn"
	if flagVerbose {
		logCfg.Level = "debug"
	}
	logger, err := stdlogger.New(logCfg)
	if err != nil {
		return nil, nil, err
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Close()
		return nil, nil, err
	}
	return a, func() {
		a.Close()
		logger.Close()
	}, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
