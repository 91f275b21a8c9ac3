// Package main provides the sourcestack command line: one-off job searches and the MCP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/sourcestack/internal/app"
	"github.com/honeycarbs/sourcestack/internal/config"
	"github.com/honeycarbs/sourcestack/internal/storage/sheets"
	"github.com/honeycarbs/sourcestack/pkg/logging"
)

// globalFlags override the environment for every subcommand
type globalFlags struct {
	apiKey   string
	baseURL  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "sourcestack",
		Short:         "SourceStack job search client",
		Long:          "Search SourceStack job postings, summarize the companies, technologies and categories they mention, and serve the searches as MCP tools.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.apiKey, "api-key", "", "SourceStack API key (overrides SOURCESTACK_API_KEY env var)")
	root.PersistentFlags().StringVar(&g.baseURL, "base-url", "", "SourceStack API base URL (overrides SOURCESTACK_BASE_URL env var)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL env var)")

	root.AddCommand(
		newSearchCmd(g),
		newAdvancedCmd(g),
		newServeCmd(g),
		newProbeCmd(),
	)

	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the global flag overrides
func (g *globalFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	if g.apiKey != "" {
		cfg.SourceStack.APIKey = g.apiKey
	}
	if g.baseURL != "" {
		cfg.SourceStack.BaseURL = g.baseURL
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	return cfg, nil
}

// resources builds the shared dependencies; the caller must run the cleanup
func (g *globalFlags) resources(ctx context.Context) (*app.Resources, config.Config, func(), error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, cfg, nil, err
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	res, cleanup, err := app.InitializeResources(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, cfg, nil, err
	}

	return res, cfg, func() {
		cleanup()
		_ = logger.Sync()
	}, nil
}

// sinkFlags are shared by search and advanced
type sinkFlags struct {
	persist  bool
	sheetID  string
	sheetTab string
}

func (s *sinkFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&s.persist, "persist", false, "Record the result in Neo4j (requires NEO4J_* env vars)")
	cmd.Flags().StringVar(&s.sheetID, "sheet-id", "", "Append the statistics to this Google Sheets spreadsheet")
	cmd.Flags().StringVar(&s.sheetTab, "sheet-tab", "", "Tab for --sheet-id (default Statistics)")
}

func (s *sinkFlags) options() app.PublishOptions {
	opts := app.PublishOptions{Persist: s.persist}
	if s.sheetID != "" {
		opts.Sheet = &sheets.Sheet{SpreadsheetID: s.sheetID, Tab: s.sheetTab}
	}
	return opts
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}
