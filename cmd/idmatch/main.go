// SPDX-License-Identifier: Apache-2.0

// Command idmatch identifies Indian identity documents from OCR output and
// checks whether several documents belong to the same person.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/idmatch/idmatch-mcp/internal/compare"
	"github.com/idmatch/idmatch-mcp/internal/config"
	"github.com/idmatch/idmatch-mcp/internal/metrics"
	"github.com/idmatch/idmatch-mcp/internal/verify"
)

const version = "v0.1.0"

var (
	// Global flags
	verbose      bool
	configPath   string
	outputFormat string

	cfg    = config.Default()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "idmatch",
	Short: "Identify identity documents and match them to one person",
	Long: `idmatch reads the OCR output of scanned Indian identity documents
(Aadhaar, PAN, Passport, Driving License, Voter ID), identifies each one,
extracts the holder's name, date of birth and card number, and decides
whether a set of documents belongs to the same person.

Settings come from --config, then IDMATCH_* environment variables
(a .env file in the working directory is loaded first).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if outputFormat != "" {
			loaded.Output = outputFormat
			if err := loaded.Validate(); err != nil {
				return err
			}
		}
		cfg = loaded

		logger, err = newLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var identifyCmd = &cobra.Command{
	Use:   "identify FILE...",
	Short: "Identify documents and extract their fields",
	Long: `Identifies every document in the given OCR files. Use "-" to read stdin.

The format is guessed from the extension: .json is an OCR payload, .yaml and
.yml are batches, anything else is plain text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIdentify,
}

var comparePolicy string

var compareCmd = &cobra.Command{
	Use:   "compare FILE...",
	Short: "Decide whether documents belong to the same person",
	Long: `Identifies every document in the given OCR files and compares each pair.

Policies:
  - lenient: a shared date of birth or card number is a match
  - strict:  name and date of birth must both agree`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompare,
}

var httpAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the identify_document and compare_documents MCP tools",
	Long: `Runs an MCP server. Without --http the server talks over stdio.
With --http it listens on the given address and serves /mcp, /metrics
and /healthz.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format: yaml or json (default from config)")

	compareCmd.Flags().StringVar(&comparePolicy, "policy", "", "Comparison policy: lenient or strict (default from config)")
	serveCmd.Flags().StringVar(&httpAddr, "http", "", "Listen address for the streamable HTTP transport, e.g. :8080")

	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// newService builds the verification service from the loaded settings.
func newService(policyOverride string, m *metrics.Metrics) (*verify.Service, error) {
	name := cfg.Policy
	if policyOverride != "" {
		name = policyOverride
	}
	policy, err := compare.ParsePolicy(name)
	if err != nil {
		return nil, err
	}
	return verify.New(
		verify.WithPolicy(policy),
		verify.WithConcurrency(cfg.Concurrency),
		verify.WithLogger(logger),
		verify.WithMetrics(m),
	), nil
}
