// Package main implements the proofsite CLI: a static site generator for
// formal theorem/proof records.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"proofsite/internal/config"
	"proofsite/internal/logging"
)

// Version of the proofsite binary.
const Version = "1.0.0"

var (
	// Global flags
	cfgPath   string
	proofsDir string
	outputDir string
	verbose   bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "proofsite",
	Short: "proofsite - static site generator for formal proofs",
	Long: `proofsite renders a collection of formal theorem records into a
static HTML site: an index listing every theorem with its verification
status, and one detail page per theorem with hypotheses, proof steps,
and the solver configuration published as JSON.

Theorem records are JSON files in the proofs directory. The solver
configuration is descriptive output; no solver is ever invoked.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

// loadConfig loads the effective configuration: file, env overrides, then
// command-line flag overrides. It also initializes the category logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if proofsDir != "" {
		cfg.Proofs.Dir = proofsDir
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	if err := logging.Initialize(wd, logging.Config{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		logger.Warn("category logging unavailable", zap.Error(err))
	}

	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultFileName, "Config file path")
	rootCmd.PersistentFlags().StringVarP(&proofsDir, "proofs", "p", "", "Proofs directory (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(solverConfigCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
