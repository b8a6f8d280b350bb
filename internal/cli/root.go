// Package cli provides the command-line interface for rigcheck.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rigcheck/rigcheck-go/internal/compat"
	"github.com/rigcheck/rigcheck-go/internal/config"
	"github.com/rigcheck/rigcheck-go/internal/llm"
	"github.com/rigcheck/rigcheck-go/internal/power"
	"github.com/rigcheck/rigcheck-go/internal/service"
	"github.com/rigcheck/rigcheck-go/internal/store"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Shared state initialized in PersistentPreRunE
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
	db         *store.Store
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rigcheck",
	Short: "PC hardware compatibility and power advisor",
	Long: `Rigcheck helps assemble a PC configuration: query component records by
spec filters, check whether two parts fit together, and estimate the power
draw and recommended PSU rating of a full build.

Deterministic rules decide the common pairings (sockets, memory standards,
form factors, power budgets); ambiguous cases are deferred to an LLM.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, logCleanup = config.SetupLogger(cfg.LogFile, level)

		var err error
		db, err = store.Open(cfg.DBPath, logger)
		if err != nil {
			return fmt.Errorf("open component database: %w", err)
		}
		if err := db.Init(cmd.Context()); err != nil {
			return fmt.Errorf("initialize component database: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			if err := db.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// getAdvisor wires the advisor. Commands that may escalate to the LLM pass
// requireLLM=true; if the model cannot be initialized the advisor still works
// but escalated checks resolve to the failure verdict.
func getAdvisor(requireLLM bool) (*service.Advisor, error) {
	var adjudicator compat.Adjudicator
	if requireLLM {
		model, err := llm.NewModel(cfg)
		if err != nil {
			logger.Warn("llm unavailable, escalated checks will fail", "error", err)
		} else {
			adjudicator = llm.NewAdjudicator(model)
		}
	}

	heuristics := power.DefaultHeuristics()
	if cfg.HeuristicsFile != "" {
		var err error
		heuristics, err = power.LoadHeuristics(cfg.HeuristicsFile)
		if err != nil {
			return nil, fmt.Errorf("load heuristics: %w", err)
		}
	}

	engine := compat.NewEngine(adjudicator, logger)
	estimator := power.NewEstimator(heuristics)
	return service.NewAdvisor(db, engine, estimator, logger), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(powerCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(brandsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}
