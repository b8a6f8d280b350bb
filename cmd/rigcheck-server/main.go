// Package main provides the entry point for the rigcheck HTTP API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rigcheck/rigcheck-go/internal/compat"
	"github.com/rigcheck/rigcheck-go/internal/config"
	"github.com/rigcheck/rigcheck-go/internal/llm"
	"github.com/rigcheck/rigcheck-go/internal/power"
	"github.com/rigcheck/rigcheck-go/internal/server"
	"github.com/rigcheck/rigcheck-go/internal/service"
	"github.com/rigcheck/rigcheck-go/internal/store"
)

const version = "0.1.0"

func main() {
	cfg := config.Load()

	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("rigcheck-server starting",
		"version", version,
		"db", cfg.DBPath,
		"llm_provider", cfg.LLMProvider,
		"llm_model", cfg.LLMModel,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	db, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to open component database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Init(ctx); err != nil {
		logger.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	// The server keeps running without an adjudicator; escalated checks
	// then resolve to the failure verdict.
	var adjudicator compat.Adjudicator
	model, err := llm.NewModel(cfg)
	if err != nil {
		logger.Warn("llm unavailable, escalated checks will fail", "error", err)
	} else {
		adjudicator = llm.NewAdjudicator(model)
	}

	heuristics := power.DefaultHeuristics()
	if cfg.HeuristicsFile != "" {
		heuristics, err = power.LoadHeuristics(cfg.HeuristicsFile)
		if err != nil {
			logger.Error("failed to load power heuristics", "error", err)
			os.Exit(1)
		}
	}

	advisor := service.NewAdvisor(db, compat.NewEngine(adjudicator, logger), power.NewEstimator(heuristics), logger)

	srv := server.New(cfg.ListenAddr, advisor, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("rigcheck-server stopped")
}
