// Package service composes the store, filter, compatibility, and power
// components into the operations the CLI and HTTP server expose.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/rigcheck/rigcheck-go/internal/compat"
	"github.com/rigcheck/rigcheck-go/internal/filter"
	"github.com/rigcheck/rigcheck-go/internal/metrics"
	"github.com/rigcheck/rigcheck-go/internal/models"
	"github.com/rigcheck/rigcheck-go/internal/power"
	"github.com/rigcheck/rigcheck-go/internal/store"
)

// Advisor orchestrates component queries, pairwise compatibility checks, and
// power estimation for assembled builds.
type Advisor struct {
	store     *store.Store
	engine    *compat.Engine
	estimator *power.Estimator
	logger    *slog.Logger
	metrics   *metrics.Collector
}

// NewAdvisor wires an advisor from its collaborators.
func NewAdvisor(st *store.Store, engine *compat.Engine, estimator *power.Estimator, logger *slog.Logger) *Advisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Advisor{
		store:     st,
		engine:    engine,
		estimator: estimator,
		logger:    logger,
		metrics:   metrics.NewCollector(),
	}
}

// Stats returns the advisor's runtime statistics since process start.
func (a *Advisor) Stats() metrics.Snapshot {
	return a.metrics.Snapshot()
}

// QueryComponents runs the two-stage filter: coarse brand/price/category
// filters in SQL, then the fine spec-predicate pass in memory.
func (a *Advisor) QueryComponents(ctx context.Context, category models.Category, preds filter.Predicates) ([]models.Component, error) {
	opts := store.FetchOptions{Category: category, Brand: preds[filter.KeyBrand]}

	// Malformed price bounds exclude everything, matching the in-memory
	// filter's fail-closed behavior.
	if raw, ok := preds[filter.KeyMinPrice]; ok {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil
		}
		opts.MinPrice = &min
	}
	if raw, ok := preds[filter.KeyMaxPrice]; ok {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil
		}
		opts.MaxPrice = &max
	}

	start := time.Now()
	records, err := a.store.Fetch(ctx, opts)
	a.metrics.RecordTiming(metrics.OpDBQuery, time.Since(start))
	if err != nil {
		return nil, err
	}
	return filter.Apply(records, "", preds.SpecPredicates()), nil
}

// FindByName returns the first stored component with an exact name match.
func (a *Advisor) FindByName(ctx context.Context, name string) (models.Component, error) {
	records, err := a.store.Fetch(ctx, store.FetchOptions{Name: name})
	if err != nil {
		return models.Component{}, err
	}
	if len(records) == 0 {
		return models.Component{}, fmt.Errorf("component %q not found", name)
	}
	return records[0], nil
}

// CheckPair runs one ordered compatibility check.
func (a *Advisor) CheckPair(ctx context.Context, compA, compB models.Component) models.Verdict {
	checkID := uuid.NewString()
	start := time.Now()
	verdict := a.engine.Check(ctx, compA, compB)
	a.metrics.RecordTiming(metrics.OpCompatCheck, time.Since(start))
	a.logger.Info("compatibility check",
		"check_id", checkID,
		"check_type", compat.TypeOf(compA, compB).String(),
		"component_a", compA.Name,
		"component_b", compB.Name,
		"compatible", verdict.Compatible.String(),
		"confidence", verdict.Confidence,
	)
	return verdict
}

// PairResult is one pairwise verdict inside a build report.
type PairResult struct {
	CheckType  string         `json:"check_type"`
	ComponentA string         `json:"component_a"`
	ComponentB string         `json:"component_b"`
	Verdict    models.Verdict `json:"verdict"`
}

// BuildReport is the full review of an assembled configuration: every
// rule-covered ordered pair checked, plus the power profile.
type BuildReport struct {
	ID         string          `json:"id"`
	Compatible models.TriState `json:"compatible"`
	Results    []PairResult    `json:"results"`
	Power      power.Estimate  `json:"power"`
}

// CheckBuild checks every ordered pair of the build for which a local rule
// direction exists and estimates the configuration's power profile. The
// summary is Incompatible if any pair fails, else Unknown if any pair could
// not be decided, else Compatible.
func (a *Advisor) CheckBuild(ctx context.Context, components []models.Component) BuildReport {
	report := BuildReport{
		ID:         uuid.NewString(),
		Compatible: models.Compatible,
	}

	for i, compA := range components {
		for j, compB := range components {
			if i == j {
				continue
			}
			checkType := compat.TypeOf(compA, compB)
			if !a.engine.HasRule(checkType) {
				continue
			}
			verdict := a.CheckPair(ctx, compA, compB)
			report.Results = append(report.Results, PairResult{
				CheckType:  checkType.String(),
				ComponentA: compA.Name,
				ComponentB: compB.Name,
				Verdict:    verdict,
			})
			switch verdict.Compatible {
			case models.Incompatible:
				report.Compatible = models.Incompatible
			case models.Unknown:
				if report.Compatible == models.Compatible {
					report.Compatible = models.Unknown
				}
			}
		}
	}

	report.Power = a.EstimatePower(components)
	return report
}

// EstimatePower computes the power profile of a configuration.
func (a *Advisor) EstimatePower(components []models.Component) power.Estimate {
	start := time.Now()
	est := a.estimator.Estimate(components)
	a.metrics.RecordTiming(metrics.OpPowerEstimate, time.Since(start))
	return est
}

// Categories lists the distinct categories in the store.
func (a *Advisor) Categories(ctx context.Context) ([]string, error) {
	return a.store.Categories(ctx)
}

// Brands lists the distinct brands within one category.
func (a *Advisor) Brands(ctx context.Context, category models.Category) ([]string, error) {
	return a.store.Brands(ctx, category)
}
