package compat

import (
	"context"
	"log/slog"

	"github.com/rigcheck/rigcheck-go/internal/models"
)

// ConfidenceThreshold is the escalation cutoff: a local verdict is final only
// when its confidence is strictly greater than this value. A rule returning
// exactly 0.8 escalates.
const ConfidenceThreshold = 0.8

// AdjudicationFailedReason is the fixed reason reported when the adjudicator
// cannot produce a usable verdict (transport failure, malformed response).
const AdjudicationFailedReason = "compatibility adjudication failed, manual confirmation required"

// Adjudicator is the external fallback decision-maker, invoked with both full
// component records when local rules are inconclusive. Timeout and retry
// policy belong to the implementation's transport, not to the engine.
type Adjudicator interface {
	Adjudicate(ctx context.Context, a, b models.Component) (models.Verdict, error)
}

// Engine runs the two-tier compatibility decision policy: cheap deterministic
// rules are authoritative when confident, everything else is deferred to the
// adjudicator. Engines are stateless after construction; Check calls may run
// concurrently.
type Engine struct {
	rules       map[CheckType]Rule
	adjudicator Adjudicator
	logger      *slog.Logger
}

// NewEngine creates an engine with the default rule table. A nil adjudicator
// is allowed; escalated checks then resolve to the failure verdict.
func NewEngine(adjudicator Adjudicator, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		rules:       DefaultRules(),
		adjudicator: adjudicator,
		logger:      logger,
	}
}

// Register adds or replaces the rule for a check type.
func (e *Engine) Register(t CheckType, r Rule) {
	e.rules[t] = r
}

// HasRule reports whether a local rule is registered for a check type.
// Callers reviewing a whole build use it to pick the pair directions worth
// checking.
func (e *Engine) HasRule(t CheckType) bool {
	_, ok := e.rules[t]
	return ok
}

// Check evaluates one ordered pair. It never returns an error: indeterminate
// data and adjudicator failures both surface inside the verdict.
func (e *Engine) Check(ctx context.Context, a, b models.Component) models.Verdict {
	checkType := TypeOf(a, b)

	rule, ok := e.rules[checkType]
	if !ok {
		e.logger.Debug("no local rule, escalating to adjudicator", "check_type", checkType.String())
		return e.escalate(ctx, a, b)
	}

	verdict := rule(a, b)
	if verdict.Confidence > ConfidenceThreshold {
		return verdict
	}

	e.logger.Debug("local rule inconclusive, escalating to adjudicator",
		"check_type", checkType.String(),
		"confidence", verdict.Confidence,
	)
	return e.escalate(ctx, a, b)
}

func (e *Engine) escalate(ctx context.Context, a, b models.Component) models.Verdict {
	failed := models.Verdict{
		Compatible: models.Incompatible,
		Reason:     AdjudicationFailedReason,
		Confidence: 0.0,
	}

	if e.adjudicator == nil {
		return failed
	}

	verdict, err := e.adjudicator.Adjudicate(ctx, a, b)
	if err != nil {
		e.logger.Warn("adjudication failed", "error", err)
		return failed
	}
	return verdict
}
