package service_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigcheck/rigcheck-go/internal/compat"
	"github.com/rigcheck/rigcheck-go/internal/filter"
	"github.com/rigcheck/rigcheck-go/internal/models"
	"github.com/rigcheck/rigcheck-go/internal/power"
	"github.com/rigcheck/rigcheck-go/internal/service"
	"github.com/rigcheck/rigcheck-go/internal/store"
)

type stubAdjudicator struct {
	verdict models.Verdict
	calls   int
}

func (s *stubAdjudicator) Adjudicate(_ context.Context, _, _ models.Component) (models.Verdict, error) {
	s.calls++
	return s.verdict, nil
}

func price(p float64) *float64 { return &p }

func newAdvisor(t *testing.T, adj compat.Adjudicator) *service.Advisor {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(filepath.Join(t.TempDir(), "advisor.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Init(context.Background()))

	require.NoError(t, st.Seed(context.Background(), []models.Component{
		{
			Name:     "Ryzen 7 7700X",
			Category: models.CategoryCPU,
			Brand:    "AMD",
			Price:    price(349),
			Specs:    models.SpecMap{"socket": models.SpecString("AM5"), "tdp": models.SpecNumber(105)},
		},
		{
			Name:     "Core i5-13600K",
			Category: models.CategoryCPU,
			Brand:    "Intel",
			Price:    price(289),
			Specs:    models.SpecMap{"socket": models.SpecString("LGA1700"), "cores": models.SpecNumber(14)},
		},
		{
			Name:     "B650 Tomahawk",
			Category: models.CategoryMotherboard,
			Brand:    "MSI",
			Price:    price(219),
			Specs:    models.SpecMap{"socket": models.SpecString("AM5"), "memory_support": models.SpecString("DDR5")},
		},
	}))

	engine := compat.NewEngine(adj, logger)
	return service.NewAdvisor(st, engine, power.NewEstimator(power.DefaultHeuristics()), logger)
}

func TestQueryComponentsTwoStage(t *testing.T) {
	advisor := newAdvisor(t, nil)

	// coarse SQL stage only
	got, err := advisor.QueryComponents(context.Background(), models.CategoryCPU, filter.Predicates{
		filter.KeyBrand: "AMD",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ryzen 7 7700X", got[0].Name)

	// fine in-memory spec stage on top
	got, err = advisor.QueryComponents(context.Background(), models.CategoryCPU, filter.Predicates{
		"cores": ">=12",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Core i5-13600K", got[0].Name)

	// price bounds resolve in SQL
	got, err = advisor.QueryComponents(context.Background(), "", filter.Predicates{
		filter.KeyMaxPrice: "300",
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestQueryComponentsMalformedPriceFailsClosed(t *testing.T) {
	advisor := newAdvisor(t, nil)

	got, err := advisor.QueryComponents(context.Background(), models.CategoryCPU, filter.Predicates{
		filter.KeyMinPrice: "cheap",
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindByName(t *testing.T) {
	advisor := newAdvisor(t, nil)

	c, err := advisor.FindByName(context.Background(), "B650 Tomahawk")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryMotherboard, c.Category)

	_, err = advisor.FindByName(context.Background(), "No Such Part")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCheckPair(t *testing.T) {
	advisor := newAdvisor(t, nil)

	cpu, err := advisor.FindByName(context.Background(), "Ryzen 7 7700X")
	require.NoError(t, err)
	board, err := advisor.FindByName(context.Background(), "B650 Tomahawk")
	require.NoError(t, err)

	verdict := advisor.CheckPair(context.Background(), cpu, board)
	assert.Equal(t, models.Compatible, verdict.Compatible)
	assert.Greater(t, verdict.Confidence, compat.ConfidenceThreshold)
}

func TestCheckBuildReport(t *testing.T) {
	adj := &stubAdjudicator{verdict: models.Verdict{
		Compatible: models.Compatible,
		Reason:     "looks fine",
		Confidence: 0.9,
	}}
	advisor := newAdvisor(t, adj)

	components := []models.Component{
		{
			Name:     "Ryzen 7 7700X",
			Category: models.CategoryCPU,
			Specs:    models.SpecMap{"socket": models.SpecString("AM5"), "tdp": models.SpecNumber(105)},
		},
		{
			Name:     "B650 Tomahawk",
			Category: models.CategoryMotherboard,
			Specs:    models.SpecMap{"socket": models.SpecString("AM5"), "memory_support": models.SpecString("DDR5")},
		},
		{
			Name:     "Vengeance DDR5",
			Category: models.CategoryRAM,
			Specs:    models.SpecMap{"memory_type": models.SpecString("DDR5")},
		},
	}

	report := advisor.CheckBuild(context.Background(), components)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, models.Compatible, report.Compatible)
	// only rule-covered ordered pairs appear: cpu→motherboard, motherboard→ram
	require.Len(t, report.Results, 2)
	assert.Equal(t, "cpu_motherboard", report.Results[0].CheckType)
	assert.Equal(t, "motherboard_ram", report.Results[1].CheckType)
	assert.Zero(t, adj.calls, "confident rule verdicts never escalate")

	assert.Positive(t, report.Power.TotalPowerEstimate)
	assert.GreaterOrEqual(t, report.Power.RecommendedPSUWattage, 450.0)
}

func TestCheckBuildRollup(t *testing.T) {
	advisor := newAdvisor(t, nil)

	// socket mismatch flips the summary to incompatible
	report := advisor.CheckBuild(context.Background(), []models.Component{
		{
			Name:     "Core i5-13600K",
			Category: models.CategoryCPU,
			Specs:    models.SpecMap{"socket": models.SpecString("LGA1700")},
		},
		{
			Name:     "B650 Tomahawk",
			Category: models.CategoryMotherboard,
			Specs:    models.SpecMap{"socket": models.SpecString("AM5")},
		},
	})
	assert.Equal(t, models.Incompatible, report.Compatible)

	// missing specs with no adjudicator leave the pair (and summary) undecided
	report = advisor.CheckBuild(context.Background(), []models.Component{
		{Name: "Mystery CPU", Category: models.CategoryCPU},
		{Name: "Mystery Board", Category: models.CategoryMotherboard},
	})
	assert.Equal(t, models.Incompatible, report.Compatible,
		"failed adjudication is reported as incompatible pending manual confirmation")
	require.Len(t, report.Results, 1)
	assert.Equal(t, compat.AdjudicationFailedReason, report.Results[0].Verdict.Reason)
}

func TestCheckBuildEmpty(t *testing.T) {
	advisor := newAdvisor(t, nil)

	report := advisor.CheckBuild(context.Background(), nil)
	assert.Equal(t, models.Compatible, report.Compatible)
	assert.Empty(t, report.Results)
	assert.Equal(t, 450.0, report.Power.RecommendedPSUWattage)
}

func TestCategoriesAndBrands(t *testing.T) {
	advisor := newAdvisor(t, nil)

	cats, err := advisor.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cpu", "motherboard"}, cats)

	brands, err := advisor.Brands(context.Background(), models.CategoryCPU)
	require.NoError(t, err)
	assert.Equal(t, []string{"AMD", "Intel"}, brands)
}
