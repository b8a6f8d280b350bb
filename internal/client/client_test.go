package client_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigcheck/rigcheck-go/internal/client"
	"github.com/rigcheck/rigcheck-go/internal/compat"
	"github.com/rigcheck/rigcheck-go/internal/models"
	"github.com/rigcheck/rigcheck-go/internal/power"
	"github.com/rigcheck/rigcheck-go/internal/server"
	"github.com/rigcheck/rigcheck-go/internal/service"
	"github.com/rigcheck/rigcheck-go/internal/store"
)

func price(p float64) *float64 { return &p }

func newTestClient(t *testing.T) *client.Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(filepath.Join(t.TempDir(), "client.db"), logger)
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
			Name:     "B650 Tomahawk",
			Category: models.CategoryMotherboard,
			Brand:    "MSI",
			Specs:    models.SpecMap{"socket": models.SpecString("AM5")},
		},
	}))

	engine := compat.NewEngine(nil, logger)
	advisor := service.NewAdvisor(st, engine, power.NewEstimator(power.DefaultHeuristics()), logger)

	ts := httptest.NewServer(server.New("127.0.0.1:0", advisor, logger).Handler())
	t.Cleanup(ts.Close)
	return client.New(ts.URL)
}

func TestClientHealth(t *testing.T) {
	c := newTestClient(t)
	assert.NoError(t, c.Health(context.Background()))
}

func TestClientComponents(t *testing.T) {
	c := newTestClient(t)

	components, err := c.Components(context.Background(), "cpu", map[string]string{"brand": "AMD"})
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, "Ryzen 7 7700X", components[0].Name)

	components, err = c.Components(context.Background(), "cpu", map[string]string{"tdp": ">=200"})
	require.NoError(t, err)
	assert.Empty(t, components)
}

func TestClientCategoriesAndBrands(t *testing.T) {
	c := newTestClient(t)

	cats, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cpu", "motherboard"}, cats)

	brands, err := c.Brands(context.Background(), "motherboard")
	require.NoError(t, err)
	assert.Equal(t, []string{"MSI"}, brands)
}

func TestClientCheckCompatibility(t *testing.T) {
	c := newTestClient(t)

	cpu := models.Component{
		Name:     "Ryzen 7 7700X",
		Category: models.CategoryCPU,
		Specs:    models.SpecMap{"socket": models.SpecString("AM5")},
	}
	board := models.Component{
		Name:     "B650 Tomahawk",
		Category: models.CategoryMotherboard,
		Specs:    models.SpecMap{"socket": models.SpecString("AM5")},
	}

	verdict, err := c.CheckCompatibility(context.Background(), cpu, board)
	require.NoError(t, err)
	assert.Equal(t, models.Compatible, verdict.Compatible)

	// server-side validation errors surface with the server's message
	_, err = c.CheckCompatibility(context.Background(), models.Component{Name: "x"}, board)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
}

func TestClientBuildAndPower(t *testing.T) {
	c := newTestClient(t)

	build := []models.Component{
		{Name: "cpu", Category: models.CategoryCPU, Specs: models.SpecMap{"tdp": models.SpecNumber(65)}},
		{Name: "gpu", Category: models.CategoryGPU, Model: "RTX 4070", Specs: models.SpecMap{"tdp": models.SpecNumber(200)}},
	}

	est, err := c.EstimatePower(context.Background(), build)
	require.NoError(t, err)
	assert.Equal(t, 308.0, est.TotalPowerEstimate)

	report, err := c.CheckBuild(context.Background(), build)
	require.NoError(t, err)
	assert.NotEmpty(t, report.ID)
	assert.Empty(t, report.Results, "no rule covers cpu/gpu pairs")

	snap, err := c.Stats(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap.PowerEstimate)
	assert.Equal(t, int64(2), snap.PowerEstimate.Count)
}
