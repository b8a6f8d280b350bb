package store_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigcheck/rigcheck-go/internal/models"
	"github.com/rigcheck/rigcheck-go/internal/store"
)

func openStore(t *testing.T) (*store.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := store.Open(path, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Init(context.Background()))
	return s, path
}

func price(p float64) *float64 { return &p }

func seedFixture(t *testing.T, s *store.Store) {
	t.Helper()
	require.NoError(t, s.Seed(context.Background(), []models.Component{
		{
			Name:     "Ryzen 7 7700X",
			Category: models.CategoryCPU,
			Brand:    "AMD",
			Model:    "7700X",
			Price:    price(349),
			Specs:    models.SpecMap{"socket": models.SpecString("AM5"), "tdp": models.SpecNumber(105)},
		},
		{
			Name:     "Core i5-13600K",
			Category: models.CategoryCPU,
			Brand:    "Intel",
			Model:    "13600K",
			Price:    price(289),
			Specs:    models.SpecMap{"socket": models.SpecString("LGA1700")},
		},
		{
			Name:     "B650 Tomahawk",
			Category: models.CategoryMotherboard,
			Brand:    "MSI",
			Model:    "B650",
			Specs:    models.SpecMap{"socket": models.SpecString("AM5")},
		},
	}))
}

func TestFetchAll(t *testing.T) {
	s, _ := openStore(t)
	seedFixture(t, s)

	got, err := s.Fetch(context.Background(), store.FetchOptions{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	// insertion order survives the round-trip
	assert.Equal(t, "Ryzen 7 7700X", got[0].Name)
	assert.Equal(t, "B650 Tomahawk", got[2].Name)
}

func TestFetchByCategory(t *testing.T) {
	s, _ := openStore(t)
	seedFixture(t, s)

	got, err := s.Fetch(context.Background(), store.FetchOptions{Category: models.CategoryCPU})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, c := range got {
		assert.Equal(t, models.CategoryCPU, c.Category)
	}
}

func TestFetchByBrandAndPrice(t *testing.T) {
	s, _ := openStore(t)
	seedFixture(t, s)

	got, err := s.Fetch(context.Background(), store.FetchOptions{Brand: "AMD"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ryzen 7 7700X", got[0].Name)

	got, err = s.Fetch(context.Background(), store.FetchOptions{
		Category: models.CategoryCPU,
		MinPrice: price(300),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ryzen 7 7700X", got[0].Name)

	got, err = s.Fetch(context.Background(), store.FetchOptions{MaxPrice: price(100)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchByName(t *testing.T) {
	s, _ := openStore(t)
	seedFixture(t, s)

	got, err := s.Fetch(context.Background(), store.FetchOptions{Name: "B650 Tomahawk"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.CategoryMotherboard, got[0].Category)
}

func TestFetchPreservesSpecsAndNilPrice(t *testing.T) {
	s, _ := openStore(t)
	seedFixture(t, s)

	got, err := s.Fetch(context.Background(), store.FetchOptions{Name: "Ryzen 7 7700X"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	c := got[0]
	require.NotNil(t, c.Price)
	assert.Equal(t, 349.0, *c.Price)

	socket, ok := c.SpecString("socket")
	require.True(t, ok)
	assert.Equal(t, "AM5", socket)
	tdp, ok := c.SpecNumber("tdp")
	require.True(t, ok)
	assert.Equal(t, 105.0, tdp)

	// nil price stays nil
	got, err = s.Fetch(context.Background(), store.FetchOptions{Name: "B650 Tomahawk"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Price)

	// price filters never match records without a price
	got, err = s.Fetch(context.Background(), store.FetchOptions{
		Category: models.CategoryMotherboard,
		MinPrice: price(0),
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchSkipsCorruptSpecs(t *testing.T) {
	s, path := openStore(t)
	seedFixture(t, s)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`INSERT INTO hardware (name, category, brand, model, specs) VALUES ('Broken', 'cpu', 'X', 'Y', '{not json')`)
	require.NoError(t, err)

	got, err := s.Fetch(context.Background(), store.FetchOptions{Category: models.CategoryCPU})
	require.NoError(t, err)
	require.Len(t, got, 2, "corrupt record is skipped, not fatal")
	for _, c := range got {
		assert.NotEqual(t, "Broken", c.Name)
	}
}

func TestInsertSingle(t *testing.T) {
	s, _ := openStore(t)

	require.NoError(t, s.Insert(context.Background(), models.Component{
		Name:     "Noctua NH-D15",
		Category: models.CategoryCooling,
		Brand:    "Noctua",
	}))

	got, err := s.Fetch(context.Background(), store.FetchOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Noctua NH-D15", got[0].Name)
}

func TestCategoriesAndBrands(t *testing.T) {
	s, _ := openStore(t)
	seedFixture(t, s)

	cats, err := s.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cpu", "motherboard"}, cats)

	brands, err := s.Brands(context.Background(), models.CategoryCPU)
	require.NoError(t, err)
	assert.Equal(t, []string{"AMD", "Intel"}, brands)

	brands, err = s.Brands(context.Background(), models.CategoryGPU)
	require.NoError(t, err)
	assert.Empty(t, brands)
}

func TestClear(t *testing.T) {
	s, _ := openStore(t)
	seedFixture(t, s)

	require.NoError(t, s.Clear(context.Background()))

	got, err := s.Fetch(context.Background(), store.FetchOptions{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
