package mockdata

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/traffic-dashboard-api/internal/config"
)

func testConfig() config.Mock {
	return config.Mock{
		Seed:           42,
		Campaigns:      200,
		BiggestChanges: 100,
		TrendDays:      90,
		TrendStart:     time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerator_Shape(t *testing.T) {
	bundle := NewGenerator(testConfig()).Generate()

	assert.Len(t, bundle.KPIs, 5)
	assert.Len(t, bundle.Campaigns, 200)
	assert.Len(t, bundle.BiggestChanges, 100)
	assert.Len(t, bundle.Storefronts, 20)
	assert.Len(t, bundle.Summary, 7)
	require.Len(t, bundle.Trends, 90)

	t.Run("Tendências diárias crescentes a partir da data inicial", func(t *testing.T) {
		assert.Equal(t, time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC), bundle.Trends[0].Date)
		for i := 1; i < len(bundle.Trends); i++ {
			assert.Equal(t, bundle.Trends[i-1].Date.AddDate(0, 0, 1), bundle.Trends[i].Date)
			assert.GreaterOrEqual(t, bundle.Trends[i].Spend, 500.0)
		}
	})

	t.Run("Campanhas com IDs únicos e valores não negativos", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, campaign := range bundle.Campaigns {
			assert.False(t, seen[campaign.ID], "id duplicado %s", campaign.ID)
			seen[campaign.ID] = true

			assert.GreaterOrEqual(t, campaign.Spend, 1000.0)
			assert.GreaterOrEqual(t, campaign.Installs, 0)
			assert.LessOrEqual(t, campaign.Conversions, campaign.Installs)
			assert.NotEmpty(t, campaign.Region)
		}
	})

	t.Run("Maiores variações ordenadas pela magnitude", func(t *testing.T) {
		for i, campaign := range bundle.BiggestChanges {
			assert.GreaterOrEqual(t, math.Abs(campaign.Change), 25.0)
			if i > 0 {
				assert.LessOrEqual(t, math.Abs(campaign.Change), math.Abs(bundle.BiggestChanges[i-1].Change))
			}
		}
	})

	t.Run("Regiões únicas com coordenadas", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, storefront := range bundle.Storefronts {
			assert.False(t, seen[storefront.Region])
			seen[storefront.Region] = true
			assert.NotEqual(t, [2]float64{0, 0}, storefront.Coordinates)
		}
		assert.Equal(t, "India", bundle.Storefronts[0].Region)
	})

	t.Run("Linha de base do resumo", func(t *testing.T) {
		assert.Equal(t, "Total Spend", bundle.Summary[0].Label)
		assert.Equal(t, 15.7, bundle.Summary[0].Change)
		assert.Equal(t, "+15.7%", bundle.Summary[0].Percentage)
		assert.Equal(t, "-5.2%", bundle.Summary[5].Percentage)
	})
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(testConfig()).Generate()
	b := NewGenerator(testConfig()).Generate()

	assert.Equal(t, a, b)
}

func TestGenerator_Load(t *testing.T) {
	t.Run("Carga sem atraso", func(t *testing.T) {
		bundle, err := NewGenerator(testConfig()).Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, bundle.Campaigns, 200)
	})

	t.Run("Taxa de falha total sempre falha", func(t *testing.T) {
		cfg := testConfig()
		cfg.FailureRate = 1

		bundle, err := NewGenerator(cfg).Load(context.Background())
		assert.Nil(t, bundle)
		assert.True(t, errors.Is(err, ErrSimulatedFailure))
	})

	t.Run("Contexto cancelado interrompe o atraso", func(t *testing.T) {
		cfg := testConfig()
		cfg.Delay = time.Hour

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		_, err := NewGenerator(cfg).Load(ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Less(t, time.Since(start), time.Second)
	})
}
