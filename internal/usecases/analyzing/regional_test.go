package analyzing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

func TestRegionalRollup(t *testing.T) {
	t.Run("Agrupa campanhas da mesma região", func(t *testing.T) {
		result := RegionalRollup([]domain.Campaign{
			{ID: "1", Region: "US", Spend: 100, Installs: 10, Conversions: 2},
			{ID: "2", Region: "US", Spend: 200, Installs: 20, Conversions: 4},
		})

		require.Len(t, result, 1)
		assert.Equal(t, "US", result[0].Region)
		assert.Equal(t, 300.0, result[0].Spend)
		assert.Equal(t, 2, result[0].CampaignCount)
		assert.Equal(t, 30, result[0].Installs)
		assert.InDelta(t, 10.0, float64(result[0].AvgCPI), 1e-9)
		assert.InDelta(t, 20.0, float64(result[0].ConversionRate), 1e-9)
	})

	t.Run("Ordena por gasto mantendo a ordem de aparição nos empates", func(t *testing.T) {
		result := RegionalRollup(sampleCampaigns())

		regions := make([]string, len(result))
		for i, region := range result {
			regions[i] = region.Region
		}
		assert.Equal(t, []string{"US", "UK", "BR", "DE"}, regions)
	})

	t.Run("Região sem instalações tem razões não finitas", func(t *testing.T) {
		result := RegionalRollup([]domain.Campaign{{ID: "1", Region: "JP", Spend: 10}})
		require.Len(t, result, 1)
		assert.False(t, result[0].AvgCPI.IsFinite())
		assert.False(t, result[0].ConversionRate.IsFinite())
	})

	t.Run("Sem campanhas", func(t *testing.T) {
		assert.Empty(t, RegionalRollup(nil))
	})
}

func TestScaleRegionalSpend(t *testing.T) {
	regions := []domain.Storefront{
		{Region: "US", Spend: 900, Coordinates: [2]float64{-95.7, 37.1}},
		{Region: "UK", Spend: 300},
	}

	t.Run("Multiplica pela fração filtrada", func(t *testing.T) {
		result := ScaleRegionalSpend(regions, 30, 90)
		assert.InDelta(t, 300.0, result[0].Spend, 1e-9)
		assert.InDelta(t, 100.0, result[1].Spend, 1e-9)
		assert.Equal(t, regions[0].Coordinates, result[0].Coordinates)
		assert.Equal(t, 900.0, regions[0].Spend)
	})

	t.Run("Sem tendências mantém os valores", func(t *testing.T) {
		result := ScaleRegionalSpend(regions, 0, 0)
		assert.Equal(t, regions, result)
	})

	t.Run("Filtro vazio zera o gasto", func(t *testing.T) {
		result := ScaleRegionalSpend(regions, 0, 90)
		assert.Equal(t, 0.0, result[0].Spend)
	})
}

func TestStorefrontShares(t *testing.T) {
	result := StorefrontShares([]domain.Storefront{
		{Region: "US", Spend: 750},
		{Region: "UK", Spend: 250},
	})

	require.Len(t, result, 2)
	assert.InDelta(t, 75.0, float64(result[0].Share), 1e-9)
	assert.InDelta(t, 25.0, float64(result[1].Share), 1e-9)

	zero := StorefrontShares([]domain.Storefront{{Region: "US"}})
	assert.False(t, zero[0].Share.IsFinite())
}
