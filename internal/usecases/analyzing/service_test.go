package analyzing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/traffic-dashboard-api/internal/config"
	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
	"github.com/vfg2006/traffic-dashboard-api/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	service, err := NewService(&config.Config{
		Cache: config.Cache{NumCounters: 100, MaxCost: 10, BufferItems: 64, TTL: time.Minute},
		Dashboard: config.Dashboard{
			PageSize:            2,
			TopN:                3,
			BiggestChangesLimit: 2,
		},
	})
	require.NoError(t, err)
	t.Cleanup(service.Close)

	return service
}

func loadedState() store.State {
	bundle := domain.Bundle{
		KPIs:        []domain.KPIMetric{{ID: "kpi-1", Title: "Total Spend"}},
		Campaigns:   sampleCampaigns(),
		Trends:      dailyTrends(day(time.July, 1), 14),
		Storefronts: []domain.Storefront{{Region: "US", Spend: 1400}, {Region: "UK", Spend: 700}},
		Summary:     []domain.SummaryMetric{{Label: LabelTotalSpend, Change: 15.7}},
		BiggestChanges: []domain.Campaign{
			{ID: "x", Change: 2}, {ID: "y", Change: -30}, {ID: "z", Change: 10},
		},
	}

	state := store.NewState(domain.DefaultFilters(domain.DateRange{
		Start: day(time.July, 5),
		End:   day(time.July, 11),
		Label: "Last 7 Days",
	}))
	state = store.Reduce(state, store.LoadStarted{RequestID: 1})
	state = store.Reduce(state, store.LoadSucceeded{RequestID: 1, Bundle: bundle, SnapshotID: "snap01"})

	return state
}

func TestService_Dashboard(t *testing.T) {
	service := newTestService(t)
	state := loadedState()

	view := service.Dashboard(state)

	assert.Equal(t, "snap01", view.SnapshotID)
	assert.Equal(t, uint64(1), view.Version)
	assert.Len(t, view.KPIs, 1)
	assert.Len(t, view.Summary, 7)

	require.Len(t, view.Trends, 7)
	assert.Equal(t, day(time.July, 5), view.Trends[0].Date)

	// receita apenas dos pontos filtrados: 304..310
	assert.Equal(t, 2149.0, view.Analytics.TotalRevenue)
	assert.Equal(t, 750.0, view.Analytics.TotalSpend)

	require.NotNil(t, view.TrendAnalysis)
	assert.True(t, view.TrendAnalysis.SpendTrend.IsFinite())

	// 7 de 14 pontos: metade do gasto regional
	require.Len(t, view.Storefronts, 2)
	assert.InDelta(t, 700.0, view.Storefronts[0].Spend, 1e-9)
	assert.InDelta(t, 66.666, float64(view.Storefronts[0].Share), 1e-2)

	assert.Len(t, view.TopPerformers.BySpend, 3)
	assert.Equal(t, "US", view.Regional[0].Region)
	assert.Equal(t, []string{"y", "z"}, ids(view.BiggestChanges))

	assert.Equal(t, 3, view.CampaignPage.TotalPages)
	assert.Equal(t, []string{"a", "c"}, ids(view.CampaignPage.Items))
}

func TestService_DashboardCache(t *testing.T) {
	service := newTestService(t)
	state := loadedState()

	first := service.Dashboard(state)
	service.cache.Wait()

	second := service.Dashboard(state)
	assert.Same(t, first, second)

	t.Run("Mudança nos registros invalida o cache", func(t *testing.T) {
		toggled := store.Reduce(state, store.ToggleCampaignStatus{CampaignID: "a"})
		view := service.Dashboard(toggled)

		assert.NotSame(t, first, view)
		assert.Equal(t, uint64(2), view.Version)
	})

	t.Run("Mudança nos filtros invalida o cache", func(t *testing.T) {
		sorted := store.Reduce(state, store.SetSortOrder{Order: domain.SortAsc})
		view := service.Dashboard(sorted)

		assert.NotSame(t, first, view)
		assert.Equal(t, []string{"d", "e"}, ids(view.CampaignPage.Items))
	})
}

func TestService_DashboardWithoutData(t *testing.T) {
	service := newTestService(t)
	state := store.NewState(domain.DefaultFilters(domain.DateRange{}))

	view := service.Dashboard(state)

	assert.Nil(t, view.TrendAnalysis)
	assert.Empty(t, view.Trends)
	assert.NotNil(t, view.KPIs)
	assert.Len(t, view.Summary, 7)
	assert.Equal(t, NoData, view.Summary[3].Value)
	assert.Empty(t, view.CampaignPage.Items)
}

func TestService_Campaigns(t *testing.T) {
	service := newTestService(t)
	state := loadedState()

	minSpend, maxSpend := 50.0, 300.0

	tests := []struct {
		name  string
		query CampaignQuery
		want  []string
		pages int
	}{
		{name: "Usa os filtros do estado", query: CampaignQuery{}, want: []string{"a", "c"}, pages: 3},
		{name: "Filtra por região", query: CampaignQuery{Region: "US", PageSize: 10}, want: []string{"a", "c"}, pages: 1},
		{
			name:  "Filtra por faixa de gasto e ordena por instalações",
			query: CampaignQuery{MinSpend: &minSpend, MaxSpend: &maxSpend, SortBy: domain.SortByInstalls, SortOrder: domain.SortAsc, PageSize: 10},
			want:  []string{"c", "a", "b", "e"},
			pages: 1,
		},
		{name: "Segunda página", query: CampaignQuery{PageIndex: 1}, want: []string{"b", "e"}, pages: 3},
		{name: "Somente gasto mínimo", query: CampaignQuery{MinSpend: &maxSpend, PageSize: 10}, want: []string{"a", "c"}, pages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := service.Campaigns(state, tt.query)
			assert.Equal(t, tt.want, ids(page.Items))
			assert.Equal(t, tt.pages, page.TotalPages)
		})
	}
}

func TestService_TopAndBiggestChangesDefaults(t *testing.T) {
	service := newTestService(t)
	state := loadedState()

	assert.Len(t, service.Top(state, domain.MetricSpend, 0), 3)
	assert.Len(t, service.Top(state, domain.MetricSpend, 1), 1)

	changes := service.BiggestChanges(state, 0)
	require.Len(t, changes, 2)
	assert.Equal(t, "y", changes[0].ID)
	assert.Equal(t, "z", changes[1].ID)
}
