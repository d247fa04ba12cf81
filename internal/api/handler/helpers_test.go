package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/traffic-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/traffic-dashboard-api/internal/config"
	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
	"github.com/vfg2006/traffic-dashboard-api/internal/store"
	"github.com/vfg2006/traffic-dashboard-api/internal/store/mocks"
	"github.com/vfg2006/traffic-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/traffic-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/traffic-dashboard-api/pkg/middleware"
)

var (
	adminClaims  = &domain.Claims{UserEmail: "admin@example.com", UserRoleID: domain.RoleAdmin}
	viewerClaims = &domain.Claims{UserEmail: "viewer@example.com", UserRoleID: domain.RoleViewer}
)

func day(d int) time.Time {
	return time.Date(2025, time.July, d, 0, 0, 0, 0, time.UTC)
}

func testFilters() domain.Filters {
	return domain.DefaultFilters(domain.DateRange{Start: day(5), End: day(11), Label: domain.PresetLast7Days})
}

// testBundle gera 25 campanhas (c01..c25) alternando entre US e UK e 14 dias de tendência
func testBundle() *domain.Bundle {
	campaigns := make([]domain.Campaign, 0, 25)
	for i := 1; i <= 25; i++ {
		region := "US"
		if i%2 == 0 {
			region = "UK"
		}
		campaigns = append(campaigns, domain.Campaign{
			ID:          fmt.Sprintf("c%02d", i),
			Name:        fmt.Sprintf("Campaign %02d", i),
			Region:      region,
			Status:      domain.CampaignStatusActive,
			Spend:       float64(i * 100),
			Installs:    i * 10,
			Conversions: i,
			Change:      float64(i - 12),
		})
	}

	trends := make([]domain.TrendPoint, 0, 14)
	for i := 0; i < 14; i++ {
		trends = append(trends, domain.TrendPoint{Date: day(1 + i), Spend: 100, Revenue: 300, Conversions: 5})
	}

	return &domain.Bundle{
		KPIs:           []domain.KPIMetric{{ID: "total-spend", Title: "Total Spend", Value: "$32,500"}},
		Campaigns:      campaigns,
		Trends:         trends,
		Storefronts:    []domain.Storefront{{Region: "US", Spend: 1000}, {Region: "UK", Spend: 500}},
		Summary:        []domain.SummaryMetric{{Label: analyzing.LabelTotalSpend, Change: 10}},
		BiggestChanges: campaigns[:5],
	}
}

func newStore(t *testing.T, loaded bool) (*store.Store, *mocks.MockLoader) {
	t.Helper()

	ctrl := gomock.NewController(t)
	loader := mocks.NewMockLoader(ctrl)
	st := store.New(loader, testFilters())

	if loaded {
		loader.EXPECT().Load(gomock.Any()).Return(testBundle(), nil)
		require.NoError(t, st.Refresh(context.Background()))
	}

	return st, loader
}

func newService(t *testing.T) *analyzing.Service {
	t.Helper()

	service, err := analyzing.NewService(&config.Config{
		Cache:     config.Cache{NumCounters: 100, MaxCost: 10, BufferItems: 64, TTL: time.Minute},
		Dashboard: config.Dashboard{PageSize: 10, TopN: 5, BiggestChangesLimit: 3},
	})
	require.NoError(t, err)
	t.Cleanup(service.Close)

	return service
}

type stubStatusWriter struct {
	err   error
	calls []domain.CampaignStatus
}

func (s *stubStatusWriter) UpdateCampaignStatus(ctx context.Context, campaignID string, status domain.CampaignStatus) error {
	s.calls = append(s.calls, status)
	return s.err
}

// newTestRouter monta todas as rotas do dashboard como no servidor
func newTestRouter(st StateStore, service analyzing.DashboardService, writer CampaignStatusWriter) http.Handler {
	return router.New(
		router.WithRoutes(Dashboard(st, service)...),
		router.WithRoutes(Campaigns(st, service, writer)...),
		router.WithRoutes(Trends(st, service)...),
		router.WithRoutes(Filters(st)...),
	)
}

func do(t *testing.T, h http.Handler, method, path string, body any, claims *domain.Claims) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if claims != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	return decode[apiErrors.APIError](t, rec)
}
