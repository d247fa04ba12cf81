package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
	"github.com/vfg2006/traffic-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/traffic-dashboard-api/pkg/log"
	"github.com/vfg2006/traffic-dashboard-api/pkg/middleware"
)

func ids(campaigns []domain.Campaign) []string {
	out := make([]string, 0, len(campaigns))
	for _, campaign := range campaigns {
		out = append(out, campaign.ID)
	}
	return out
}

func TestListCampaigns(t *testing.T) {
	st, _ := newStore(t, true)
	h := newTestRouter(st, newService(t), nil)

	tests := []struct {
		name     string
		path     string
		validate func(t *testing.T, code int, page domain.Page)
	}{
		{
			name: "Primeira página usa a ordenação do estado",
			path: "/v1/campaigns",
			validate: func(t *testing.T, code int, page domain.Page) {
				require.Equal(t, http.StatusOK, code)
				assert.Len(t, page.Items, 10)
				assert.Equal(t, "c25", page.Items[0].ID)
				assert.Equal(t, 3, page.TotalPages)
			},
		},
		{
			name: "Última página tem o restante",
			path: "/v1/campaigns?page=2&page_size=10",
			validate: func(t *testing.T, code int, page domain.Page) {
				require.Equal(t, http.StatusOK, code)
				assert.Equal(t, []string{"c05", "c04", "c03", "c02", "c01"}, ids(page.Items))
			},
		},
		{
			name: "Ordenação sobrescrita pela query",
			path: "/v1/campaigns?sort_by=installs&sort_order=asc&page_size=3",
			validate: func(t *testing.T, code int, page domain.Page) {
				require.Equal(t, http.StatusOK, code)
				assert.Equal(t, []string{"c01", "c02", "c03"}, ids(page.Items))
			},
		},
		{
			name: "Filtro por região",
			path: "/v1/campaigns?region=UK&page_size=0",
			validate: func(t *testing.T, code int, page domain.Page) {
				require.Equal(t, http.StatusOK, code)
				assert.Equal(t, 12, page.TotalItems)
				for _, campaign := range page.Items {
					assert.Equal(t, "UK", campaign.Region)
				}
			},
		},
		{
			name: "Filtro por faixa de gasto",
			path: "/v1/campaigns?min_spend=2000",
			validate: func(t *testing.T, code int, page domain.Page) {
				require.Equal(t, http.StatusOK, code)
				assert.Equal(t, 6, page.TotalItems)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.path, nil, viewerClaims)
			var page domain.Page
			if rec.Code == http.StatusOK {
				page = decode[domain.Page](t, rec)
			}
			tt.validate(t, rec.Code, page)
		})
	}
}

func TestListCampaigns_InvalidQuery(t *testing.T) {
	st, _ := newStore(t, true)
	h := newTestRouter(st, newService(t), nil)

	for _, path := range []string{
		"/v1/campaigns?sort_by=revenue",
		"/v1/campaigns?sort_order=up",
		"/v1/campaigns?page=-1",
		"/v1/campaigns?min_spend=abc",
	} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, path, nil, viewerClaims)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
		})
	}
}

func TestGetTopCampaigns(t *testing.T) {
	st, _ := newStore(t, true)
	h := newTestRouter(st, newService(t), nil)

	type response struct {
		Metric    domain.Metric     `json:"metric"`
		Campaigns []domain.Campaign `json:"campaigns"`
	}

	rec := do(t, h, http.MethodGet, "/v1/campaigns/top", nil, viewerClaims)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[response](t, rec)
	assert.Equal(t, domain.MetricSpend, body.Metric)
	assert.Equal(t, []string{"c25", "c24", "c23", "c22", "c21"}, ids(body.Campaigns))

	rec = do(t, h, http.MethodGet, "/v1/campaigns/top?metric=installs&n=2", nil, viewerClaims)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"c25", "c24"}, ids(decode[response](t, rec).Campaigns))

	rec = do(t, h, http.MethodGet, "/v1/campaigns/top?metric=clicks", nil, viewerClaims)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBiggestChanges(t *testing.T) {
	st, _ := newStore(t, true)
	h := newTestRouter(st, newService(t), nil)

	rec := do(t, h, http.MethodGet, "/v1/campaigns/biggest-changes", nil, viewerClaims)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"c01", "c02", "c03"}, ids(decode[[]domain.Campaign](t, rec)))

	rec = do(t, h, http.MethodGet, "/v1/campaigns/biggest-changes?n=1", nil, viewerClaims)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Campaign](t, rec), 1)
}

func TestToggleCampaignStatus(t *testing.T) {
	tests := []struct {
		name     string
		writer   *stubStatusWriter
		path     string
		claims   *domain.Claims
		wantCode int
		validate func(t *testing.T, st StateStore, writer *stubStatusWriter, body []byte)
	}{
		{
			name:     "Alterna para paused",
			path:     "/v1/campaigns/c03/status",
			claims:   adminClaims,
			wantCode: http.StatusOK,
			validate: func(t *testing.T, st StateStore, _ *stubStatusWriter, body []byte) {
				var campaign domain.Campaign
				require.NoError(t, json.Unmarshal(body, &campaign))
				assert.Equal(t, domain.CampaignStatusPaused, campaign.Status)

				found, _ := st.State().Campaign("c03")
				assert.Equal(t, domain.CampaignStatusPaused, found.Status)
			},
		},
		{
			name:     "Persiste quando há writer",
			writer:   &stubStatusWriter{},
			path:     "/v1/campaigns/c03/status",
			claims:   adminClaims,
			wantCode: http.StatusOK,
			validate: func(t *testing.T, _ StateStore, writer *stubStatusWriter, _ []byte) {
				assert.Equal(t, []domain.CampaignStatus{domain.CampaignStatusPaused}, writer.calls)
			},
		},
		{
			name:     "Erro ao persistir desfaz a alteração",
			writer:   &stubStatusWriter{err: errors.New("connection reset")},
			path:     "/v1/campaigns/c03/status",
			claims:   adminClaims,
			wantCode: http.StatusInternalServerError,
			validate: func(t *testing.T, st StateStore, _ *stubStatusWriter, _ []byte) {
				found, _ := st.State().Campaign("c03")
				assert.Equal(t, domain.CampaignStatusActive, found.Status)
			},
		},
		{
			name:     "Campanha desconhecida",
			path:     "/v1/campaigns/nope/status",
			claims:   adminClaims,
			wantCode: http.StatusNotFound,
			validate: func(t *testing.T, st StateStore, _ *stubStatusWriter, body []byte) {
				assert.Contains(t, string(body), apiErrors.ErrCampaignNotFound)
				assert.Equal(t, uint64(1), st.State().Version)
			},
		},
		{
			name:     "Visualizador não pode alterar",
			path:     "/v1/campaigns/c03/status",
			claims:   viewerClaims,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := newStore(t, true)

			var writer CampaignStatusWriter
			if tt.writer != nil {
				writer = tt.writer
			}

			rec := do(t, newTestRouter(st, newService(t), writer), http.MethodPut, tt.path, nil, tt.claims)
			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.validate != nil {
				tt.validate(t, st, tt.writer, rec.Body.Bytes())
			}
		})
	}
}

func TestToggleCampaignStatus_Involution(t *testing.T) {
	st, _ := newStore(t, true)
	h := newTestRouter(st, newService(t), nil)

	before := st.State().Records.Campaigns

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/v1/campaigns/c10/status", nil, adminClaims).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/v1/campaigns/c10/status", nil, adminClaims).Code)

	assert.Equal(t, before, st.State().Records.Campaigns)
	assert.Equal(t, uint64(3), st.State().Version)
}

func TestToggleCampaignStatus_LogsCorrelationID(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	st, _ := newStore(t, true)
	writer := &stubStatusWriter{err: errors.New("connection reset")}
	h := newTestRouter(st, newService(t), writer)

	ctx, _ := log.WithCorrelationID(context.Background(), "corr-toggle-42")
	ctx = context.WithValue(ctx, middleware.ContextKeyUser, adminClaims)
	req := httptest.NewRequest(http.MethodPut, "/v1/campaigns/c03/status", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var entry *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "campaigns: failed to persist status" {
			entry = e
		}
	}
	require.NotNil(t, entry)
	assert.Equal(t, "corr-toggle-42", entry.Data["correlation_id"])
	assert.Equal(t, "c03", entry.Data["campaign_id"])
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
}
