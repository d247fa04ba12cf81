package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"

	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
	"github.com/vfg2006/traffic-dashboard-api/internal/store"
	"github.com/vfg2006/traffic-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/traffic-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/traffic-dashboard-api/pkg/log"
)

// ListCampaigns retorna a página pedida da tabela de campanhas. Parâmetros da
// query sobrescrevem os filtros do estado apenas para esta consulta.
func ListCampaigns(st StateStore, service analyzing.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := st.State()
		if !requireData(w, state) {
			return
		}

		query, ok := parseCampaignQuery(w, r)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, service.Campaigns(state, query))
	}
}

func parseCampaignQuery(w http.ResponseWriter, r *http.Request) (analyzing.CampaignQuery, bool) {
	var query analyzing.CampaignQuery
	params := r.URL.Query()

	if raw := params.Get("sort_by"); raw != "" {
		column, ok := domain.ParseSortColumn(raw)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "sort_by inválido", map[string]any{"sort_by": raw})
			return query, false
		}
		query.SortBy = column
	}

	if raw := params.Get("sort_order"); raw != "" {
		order, ok := domain.ParseSortOrder(raw)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "sort_order inválido", map[string]any{"sort_order": raw})
			return query, false
		}
		query.SortOrder = order
	}

	page, err := queryInt(r, "page", 0)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "page inválido", nil)
		return query, false
	}
	query.PageIndex = page

	pageSize, err := queryInt(r, "page_size", 0)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "page_size inválido", nil)
		return query, false
	}
	query.PageSize = pageSize

	query.Region = params.Get("region")

	if query.MinSpend, err = queryFloat(r, "min_spend"); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "min_spend inválido", nil)
		return query, false
	}
	if query.MaxSpend, err = queryFloat(r, "max_spend"); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "max_spend inválido", nil)
		return query, false
	}

	return query, true
}

// GetTopCampaigns retorna o ranking de campanhas por métrica (spend, installs, conversions ou roi)
func GetTopCampaigns(st StateStore, service analyzing.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := st.State()
		if !requireData(w, state) {
			return
		}

		metric := domain.MetricSpend
		if raw := r.URL.Query().Get("metric"); raw != "" {
			parsed, ok := domain.ParseMetric(raw)
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Métrica inválida. Valores aceitos: spend, installs, conversions, roi", nil)
				return
			}
			metric = parsed
		}

		n, err := queryInt(r, "n", 0)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "n inválido", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"metric":    metric,
			"campaigns": service.Top(state, metric, n),
		})
	}
}

func GetBiggestChanges(st StateStore, service analyzing.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := st.State()
		if !requireData(w, state) {
			return
		}

		n, err := queryInt(r, "n", 0)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "n inválido", nil)
			return
		}

		writeJSON(w, http.StatusOK, service.BiggestChanges(state, n))
	}
}

// ToggleCampaignStatus alterna a campanha entre active e paused. Quando há um
// writer configurado, a alteração é persistida e desfeita em caso de erro.
func ToggleCampaignStatus(st StateStore, writer CampaignStatusWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		var statusWriter store.StatusWriter
		if writer != nil {
			statusWriter = writer
		}

		campaign, err := st.ToggleCampaign(r.Context(), campaignID, statusWriter)
		if err != nil {
			if errors.Is(err, store.ErrCampaignNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrCampaignNotFound, "Campanha não encontrada", map[string]any{"id": campaignID})
				return
			}

			logger.WithError(err).WithField("campaign_id", campaignID).Error("campaigns: failed to persist status")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar status da campanha", nil)
			return
		}

		logger.WithFields(log.Fields{
			"campaign_id": campaignID,
			"status":      campaign.Status,
		}).Info("campaigns: status toggled")

		writeJSON(w, http.StatusOK, campaign)
	}
}
