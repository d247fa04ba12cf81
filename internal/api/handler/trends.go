package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/traffic-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/traffic-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/traffic-dashboard-api/pkg/utils"
)

// GetTrends retorna os pontos de tendência dentro do intervalo. start_date e
// end_date (YYYY-MM-DD) substituem o intervalo do filtro atual.
func GetTrends(st StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := st.State()
		if !requireData(w, state) {
			return
		}

		start, end := state.Filters.DateRange.Start, state.Filters.DateRange.End

		if raw := r.URL.Query().Get("start_date"); raw != "" {
			date, err := utils.ParseDate(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato de start_date inválido, use YYYY-MM-DD", nil)
				return
			}
			start = *date
		}

		if raw := r.URL.Query().Get("end_date"); raw != "" {
			date, err := utils.ParseDate(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato de end_date inválido, use YYYY-MM-DD", nil)
				return
			}
			end = *date
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"start_date": start.Format(time.DateOnly),
			"end_date":   end.Format(time.DateOnly),
			"trends":     analyzing.FilterTrendsByDateRange(state.Records.Trends, start, end),
		})
	}
}

// GetTrendAnalysis compara os últimos 7 pontos com os 7 anteriores. Com menos de
// 2 pontos a análise é null; com até 7 pontos não há janela anterior e as
// variações saem como null.
func GetTrendAnalysis(st StateStore, service analyzing.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := st.State()
		if !requireData(w, state) {
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"analysis": service.Dashboard(state).TrendAnalysis,
		})
	}
}

func GetStorefronts(st StateStore, service analyzing.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := st.State()
		if !requireData(w, state) {
			return
		}

		writeJSON(w, http.StatusOK, service.Dashboard(state).Storefronts)
	}
}

func GetRegionalPerformance(st StateStore, service analyzing.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := st.State()
		if !requireData(w, state) {
			return
		}

		writeJSON(w, http.StatusOK, service.Dashboard(state).Regional)
	}
}
