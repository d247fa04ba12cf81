package handler

import (
	"context"
	"net/http"

	"github.com/vfg2006/traffic-dashboard-api/internal/store"
	"github.com/vfg2006/traffic-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/traffic-dashboard-api/pkg/log"
)

// GetDashboard retorna a visão completa derivada do estado atual. Enquanto houver
// dados de uma carga anterior eles continuam sendo servidos, mesmo após uma falha.
func GetDashboard(st StateStore, service analyzing.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := st.State()
		if !requireData(w, state) {
			return
		}

		writeJSON(w, http.StatusOK, service.Dashboard(state))
	}
}

func GetDashboardStatus(st StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, st.State().StatusView())
	}
}

// RefreshDashboard dispara uma nova carga em background. A carga iniciada por
// último prevalece sobre qualquer outra ainda em andamento.
func RefreshDashboard(st StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("dashboard: refresh requested")

		st.RefreshAsync(context.WithoutCancel(r.Context()))

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Recarga do dashboard iniciada",
		})
	}
}

func ClearDashboardError(st StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := st.Dispatch(store.ClearError{})
		writeJSON(w, http.StatusOK, state.StatusView())
	}
}

func GetKPIs(st StateStore, service analyzing.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := st.State()
		if !requireData(w, state) {
			return
		}

		writeJSON(w, http.StatusOK, service.Dashboard(state).KPIs)
	}
}

// GetSummary retorna os cartões de resumo com os totais recalculados
func GetSummary(st StateStore, service analyzing.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := st.State()
		if !requireData(w, state) {
			return
		}

		view := service.Dashboard(state)
		writeJSON(w, http.StatusOK, map[string]any{
			"summary":   view.Summary,
			"analytics": view.Analytics,
		})
	}
}
