package handler

import (
	"context"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
	"github.com/vfg2006/traffic-dashboard-api/internal/store"
	"github.com/vfg2006/traffic-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/traffic-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StateStore é a parte do store usada pelos handlers
type StateStore interface {
	State() store.State
	Dispatch(action store.Action) store.State
	RefreshAsync(ctx context.Context)
	ToggleCampaign(ctx context.Context, campaignID string, writer store.StatusWriter) (domain.Campaign, error)
}

// CampaignStatusWriter persiste a troca de status de uma campanha. Opcional:
// sem ele a alteração vale apenas para o estado em memória.
type CampaignStatusWriter interface {
	UpdateCampaignStatus(ctx context.Context, campaignID string, status domain.CampaignStatus) error
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("Erro ao enviar resposta")
	}
}

// requireData escreve o erro adequado e retorna false quando ainda não há
// registros carregados para derivar a resposta
func requireData(w http.ResponseWriter, state store.State) bool {
	if state.HasData() {
		return true
	}

	if state.Status == store.StatusErrored {
		apiErrors.WriteError(w, apiErrors.ErrDashboardLoadFailed, state.Error, state.StatusView())
		return false
	}

	apiErrors.WriteError(w, apiErrors.ErrDashboardNotLoaded, "Dados do dashboard ainda não carregados", state.StatusView())
	return false
}

// queryInt lê um inteiro não negativo da query string
func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, strconv.ErrSyntax
	}

	return value, nil
}

func queryFloat(r *http.Request, key string) (*float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}

	return &value, nil
}
