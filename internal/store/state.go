// Package store mantém o estado do dashboard: registros carregados, filtros e
// status da carga. O estado só muda através de ações aplicadas por Reduce.
package store

import (
	"time"

	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusErrored Status = "errored"
)

// LoadFailedMessage é a mensagem exibida quando a carga falha
const LoadFailedMessage = "Failed to load dashboard data"

type State struct {
	Records    domain.Bundle
	Filters    domain.Filters
	Status     Status
	Error      string
	Version    uint64 // incrementado a cada mudança nos registros
	SnapshotID string
	LoadedAt   time.Time
	// LatestRequest é o ID da carga mais recente iniciada; respostas de cargas
	// anteriores são descartadas.
	LatestRequest uint64
}

func NewState(filters domain.Filters) State {
	return State{
		Filters: filters,
		Status:  StatusIdle,
	}
}

// HasData indica se alguma carga já foi concluída com sucesso
func (s State) HasData() bool {
	return s.SnapshotID != ""
}

// Campaign procura a campanha pelo ID
func (s State) Campaign(campaignID string) (domain.Campaign, bool) {
	for _, campaign := range s.Records.Campaigns {
		if campaign.ID == campaignID {
			return campaign, true
		}
	}
	return domain.Campaign{}, false
}

// AnchorDate é a data usada para resolver presets de data: o último ponto de tendência
func (s State) AnchorDate(fallback time.Time) time.Time {
	if n := len(s.Records.Trends); n > 0 {
		return s.Records.Trends[n-1].Date
	}
	return fallback
}

// StatusView é o resumo do status exposto pela API
type StatusView struct {
	Status     Status    `json:"status"`
	Error      string    `json:"error,omitempty"`
	Version    uint64    `json:"version"`
	SnapshotID string    `json:"snapshot_id,omitempty"`
	LoadedAt   time.Time `json:"loaded_at"`
	HasData    bool      `json:"has_data"`
}

func (s State) StatusView() StatusView {
	return StatusView{
		Status:     s.Status,
		Error:      s.Error,
		Version:    s.Version,
		SnapshotID: s.SnapshotID,
		LoadedAt:   s.LoadedAt,
		HasData:    s.HasData(),
	}
}
