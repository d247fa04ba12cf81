package store

import (
	"time"

	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

// Action é uma intenção tipada aplicada ao estado por Reduce
type Action interface {
	Type() string
}

type LoadStarted struct {
	RequestID uint64
}

type LoadSucceeded struct {
	RequestID  uint64
	Bundle     domain.Bundle
	SnapshotID string
	LoadedAt   time.Time
}

type LoadFailed struct {
	RequestID uint64
	Message   string
}

type ClearError struct{}

type ToggleCampaignStatus struct {
	CampaignID string
}

// SetCampaignStatus define o status da campanha. Com Expect preenchido, só é
// aplicada se o status atual for igual a Expect.
type SetCampaignStatus struct {
	CampaignID string
	Status     domain.CampaignStatus
	Expect     domain.CampaignStatus
}

type SetDateRange struct {
	DateRange domain.DateRange
}

type SetSelectedTab struct {
	Tab domain.Tab
}

type SetSortBy struct {
	Column domain.SortColumn
}

type SetSortOrder struct {
	Order domain.SortOrder
}

type ToggleFilter struct {
	Tag string
}

type ClearFilters struct{}

// UpdateSelection altera as seleções de campanha, grupo e palavra-chave. Campos vazios são ignorados.
type UpdateSelection struct {
	Campaign        string
	AdGroup         string
	KeywordCategory string
}

func (LoadStarted) Type() string          { return "dashboard/loadData/pending" }
func (LoadSucceeded) Type() string        { return "dashboard/loadData/fulfilled" }
func (LoadFailed) Type() string           { return "dashboard/loadData/rejected" }
func (ClearError) Type() string           { return "dashboard/clearError" }
func (ToggleCampaignStatus) Type() string { return "dashboard/toggleCampaignStatus" }
func (SetCampaignStatus) Type() string    { return "dashboard/setCampaignStatus" }
func (SetDateRange) Type() string         { return "filters/setDateRange" }
func (SetSelectedTab) Type() string       { return "filters/setSelectedTab" }
func (SetSortBy) Type() string            { return "filters/setSortBy" }
func (SetSortOrder) Type() string         { return "filters/setSortOrder" }
func (ToggleFilter) Type() string         { return "filters/toggleFilter" }
func (ClearFilters) Type() string         { return "filters/clearFilters" }
func (UpdateSelection) Type() string      { return "filters/updateSelection" }
