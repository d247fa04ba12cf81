package store

import (
	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

// Reduce aplica a ação ao estado e devolve o novo estado. Não altera o estado
// recebido: coleções modificadas são copiadas antes da alteração.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case LoadStarted:
		if a.RequestID < state.LatestRequest {
			return state
		}
		state.Status = StatusLoading
		state.Error = ""
		state.LatestRequest = a.RequestID

	case LoadSucceeded:
		if a.RequestID != state.LatestRequest {
			return state
		}
		state.Status = StatusLoaded
		state.Error = ""
		state.Records = a.Bundle
		state.SnapshotID = a.SnapshotID
		state.LoadedAt = a.LoadedAt
		state.Version++

	case LoadFailed:
		if a.RequestID != state.LatestRequest {
			return state
		}
		state.Status = StatusErrored
		state.Error = a.Message

	case ClearError:
		state.Error = ""
		if state.Status == StatusErrored {
			state.Status = StatusIdle
			if state.HasData() {
				state.Status = StatusLoaded
			}
		}

	case ToggleCampaignStatus:
		return updateCampaignStatus(state, a.CampaignID, func(current domain.CampaignStatus) (domain.CampaignStatus, bool) {
			return current.Toggle(), true
		})

	case SetCampaignStatus:
		return updateCampaignStatus(state, a.CampaignID, func(current domain.CampaignStatus) (domain.CampaignStatus, bool) {
			if a.Expect != "" && current != a.Expect {
				return current, false
			}
			return a.Status, current != a.Status
		})

	case SetDateRange:
		state.Filters.DateRange = a.DateRange

	case SetSelectedTab:
		state.Filters.SelectedTab = a.Tab

	case SetSortBy:
		state.Filters.SortBy = a.Column

	case SetSortOrder:
		state.Filters.SortOrder = a.Order

	case ToggleFilter:
		filters := make([]string, 0, len(state.Filters.ActiveFilters)+1)
		found := false
		for _, tag := range state.Filters.ActiveFilters {
			if tag == a.Tag {
				found = true
				continue
			}
			filters = append(filters, tag)
		}
		if !found {
			filters = append(filters, a.Tag)
		}
		state.Filters.ActiveFilters = filters

	case ClearFilters:
		state.Filters.ActiveFilters = []string{}

	case UpdateSelection:
		if a.Campaign != "" {
			state.Filters.Campaign = a.Campaign
		}
		if a.AdGroup != "" {
			state.Filters.AdGroup = a.AdGroup
		}
		if a.KeywordCategory != "" {
			state.Filters.KeywordCategory = a.KeywordCategory
		}
	}

	return state
}

// updateCampaignStatus copia a coleção de campanhas e aplica o novo status.
// Campanha inexistente ou next sem alteração devolvem o estado intacto.
func updateCampaignStatus(state State, campaignID string, next func(domain.CampaignStatus) (domain.CampaignStatus, bool)) State {
	index := -1
	for i, campaign := range state.Records.Campaigns {
		if campaign.ID == campaignID {
			index = i
			break
		}
	}
	if index < 0 {
		return state
	}

	status, changed := next(state.Records.Campaigns[index].Status)
	if !changed {
		return state
	}

	campaigns := make([]domain.Campaign, len(state.Records.Campaigns))
	copy(campaigns, state.Records.Campaigns)
	campaigns[index].Status = status

	state.Records.Campaigns = campaigns
	state.Version++

	return state
}
