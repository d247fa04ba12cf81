package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
	"github.com/vfg2006/traffic-dashboard-api/internal/store"
	"github.com/vfg2006/traffic-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/traffic-dashboard-api/pkg/log"
	"github.com/vfg2006/traffic-dashboard-api/pkg/utils"
)

type DateRangeRequest struct {
	Preset    string `json:"preset"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Label     string `json:"label"`
}

type TabRequest struct {
	Tab string `json:"tab"`
}

type SortRequest struct {
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

type SelectionRequest struct {
	Campaign        string `json:"campaign"`
	AdGroup         string `json:"ad_group"`
	KeywordCategory string `json:"keyword_category"`
}

func GetFilters(st StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"filters": st.State().Filters,
			"presets": domain.Presets(),
		})
	}
}

// SetDateRange aceita um preset (resolvido a partir do último dia com dados)
// ou um intervalo explícito com start_date e end_date.
func SetDateRange(st StateStore, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DateRangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		var dateRange domain.DateRange

		if req.Preset != "" && req.Preset != domain.PresetCustom {
			resolved, err := domain.DateRangeFromPreset(req.Preset, st.State().AnchorDate(now()))
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), map[string]any{"presets": domain.Presets()})
				return
			}
			dateRange = resolved
		} else {
			if req.StartDate == "" || req.EndDate == "" {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "start_date e end_date são obrigatórios sem preset", nil)
				return
			}

			start, err := utils.ParseDate(req.StartDate)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato de start_date inválido, use YYYY-MM-DD", nil)
				return
			}
			end, err := utils.ParseDate(req.EndDate)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato de end_date inválido, use YYYY-MM-DD", nil)
				return
			}

			label := req.Label
			if label == "" {
				label = domain.PresetCustom
			}
			dateRange = domain.DateRange{Start: *start, End: *end, Label: label}
		}

		state := st.Dispatch(store.SetDateRange{DateRange: dateRange})

		log.ForContext(r.Context()).WithFields(log.Fields{
			"start": dateRange.Start.Format(time.DateOnly),
			"end":   dateRange.End.Format(time.DateOnly),
			"label": dateRange.Label,
		}).Debug("filters: date range updated")

		writeJSON(w, http.StatusOK, state.Filters)
	}
}

func SetSelectedTab(st StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TabRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		tab, ok := domain.ParseTab(req.Tab)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Aba inválida", map[string]any{"tab": req.Tab})
			return
		}

		writeJSON(w, http.StatusOK, st.Dispatch(store.SetSelectedTab{Tab: tab}).Filters)
	}
}

// SetSort altera a ordenação da tabela. Enviar apenas sort_by com a coluna já
// selecionada inverte a ordem, como um clique repetido no cabeçalho.
func SetSort(st StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SortRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.SortBy == "" && req.SortOrder == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Informe sort_by ou sort_order", nil)
			return
		}

		var actions []store.Action
		current := st.State().Filters

		if req.SortBy != "" {
			column, ok := domain.ParseSortColumn(req.SortBy)
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "sort_by inválido", map[string]any{"sort_by": req.SortBy})
				return
			}

			if column == current.SortBy && req.SortOrder == "" {
				actions = append(actions, store.SetSortOrder{Order: current.SortOrder.Flip()})
			} else {
				actions = append(actions, store.SetSortBy{Column: column})
			}
		}

		if req.SortOrder != "" {
			order, ok := domain.ParseSortOrder(req.SortOrder)
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "sort_order inválido", map[string]any{"sort_order": req.SortOrder})
				return
			}
			actions = append(actions, store.SetSortOrder{Order: order})
		}

		var state store.State
		for _, action := range actions {
			state = st.Dispatch(action)
		}

		writeJSON(w, http.StatusOK, state.Filters)
	}
}

func UpdateSelection(st StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		state := st.Dispatch(store.UpdateSelection{
			Campaign:        req.Campaign,
			AdGroup:         req.AdGroup,
			KeywordCategory: req.KeywordCategory,
		})

		writeJSON(w, http.StatusOK, state.Filters)
	}
}

// ToggleFilterTag adiciona a tag aos filtros ativos ou a remove se já estiver presente
func ToggleFilterTag(st StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := httprouter.ParamsFromContext(r.Context()).ByName("tag")
		if tag == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tag não fornecida", nil)
			return
		}

		writeJSON(w, http.StatusOK, st.Dispatch(store.ToggleFilter{Tag: tag}).Filters)
	}
}

func ClearFilterTags(st StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, st.Dispatch(store.ClearFilters{}).Filters)
	}
}
