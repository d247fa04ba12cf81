package domain

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

type Tab string

const (
	TabCampaigns Tab = "Campaigns"
	TabAdGroups  Tab = "Ad Groups"
	TabKeywords  Tab = "Keywords"
	TabAds       Tab = "Ads"
)

func ParseTab(value string) (Tab, bool) {
	switch Tab(value) {
	case TabCampaigns, TabAdGroups, TabKeywords, TabAds:
		return Tab(value), true
	}
	return "", false
}

// SortColumn é o conjunto fechado de colunas ordenáveis da tabela de campanhas
type SortColumn string

const (
	SortBySpend       SortColumn = "Spend"
	SortByInstalls    SortColumn = "Installs"
	SortByConversions SortColumn = "Conversions"
)

func ParseSortColumn(value string) (SortColumn, bool) {
	switch strings.ToLower(value) {
	case "spend":
		return SortBySpend, true
	case "installs":
		return SortByInstalls, true
	case "conversions":
		return SortByConversions, true
	}
	return "", false
}

// Metric converte a coluna para a métrica equivalente
func (c SortColumn) Metric() Metric {
	switch c {
	case SortByInstalls:
		return MetricInstalls
	case SortByConversions:
		return MetricConversions
	default:
		return MetricSpend
	}
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func ParseSortOrder(value string) (SortOrder, bool) {
	switch SortOrder(strings.ToLower(value)) {
	case SortAsc:
		return SortAsc, true
	case SortDesc:
		return SortDesc, true
	}
	return "", false
}

func (o SortOrder) Flip() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

const SelectionAll = "all"

// Filters guarda os parâmetros de visualização escolhidos pelo usuário
type Filters struct {
	DateRange       DateRange  `json:"date_range"`
	SelectedTab     Tab        `json:"selected_tab"`
	SortBy          SortColumn `json:"sort_by"`
	SortOrder       SortOrder  `json:"sort_order"`
	ActiveFilters   []string   `json:"active_filters"`
	Campaign        string     `json:"campaign"`
	AdGroup         string     `json:"ad_group"`
	KeywordCategory string     `json:"keyword_category"`
}

func DefaultFilters(dateRange DateRange) Filters {
	return Filters{
		DateRange:       dateRange,
		SelectedTab:     TabCampaigns,
		SortBy:          SortBySpend,
		SortOrder:       SortDesc,
		ActiveFilters:   []string{},
		Campaign:        SelectionAll,
		AdGroup:         SelectionAll,
		KeywordCategory: SelectionAll,
	}
}

// Hash identifica de forma determinística o conjunto de filtros. Cada campo é
// gravado com o tamanho à frente, então separadores dentro dos valores não colidem.
func (f Filters) Hash() uint64 {
	h := fnv.New64a()

	fields := []string{
		f.DateRange.Start.Format(time.DateOnly),
		f.DateRange.End.Format(time.DateOnly),
		f.DateRange.Label,
		string(f.SelectedTab),
		string(f.SortBy),
		string(f.SortOrder),
		f.Campaign,
		f.AdGroup,
		f.KeywordCategory,
	}
	fmt.Fprintf(h, "%d#", len(f.ActiveFilters))
	for _, field := range append(fields, f.ActiveFilters...) {
		fmt.Fprintf(h, "%d:%s", len(field), field)
	}

	return h.Sum64()
}

// HasFilter indica se a tag está ativa
func (f Filters) HasFilter(tag string) bool {
	for _, active := range f.ActiveFilters {
		if active == tag {
			return true
		}
	}
	return false
}
