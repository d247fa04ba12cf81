package domain

import (
	"math"
	"strconv"
	"time"
)

// Ratio é um valor derivado de uma divisão. Pode ser NaN ou infinito quando o
// divisor é zero; nesses casos é serializado como null ("sem dados").
type Ratio float64

func (r Ratio) IsFinite() bool {
	f := float64(r)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.IsFinite() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(r), 'f', -1, 64), nil
}

// Analytics agrega os totais e razões calculados sobre os registros atuais
type Analytics struct {
	TotalSpend       float64 `json:"total_spend"`
	TotalInstalls    int     `json:"total_installs"`
	TotalConversions int     `json:"total_conversions"`
	TotalRevenue     float64 `json:"total_revenue"`
	AvgCPI           Ratio   `json:"avg_cpi"`
	ConversionRate   Ratio   `json:"conversion_rate"`
	ROAS             Ratio   `json:"roas"`
}

// TrendAnalysis compara a média dos últimos 7 pontos com os 7 anteriores (em %)
type TrendAnalysis struct {
	SpendTrend      Ratio `json:"spend_trend"`
	RevenueTrend    Ratio `json:"revenue_trend"`
	ConversionTrend Ratio `json:"conversion_trend"`
}

type RegionalPerformance struct {
	Region         string  `json:"region"`
	CampaignCount  int     `json:"campaigns"`
	Spend          float64 `json:"spend"`
	Installs       int     `json:"installs"`
	Conversions    int     `json:"conversions"`
	AvgCPI         Ratio   `json:"avg_cpi"`
	ConversionRate Ratio   `json:"conversion_rate"`
}

type TopPerformers struct {
	BySpend       []Campaign `json:"by_spend"`
	ByConversions []Campaign `json:"by_conversions"`
	ByInstalls    []Campaign `json:"by_installs"`
	ByROI         []Campaign `json:"by_roi"`
}

// Page é uma fatia da tabela de campanhas ordenada
type Page struct {
	Items      []Campaign `json:"items"`
	PageIndex  int        `json:"page_index"`
	PageSize   int        `json:"page_size"`
	TotalItems int        `json:"total_items"`
	TotalPages int        `json:"total_pages"`
}

type StorefrontShare struct {
	Storefront
	Share Ratio `json:"share"`
}

// DashboardView é a visão completa consumida pelo frontend
type DashboardView struct {
	SnapshotID     string                `json:"snapshot_id"`
	Version        uint64                `json:"version"`
	LoadedAt       time.Time             `json:"loaded_at"`
	Filters        Filters               `json:"filters"`
	KPIs           []KPIMetric           `json:"kpis"`
	Summary        []SummaryMetric       `json:"summary"`
	Analytics      Analytics             `json:"analytics"`
	TrendAnalysis  *TrendAnalysis        `json:"trend_analysis"`
	Trends         []TrendPoint          `json:"trends"`
	Storefronts    []StorefrontShare     `json:"storefronts"`
	TopPerformers  TopPerformers         `json:"top_performers"`
	Regional       []RegionalPerformance `json:"regional_performance"`
	BiggestChanges []Campaign            `json:"biggest_changes"`
	CampaignPage   Page                  `json:"campaign_page"`
}
