package domain

type SummaryMetric struct {
	Label      string  `json:"label"`
	Value      string  `json:"value"`
	Percentage string  `json:"percentage"`
	Change     float64 `json:"change"`
}

type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

type KPIMetric struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Value      string    `json:"value"`
	Change     float64   `json:"change"`
	Trend      Trend     `json:"trend"`
	Sparkline  []float64 `json:"sparkline_data"`
	IsPositive bool      `json:"is_positive"`
}

// Bundle é o conjunto de registros produzido por uma carga completa
type Bundle struct {
	KPIs           []KPIMetric     `json:"kpis"`
	Campaigns      []Campaign      `json:"campaigns"`
	Trends         []TrendPoint    `json:"trends"`
	Storefronts    []Storefront    `json:"storefronts"`
	Summary        []SummaryMetric `json:"summary"`
	BiggestChanges []Campaign      `json:"biggest_changes"`
}
