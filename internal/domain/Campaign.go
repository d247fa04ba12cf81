package domain

type CampaignStatus string

const (
	CampaignStatusActive CampaignStatus = "active"
	CampaignStatusPaused CampaignStatus = "paused"
)

// Toggle alterna entre active e paused. Aplicar duas vezes retorna ao valor original.
func (s CampaignStatus) Toggle() CampaignStatus {
	if s == CampaignStatusActive {
		return CampaignStatusPaused
	}
	return CampaignStatusActive
}

type Campaign struct {
	ID          string         `json:"id"`
	Name        string         `json:"campaign"`
	Type        string         `json:"type"`
	Region      string         `json:"region"`
	Status      CampaignStatus `json:"status"`
	Spend       float64        `json:"spend"`
	Installs    int            `json:"installs"`
	Conversions int            `json:"conversions"`
	Change      float64        `json:"change"`
}

// MetricValue retorna o valor numérico da campanha para a métrica informada
func (c Campaign) MetricValue(metric Metric) float64 {
	switch metric {
	case MetricInstalls:
		return float64(c.Installs)
	case MetricConversions:
		return float64(c.Conversions)
	case MetricROI:
		if c.Spend <= 0 {
			return 0
		}
		return float64(c.Conversions) / c.Spend
	default:
		return c.Spend
	}
}

// Metric identifica a métrica usada em rankings
type Metric string

const (
	MetricSpend       Metric = "spend"
	MetricInstalls    Metric = "installs"
	MetricConversions Metric = "conversions"
	MetricROI         Metric = "roi"
)

func ParseMetric(value string) (Metric, bool) {
	switch Metric(value) {
	case MetricSpend, MetricInstalls, MetricConversions, MetricROI:
		return Metric(value), true
	}
	return "", false
}
