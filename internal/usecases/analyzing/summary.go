package analyzing

import (
	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

const (
	LabelTotalSpend       = "Total Spend"
	LabelTotalRevenue     = "Total Revenue"
	LabelTotalConversions = "Total Conversions"
	LabelROAS             = "ROAS"
	LabelTotalInstalls    = "Total Installs"
	LabelCostPerInstall   = "Cost per Install"
	LabelConversionRate   = "Conversion Rate"
)

// BuildSummary recalcula os cartões de resumo a partir das métricas atuais.
// A variação de cada cartão vem da linha de base carregada com o mesmo rótulo.
func BuildSummary(analytics domain.Analytics, baseline []domain.SummaryMetric) []domain.SummaryMetric {
	changes := make(map[string]float64, len(baseline))
	for _, metric := range baseline {
		changes[metric.Label] = metric.Change
	}

	cards := []struct {
		label string
		value string
	}{
		{LabelTotalSpend, FormatCurrency(analytics.TotalSpend)},
		{LabelTotalRevenue, FormatCurrency(analytics.TotalRevenue)},
		{LabelTotalConversions, FormatCount(analytics.TotalConversions)},
		{LabelROAS, FormatMultiplier(analytics.ROAS)},
		{LabelTotalInstalls, FormatCount(analytics.TotalInstalls)},
		{LabelCostPerInstall, FormatRatioCurrency(analytics.AvgCPI)},
		{LabelConversionRate, FormatPercent(analytics.ConversionRate)},
	}

	summary := make([]domain.SummaryMetric, 0, len(cards))
	for _, card := range cards {
		change := changes[card.label]
		summary = append(summary, domain.SummaryMetric{
			Label:      card.label,
			Value:      card.value,
			Percentage: FormatChange(change),
			Change:     change,
		})
	}

	return summary
}
