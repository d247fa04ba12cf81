package analyzing

import (
	"math"
	"sort"

	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

// RankTopN ordena de forma estável e decrescente pela métrica e retorna os n primeiros.
// Empates mantêm a ordem de entrada. Para MetricROI campanhas sem gasto são descartadas.
func RankTopN(campaigns []domain.Campaign, metric domain.Metric, n int) []domain.Campaign {
	if n <= 0 {
		return []domain.Campaign{}
	}

	ranked := make([]domain.Campaign, 0, len(campaigns))
	for _, campaign := range campaigns {
		if metric == domain.MetricROI && campaign.Spend <= 0 {
			continue
		}
		ranked = append(ranked, campaign)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MetricValue(metric) > ranked[j].MetricValue(metric)
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}

	return ranked
}

// TopPerformers monta os rankings exibidos no painel de destaques
func TopPerformers(campaigns []domain.Campaign, n int) domain.TopPerformers {
	return domain.TopPerformers{
		BySpend:       RankTopN(campaigns, domain.MetricSpend, n),
		ByConversions: RankTopN(campaigns, domain.MetricConversions, n),
		ByInstalls:    RankTopN(campaigns, domain.MetricInstalls, n),
		ByROI:         RankTopN(campaigns, domain.MetricROI, n),
	}
}

// BiggestChanges ordena pelo valor absoluto da variação percentual
func BiggestChanges(campaigns []domain.Campaign, n int) []domain.Campaign {
	if n <= 0 {
		return []domain.Campaign{}
	}

	sorted := make([]domain.Campaign, len(campaigns))
	copy(sorted, campaigns)

	sort.SliceStable(sorted, func(i, j int) bool {
		return math.Abs(sorted[i].Change) > math.Abs(sorted[j].Change)
	})

	if n < len(sorted) {
		sorted = sorted[:n]
	}

	return sorted
}

// SortAndPaginate ordena de forma estável pela coluna e devolve a página pageIndex (base zero).
// pageSize <= 0 devolve todos os registros em uma única página.
func SortAndPaginate(
	campaigns []domain.Campaign,
	column domain.SortColumn,
	order domain.SortOrder,
	pageSize int,
	pageIndex int,
) domain.Page {
	sorted := make([]domain.Campaign, len(campaigns))
	copy(sorted, campaigns)

	metric := column.Metric()
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].MetricValue(metric), sorted[j].MetricValue(metric)
		if order == domain.SortAsc {
			return a < b
		}
		return a > b
	})

	total := len(sorted)
	if pageSize <= 0 {
		pageSize = max(total, 1)
	}

	page := domain.Page{
		Items:      []domain.Campaign{},
		PageIndex:  pageIndex,
		PageSize:   pageSize,
		TotalItems: total,
	}
	if total > 0 {
		page.TotalPages = (total-1)/pageSize + 1
	}

	if pageIndex < 0 || pageIndex >= page.TotalPages {
		return page
	}

	start := pageIndex * pageSize
	page.Items = sorted[start : start+min(pageSize, total-start)]

	return page
}

func FilterCampaignsByRegion(campaigns []domain.Campaign, region string) []domain.Campaign {
	filtered := make([]domain.Campaign, 0)
	for _, campaign := range campaigns {
		if campaign.Region == region {
			filtered = append(filtered, campaign)
		}
	}
	return filtered
}

// FilterCampaignsBySpendRange mantém as campanhas com gasto em [min, max]
func FilterCampaignsBySpendRange(campaigns []domain.Campaign, minSpend, maxSpend float64) []domain.Campaign {
	filtered := make([]domain.Campaign, 0)
	for _, campaign := range campaigns {
		if campaign.Spend >= minSpend && campaign.Spend <= maxSpend {
			filtered = append(filtered, campaign)
		}
	}
	return filtered
}
