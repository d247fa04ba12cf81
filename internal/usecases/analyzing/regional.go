package analyzing

import (
	"sort"

	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

// RegionalRollup agrega as campanhas por região, ordenado por gasto decrescente
func RegionalRollup(campaigns []domain.Campaign) []domain.RegionalPerformance {
	index := make(map[string]int)
	rollup := make([]domain.RegionalPerformance, 0)

	for _, campaign := range campaigns {
		i, ok := index[campaign.Region]
		if !ok {
			i = len(rollup)
			index[campaign.Region] = i
			rollup = append(rollup, domain.RegionalPerformance{Region: campaign.Region})
		}

		rollup[i].CampaignCount++
		rollup[i].Spend += campaign.Spend
		rollup[i].Installs += campaign.Installs
		rollup[i].Conversions += campaign.Conversions
	}

	for i := range rollup {
		installs := float64(rollup[i].Installs)
		rollup[i].AvgCPI = domain.Ratio(rollup[i].Spend / installs)
		rollup[i].ConversionRate = domain.Ratio(float64(rollup[i].Conversions) / installs * 100)
	}

	sort.SliceStable(rollup, func(i, j int) bool {
		return rollup[i].Spend > rollup[j].Spend
	})

	return rollup
}

// ScaleRegionalSpend aproxima o gasto por região no período filtrado multiplicando
// pela fração filteredLength/totalLength. Não é um filtro real por data.
// Sem tendências carregadas (totalLength == 0) os valores são mantidos.
func ScaleRegionalSpend(regions []domain.Storefront, filteredLength, totalLength int) []domain.Storefront {
	scaled := make([]domain.Storefront, len(regions))
	copy(scaled, regions)

	if totalLength == 0 {
		return scaled
	}

	factor := float64(filteredLength) / float64(totalLength)
	for i := range scaled {
		scaled[i].Spend = regions[i].Spend * factor
	}

	return scaled
}

// StorefrontShares calcula a participação de cada região no gasto total
func StorefrontShares(regions []domain.Storefront) []domain.StorefrontShare {
	total := 0.0
	for _, region := range regions {
		total += region.Spend
	}

	shares := make([]domain.StorefrontShare, 0, len(regions))
	for _, region := range regions {
		shares = append(shares, domain.StorefrontShare{
			Storefront: region,
			Share:      domain.Ratio(region.Spend / total * 100),
		})
	}

	return shares
}
