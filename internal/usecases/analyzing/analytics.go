// Package analyzing contém a camada de derivação: funções puras que combinam
// os registros carregados e os filtros atuais em visões do dashboard.
package analyzing

import (
	"time"

	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

// trendWindow é o tamanho de cada janela comparada em TrendDelta
const trendWindow = 7

// ComputeAnalytics soma os totais das campanhas e a receita das tendências.
// Divisores zerados produzem NaN/Inf nas razões; quem exibe decide o que mostrar.
func ComputeAnalytics(campaigns []domain.Campaign, trends []domain.TrendPoint) domain.Analytics {
	var analytics domain.Analytics

	for _, campaign := range campaigns {
		analytics.TotalSpend += campaign.Spend
		analytics.TotalInstalls += campaign.Installs
		analytics.TotalConversions += campaign.Conversions
	}

	for _, point := range trends {
		analytics.TotalRevenue += point.Revenue
	}

	installs := float64(analytics.TotalInstalls)
	analytics.AvgCPI = domain.Ratio(analytics.TotalSpend / installs)
	analytics.ConversionRate = domain.Ratio(float64(analytics.TotalConversions) / installs * 100)
	analytics.ROAS = domain.Ratio(analytics.TotalRevenue / analytics.TotalSpend)

	return analytics
}

// FilterTrendsByDateRange retorna os pontos cujo dia está em [start, end], preservando a ordem
func FilterTrendsByDateRange(trends []domain.TrendPoint, start, end time.Time) []domain.TrendPoint {
	start = domain.TruncateDay(start)
	end = domain.TruncateDay(end)

	filtered := make([]domain.TrendPoint, 0, len(trends))
	if start.After(end) {
		return filtered
	}

	for _, point := range trends {
		day := point.Day()
		if day.Before(start) || day.After(end) {
			continue
		}
		filtered = append(filtered, point)
	}

	return filtered
}

// TrendDelta compara a média dos últimos 7 pontos com a média dos 7 anteriores.
// Retorna false quando há menos de 2 pontos.
func TrendDelta(trends []domain.TrendPoint) (*domain.TrendAnalysis, bool) {
	if len(trends) < 2 {
		return nil, false
	}

	recentStart := max(len(trends)-trendWindow, 0)
	previousStart := max(len(trends)-2*trendWindow, 0)

	recent := averages(trends[recentStart:])
	previous := averages(trends[previousStart:recentStart])

	return &domain.TrendAnalysis{
		SpendTrend:      percentChange(recent.spend, previous.spend),
		RevenueTrend:    percentChange(recent.revenue, previous.revenue),
		ConversionTrend: percentChange(recent.conversions, previous.conversions),
	}, true
}

type trendAverages struct {
	spend       float64
	revenue     float64
	conversions float64
}

// averages de uma janela vazia são NaN
func averages(points []domain.TrendPoint) trendAverages {
	var sum trendAverages
	for _, point := range points {
		sum.spend += point.Spend
		sum.revenue += point.Revenue
		sum.conversions += float64(point.Conversions)
	}

	n := float64(len(points))
	return trendAverages{
		spend:       sum.spend / n,
		revenue:     sum.revenue / n,
		conversions: sum.conversions / n,
	}
}

func percentChange(current, previous float64) domain.Ratio {
	return domain.Ratio((current - previous) / previous * 100)
}
