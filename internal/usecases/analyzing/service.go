package analyzing

import (
	"fmt"
	"math"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-dashboard-api/internal/config"
	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
	"github.com/vfg2006/traffic-dashboard-api/internal/store"
	"github.com/vfg2006/traffic-dashboard-api/pkg/metrics"
)

// CampaignQuery sobrescreve os filtros da tabela de campanhas para uma única consulta
type CampaignQuery struct {
	SortBy    domain.SortColumn
	SortOrder domain.SortOrder
	PageSize  int
	PageIndex int
	Region    string
	MinSpend  *float64
	MaxSpend  *float64
}

type DashboardService interface {
	Dashboard(state store.State) *domain.DashboardView
	Campaigns(state store.State, query CampaignQuery) domain.Page
	Top(state store.State, metric domain.Metric, n int) []domain.Campaign
	BiggestChanges(state store.State, n int) []domain.Campaign
	Close()
}

// Service monta as visões derivadas e guarda o resultado em cache por versão
// do estado e conjunto de filtros.
type Service struct {
	cache               *ristretto.Cache
	ttl                 time.Duration
	pageSize            int
	topN                int
	biggestChangesLimit int
}

func NewService(cfg *config.Config) (*Service, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.Cache.NumCounters,
		MaxCost:     cfg.Cache.MaxCost,
		BufferItems: cfg.Cache.BufferItems,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cache de visões derivadas: %w", err)
	}

	return &Service{
		cache:               cache,
		ttl:                 cfg.Cache.TTL,
		pageSize:            cfg.Dashboard.PageSize,
		topN:                cfg.Dashboard.TopN,
		biggestChangesLimit: cfg.Dashboard.BiggestChangesLimit,
	}, nil
}

// Dashboard devolve a visão completa para o estado. A visão retornada é
// compartilhada entre chamadas e não deve ser alterada.
func (s *Service) Dashboard(state store.State) *domain.DashboardView {
	key := cacheKey(state)

	if cached, found := s.cache.Get(key); found {
		if view, ok := cached.(*domain.DashboardView); ok {
			metrics.DerivationCache.WithLabelValues("hit").Inc()
			return view
		}
	}
	metrics.DerivationCache.WithLabelValues("miss").Inc()

	view := s.build(state)
	if !s.cache.SetWithTTL(key, view, 1, s.ttl) {
		logrus.WithField("key", key).Debug("analyzing: dashboard view not admitted to cache")
	}

	return view
}

func (s *Service) build(state store.State) *domain.DashboardView {
	records := state.Records
	filters := state.Filters

	filteredTrends := FilterTrendsByDateRange(records.Trends, filters.DateRange.Start, filters.DateRange.End)
	analytics := ComputeAnalytics(records.Campaigns, filteredTrends)
	scaled := ScaleRegionalSpend(records.Storefronts, len(filteredTrends), len(records.Trends))

	trendAnalysis, ok := TrendDelta(records.Trends)
	if !ok {
		trendAnalysis = nil
	}

	kpis := records.KPIs
	if kpis == nil {
		kpis = []domain.KPIMetric{}
	}

	return &domain.DashboardView{
		SnapshotID:     state.SnapshotID,
		Version:        state.Version,
		LoadedAt:       state.LoadedAt,
		Filters:        filters,
		KPIs:           kpis,
		Summary:        BuildSummary(analytics, records.Summary),
		Analytics:      analytics,
		TrendAnalysis:  trendAnalysis,
		Trends:         filteredTrends,
		Storefronts:    StorefrontShares(scaled),
		TopPerformers:  TopPerformers(records.Campaigns, s.topN),
		Regional:       RegionalRollup(records.Campaigns),
		BiggestChanges: BiggestChanges(records.BiggestChanges, s.biggestChangesLimit),
		CampaignPage:   SortAndPaginate(records.Campaigns, filters.SortBy, filters.SortOrder, s.pageSize, 0),
	}
}

// Campaigns aplica os filtros de região e gasto e devolve a página pedida.
// Campos vazios da consulta usam os valores do estado.
func (s *Service) Campaigns(state store.State, query CampaignQuery) domain.Page {
	campaigns := state.Records.Campaigns

	if query.Region != "" {
		campaigns = FilterCampaignsByRegion(campaigns, query.Region)
	}
	if query.MinSpend != nil || query.MaxSpend != nil {
		minSpend, maxSpend := 0.0, math.Inf(1)
		if query.MinSpend != nil {
			minSpend = *query.MinSpend
		}
		if query.MaxSpend != nil {
			maxSpend = *query.MaxSpend
		}
		campaigns = FilterCampaignsBySpendRange(campaigns, minSpend, maxSpend)
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = state.Filters.SortBy
	}
	sortOrder := query.SortOrder
	if sortOrder == "" {
		sortOrder = state.Filters.SortOrder
	}
	pageSize := query.PageSize
	if pageSize == 0 {
		pageSize = s.pageSize
	}

	return SortAndPaginate(campaigns, sortBy, sortOrder, pageSize, query.PageIndex)
}

// Top devolve as n melhores campanhas pela métrica. n <= 0 usa o padrão configurado.
func (s *Service) Top(state store.State, metric domain.Metric, n int) []domain.Campaign {
	if n <= 0 {
		n = s.topN
	}
	return RankTopN(state.Records.Campaigns, metric, n)
}

func (s *Service) BiggestChanges(state store.State, n int) []domain.Campaign {
	if n <= 0 {
		n = s.biggestChangesLimit
	}
	return BiggestChanges(state.Records.BiggestChanges, n)
}

func (s *Service) Close() {
	s.cache.Close()
}

func cacheKey(state store.State) string {
	return fmt.Sprintf("%s:%d:%x", state.SnapshotID, state.Version, state.Filters.Hash())
}
