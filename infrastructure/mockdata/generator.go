// Package mockdata gera registros sintéticos para o dashboard quando não há
// uma fonte de dados real configurada.
package mockdata

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-dashboard-api/internal/config"
	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
	"github.com/vfg2006/traffic-dashboard-api/pkg/utils"
)

// ErrSimulatedFailure é retornado quando a taxa de falha configurada é atingida
var ErrSimulatedFailure = errors.New("simulated upstream failure")

type Generator struct {
	cfg config.Mock
	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(cfg config.Mock) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logrus.WithFields(logrus.Fields{
		"seed":            seed,
		"delay":           cfg.Delay.String(),
		"failure_rate":    cfg.FailureRate,
		"campaigns":       cfg.Campaigns,
		"biggest_changes": cfg.BiggestChanges,
		"trend_days":      cfg.TrendDays,
	}).Info("Gerador de dados sintéticos configurado")

	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Load aguarda o atraso configurado e devolve um novo conjunto de registros.
// O atraso é interrompido se o contexto for cancelado.
func (g *Generator) Load(ctx context.Context) (*domain.Bundle, error) {
	if g.cfg.Delay > 0 {
		timer := time.NewTimer(g.cfg.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "mock load interrupted")
		case <-timer.C:
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cfg.FailureRate > 0 && g.rng.Float64() < g.cfg.FailureRate {
		return nil, ErrSimulatedFailure
	}

	bundle := g.generate()
	return &bundle, nil
}

// Generate produz um conjunto de registros sem atraso nem falhas simuladas
func (g *Generator) Generate() domain.Bundle {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.generate()
}

func (g *Generator) generate() domain.Bundle {
	campaigns := g.campaigns(g.cfg.Campaigns)

	return domain.Bundle{
		KPIs:           kpiCards(),
		Campaigns:      campaigns,
		Trends:         g.trends(),
		Storefronts:    g.storefronts(),
		Summary:        baselineSummary(campaigns),
		BiggestChanges: g.biggestChanges(g.cfg.BiggestChanges),
	}
}

func (g *Generator) storefronts() []domain.Storefront {
	storefronts := make([]domain.Storefront, 0, len(regions))
	for _, region := range regions {
		storefronts = append(storefronts, domain.Storefront{
			Region:      region.name,
			Spend:       utils.RoundWithTwoDecimalPlace(g.rng.Float64()*50000 + 5000),
			Coordinates: region.coordinates,
		})
	}
	return storefronts
}

// trends gera uma série diária com sazonalidade semanal sobre um gasto base
func (g *Generator) trends() []domain.TrendPoint {
	start := domain.TruncateDay(g.cfg.TrendStart)

	trends := make([]domain.TrendPoint, 0, g.cfg.TrendDays)
	for i := 0; i < g.cfg.TrendDays; i++ {
		variation := math.Sin(float64(i)/7)*300 + g.rng.Float64()*200 - 100
		spend := math.Max(500, math.Round(1500+variation))
		revenue := math.Round(spend * (2.5 + g.rng.Float64()*1.5))
		conversions := int(math.Round(spend / (20 + g.rng.Float64()*10)))

		trends = append(trends, domain.TrendPoint{
			Date:        start.AddDate(0, 0, i),
			Spend:       spend,
			Revenue:     revenue,
			Conversions: conversions,
		})
	}

	return trends
}

func (g *Generator) campaigns(count int) []domain.Campaign {
	campaigns := make([]domain.Campaign, 0, count)
	for i := 0; i < count; i++ {
		campaignType := campaignTypes[g.rng.Intn(len(campaignTypes))]
		region := regions[g.rng.Intn(len(regions))].name

		name := campaignType
		if g.rng.Float64() > 0.5 {
			name += " (LOC)"
		}

		spend := utils.RoundWithTwoDecimalPlace(g.rng.Float64()*15000 + 1000)
		installs := int(math.Round(spend / (40 + g.rng.Float64()*60)))
		conversions := int(math.Round(float64(installs) * (0.1 + g.rng.Float64()*0.3)))

		campaigns = append(campaigns, domain.Campaign{
			ID:          strconv.Itoa(i + 1),
			Name:        name,
			Type:        campaignType,
			Region:      region,
			Status:      domain.CampaignStatusActive,
			Spend:       spend,
			Installs:    installs,
			Conversions: conversions,
			Change:      utils.RoundWithTwoDecimalPlace(g.rng.Float64()*100 - 50),
		})
	}
	return campaigns
}

// biggestChanges gera campanhas com variação de 25% a 100% em módulo, ordenadas pela magnitude
func (g *Generator) biggestChanges(count int) []domain.Campaign {
	campaigns := g.campaigns(count)
	for i := range campaigns {
		magnitude := g.rng.Float64()*75 + 25
		if g.rng.Float64() <= 0.5 {
			magnitude = -magnitude
		}
		campaigns[i].Change = utils.RoundWithTwoDecimalPlace(magnitude)
	}

	sort.SliceStable(campaigns, func(i, j int) bool {
		return math.Abs(campaigns[i].Change) > math.Abs(campaigns[j].Change)
	})

	return campaigns
}

// baselineSummary monta os cartões de referência com os valores do momento da geração
func baselineSummary(campaigns []domain.Campaign) []domain.SummaryMetric {
	var spend float64
	var installs, conversions int
	for _, campaign := range campaigns {
		spend += campaign.Spend
		installs += campaign.Installs
		conversions += campaign.Conversions
	}

	values := map[string]string{
		"Total Spend":       "$" + humanize.CommafWithDigits(spend, 2),
		"Total Revenue":     "$" + humanize.Comma(int64(math.Round(spend*3.2))),
		"Total Conversions": humanize.Comma(int64(conversions)),
		"ROAS":              "3.2x",
		"Total Installs":    humanize.Comma(int64(installs)),
	}
	if installs > 0 {
		values["Cost per Install"] = "$" + strconv.FormatFloat(utils.RoundWithTwoDecimalPlace(spend/float64(installs)), 'f', -1, 64)
		values["Conversion Rate"] = strconv.FormatFloat(utils.RoundWithTwoDecimalPlace(float64(conversions)/float64(installs)*100), 'f', -1, 64) + "%"
	}

	summary := make([]domain.SummaryMetric, 0, len(baselineChanges))
	for _, baseline := range baselineChanges {
		summary = append(summary, domain.SummaryMetric{
			Label:      baseline.label,
			Value:      values[baseline.label],
			Percentage: fmt.Sprintf("%+.1f%%", baseline.change),
			Change:     baseline.change,
		})
	}

	return summary
}
