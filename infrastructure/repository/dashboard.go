package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

// ErrCampaignNotFound indica que nenhuma campanha com o ID informado existe na tabela principal
var ErrCampaignNotFound = errors.New("campaign not found")

// insertBatchSize limita o número de linhas por INSERT para ficar abaixo do limite de parâmetros do Postgres
const insertBatchSize = 500

type DashboardRepository interface {
	Load(ctx context.Context) (*domain.Bundle, error)
	SaveBundle(ctx context.Context, bundle *domain.Bundle) error
	UpdateCampaignStatus(ctx context.Context, campaignID string, status domain.CampaignStatus) error
}

type dashboardRepository struct {
	conn postgres.Conn
}

func NewDashboardRepository(conn postgres.Conn) DashboardRepository {
	return &dashboardRepository{
		conn: conn,
	}
}

// Load lê todas as coleções do dashboard em um único snapshot, de modo que uma
// gravação concorrente não misture coleções de bundles diferentes. Implementa store.Loader.
func (r *dashboardRepository) Load(ctx context.Context) (*domain.Bundle, error) {
	bundle := &domain.Bundle{}

	err := r.conn.RunInSnapshot(ctx, func(q postgres.Queryer) error {
		var err error

		if bundle.KPIs, err = r.listKPIs(ctx, q); err != nil {
			return err
		}
		if bundle.Campaigns, err = r.listCampaigns(ctx, q, collectionTopList); err != nil {
			return err
		}
		if bundle.BiggestChanges, err = r.listCampaigns(ctx, q, collectionBiggestChanges); err != nil {
			return err
		}
		if bundle.Trends, err = r.listTrends(ctx, q); err != nil {
			return err
		}
		if bundle.Storefronts, err = r.listStorefronts(ctx, q); err != nil {
			return err
		}
		bundle.Summary, err = r.listSummary(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}

	return bundle, nil
}

// SaveBundle substitui todas as coleções pelo conteúdo do bundle em uma única transação
func (r *dashboardRepository) SaveBundle(ctx context.Context, bundle *domain.Bundle) error {
	if bundle == nil {
		return errors.New("bundle is required")
	}

	return r.conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		for _, table := range []string{campaignsTable, trendPointsTable, storefrontsTable, kpiCardsTable, summaryBaselinesTable} {
			if _, err := q.Exec(ctx, "DELETE FROM "+table); err != nil {
				return errors.Wrapf(err, "erro ao limpar tabela %s", table)
			}
		}

		steps := []struct {
			name string
			fn   func() error
		}{
			{"campaigns", func() error { return r.insertCampaigns(ctx, q, collectionTopList, bundle.Campaigns) }},
			{"biggest_changes", func() error { return r.insertCampaigns(ctx, q, collectionBiggestChanges, bundle.BiggestChanges) }},
			{"trends", func() error { return r.insertTrends(ctx, q, bundle.Trends) }},
			{"storefronts", func() error { return r.insertStorefronts(ctx, q, bundle.Storefronts) }},
			{"kpis", func() error { return r.insertKPIs(ctx, q, bundle.KPIs) }},
			{"summary", func() error { return r.insertSummary(ctx, q, bundle.Summary) }},
		}

		for _, step := range steps {
			if err := step.fn(); err != nil {
				return errors.Wrapf(err, "erro ao salvar %s", step.name)
			}
		}

		logrus.WithFields(logrus.Fields{
			"campaigns":       len(bundle.Campaigns),
			"biggest_changes": len(bundle.BiggestChanges),
			"trends":          len(bundle.Trends),
			"storefronts":     len(bundle.Storefronts),
		}).Info("Registros do dashboard salvos")

		return nil
	})
}

func (r *dashboardRepository) UpdateCampaignStatus(ctx context.Context, campaignID string, status domain.CampaignStatus) error {
	query, args, err := updateCampaignStatusQuery(campaignID, status).ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return wrapExecError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "erro ao obter número de linhas afetadas")
	}
	if affected == 0 {
		return ErrCampaignNotFound
	}

	return nil
}

// chunks divide n itens em intervalos [start, end) de no máximo size itens
func chunks(n, size int) [][2]int {
	ranges := make([][2]int, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		ranges = append(ranges, [2]int{start, min(start+size, n)})
	}
	return ranges
}
