package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/vfg2006/traffic-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

const (
	campaignsTable = "campaigns"

	collectionTopList        = "top_list"
	collectionBiggestChanges = "biggest_changes"
)

var campaignColumns = []string{"id", "name", "type", "region", "status", "spend", "installs", "conversions", "change"}

func listCampaignsQuery(collection string) squirrel.SelectBuilder {
	return squirrel.
		Select(campaignColumns...).
		From(campaignsTable).
		Where(squirrel.Eq{"collection": collection}).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func insertCampaignsQuery(collection string, offset int, campaigns []domain.Campaign) squirrel.InsertBuilder {
	query := squirrel.
		Insert(campaignsTable).
		Columns("collection", "id", "position", "name", "type", "region", "status", "spend", "installs", "conversions", "change").
		Suffix(`
			ON CONFLICT (collection, id) DO UPDATE SET
				position = EXCLUDED.position,
				name = EXCLUDED.name,
				type = EXCLUDED.type,
				region = EXCLUDED.region,
				status = EXCLUDED.status,
				spend = EXCLUDED.spend,
				installs = EXCLUDED.installs,
				conversions = EXCLUDED.conversions,
				change = EXCLUDED.change,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	for i, campaign := range campaigns {
		query = query.Values(
			collection,
			campaign.ID,
			offset+i,
			campaign.Name,
			campaign.Type,
			campaign.Region,
			string(campaign.Status),
			campaign.Spend,
			campaign.Installs,
			campaign.Conversions,
			campaign.Change,
		)
	}

	return query
}

func updateCampaignStatusQuery(campaignID string, status domain.CampaignStatus) squirrel.UpdateBuilder {
	return squirrel.
		Update(campaignsTable).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"collection": collectionTopList, "id": campaignID}).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *dashboardRepository) listCampaigns(ctx context.Context, q postgres.Queryer, collection string) ([]domain.Campaign, error) {
	query, args, err := listCampaignsQuery(collection).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	campaigns := make([]domain.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear campanha")
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return campaigns, nil
}

func (r *dashboardRepository) insertCampaigns(ctx context.Context, q postgres.Queryer, collection string, campaigns []domain.Campaign) error {
	for _, bounds := range chunks(len(campaigns), insertBatchSize) {
		query, args, err := insertCampaignsQuery(collection, bounds[0], campaigns[bounds[0]:bounds[1]]).ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir a query")
		}

		if _, err := q.Exec(ctx, query, args...); err != nil {
			return wrapExecError(err)
		}
	}
	return nil
}

func scanCampaign(rows *sql.Rows) (domain.Campaign, error) {
	var campaign domain.Campaign
	var status string

	err := rows.Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.Type,
		&campaign.Region,
		&status,
		&campaign.Spend,
		&campaign.Installs,
		&campaign.Conversions,
		&campaign.Change,
	)
	if err != nil {
		return campaign, err
	}

	campaign.Status = domain.CampaignStatus(status)
	return campaign, nil
}

func wrapExecError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return errors.Wrapf(pqErr, "erro no banco de dados (código: %s)", pqErr.Code)
	}
	return errors.Wrap(err, "erro ao executar a query")
}
