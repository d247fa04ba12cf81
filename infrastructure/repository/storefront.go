package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/vfg2006/traffic-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

const storefrontsTable = "storefronts"

func listStorefrontsQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("region", "spend", "longitude", "latitude").
		From(storefrontsTable).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func insertStorefrontsQuery(storefronts []domain.Storefront) squirrel.InsertBuilder {
	query := squirrel.
		Insert(storefrontsTable).
		Columns("region", "position", "spend", "longitude", "latitude").
		Suffix(`
			ON CONFLICT (region) DO UPDATE SET
				position = EXCLUDED.position,
				spend = EXCLUDED.spend,
				longitude = EXCLUDED.longitude,
				latitude = EXCLUDED.latitude
		`).
		PlaceholderFormat(squirrel.Dollar)

	for i, storefront := range storefronts {
		query = query.Values(storefront.Region, i, storefront.Spend, storefront.Coordinates[0], storefront.Coordinates[1])
	}

	return query
}

func (r *dashboardRepository) listStorefronts(ctx context.Context, q postgres.Queryer) ([]domain.Storefront, error) {
	query, args, err := listStorefrontsQuery().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	storefronts := make([]domain.Storefront, 0)
	for rows.Next() {
		var storefront domain.Storefront
		if err := rows.Scan(&storefront.Region, &storefront.Spend, &storefront.Coordinates[0], &storefront.Coordinates[1]); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear região")
		}
		storefronts = append(storefronts, storefront)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return storefronts, nil
}

func (r *dashboardRepository) insertStorefronts(ctx context.Context, q postgres.Queryer, storefronts []domain.Storefront) error {
	if len(storefronts) == 0 {
		return nil
	}

	query, args, err := insertStorefrontsQuery(storefronts).ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return wrapExecError(err)
	}
	return nil
}
