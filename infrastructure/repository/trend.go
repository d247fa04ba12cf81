package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/vfg2006/traffic-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

const trendPointsTable = "trend_points"

func listTrendsQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("date", "spend", "revenue", "conversions").
		From(trendPointsTable).
		OrderBy("date ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func insertTrendsQuery(trends []domain.TrendPoint) squirrel.InsertBuilder {
	query := squirrel.
		Insert(trendPointsTable).
		Columns("date", "spend", "revenue", "conversions").
		Suffix(`
			ON CONFLICT (date) DO UPDATE SET
				spend = EXCLUDED.spend,
				revenue = EXCLUDED.revenue,
				conversions = EXCLUDED.conversions
		`).
		PlaceholderFormat(squirrel.Dollar)

	for _, point := range trends {
		query = query.Values(point.Date.Format(time.DateOnly), point.Spend, point.Revenue, point.Conversions)
	}

	return query
}

func (r *dashboardRepository) listTrends(ctx context.Context, q postgres.Queryer) ([]domain.TrendPoint, error) {
	query, args, err := listTrendsQuery().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	trends := make([]domain.TrendPoint, 0)
	for rows.Next() {
		var point domain.TrendPoint
		if err := rows.Scan(&point.Date, &point.Spend, &point.Revenue, &point.Conversions); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear ponto de tendência")
		}
		point.Date = domain.TruncateDay(point.Date)
		trends = append(trends, point)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return trends, nil
}

func (r *dashboardRepository) insertTrends(ctx context.Context, q postgres.Queryer, trends []domain.TrendPoint) error {
	for _, bounds := range chunks(len(trends), insertBatchSize) {
		query, args, err := insertTrendsQuery(trends[bounds[0]:bounds[1]]).ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir a query")
		}

		if _, err := q.Exec(ctx, query, args...); err != nil {
			return wrapExecError(err)
		}
	}
	return nil
}
