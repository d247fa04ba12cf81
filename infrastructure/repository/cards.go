package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/vfg2006/traffic-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

const (
	kpiCardsTable         = "kpi_cards"
	summaryBaselinesTable = "summary_baselines"
)

func listKPIsQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("id", "title", "value", "change", "trend", "sparkline", "is_positive").
		From(kpiCardsTable).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func insertKPIsQuery(kpis []domain.KPIMetric) squirrel.InsertBuilder {
	query := squirrel.
		Insert(kpiCardsTable).
		Columns("id", "position", "title", "value", "change", "trend", "sparkline", "is_positive").
		PlaceholderFormat(squirrel.Dollar)

	for i, kpi := range kpis {
		query = query.Values(kpi.ID, i, kpi.Title, kpi.Value, kpi.Change, string(kpi.Trend), pq.Float64Array(kpi.Sparkline), kpi.IsPositive)
	}

	return query
}

func listSummaryQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("label", "value", "percentage", "change").
		From(summaryBaselinesTable).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func insertSummaryQuery(summary []domain.SummaryMetric) squirrel.InsertBuilder {
	query := squirrel.
		Insert(summaryBaselinesTable).
		Columns("label", "position", "value", "percentage", "change").
		PlaceholderFormat(squirrel.Dollar)

	for i, metric := range summary {
		query = query.Values(metric.Label, i, metric.Value, metric.Percentage, metric.Change)
	}

	return query
}

func (r *dashboardRepository) listKPIs(ctx context.Context, q postgres.Queryer) ([]domain.KPIMetric, error) {
	query, args, err := listKPIsQuery().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	kpis := make([]domain.KPIMetric, 0)
	for rows.Next() {
		var kpi domain.KPIMetric
		var trend string
		var sparkline pq.Float64Array

		if err := rows.Scan(&kpi.ID, &kpi.Title, &kpi.Value, &kpi.Change, &trend, &sparkline, &kpi.IsPositive); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear KPI")
		}

		kpi.Trend = domain.Trend(trend)
		kpi.Sparkline = []float64(sparkline)
		kpis = append(kpis, kpi)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return kpis, nil
}

func (r *dashboardRepository) listSummary(ctx context.Context, q postgres.Queryer) ([]domain.SummaryMetric, error) {
	query, args, err := listSummaryQuery().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	summary := make([]domain.SummaryMetric, 0)
	for rows.Next() {
		var metric domain.SummaryMetric
		if err := rows.Scan(&metric.Label, &metric.Value, &metric.Percentage, &metric.Change); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear métrica de resumo")
		}
		summary = append(summary, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return summary, nil
}

func (r *dashboardRepository) insertKPIs(ctx context.Context, q postgres.Queryer, kpis []domain.KPIMetric) error {
	if len(kpis) == 0 {
		return nil
	}

	query, args, err := insertKPIsQuery(kpis).ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return wrapExecError(err)
	}
	return nil
}

func (r *dashboardRepository) insertSummary(ctx context.Context, q postgres.Queryer, summary []domain.SummaryMetric) error {
	if len(summary) == 0 {
		return nil
	}

	query, args, err := insertSummaryQuery(summary).ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return wrapExecError(err)
	}
	return nil
}
