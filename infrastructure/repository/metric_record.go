package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/adsync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-engine/internal/domain"
)

const adMetricsTable = "ad_metrics am"

type MetricRecordRepository interface {
	UpsertBatch(ctx context.Context, records []*domain.MetricRecord) error
	GetByDateRange(ctx context.Context, accountID string, startDate, endDate time.Time) ([]*domain.MetricRecord, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type metricRecordRepository struct {
	conn *postgres.Connection
}

func NewMetricRecordRepository(conn *postgres.Connection) MetricRecordRepository {
	return &metricRecordRepository{
		conn: conn,
	}
}

// UpsertBatch insere ou atualiza o lote de métricas diárias. O conflito em
// (ad_id, date) é sobrescrita pura: a plataforma re-declara o dia inteiro e
// o valor mais recente sempre vence.
func (m *metricRecordRepository) UpsertBatch(ctx context.Context, records []*domain.MetricRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("ad_metrics").
		Columns("id", "ad_id", "date", "impressions", "clicks", "spend_cents", "conversions", "revenue_cents", "ctr", "cpa", "roas").
		PlaceholderFormat(squirrel.Dollar)

	for _, record := range records {
		query = query.Values(
			record.ID,
			record.AdID,
			record.Date.Format("2006-01-02"),
			record.Impressions,
			record.Clicks,
			record.SpendCents,
			record.Conversions,
			record.RevenueCents,
			record.CTR,
			record.CPA,
			record.ROAS,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (ad_id, date) DO UPDATE SET
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			spend_cents = EXCLUDED.spend_cents,
			conversions = EXCLUDED.conversions,
			revenue_cents = EXCLUDED.revenue_cents,
			ctr = EXCLUDED.ctr,
			cpa = EXCLUDED.cpa,
			roas = EXCLUDED.roas,
			updated_at = NOW()
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = m.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (m *metricRecordRepository) GetByDateRange(ctx context.Context, accountID string, startDate, endDate time.Time) ([]*domain.MetricRecord, error) {
	query, args, err := squirrel.
		Select("am.id, am.ad_id, am.date, am.impressions, am.clicks, am.spend_cents, am.conversions, am.revenue_cents, am.ctr, am.cpa, am.roas, am.updated_at").
		From(adMetricsTable).
		Join("ads ad ON am.ad_id = ad.id").
		Join("ad_groups ag ON ad.ad_group_id = ag.id").
		Join("campaigns c ON ag.campaign_id = c.id").
		Where(squirrel.Eq{"c.account_id": accountID}).
		Where(squirrel.GtOrEq{"am.date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"am.date": endDate.Format("2006-01-02")}).
		OrderBy("am.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := m.conn.Query(ctx, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.MetricRecord, 0)

	for rows.Next() {
		record := &domain.MetricRecord{}
		if err := rows.Scan(
			&record.ID,
			&record.AdID,
			&record.Date,
			&record.Impressions,
			&record.Clicks,
			&record.SpendCents,
			&record.Conversions,
			&record.RevenueCents,
			&record.CTR,
			&record.CPA,
			&record.ROAS,
			&record.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a métrica: %w", err)
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return records, nil
}

// DeleteOlderThan remove métricas mais antigas que o número de dias
// informado e devolve quantas linhas foram removidas
func (m *metricRecordRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, errors.New("days must be greater than zero")
	}

	cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	query, args, err := squirrel.
		Delete("ad_metrics").
		Where(squirrel.Lt{"date": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := m.conn.Exec(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return result.RowsAffected()
}
