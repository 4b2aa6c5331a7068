package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/adsync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-engine/internal/domain"
)

const adGroupsTable = "ad_groups ag"

type AdGroupRepository interface {
	UpsertBatch(ctx context.Context, adGroups []*domain.AdGroup) error
	ExternalIDMap(ctx context.Context, accountID string) (map[string]string, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]*domain.AdGroup, error)
}

type adGroupRepository struct {
	conn *postgres.Connection
}

func NewAdGroupRepository(conn *postgres.Connection) AdGroupRepository {
	return &adGroupRepository{
		conn: conn,
	}
}

func (g *adGroupRepository) UpsertBatch(ctx context.Context, adGroups []*domain.AdGroup) error {
	if len(adGroups) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("ad_groups").
		Columns("id", "campaign_id", "external_id", "name", "status", "start_date", "end_date").
		PlaceholderFormat(squirrel.Dollar)

	for _, adGroup := range adGroups {
		query = query.Values(
			adGroup.ID,
			adGroup.CampaignID,
			adGroup.ExternalID,
			adGroup.Name,
			adGroup.Status,
			adGroup.StartDate,
			adGroup.EndDate,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (campaign_id, external_id) DO UPDATE SET
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			start_date = COALESCE(EXCLUDED.start_date, ad_groups.start_date),
			end_date = COALESCE(EXCLUDED.end_date, ad_groups.end_date),
			updated_at = NOW()
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = g.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// ExternalIDMap devolve o mapa external_id -> id interno dos grupos de
// anúncio da conta. O escopo é a conta inteira, então a busca atravessa a
// campanha-pai.
func (g *adGroupRepository) ExternalIDMap(ctx context.Context, accountID string) (map[string]string, error) {
	query, args, err := squirrel.
		Select("ag.external_id, ag.id").
		From(adGroupsTable).
		Join("campaigns c ON ag.campaign_id = c.id").
		Where(squirrel.Eq{"c.account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := g.conn.Query(ctx, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]string)

	for rows.Next() {
		var externalID, id string
		if err := rows.Scan(&externalID, &id); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o grupo de anúncio: %w", err)
		}
		ids[externalID] = id
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return ids, nil
}

func (g *adGroupRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*domain.AdGroup, error) {
	query, args, err := squirrel.
		Select("ag.id, ag.campaign_id, ag.external_id, ag.name, ag.status, ag.start_date, ag.end_date, ag.created_at, ag.updated_at").
		From(adGroupsTable).
		Where(squirrel.Eq{"ag.campaign_id": campaignID}).
		OrderBy("ag.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := g.conn.Query(ctx, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	adGroups := make([]*domain.AdGroup, 0)

	for rows.Next() {
		adGroup := &domain.AdGroup{}
		if err := rows.Scan(
			&adGroup.ID,
			&adGroup.CampaignID,
			&adGroup.ExternalID,
			&adGroup.Name,
			&adGroup.Status,
			&adGroup.StartDate,
			&adGroup.EndDate,
			&adGroup.CreatedAt,
			&adGroup.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o grupo de anúncio: %w", err)
		}

		adGroups = append(adGroups, adGroup)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return adGroups, nil
}
