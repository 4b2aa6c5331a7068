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

const campaignsTable = "campaigns c"

type CampaignRepository interface {
	UpsertBatch(ctx context.Context, campaigns []*domain.Campaign) error
	ExternalIDMap(ctx context.Context, accountID string) (map[string]string, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Campaign, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

// UpsertBatch insere ou atualiza o lote de campanhas em um único statement.
// Campos opcionais nulos no lote preservam o valor já persistido via COALESCE.
func (c *campaignRepository) UpsertBatch(ctx context.Context, campaigns []*domain.Campaign) error {
	if len(campaigns) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("campaigns").
		Columns("id", "account_id", "external_id", "name", "status", "budget_cents", "start_date", "end_date").
		PlaceholderFormat(squirrel.Dollar)

	for _, campaign := range campaigns {
		query = query.Values(
			campaign.ID,
			campaign.AccountID,
			campaign.ExternalID,
			campaign.Name,
			campaign.Status,
			campaign.BudgetCents,
			campaign.StartDate,
			campaign.EndDate,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (account_id, external_id) DO UPDATE SET
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			budget_cents = COALESCE(EXCLUDED.budget_cents, campaigns.budget_cents),
			start_date = COALESCE(EXCLUDED.start_date, campaigns.start_date),
			end_date = COALESCE(EXCLUDED.end_date, campaigns.end_date),
			updated_at = NOW()
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = c.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// ExternalIDMap devolve o mapa external_id -> id interno das campanhas da
// conta, usado para resolver os pais dos grupos de anúncio
func (c *campaignRepository) ExternalIDMap(ctx context.Context, accountID string) (map[string]string, error) {
	query, args, err := squirrel.
		Select("c.external_id, c.id").
		From(campaignsTable).
		Where(squirrel.Eq{"c.account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := c.conn.Query(ctx, query, args...)
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
			return nil, fmt.Errorf("erro ao deserializar a campanha: %w", err)
		}
		ids[externalID] = id
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return ids, nil
}

func (c *campaignRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("c.id, c.account_id, c.external_id, c.name, c.status, c.budget_cents, c.start_date, c.end_date, c.created_at, c.updated_at").
		From(campaignsTable).
		Where(squirrel.Eq{"c.account_id": accountID}).
		OrderBy("c.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := c.conn.Query(ctx, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)

	for rows.Next() {
		campaign := &domain.Campaign{}
		if err := rows.Scan(
			&campaign.ID,
			&campaign.AccountID,
			&campaign.ExternalID,
			&campaign.Name,
			&campaign.Status,
			&campaign.BudgetCents,
			&campaign.StartDate,
			&campaign.EndDate,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a campanha: %w", err)
		}

		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return campaigns, nil
}
