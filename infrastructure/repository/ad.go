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

const adsTable = "ads ad"

type AdRepository interface {
	UpsertBatch(ctx context.Context, ads []*domain.Ad) error
	ExternalIDMap(ctx context.Context, accountID string) (map[string]string, error)
	ListByAdGroup(ctx context.Context, adGroupID string) ([]*domain.Ad, error)
}

type adRepository struct {
	conn *postgres.Connection
}

func NewAdRepository(conn *postgres.Connection) AdRepository {
	return &adRepository{
		conn: conn,
	}
}

func (r *adRepository) UpsertBatch(ctx context.Context, ads []*domain.Ad) error {
	if len(ads) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("ads").
		Columns("id", "ad_group_id", "external_id", "name", "status", "creative_ref").
		PlaceholderFormat(squirrel.Dollar)

	for _, ad := range ads {
		query = query.Values(
			ad.ID,
			ad.AdGroupID,
			ad.ExternalID,
			ad.Name,
			ad.Status,
			ad.CreativeRef,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (ad_group_id, external_id) DO UPDATE SET
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			creative_ref = COALESCE(EXCLUDED.creative_ref, ads.creative_ref),
			updated_at = NOW()
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// ExternalIDMap devolve o mapa external_id -> id interno dos anúncios da
// conta, atravessando grupo e campanha até a conta
func (r *adRepository) ExternalIDMap(ctx context.Context, accountID string) (map[string]string, error) {
	query, args, err := squirrel.
		Select("ad.external_id, ad.id").
		From(adsTable).
		Join("ad_groups ag ON ad.ad_group_id = ag.id").
		Join("campaigns c ON ag.campaign_id = c.id").
		Where(squirrel.Eq{"c.account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
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
			return nil, fmt.Errorf("erro ao deserializar o anúncio: %w", err)
		}
		ids[externalID] = id
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return ids, nil
}

func (r *adRepository) ListByAdGroup(ctx context.Context, adGroupID string) ([]*domain.Ad, error) {
	query, args, err := squirrel.
		Select("ad.id, ad.ad_group_id, ad.external_id, ad.name, ad.status, ad.creative_ref, ad.created_at, ad.updated_at").
		From(adsTable).
		Where(squirrel.Eq{"ad.ad_group_id": adGroupID}).
		OrderBy("ad.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	ads := make([]*domain.Ad, 0)

	for rows.Next() {
		ad := &domain.Ad{}
		if err := rows.Scan(
			&ad.ID,
			&ad.AdGroupID,
			&ad.ExternalID,
			&ad.Name,
			&ad.Status,
			&ad.CreativeRef,
			&ad.CreatedAt,
			&ad.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o anúncio: %w", err)
		}

		ads = append(ads, ad)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return ads, nil
}
