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

const accountsTable = "ad_accounts a"

type AccountRepository interface {
	GetByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetByExternalID(ctx context.Context, platform domain.Platform, externalID string) (*domain.Account, error)
	ListByHealth(ctx context.Context, health []domain.AccountHealth) ([]*domain.Account, error)
	SaveOrUpdate(ctx context.Context, account *domain.Account) error
	MarkHealth(ctx context.Context, accountID string, health domain.AccountHealth) error
	TouchLastSync(ctx context.Context, accountID string, at time.Time) error
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) GetByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return a.getAccount(ctx, squirrel.Eq{"a.id": accountID})
}

func (a *accountRepository) GetByExternalID(ctx context.Context, platform domain.Platform, externalID string) (*domain.Account, error) {
	return a.getAccount(ctx, squirrel.Eq{"a.platform": platform, "a.external_id": externalID})
}

func (a *accountRepository) getAccount(ctx context.Context, whereClause map[string]interface{}) (*domain.Account, error) {
	accountSQL, accountArgs, err := squirrel.
		Select("a.id, a.user_id, a.platform, a.external_id, a.name, a.access_token, a.health, a.last_sync_at, a.created_at, a.updated_at").
		From(accountsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := a.conn.QueryRow(ctx, accountSQL, accountArgs...)

	acc, err := a.deserializeAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}

func (a *accountRepository) deserializeAccount(row *sql.Row) (*domain.Account, error) {
	acc := &domain.Account{}

	if err := row.Scan(
		&acc.ID,
		&acc.UserID,
		&acc.Platform,
		&acc.ExternalID,
		&acc.Name,
		&acc.AccessToken,
		&acc.Health,
		&acc.LastSyncAt,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return acc, nil
}

// ListByHealth lista as contas nos estados de saúde informados; sem filtro,
// lista todas
func (a *accountRepository) ListByHealth(ctx context.Context, health []domain.AccountHealth) ([]*domain.Account, error) {
	queryBuilder := squirrel.
		Select("a.id, a.user_id, a.platform, a.external_id, a.name, a.access_token, a.health, a.last_sync_at, a.created_at, a.updated_at").
		From(accountsTable).
		OrderBy("a.platform ASC, a.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(health) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.health": health})
	}

	accountsSQL, accountsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := a.conn.Query(ctx, accountsSQL, accountsArgs...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)

	for rows.Next() {
		acc := &domain.Account{}
		if err := rows.Scan(
			&acc.ID,
			&acc.UserID,
			&acc.Platform,
			&acc.ExternalID,
			&acc.Name,
			&acc.AccessToken,
			&acc.Health,
			&acc.LastSyncAt,
			&acc.CreatedAt,
			&acc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a conta: %w", err)
		}

		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return accounts, nil
}

func (a *accountRepository) SaveOrUpdate(ctx context.Context, account *domain.Account) error {
	query := squirrel.StatementBuilder.
		Insert("ad_accounts").
		Columns("id", "user_id", "platform", "external_id", "name", "access_token", "health").
		Values(
			account.ID,
			account.UserID,
			account.Platform,
			account.ExternalID,
			account.Name,
			account.AccessToken,
			account.Health,
		).
		Suffix(`
			ON CONFLICT (platform, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				access_token = EXCLUDED.access_token,
				health = EXCLUDED.health,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = a.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (a *accountRepository) MarkHealth(ctx context.Context, accountID string, health domain.AccountHealth) error {
	return a.update(ctx, accountID, map[string]interface{}{"health": health})
}

func (a *accountRepository) TouchLastSync(ctx context.Context, accountID string, at time.Time) error {
	return a.update(ctx, accountID, map[string]interface{}{"last_sync_at": at})
}

func (a *accountRepository) update(ctx context.Context, accountID string, fields map[string]interface{}) error {
	queryBuilder := squirrel.
		Update("ad_accounts").
		Where(squirrel.Eq{"id": accountID}).
		Set("updated_at", squirrel.Expr("NOW()")).
		PlaceholderFormat(squirrel.Dollar)

	for column, value := range fields {
		queryBuilder = queryBuilder.Set(column, value)
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := a.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("account not found")
	}

	return nil
}
