package syncengine

import (
	"context"
	"time"

	"github.com/vfg2006/adsync-engine/internal/domain"
)

// AccountStore define o acesso do motor à entidade Account. A conta pertence
// à aplicação; o motor só atualiza saúde e bookkeeping de sync.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	MarkHealth(ctx context.Context, id string, health domain.AccountHealth) error
	TouchLastSync(ctx context.Context, id string, at time.Time) error
}

// CampaignStore persiste campanhas. UpsertBatch é atômico por lote e seguro
// sob corrida insert-or-update pela unique (account_id, external_id).
type CampaignStore interface {
	// ExternalIDMap retorna o mapa external_id -> id interno das campanhas
	// já persistidas da conta
	ExternalIDMap(ctx context.Context, accountID string) (map[string]string, error)
	UpsertBatch(ctx context.Context, rows []*domain.Campaign) error
}

// AdGroupStore persiste grupos de anúncio, com unicidade por
// (campaign_id, external_id)
type AdGroupStore interface {
	ExternalIDMap(ctx context.Context, accountID string) (map[string]string, error)
	UpsertBatch(ctx context.Context, rows []*domain.AdGroup) error
}

// AdStore persiste anúncios, com unicidade por (ad_group_id, external_id)
type AdStore interface {
	ExternalIDMap(ctx context.Context, accountID string) (map[string]string, error)
	UpsertBatch(ctx context.Context, rows []*domain.Ad) error
}

// MetricStore persiste métricas diárias; o conflito em (ad_id, date) é
// sobrescrita pura, sem merge
type MetricStore interface {
	UpsertBatch(ctx context.Context, rows []*domain.MetricRecord) error
}
