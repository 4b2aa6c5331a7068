package syncengine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-engine/internal/domain"
	"github.com/vfg2006/adsync-engine/pkg/utils"
)

// Result contabiliza uma passada de reconciliação de um tipo de entidade
type Result struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
}

// StatusFunc normaliza o status bruto da plataforma para o canônico
type StatusFunc func(raw string) domain.CanonicalStatus

// EntityReconciler projeta registros brutos de uma plataforma no grafo de
// entidades unificado, de forma idempotente. O algoritmo é o mesmo em todos
// os níveis da hierarquia: descartar registros sem id externo, resolver o
// pai pelo mapa de ids já persistidos (órfão conta como skip, nunca aborta
// o lote) e aplicar o lote em um upsert atômico por tipo de entidade.
type EntityReconciler struct {
	campaigns CampaignStore
	adGroups  AdGroupStore
	ads       AdStore
	metrics   MetricStore

	newID func() (string, error)
}

func NewEntityReconciler(
	campaigns CampaignStore,
	adGroups AdGroupStore,
	ads AdStore,
	metrics MetricStore,
) *EntityReconciler {
	return &EntityReconciler{
		campaigns: campaigns,
		adGroups:  adGroups,
		ads:       ads,
		metrics:   metrics,
		newID:     utils.GenerateID,
	}
}

// ReconcileCampaigns aplica o lote de campanhas da conta. Campanhas não têm
// pai a resolver, então nunca há skip neste nível.
func (r *EntityReconciler) ReconcileCampaigns(
	ctx context.Context,
	account *domain.Account,
	records []RawRecord,
	normalize StatusFunc,
) (Result, error) {
	rows := make([]*domain.Campaign, 0, len(records))
	byKey := make(map[string]int, len(records))

	for _, rec := range records {
		externalID := rec.String(FieldExternalID)
		if externalID == "" {
			// Registro sem id externo nunca é persistido nem contado
			continue
		}

		id, err := r.newID()
		if err != nil {
			return Result{}, err
		}

		row := &domain.Campaign{
			ID:          id,
			AccountID:   account.ID,
			ExternalID:  externalID,
			Name:        rec.String(FieldName),
			Status:      normalize(rec.String(FieldStatus)),
			BudgetCents: rec.Int64Ptr(FieldBudgetCents),
			StartDate:   rec.TimePtr(FieldStartDate),
			EndDate:     rec.TimePtr(FieldEndDate),
		}

		// O mesmo id externo repetido no lote sobrescreve a ocorrência
		// anterior: um único INSERT não pode afetar a mesma chave duas vezes
		if idx, ok := byKey[externalID]; ok {
			rows[idx] = row
			continue
		}

		byKey[externalID] = len(rows)
		rows = append(rows, row)
	}

	if len(rows) > 0 {
		if err := r.campaigns.UpsertBatch(ctx, rows); err != nil {
			return Result{}, err
		}
	}

	return Result{Synced: len(rows)}, nil
}

// ReconcileAdGroups aplica o lote de grupos de anúncio da conta, resolvendo
// cada campanha-pai pelo conjunto de campanhas recém-commitado.
func (r *EntityReconciler) ReconcileAdGroups(
	ctx context.Context,
	account *domain.Account,
	records []RawRecord,
	normalize StatusFunc,
) (Result, error) {
	parents, err := r.campaigns.ExternalIDMap(ctx, account.ID)
	if err != nil {
		return Result{}, err
	}

	rows := make([]*domain.AdGroup, 0, len(records))
	byKey := make(map[string]int, len(records))
	skipped := 0

	for _, rec := range records {
		externalID := rec.String(FieldExternalID)
		if externalID == "" {
			continue
		}

		parentExternalID := rec.String(FieldParentID)

		campaignID, ok := parents[parentExternalID]
		if !ok {
			// Órfãos são esperados transitoriamente (corrida de paginação,
			// pai criado por outro processo); nunca abortam o lote
			skipped++
			logrus.WithFields(logrus.Fields{
				"account_id":  account.ID,
				"external_id": externalID,
				"parent_id":   parentExternalID,
			}).Warn("Grupo de anúncio órfão: campanha-pai desconhecida, pulando")
			continue
		}

		id, err := r.newID()
		if err != nil {
			return Result{}, err
		}

		row := &domain.AdGroup{
			ID:         id,
			CampaignID: campaignID,
			ExternalID: externalID,
			Name:       rec.String(FieldName),
			Status:     normalize(rec.String(FieldStatus)),
			StartDate:  rec.TimePtr(FieldStartDate),
			EndDate:    rec.TimePtr(FieldEndDate),
		}

		key := campaignID + ":" + externalID
		if idx, ok := byKey[key]; ok {
			rows[idx] = row
			continue
		}

		byKey[key] = len(rows)
		rows = append(rows, row)
	}

	if len(rows) > 0 {
		if err := r.adGroups.UpsertBatch(ctx, rows); err != nil {
			return Result{}, err
		}
	}

	return Result{Synced: len(rows), Skipped: skipped}, nil
}

// ReconcileAds aplica o lote de anúncios da conta, resolvendo cada grupo-pai
func (r *EntityReconciler) ReconcileAds(
	ctx context.Context,
	account *domain.Account,
	records []RawRecord,
	normalize StatusFunc,
) (Result, error) {
	parents, err := r.adGroups.ExternalIDMap(ctx, account.ID)
	if err != nil {
		return Result{}, err
	}

	rows := make([]*domain.Ad, 0, len(records))
	byKey := make(map[string]int, len(records))
	skipped := 0

	for _, rec := range records {
		externalID := rec.String(FieldExternalID)
		if externalID == "" {
			continue
		}

		parentExternalID := rec.String(FieldParentID)

		adGroupID, ok := parents[parentExternalID]
		if !ok {
			skipped++
			logrus.WithFields(logrus.Fields{
				"account_id":  account.ID,
				"external_id": externalID,
				"parent_id":   parentExternalID,
			}).Warn("Anúncio órfão: grupo-pai desconhecido, pulando")
			continue
		}

		id, err := r.newID()
		if err != nil {
			return Result{}, err
		}

		var creativeRef *string
		if ref := rec.String(FieldCreativeRef); ref != "" {
			creativeRef = &ref
		}

		row := &domain.Ad{
			ID:          id,
			AdGroupID:   adGroupID,
			ExternalID:  externalID,
			Name:        rec.String(FieldName),
			Status:      normalize(rec.String(FieldStatus)),
			CreativeRef: creativeRef,
		}

		key := adGroupID + ":" + externalID
		if idx, ok := byKey[key]; ok {
			rows[idx] = row
			continue
		}

		byKey[key] = len(rows)
		rows = append(rows, row)
	}

	if len(rows) > 0 {
		if err := r.ads.UpsertBatch(ctx, rows); err != nil {
			return Result{}, err
		}
	}

	return Result{Synced: len(rows), Skipped: skipped}, nil
}

// ReconcileMetrics aplica o lote de métricas diárias, resolvendo a unidade
// veiculável folha pelo id externo do anúncio. O conflito em (anúncio, data)
// é sobrescrita pura: a plataforma re-declara o valor do dia e o mais
// recente sempre vence.
func (r *EntityReconciler) ReconcileMetrics(
	ctx context.Context,
	account *domain.Account,
	records []RawRecord,
) (Result, error) {
	leaves, err := r.ads.ExternalIDMap(ctx, account.ID)
	if err != nil {
		return Result{}, err
	}

	rows := make([]*domain.MetricRecord, 0, len(records))
	byKey := make(map[string]int, len(records))
	skipped := 0

	for _, rec := range records {
		externalID := rec.String(FieldExternalID)
		if externalID == "" {
			continue
		}

		date, ok := rec.Time(FieldDate)
		if !ok {
			// Métrica sem data não tem chave de identidade
			continue
		}
		date = utils.TruncateToDay(date)

		adID, ok := leaves[externalID]
		if !ok {
			skipped++
			logrus.WithFields(logrus.Fields{
				"account_id":  account.ID,
				"external_id": externalID,
				"date":        date.Format(time.DateOnly),
			}).Warn("Métrica órfã: anúncio desconhecido, pulando")
			continue
		}

		id, err := r.newID()
		if err != nil {
			return Result{}, err
		}

		row := &domain.MetricRecord{
			ID:           id,
			AdID:         adID,
			Date:         date,
			Impressions:  int64Value(rec, FieldImpressions),
			Clicks:       int64Value(rec, FieldClicks),
			SpendCents:   int64Value(rec, FieldSpendCents),
			Conversions:  int64Value(rec, FieldConversions),
			RevenueCents: int64Value(rec, FieldRevenueCents),
		}
		row.ComputeDerived()

		key := adID + ":" + date.Format(time.DateOnly)
		if idx, ok := byKey[key]; ok {
			rows[idx] = row
			continue
		}

		byKey[key] = len(rows)
		rows = append(rows, row)
	}

	if len(rows) > 0 {
		if err := r.metrics.UpsertBatch(ctx, rows); err != nil {
			return Result{}, err
		}
	}

	return Result{Synced: len(rows), Skipped: skipped}, nil
}

func int64Value(rec RawRecord, key string) int64 {
	v, _ := rec.Int64(key)
	return v
}
