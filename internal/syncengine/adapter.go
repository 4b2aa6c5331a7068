package syncengine

import (
	"context"
	"time"

	"github.com/vfg2006/adsync-engine/internal/domain"
)

// Chaves dos registros brutos. Os adapters traduzem os nomes de campo de
// cada plataforma para estas chaves; nada específico de plataforma passa
// desta fronteira.
const (
	FieldExternalID   = "external_id"
	FieldParentID     = "parent_id"
	FieldName         = "name"
	FieldStatus       = "status"
	FieldBudgetCents  = "budget_cents"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldCreativeRef  = "creative_ref"
	FieldDate         = "date"
	FieldImpressions  = "impressions"
	FieldClicks       = "clicks"
	FieldSpendCents   = "spend_cents"
	FieldConversions  = "conversions"
	FieldRevenueCents = "revenue_cents"
)

// RawRecord é um registro bruto retornado por um adapter de plataforma
type RawRecord map[string]any

// String retorna o valor textual de uma chave, ou vazio se ausente
func (r RawRecord) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Int64 retorna o valor inteiro de uma chave e se ele está presente
func (r RawRecord) Int64(key string) (int64, bool) {
	switch v := r[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}

// Int64Ptr retorna o valor inteiro como ponteiro, ou nil se ausente.
// Campos monetários ausentes não devem apagar valores já conhecidos.
func (r RawRecord) Int64Ptr(key string) *int64 {
	if v, ok := r.Int64(key); ok {
		return &v
	}
	return nil
}

// Time retorna o valor de data de uma chave e se ele está presente
func (r RawRecord) Time(key string) (time.Time, bool) {
	if v, ok := r[key].(time.Time); ok {
		return v, true
	}
	return time.Time{}, false
}

// TimePtr retorna o valor de data como ponteiro, ou nil se ausente
func (r RawRecord) TimePtr(key string) *time.Time {
	if v, ok := r.Time(key); ok {
		return &v
	}
	return nil
}

// Page é uma página de registros brutos. NextCursor é um token opaco de
// continuação: vazio encerra a paginação.
type Page struct {
	Records    []RawRecord
	NextCursor string
}

// AccountRef referencia a conta na plataforma externa para as chamadas de API
type AccountRef struct {
	ExternalID  string
	AccessToken string
}

// DateRange delimita o período de métricas buscado em um ciclo
type DateRange struct {
	Since time.Time
	Until time.Time
}

// PlatformAdapter é a fronteira polimórfica com cada plataforma externa.
// Cada método busca uma página; o cursor vem da página anterior (vazio na
// primeira chamada). Erros são sempre um dos três tipos classificados de
// APIError; nenhum chamador interpreta mensagens de erro em texto.
type PlatformAdapter interface {
	Platform() domain.Platform
	FetchCampaigns(ctx context.Context, ref AccountRef, cursor string) (*Page, error)
	FetchAdGroups(ctx context.Context, ref AccountRef, cursor string) (*Page, error)
	FetchAds(ctx context.Context, ref AccountRef, cursor string) (*Page, error)
	FetchMetrics(ctx context.Context, ref AccountRef, window DateRange, cursor string) (*Page, error)

	// NormalizeStatus mapeia o vocabulário de status da plataforma para o
	// canônico. Total: entradas desconhecidas viram StatusUnknown.
	NormalizeStatus(raw string) domain.CanonicalStatus
}
