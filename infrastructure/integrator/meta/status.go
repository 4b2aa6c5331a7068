package meta

import (
	"strings"

	"github.com/vfg2006/adsync-engine/internal/domain"
)

// statusMap traduz o vocabulário de status do Meta para o canônico.
// Cobre os effective_status de campanha, adset e anúncio.
var statusMap = map[string]domain.CanonicalStatus{
	"ACTIVE":               domain.StatusActive,
	"PAUSED":               domain.StatusPaused,
	"CAMPAIGN_PAUSED":      domain.StatusPaused,
	"ADSET_PAUSED":         domain.StatusPaused,
	"IN_PROCESS":           domain.StatusPending,
	"PENDING_REVIEW":       domain.StatusPending,
	"PENDING_BILLING_INFO": domain.StatusPending,
	"PREAPPROVED":          domain.StatusPending,
	"DISAPPROVED":          domain.StatusRejected,
	"WITH_ISSUES":          domain.StatusRejected,
	"DELETED":              domain.StatusRemoved,
	"ARCHIVED":             domain.StatusRemoved,
}

// NormalizeStatus mapeia o status bruto do Meta para o canônico. Total:
// qualquer valor fora do vocabulário conhecido vira unknown, nunca erro.
func (a *Adapter) NormalizeStatus(raw string) domain.CanonicalStatus {
	if status, ok := statusMap[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return status
	}
	return domain.StatusUnknown
}
