package googleads

import (
	"strings"

	"github.com/vfg2006/adsync-engine/internal/domain"
)

// statusMap traduz o vocabulário de status do Google Ads para o canônico
var statusMap = map[string]domain.CanonicalStatus{
	"ENABLED":      domain.StatusActive,
	"PAUSED":       domain.StatusPaused,
	"REMOVED":      domain.StatusRemoved,
	"PENDING":      domain.StatusPending,
	"UNDER_REVIEW": domain.StatusPending,
	"DISAPPROVED":  domain.StatusRejected,
	"UNKNOWN":      domain.StatusUnknown,
	"UNSPECIFIED":  domain.StatusUnknown,
}

// NormalizeStatus mapeia o status bruto do Google Ads para o canônico
func (a *Adapter) NormalizeStatus(raw string) domain.CanonicalStatus {
	if status, ok := statusMap[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return status
	}
	return domain.StatusUnknown
}
