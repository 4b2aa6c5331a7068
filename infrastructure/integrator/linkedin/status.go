package linkedin

import (
	"strings"

	"github.com/vfg2006/adsync-engine/internal/domain"
)

// statusMap traduz o vocabulário de status do LinkedIn para o canônico
var statusMap = map[string]domain.CanonicalStatus{
	"ACTIVE":           domain.StatusActive,
	"PAUSED":           domain.StatusPaused,
	"DRAFT":            domain.StatusPending,
	"PENDING_DELETION": domain.StatusRemoved,
	"REMOVED":          domain.StatusRemoved,
	"ARCHIVED":         domain.StatusRemoved,
	"COMPLETED":        domain.StatusPaused,
	"CANCELED":         domain.StatusRemoved,
}

// NormalizeStatus mapeia o status bruto do LinkedIn para o canônico
func (a *Adapter) NormalizeStatus(raw string) domain.CanonicalStatus {
	if status, ok := statusMap[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return status
	}
	return domain.StatusUnknown
}
