package snapchat

import (
	"strings"

	"github.com/vfg2006/adsync-engine/internal/domain"
)

// statusMap traduz o vocabulário de status do Snapchat para o canônico
var statusMap = map[string]domain.CanonicalStatus{
	"ACTIVE":         domain.StatusActive,
	"PAUSED":         domain.StatusPaused,
	"PENDING_REVIEW": domain.StatusPending,
	"REJECTED":       domain.StatusRejected,
	"DELETED":        domain.StatusRemoved,
	"ARCHIVED":       domain.StatusRemoved,
}

// NormalizeStatus mapeia o status bruto do Snapchat para o canônico
func (a *Adapter) NormalizeStatus(raw string) domain.CanonicalStatus {
	if status, ok := statusMap[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return status
	}
	return domain.StatusUnknown
}
