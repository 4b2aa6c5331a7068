package pinterest

import (
	"strings"

	"github.com/vfg2006/adsync-engine/internal/domain"
)

// statusMap traduz o vocabulário de status do Pinterest para o canônico
var statusMap = map[string]domain.CanonicalStatus{
	"ACTIVE":   domain.StatusActive,
	"PAUSED":   domain.StatusPaused,
	"ARCHIVED": domain.StatusRemoved,
	"DELETED":  domain.StatusRemoved,
	"PENDING":  domain.StatusPending,
	"REJECTED": domain.StatusRejected,
}

// NormalizeStatus mapeia o status bruto do Pinterest para o canônico
func (a *Adapter) NormalizeStatus(raw string) domain.CanonicalStatus {
	if status, ok := statusMap[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return status
	}
	return domain.StatusUnknown
}
