package tiktok

import (
	"strings"

	"github.com/vfg2006/adsync-engine/internal/domain"
)

// statusMap traduz o vocabulário de operation_status/secondary_status do
// TikTok para o canônico
var statusMap = map[string]domain.CanonicalStatus{
	"ENABLE":                 domain.StatusActive,
	"DISABLE":                domain.StatusPaused,
	"FROZEN":                 domain.StatusPaused,
	"DELETE":                 domain.StatusRemoved,
	"CAMPAIGN_STATUS_DELETE": domain.StatusRemoved,
	"AUDIT":                  domain.StatusPending,
	"REAUDIT":                domain.StatusPending,
	"AUDIT_DENY":             domain.StatusRejected,
}

// NormalizeStatus mapeia o status bruto do TikTok para o canônico
func (a *Adapter) NormalizeStatus(raw string) domain.CanonicalStatus {
	if status, ok := statusMap[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return status
	}
	return domain.StatusUnknown
}
