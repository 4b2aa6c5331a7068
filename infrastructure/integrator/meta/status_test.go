package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/adsync-engine/internal/config"
	"github.com/vfg2006/adsync-engine/internal/domain"
)

func TestNormalizeStatus(t *testing.T) {
	adapter := NewAdapter(config.Platform{})

	tests := []struct {
		name string
		raw  string
		want domain.CanonicalStatus
	}{
		{name: "Deve mapear ACTIVE para active", raw: "ACTIVE", want: domain.StatusActive},
		{name: "Deve mapear PAUSED para paused", raw: "PAUSED", want: domain.StatusPaused},
		{name: "Deve mapear CAMPAIGN_PAUSED para paused", raw: "CAMPAIGN_PAUSED", want: domain.StatusPaused},
		{name: "Deve mapear ADSET_PAUSED para paused", raw: "ADSET_PAUSED", want: domain.StatusPaused},
		{name: "Deve mapear PENDING_REVIEW para pending", raw: "PENDING_REVIEW", want: domain.StatusPending},
		{name: "Deve mapear IN_PROCESS para pending", raw: "IN_PROCESS", want: domain.StatusPending},
		{name: "Deve mapear DISAPPROVED para rejected", raw: "DISAPPROVED", want: domain.StatusRejected},
		{name: "Deve mapear WITH_ISSUES para rejected", raw: "WITH_ISSUES", want: domain.StatusRejected},
		{name: "Deve mapear DELETED para removed", raw: "DELETED", want: domain.StatusRemoved},
		{name: "Deve mapear ARCHIVED para removed", raw: "ARCHIVED", want: domain.StatusRemoved},
		{name: "Deve normalizar caixa e espaços", raw: "  active ", want: domain.StatusActive},
		{name: "Deve mapear valor desconhecido para unknown", raw: "SOMETHING_NEW", want: domain.StatusUnknown},
		{name: "Deve mapear vazio para unknown", raw: "", want: domain.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.NormalizeStatus(tt.raw))
		})
	}
}

// Todo valor do mapa de tradução deve ser um status canônico válido
func TestStatusMapTotality(t *testing.T) {
	for raw, canonical := range statusMap {
		assert.True(t, canonical.Valid(), "status %q mapeia para valor inválido %q", raw, canonical)
	}
}
