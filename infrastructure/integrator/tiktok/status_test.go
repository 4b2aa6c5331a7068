package tiktok

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
		{name: "Deve mapear ENABLE para active", raw: "ENABLE", want: domain.StatusActive},
		{name: "Deve mapear DISABLE para paused", raw: "DISABLE", want: domain.StatusPaused},
		{name: "Deve mapear FROZEN para paused", raw: "FROZEN", want: domain.StatusPaused},
		{name: "Deve mapear DELETE para removed", raw: "DELETE", want: domain.StatusRemoved},
		{name: "Deve mapear AUDIT para pending", raw: "AUDIT", want: domain.StatusPending},
		{name: "Deve mapear AUDIT_DENY para rejected", raw: "AUDIT_DENY", want: domain.StatusRejected},
		{name: "Deve normalizar caixa e espaços", raw: " enable ", want: domain.StatusActive},
		{name: "Deve mapear valor desconhecido para unknown", raw: "NOT_A_STATUS", want: domain.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.NormalizeStatus(tt.raw))
		})
	}
}

func TestStatusMapTotality(t *testing.T) {
	for raw, canonical := range statusMap {
		assert.True(t, canonical.Valid(), "status %q mapeia para valor inválido %q", raw, canonical)
	}
}
