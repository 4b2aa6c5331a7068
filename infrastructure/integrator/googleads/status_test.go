package googleads

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
		{name: "Deve mapear ENABLED para active", raw: "ENABLED", want: domain.StatusActive},
		{name: "Deve mapear PAUSED para paused", raw: "PAUSED", want: domain.StatusPaused},
		{name: "Deve mapear REMOVED para removed", raw: "REMOVED", want: domain.StatusRemoved},
		{name: "Deve mapear PENDING para pending", raw: "PENDING", want: domain.StatusPending},
		{name: "Deve mapear UNDER_REVIEW para pending", raw: "UNDER_REVIEW", want: domain.StatusPending},
		{name: "Deve mapear DISAPPROVED para rejected", raw: "DISAPPROVED", want: domain.StatusRejected},
		{name: "Deve mapear UNKNOWN para unknown", raw: "UNKNOWN", want: domain.StatusUnknown},
		{name: "Deve mapear UNSPECIFIED para unknown", raw: "UNSPECIFIED", want: domain.StatusUnknown},
		{name: "Deve normalizar caixa e espaços", raw: "  enabled ", want: domain.StatusActive},
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
