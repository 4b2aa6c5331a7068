package domain

// CanonicalStatus é o vocabulário unificado de status de entidades de anúncio.
// Todos os vocabulários das plataformas externas são mapeados para estes valores.
type CanonicalStatus string

const (
	StatusActive   CanonicalStatus = "active"
	StatusPaused   CanonicalStatus = "paused"
	StatusPending  CanonicalStatus = "pending"
	StatusRejected CanonicalStatus = "rejected"
	StatusRemoved  CanonicalStatus = "removed"
	StatusUnknown  CanonicalStatus = "unknown"
)

// CanonicalStatuses lista todos os valores canônicos válidos
var CanonicalStatuses = []CanonicalStatus{
	StatusActive,
	StatusPaused,
	StatusPending,
	StatusRejected,
	StatusRemoved,
	StatusUnknown,
}

// Valid retorna verdadeiro se o status é um dos valores canônicos
func (s CanonicalStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusPending, StatusRejected, StatusRemoved, StatusUnknown:
		return true
	}
	return false
}
