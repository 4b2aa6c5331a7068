package syncengine

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-engine/internal/domain"
)

// TokenHealthGate impede qualquer chamada de rede quando a credencial da
// conta é estruturalmente inválida, e reage quando uma chamada descobre
// invalidade ao vivo. Fazer uma única chamada com credencial vazia já é
// defeito: desperdiça quota e pode disparar flags de abuso na plataforma.
type TokenHealthGate struct {
	accounts AccountStore
}

func NewTokenHealthGate(accounts AccountStore) *TokenHealthGate {
	return &TokenHealthGate{accounts: accounts}
}

// Preflight verifica a credencial antes da primeira chamada de rede do ciclo
func (g *TokenHealthGate) Preflight(account *domain.Account) error {
	if strings.TrimSpace(account.AccessToken) == "" {
		return ErrInvalidCredentials
	}
	return nil
}

// OnTokenExpired marca a conta como token_expired. Expirado é distinto de
// inválido: já foi válido um dia e precisa de refresh, não de
// reautorização completa.
func (g *TokenHealthGate) OnTokenExpired(ctx context.Context, account *domain.Account) error {
	logrus.WithFields(logrus.Fields{
		"account_id": account.ID,
		"platform":   account.Platform,
	}).Warn("Token expirado detectado durante o ciclo de sync")

	account.Health = domain.AccountHealthTokenExpired

	return g.accounts.MarkHealth(ctx, account.ID, domain.AccountHealthTokenExpired)
}

// OnInvalidCredentials marca a conta como token_invalid (credencial malformada
// ou revogada; só a reautorização externa recupera)
func (g *TokenHealthGate) OnInvalidCredentials(ctx context.Context, account *domain.Account) error {
	logrus.WithFields(logrus.Fields{
		"account_id": account.ID,
		"platform":   account.Platform,
	}).Warn("Credenciais inválidas detectadas para a conta")

	account.Health = domain.AccountHealthTokenInvalid

	return g.accounts.MarkHealth(ctx, account.ID, domain.AccountHealthTokenInvalid)
}
