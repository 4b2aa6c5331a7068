package syncengine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxAttempts é o teto fixo de tentativas por chamada lógica
	DefaultMaxAttempts = 3

	// DefaultInitialDelay é a base do backoff exponencial
	DefaultInitialDelay = 1 * time.Second
)

// CallFunc é uma chamada lógica de adapter protegida pelo guard
type CallFunc func(ctx context.Context) (*Page, error)

// RateLimitGuard executa exatamente uma chamada lógica de adapter com
// retentativa limitada. Só rate limit é retentado: token expirado falha
// imediatamente (retentar com token morto não pode dar certo e desperdiça
// requisição) e qualquer outro erro é assumido não-transiente.
type RateLimitGuard struct {
	maxAttempts  int
	initialDelay time.Duration

	// sleep é injetável nos testes para não dormir de verdade
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRateLimitGuard cria o guard; valores zero usam os defaults
func NewRateLimitGuard(maxAttempts int, initialDelay time.Duration) *RateLimitGuard {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if initialDelay <= 0 {
		initialDelay = DefaultInitialDelay
	}

	return &RateLimitGuard{
		maxAttempts:  maxAttempts,
		initialDelay: initialDelay,
		sleep:        sleepContext,
	}
}

// Execute tenta a chamada até o teto de tentativas. No esgotamento retorna
// um erro de rate limit carregando o último delay calculado como sugestão
// de espera para o próximo ciclo agendado.
func (g *RateLimitGuard) Execute(ctx context.Context, call CallFunc) (*Page, error) {
	var delay time.Duration

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		page, err := call(ctx)
		if err == nil {
			return page, nil
		}

		apiErr, ok := AsAPIError(err)
		if !ok || apiErr.Kind != ErrorKindRateLimited {
			// Token expirado e erros opacos não são retentados
			return nil, err
		}

		delay = g.initialDelay * (1 << attempt)

		if attempt == g.maxAttempts-1 {
			logrus.WithFields(logrus.Fields{
				"attempts":    g.maxAttempts,
				"retry_after": delay.String(),
			}).Warn("Rate limit persistiu após esgotar as tentativas")

			return nil, NewRateLimitedError(apiErr.Code, apiErr.Message, delay)
		}

		logrus.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"delay":   delay.String(),
		}).Info("Rate limit da plataforma, aguardando antes de retentar")

		if err := g.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	// Inalcançável com maxAttempts > 0
	return nil, NewRateLimitedError("", "retry budget exhausted", delay)
}

// sleepContext dorme respeitando o cancelamento do contexto. O sono de
// backoff de uma conta nunca bloqueia o progresso das demais: cada conta
// roda em sua própria goroutine.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
