package syncengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// newTestGuard cria um guard com o sono instrumentado, registrando os delays
// sem dormir de verdade
func newTestGuard(maxAttempts int, slept *[]time.Duration) *RateLimitGuard {
	guard := NewRateLimitGuard(maxAttempts, 1*time.Second)
	guard.sleep = func(ctx context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
	return guard
}

func TestExecute(t *testing.T) {
	t.Run("Deve retornar a página na primeira tentativa sem aguardar", func(t *testing.T) {
		var slept []time.Duration
		guard := newTestGuard(3, &slept)

		calls := 0
		page, err := guard.Execute(context.Background(), func(ctx context.Context) (*Page, error) {
			calls++
			return &Page{Records: []RawRecord{{FieldExternalID: "c1"}}}, nil
		})

		assert.NoError(t, err)
		assert.Len(t, page.Records, 1)
		assert.Equal(t, 1, calls)
		assert.Empty(t, slept)
	})

	t.Run("Deve retentar sob rate limit com backoff exponencial", func(t *testing.T) {
		var slept []time.Duration
		guard := newTestGuard(3, &slept)

		calls := 0
		page, err := guard.Execute(context.Background(), func(ctx context.Context) (*Page, error) {
			calls++
			if calls < 3 {
				return nil, NewRateLimitedError("429", "too many requests", 0)
			}
			return &Page{}, nil
		})

		assert.NoError(t, err)
		assert.NotNil(t, page)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, slept)
	})

	t.Run("Deve esgotar o teto de tentativas e devolver o último delay como sugestão", func(t *testing.T) {
		var slept []time.Duration
		guard := newTestGuard(3, &slept)

		calls := 0
		page, err := guard.Execute(context.Background(), func(ctx context.Context) (*Page, error) {
			calls++
			return nil, NewRateLimitedError("429", "too many requests", 0)
		})

		assert.Nil(t, page)
		assert.Equal(t, 3, calls)

		apiErr, ok := AsAPIError(err)
		assert.True(t, ok)
		assert.Equal(t, ErrorKindRateLimited, apiErr.Kind)
		assert.Equal(t, 4*time.Second, apiErr.RetryAfter)

		// A última tentativa falha sem aguardar: o delay final vai na sugestão
		assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, slept)
	})

	t.Run("Deve falhar imediatamente com token expirado", func(t *testing.T) {
		var slept []time.Duration
		guard := newTestGuard(3, &slept)

		calls := 0
		_, err := guard.Execute(context.Background(), func(ctx context.Context) (*Page, error) {
			calls++
			return nil, NewTokenExpiredError("190", "token expired")
		})

		assert.True(t, IsTokenExpired(err))
		assert.Equal(t, 1, calls)
		assert.Empty(t, slept)
	})

	t.Run("Deve falhar imediatamente com erro opaco de plataforma", func(t *testing.T) {
		var slept []time.Duration
		guard := newTestGuard(3, &slept)

		calls := 0
		_, err := guard.Execute(context.Background(), func(ctx context.Context) (*Page, error) {
			calls++
			return nil, NewOtherAPIError("500", "internal error")
		})

		apiErr, ok := AsAPIError(err)
		assert.True(t, ok)
		assert.Equal(t, ErrorKindOther, apiErr.Kind)
		assert.Equal(t, 1, calls)
		assert.Empty(t, slept)
	})

	t.Run("Deve falhar imediatamente com erro não classificado", func(t *testing.T) {
		var slept []time.Duration
		guard := newTestGuard(3, &slept)

		opaque := errors.New("connection reset")
		_, err := guard.Execute(context.Background(), func(ctx context.Context) (*Page, error) {
			return nil, opaque
		})

		assert.Equal(t, opaque, err)
		assert.Empty(t, slept)
	})

	t.Run("Deve interromper a espera quando o contexto é cancelado", func(t *testing.T) {
		guard := NewRateLimitGuard(3, 1*time.Second)
		guard.sleep = func(ctx context.Context, d time.Duration) error {
			return context.Canceled
		}

		calls := 0
		_, err := guard.Execute(context.Background(), func(ctx context.Context) (*Page, error) {
			calls++
			return nil, NewRateLimitedError("429", "too many requests", 0)
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestNewRateLimitGuardDefaults(t *testing.T) {
	guard := NewRateLimitGuard(0, 0)

	assert.Equal(t, DefaultMaxAttempts, guard.maxAttempts)
	assert.Equal(t, DefaultInitialDelay, guard.initialDelay)
}
