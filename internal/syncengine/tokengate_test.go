package syncengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/adsync-engine/internal/domain"
)

type fakeAccountStore struct {
	health map[string]domain.AccountHealth
	err    error
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{health: make(map[string]domain.AccountHealth)}
}

func (s *fakeAccountStore) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return nil, nil
}

func (s *fakeAccountStore) MarkHealth(ctx context.Context, id string, health domain.AccountHealth) error {
	if s.err != nil {
		return s.err
	}
	s.health[id] = health
	return nil
}

func (s *fakeAccountStore) TouchLastSync(ctx context.Context, id string, at time.Time) error {
	return nil
}

func TestPreflight(t *testing.T) {
	gate := NewTokenHealthGate(newFakeAccountStore())

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "Deve aceitar conta com credencial presente",
			token:   "tok_abc123",
			wantErr: nil,
		},
		{
			name:    "Deve rejeitar conta com credencial vazia",
			token:   "",
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "Deve rejeitar conta com credencial só de espaços",
			token:   "   \t",
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Preflight(&domain.Account{ID: "acc1", AccessToken: tt.token})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOnTokenExpired(t *testing.T) {
	t.Run("Deve marcar a conta como token_expired", func(t *testing.T) {
		store := newFakeAccountStore()
		gate := NewTokenHealthGate(store)

		account := &domain.Account{ID: "acc1", Platform: domain.PlatformMeta, Health: domain.AccountHealthActive}
		err := gate.OnTokenExpired(context.Background(), account)

		assert.NoError(t, err)
		assert.Equal(t, domain.AccountHealthTokenExpired, account.Health)
		assert.Equal(t, domain.AccountHealthTokenExpired, store.health["acc1"])
	})

	t.Run("Deve propagar a falha de persistência", func(t *testing.T) {
		store := newFakeAccountStore()
		store.err = errors.New("connection refused")
		gate := NewTokenHealthGate(store)

		err := gate.OnTokenExpired(context.Background(), &domain.Account{ID: "acc1"})

		assert.Error(t, err)
	})
}

func TestOnInvalidCredentials(t *testing.T) {
	t.Run("Deve marcar a conta como token_invalid", func(t *testing.T) {
		store := newFakeAccountStore()
		gate := NewTokenHealthGate(store)

		account := &domain.Account{ID: "acc1", Platform: domain.PlatformTikTok, Health: domain.AccountHealthActive}
		err := gate.OnInvalidCredentials(context.Background(), account)

		assert.NoError(t, err)
		assert.Equal(t, domain.AccountHealthTokenInvalid, account.Health)
		assert.Equal(t, domain.AccountHealthTokenInvalid, store.health["acc1"])
	})
}
