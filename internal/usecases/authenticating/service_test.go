package authenticating_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-engine/infrastructure/repository/mocks"
	"github.com/vfg2006/adsync-engine/internal/config"
	"github.com/vfg2006/adsync-engine/internal/domain"
	"github.com/vfg2006/adsync-engine/internal/usecases/authenticating"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{SecretKey: "test_secret_key"},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Deve autenticar usuário ativo com senha correta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		service := authenticating.NewService(userRepo, testConfig())

		user := &domain.User{
			ID:           1,
			Name:         "Maria",
			Email:        "maria@adsync.local",
			PasswordHash: hashPassword(t, "senha123"),
			Active:       true,
			RoleID:       1,
		}

		userRepo.EXPECT().GetUserByEmail(ctx, "maria@adsync.local").Return(user, nil)

		token, err := service.LoginUser(ctx, "maria@adsync.local", "senha123")

		require.NoError(t, err)
		assert.NotEmpty(t, token)

		// O token emitido deve ser aceito pela própria validação
		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
		assert.Equal(t, 1, claims.UserRoleID)
	})

	t.Run("Deve normalizar o email antes da consulta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		service := authenticating.NewService(userRepo, testConfig())

		user := &domain.User{
			ID:           1,
			Email:        "maria@adsync.local",
			PasswordHash: hashPassword(t, "senha123"),
			Active:       true,
		}

		userRepo.EXPECT().GetUserByEmail(ctx, "maria@adsync.local").Return(user, nil)

		_, err := service.LoginUser(ctx, "  Maria@AdSync.Local ", "senha123")

		assert.NoError(t, err)
	})

	t.Run("Deve rejeitar login sem email ou senha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		service := authenticating.NewService(userRepo, testConfig())

		_, err := service.LoginUser(ctx, "", "senha123")

		assert.ErrorIs(t, err, authenticating.ErrMissingRequiredData)
	})

	t.Run("Deve rejeitar usuário inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		service := authenticating.NewService(userRepo, testConfig())

		userRepo.EXPECT().GetUserByEmail(ctx, "ghost@adsync.local").Return(nil, nil)

		_, err := service.LoginUser(ctx, "ghost@adsync.local", "senha123")

		assert.ErrorIs(t, err, authenticating.ErrUserNotFound)
	})

	t.Run("Deve rejeitar usuário desativado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		service := authenticating.NewService(userRepo, testConfig())

		user := &domain.User{
			ID:           7,
			Email:        "inativo@adsync.local",
			PasswordHash: hashPassword(t, "senha123"),
			Active:       false,
		}

		userRepo.EXPECT().GetUserByEmail(ctx, "inativo@adsync.local").Return(user, nil)

		_, err := service.LoginUser(ctx, "inativo@adsync.local", "senha123")

		assert.ErrorIs(t, err, authenticating.ErrUserDisabled)

		var authErr *authenticating.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, 7, authErr.UserID)
	})

	t.Run("Deve rejeitar senha incorreta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		service := authenticating.NewService(userRepo, testConfig())

		user := &domain.User{
			ID:           1,
			Email:        "maria@adsync.local",
			PasswordHash: hashPassword(t, "senha123"),
			Active:       true,
		}

		userRepo.EXPECT().GetUserByEmail(ctx, "maria@adsync.local").Return(user, nil)

		_, err := service.LoginUser(ctx, "maria@adsync.local", "senha_errada")

		assert.ErrorIs(t, err, authenticating.ErrInvalidCredentials)
	})
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Deve criar usuário com senha criptografada e papel padrão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		service := authenticating.NewService(userRepo, testConfig())

		userRepo.EXPECT().GetUserByEmail(ctx, "novo@adsync.local").Return(nil, nil)
		userRepo.EXPECT().CreateUser(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, user *domain.User) (*domain.User, error) {
				// A senha nunca chega em texto puro no repositório
				assert.NotEqual(t, "senha123", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha123")))
				assert.Equal(t, 3, user.RoleID)
				assert.False(t, user.Active)

				user.ID = 10
				return user, nil
			})

		user, err := service.CreateUser(ctx, &domain.User{
			Name:         "Novo",
			Lastname:     "Usuário",
			Email:        "Novo@AdSync.Local",
			PasswordHash: "senha123",
		})

		require.NoError(t, err)
		assert.Equal(t, 10, user.ID)
		assert.Equal(t, "novo@adsync.local", user.Email)
	})

	t.Run("Deve rejeitar cadastro com dados obrigatórios ausentes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		service := authenticating.NewService(userRepo, testConfig())

		_, err := service.CreateUser(ctx, &domain.User{Email: "so@email.local"})

		assert.ErrorIs(t, err, authenticating.ErrMissingRequiredData)
	})

	t.Run("Deve rejeitar email já cadastrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		service := authenticating.NewService(userRepo, testConfig())

		userRepo.EXPECT().GetUserByEmail(ctx, "existente@adsync.local").
			Return(&domain.User{ID: 2, Email: "existente@adsync.local"}, nil)

		_, err := service.CreateUser(ctx, &domain.User{
			Name:         "Outro",
			Lastname:     "Usuário",
			Email:        "existente@adsync.local",
			PasswordHash: "senha123",
		})

		assert.ErrorIs(t, err, authenticating.ErrUserAlreadyExists)
	})
}

func TestGetUserProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Deve retornar o perfil sem o hash da senha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		service := authenticating.NewService(userRepo, testConfig())

		userRepo.EXPECT().GetUserByID(ctx, 1).Return(&domain.User{
			ID:           1,
			Name:         "Maria",
			PasswordHash: "hash_secreto",
		}, nil)

		user, err := service.GetUserProfile(ctx, 1)

		require.NoError(t, err)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("Deve retornar erro para usuário inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		service := authenticating.NewService(userRepo, testConfig())

		userRepo.EXPECT().GetUserByID(ctx, 99).Return(nil, nil)

		_, err := service.GetUserProfile(ctx, 99)

		assert.ErrorIs(t, err, authenticating.ErrUserNotFound)
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("Deve rejeitar token malformado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		service := authenticating.NewService(userRepo, testConfig())

		_, err := service.ValidateToken("not.a.token")

		assert.Error(t, err)
	})

	t.Run("Deve rejeitar token assinado com outra chave", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)

		otherConfig := &config.Config{Auth: config.Auth{SecretKey: "outra_chave"}}
		issuer := authenticating.NewService(userRepo, otherConfig)
		validator := authenticating.NewService(userRepo, testConfig())

		user := &domain.User{
			ID:           1,
			Email:        "maria@adsync.local",
			PasswordHash: hashPassword(t, "senha123"),
			Active:       true,
		}
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), "maria@adsync.local").Return(user, nil)

		token, err := issuer.LoginUser(context.Background(), "maria@adsync.local", "senha123")
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.Error(t, err)
	})
}
