package domain

import "time"

// Platform identifica uma plataforma de anúncios externa
type Platform string

const (
	PlatformMeta      Platform = "meta"
	PlatformGoogleAds Platform = "googleads"
	PlatformTikTok    Platform = "tiktok"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformPinterest Platform = "pinterest"
	PlatformSnapchat  Platform = "snapchat"
)

// AccountHealth representa a saúde da credencial de uma conta conectada
type AccountHealth string

const (
	AccountHealthActive       AccountHealth = "active"
	AccountHealthTokenInvalid AccountHealth = "token_invalid"
	AccountHealthTokenExpired AccountHealth = "token_expired"
)

// Account representa a conexão de um usuário com uma conta de anúncios
// em uma plataforma externa. A credencial é opaca para o motor de sync:
// ela é obtida pelo fluxo OAuth (colaborador externo) e só é lida aqui.
type Account struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Platform    Platform      `json:"platform"`
	ExternalID  string        `json:"external_id"`
	Name        string        `json:"name"`
	AccessToken string        `json:"-"`
	Health      AccountHealth `json:"health"`
	LastSyncAt  *time.Time    `json:"last_sync_at"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Syncable retorna verdadeiro se a conta pode entrar no ciclo automático.
// Contas com token inválido ou expirado ficam fora até a reautorização.
func (a *Account) Syncable() bool {
	return a.Health == AccountHealthActive
}

// ConnectAccountRequest é o payload de conexão de uma conta de anúncios
type ConnectAccountRequest struct {
	UserID      string   `json:"user_id"`
	Platform    Platform `json:"platform"`
	ExternalID  string   `json:"external_id"`
	Name        string   `json:"name"`
	AccessToken string   `json:"access_token"`
}

// AccountResponse é a projeção de Account exposta pela API
type AccountResponse struct {
	ID         string        `json:"id"`
	Platform   Platform      `json:"platform"`
	ExternalID string        `json:"external_id"`
	Name       string        `json:"name"`
	Health     AccountHealth `json:"health"`
	LastSyncAt *time.Time    `json:"last_sync_at"`
}

// ToResponse converte a conta para a projeção da API
func (a *Account) ToResponse() *AccountResponse {
	return &AccountResponse{
		ID:         a.ID,
		Platform:   a.Platform,
		ExternalID: a.ExternalID,
		Name:       a.Name,
		Health:     a.Health,
		LastSyncAt: a.LastSyncAt,
	}
}
