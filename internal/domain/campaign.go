package domain

import "time"

// Campaign é o contêiner de gasto de topo da hierarquia unificada.
// (AccountID, ExternalID) é único.
type Campaign struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	ExternalID  string          `json:"external_id"`
	Name        string          `json:"name"`
	Status      CanonicalStatus `json:"status"`
	BudgetCents *int64          `json:"budget_cents"`
	StartDate   *time.Time      `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AdGroup é o nível intermediário: "ad set" no Meta, "ad group" no Google,
// "adgroup" no TikTok. (CampaignID, ExternalID) é único.
type AdGroup struct {
	ID         string          `json:"id"`
	CampaignID string          `json:"campaign_id"`
	ExternalID string          `json:"external_id"`
	Name       string          `json:"name"`
	Status     CanonicalStatus `json:"status"`
	StartDate  *time.Time      `json:"start_date"`
	EndDate    *time.Time      `json:"end_date"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Ad é a unidade veiculável. Cobre também objetos "creative" de plataformas
// que mapeiam 1:1 para uma unidade veiculável. (AdGroupID, ExternalID) é único.
type Ad struct {
	ID          string          `json:"id"`
	AdGroupID   string          `json:"ad_group_id"`
	ExternalID  string          `json:"external_id"`
	Name        string          `json:"name"`
	Status      CanonicalStatus `json:"status"`
	CreativeRef *string         `json:"creative_ref"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
