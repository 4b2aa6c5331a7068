package domain

import (
	"time"

	"github.com/vfg2006/adsync-engine/pkg/utils"
)

// MetricRecord é uma linha de métricas diárias por anúncio.
// (AdID, Date) é único; um re-sync sempre sobrescreve a linha inteira,
// nunca duplica: o valor mais recente da plataforma para a data vence.
type MetricRecord struct {
	ID           string    `json:"id"`
	AdID         string    `json:"ad_id"`
	Date         time.Time `json:"date"`
	Impressions  int64     `json:"impressions"`
	Clicks       int64     `json:"clicks"`
	SpendCents   int64     `json:"spend_cents"`
	Conversions  int64     `json:"conversions"`
	RevenueCents int64     `json:"revenue_cents"`
	CTR          float64   `json:"ctr"`
	CPA          float64   `json:"cpa"`
	ROAS         float64   `json:"roas"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MetricsSummary agrega os contadores de um conjunto de métricas diárias
type MetricsSummary struct {
	Impressions  int64 `json:"impressions"`
	Clicks       int64 `json:"clicks"`
	SpendCents   int64 `json:"spend_cents"`
	Conversions  int64 `json:"conversions"`
	RevenueCents int64 `json:"revenue_cents"`
}

// AccountMetricsResponse é a resposta da consulta de métricas de uma conta
type AccountMetricsResponse struct {
	AccountID string          `json:"account_id"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Summary   MetricsSummary  `json:"summary"`
	Records   []*MetricRecord `json:"records"`
}

// ComputeDerived calcula as razões derivadas (CTR, CPA, ROAS) a partir dos
// contadores brutos. Este é o único ponto do sistema que calcula as razões:
// a API serve os valores armazenados sem recalcular.
func (m *MetricRecord) ComputeDerived() {
	m.CTR = 0
	m.CPA = 0
	m.ROAS = 0

	if m.Impressions > 0 {
		m.CTR = utils.RoundWithTwoDecimalPlace(float64(m.Clicks) / float64(m.Impressions) * 100)
	}

	if m.Conversions > 0 {
		m.CPA = utils.RoundWithTwoDecimalPlace(float64(m.SpendCents) / 100 / float64(m.Conversions))
	}

	if m.SpendCents > 0 {
		m.ROAS = utils.RoundWithTwoDecimalPlace(float64(m.RevenueCents) / float64(m.SpendCents))
	}
}
