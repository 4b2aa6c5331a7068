// Package fake gera páginas determinísticas de dados de plataforma para
// desenvolvimento local sem credenciais reais. Os mesmos cursores sempre
// devolvem as mesmas páginas, então ciclos repetidos de sync são idempotentes
// de ponta a ponta.
package fake

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfg2006/adsync-engine/internal/syncengine"
)

const (
	campaignPages = 3
	pageSize      = 50
	adGroupCount  = 60
	adCount       = 60
	metricAdCount = 10
)

// Generator produz as páginas fake. O vocabulário de status é o da
// plataforma que o adapter representa, para exercitar a normalização real.
type Generator struct {
	statuses []string
}

func NewGenerator(statuses ...string) *Generator {
	if len(statuses) == 0 {
		statuses = []string{"ACTIVE", "PAUSED"}
	}
	return &Generator{statuses: statuses}
}

func (g *Generator) status(n int) string {
	return g.statuses[n%len(g.statuses)]
}

func parseCursor(cursor string) (int, error) {
	if cursor == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(strings.TrimPrefix(cursor, "page_"))
	if err != nil {
		return 0, fmt.Errorf("invalid cursor: %q", cursor)
	}

	return page, nil
}

// Campaigns devolve três páginas de cinquenta campanhas
func (g *Generator) Campaigns(cursor string) (*syncengine.Page, error) {
	page, err := parseCursor(cursor)
	if err != nil {
		return nil, err
	}

	if page > campaignPages {
		return &syncengine.Page{}, nil
	}

	records := make([]syncengine.RawRecord, 0, pageSize)
	for i := 0; i < pageSize; i++ {
		n := (page-1)*pageSize + i + 1
		records = append(records, syncengine.RawRecord{
			syncengine.FieldExternalID:  fmt.Sprintf("c_%d", n),
			syncengine.FieldName:        fmt.Sprintf("Campanha %d", n),
			syncengine.FieldStatus:      g.status(n),
			syncengine.FieldBudgetCents: int64(1000 * (n%10 + 1)),
		})
	}

	next := ""
	if page < campaignPages {
		next = fmt.Sprintf("page_%d", page+1)
	}

	return &syncengine.Page{Records: records, NextCursor: next}, nil
}

// AdGroups devolve uma página de grupos, um por campanha das primeiras sessenta
func (g *Generator) AdGroups(cursor string) (*syncengine.Page, error) {
	if _, err := parseCursor(cursor); err != nil {
		return nil, err
	}
	if cursor != "" {
		return &syncengine.Page{}, nil
	}

	records := make([]syncengine.RawRecord, 0, adGroupCount)
	for n := 1; n <= adGroupCount; n++ {
		records = append(records, syncengine.RawRecord{
			syncengine.FieldExternalID: fmt.Sprintf("g_%d", n),
			syncengine.FieldParentID:   fmt.Sprintf("c_%d", n),
			syncengine.FieldName:       fmt.Sprintf("Grupo %d", n),
			syncengine.FieldStatus:     g.status(n),
		})
	}

	return &syncengine.Page{Records: records}, nil
}

// Ads devolve uma página de anúncios, um por grupo
func (g *Generator) Ads(cursor string) (*syncengine.Page, error) {
	if _, err := parseCursor(cursor); err != nil {
		return nil, err
	}
	if cursor != "" {
		return &syncengine.Page{}, nil
	}

	records := make([]syncengine.RawRecord, 0, adCount)
	for n := 1; n <= adCount; n++ {
		records = append(records, syncengine.RawRecord{
			syncengine.FieldExternalID:  fmt.Sprintf("a_%d", n),
			syncengine.FieldParentID:    fmt.Sprintf("g_%d", n),
			syncengine.FieldName:        fmt.Sprintf("Anúncio %d", n),
			syncengine.FieldStatus:      g.status(n),
			syncengine.FieldCreativeRef: fmt.Sprintf("creative_%d", n),
		})
	}

	return &syncengine.Page{Records: records}, nil
}

// Metrics devolve uma página de métricas diárias para os primeiros anúncios,
// uma linha por anúncio por dia da janela
func (g *Generator) Metrics(window syncengine.DateRange, cursor string) (*syncengine.Page, error) {
	if _, err := parseCursor(cursor); err != nil {
		return nil, err
	}
	if cursor != "" {
		return &syncengine.Page{}, nil
	}

	var records []syncengine.RawRecord

	for day := window.Since; !day.After(window.Until); day = day.AddDate(0, 0, 1) {
		for n := 1; n <= metricAdCount; n++ {
			seed := n + day.Day()
			records = append(records, syncengine.RawRecord{
				syncengine.FieldExternalID:   fmt.Sprintf("a_%d", n),
				syncengine.FieldDate:         day,
				syncengine.FieldImpressions:  int64(1000 + 37*seed),
				syncengine.FieldClicks:       int64(seed % 50),
				syncengine.FieldSpendCents:   int64(500 * seed),
				syncengine.FieldConversions:  int64(seed % 7),
				syncengine.FieldRevenueCents: int64(900 * seed),
			})
		}
	}

	return &syncengine.Page{Records: records}, nil
}
