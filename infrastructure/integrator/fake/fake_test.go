package fake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-engine/internal/syncengine"
)

func TestCampaigns(t *testing.T) {
	t.Run("Deve devolver três páginas de cinquenta campanhas", func(t *testing.T) {
		generator := NewGenerator("ACTIVE", "PAUSED")

		var records []syncengine.RawRecord
		cursor := ""
		pages := 0

		for {
			page, err := generator.Campaigns(cursor)
			require.NoError(t, err)

			pages++
			records = append(records, page.Records...)

			if page.NextCursor == "" {
				break
			}
			cursor = page.NextCursor
		}

		assert.Equal(t, 3, pages)
		assert.Len(t, records, 150)
		assert.Equal(t, "c_1", records[0].String(syncengine.FieldExternalID))
		assert.Equal(t, "c_150", records[149].String(syncengine.FieldExternalID))
	})

	t.Run("O mesmo cursor deve devolver sempre a mesma página", func(t *testing.T) {
		generator := NewGenerator("ACTIVE", "PAUSED")

		first, err := generator.Campaigns("page_2")
		require.NoError(t, err)
		second, err := generator.Campaigns("page_2")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Deve rejeitar cursor malformado", func(t *testing.T) {
		generator := NewGenerator()

		_, err := generator.Campaigns("not_a_cursor")
		assert.Error(t, err)
	})
}

func TestAdGroupsReferenceExistingCampaigns(t *testing.T) {
	generator := NewGenerator("ACTIVE", "PAUSED")

	page, err := generator.AdGroups("")
	require.NoError(t, err)
	require.NotEmpty(t, page.Records)

	// Todo grupo gerado aponta para uma campanha do conjunto gerado
	for _, record := range page.Records {
		parent := record.String(syncengine.FieldParentID)
		assert.Regexp(t, `^c_\d+$`, parent)
	}
}

func TestMetricsCoverTheWholeWindow(t *testing.T) {
	generator := NewGenerator("ACTIVE")

	window := syncengine.DateRange{
		Since: time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
	}

	page, err := generator.Metrics(window, "")
	require.NoError(t, err)

	// Uma linha por anúncio por dia da janela de sete dias
	assert.Len(t, page.Records, 7*metricAdCount)

	days := make(map[string]bool)
	for _, record := range page.Records {
		date, ok := record.Time(syncengine.FieldDate)
		require.True(t, ok)
		days[date.Format(time.DateOnly)] = true
	}
	assert.Len(t, days, 7)
}

func TestStatusVocabularyRoundRobin(t *testing.T) {
	generator := NewGenerator("ACTIVE", "PAUSED", "PENDING_REVIEW")

	page, err := generator.Campaigns("")
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, record := range page.Records {
		seen[record.String(syncengine.FieldStatus)] = true
	}

	// O vocabulário configurado inteiro aparece nos dados gerados
	assert.True(t, seen["ACTIVE"])
	assert.True(t, seen["PAUSED"])
	assert.True(t, seen["PENDING_REVIEW"])
}
