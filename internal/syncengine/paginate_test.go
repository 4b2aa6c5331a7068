package syncengine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newImmediateFetcher(maxAttempts int) *PaginatedFetcher {
	guard := NewRateLimitGuard(maxAttempts, 1*time.Second)
	guard.sleep = func(ctx context.Context, d time.Duration) error {
		return nil
	}
	return NewPaginatedFetcher(guard)
}

// makePage gera uma página determinística de registros sequenciais
func makePage(start, size int, nextCursor string) *Page {
	records := make([]RawRecord, 0, size)
	for i := 0; i < size; i++ {
		records = append(records, RawRecord{
			FieldExternalID: fmt.Sprintf("c_%d", start+i),
		})
	}
	return &Page{Records: records, NextCursor: nextCursor}
}

func TestFetchAll(t *testing.T) {
	t.Run("Deve retornar os registros de uma única página", func(t *testing.T) {
		fetcher := newImmediateFetcher(3)

		records, err := fetcher.FetchAll(context.Background(), func(ctx context.Context, cursor string) (*Page, error) {
			assert.Empty(t, cursor)
			return makePage(0, 5, ""), nil
		})

		assert.NoError(t, err)
		assert.Len(t, records, 5)
	})

	t.Run("Deve seguir os cursores até a exaustão preservando a ordem", func(t *testing.T) {
		fetcher := newImmediateFetcher(3)

		pages := map[string]*Page{
			"":       makePage(0, 50, "page_1"),
			"page_1": makePage(50, 50, "page_2"),
			"page_2": makePage(100, 50, ""),
		}

		var cursors []string
		records, err := fetcher.FetchAll(context.Background(), func(ctx context.Context, cursor string) (*Page, error) {
			cursors = append(cursors, cursor)
			return pages[cursor], nil
		})

		assert.NoError(t, err)
		assert.Len(t, records, 150)
		assert.Equal(t, []string{"", "page_1", "page_2"}, cursors)

		// A ordem de retorno da plataforma é preservada entre páginas
		assert.Equal(t, "c_0", records[0].String(FieldExternalID))
		assert.Equal(t, "c_50", records[50].String(FieldExternalID))
		assert.Equal(t, "c_149", records[149].String(FieldExternalID))
	})

	t.Run("Deve propagar a falha de uma página intermediária", func(t *testing.T) {
		fetcher := newImmediateFetcher(1)

		calls := 0
		records, err := fetcher.FetchAll(context.Background(), func(ctx context.Context, cursor string) (*Page, error) {
			calls++
			if cursor == "" {
				return makePage(0, 50, "page_1"), nil
			}
			return nil, NewRateLimitedError("429", "too many requests", 0)
		})

		assert.Nil(t, records)
		assert.True(t, IsRateLimited(err))
		assert.Equal(t, 2, calls)
	})

	t.Run("Cada página tem orçamento de retentativa próprio", func(t *testing.T) {
		fetcher := newImmediateFetcher(2)

		// Cada página falha uma vez antes de responder: com orçamento por
		// página, todas completam
		failures := map[string]bool{}
		records, err := fetcher.FetchAll(context.Background(), func(ctx context.Context, cursor string) (*Page, error) {
			if !failures[cursor] {
				failures[cursor] = true
				return nil, NewRateLimitedError("429", "too many requests", 0)
			}

			switch cursor {
			case "":
				return makePage(0, 10, "page_1"), nil
			case "page_1":
				return makePage(10, 10, ""), nil
			}
			return nil, NewOtherAPIError("", "unexpected cursor")
		})

		assert.NoError(t, err)
		assert.Len(t, records, 20)
	})

	t.Run("Deve encerrar quando o adapter devolve página nula", func(t *testing.T) {
		fetcher := newImmediateFetcher(3)

		records, err := fetcher.FetchAll(context.Background(), func(ctx context.Context, cursor string) (*Page, error) {
			return nil, nil
		})

		assert.NoError(t, err)
		assert.Empty(t, records)
	})
}
