package syncengine

import (
	"context"
)

// PageFunc busca uma página de um endpoint; o cursor vem da página anterior
// (vazio na primeira chamada)
type PageFunc func(ctx context.Context, cursor string) (*Page, error)

// PaginatedFetcher monta o resultado lógico completo de um endpoint através
// de quantas páginas a plataforma retornar. Cada página passa pelo
// RateLimitGuard de forma independente: a paginação não acumula nem
// reinicia orçamento de retentativa entre páginas.
type PaginatedFetcher struct {
	guard *RateLimitGuard
}

func NewPaginatedFetcher(guard *RateLimitGuard) *PaginatedFetcher {
	return &PaginatedFetcher{guard: guard}
}

// FetchAll segue os cursores de continuação até a exaustão, preservando a
// ordem de retorno da plataforma. Nenhuma deduplicação acontece aqui: isso
// é papel do reconciliador, via upsert por identidade.
func (f *PaginatedFetcher) FetchAll(ctx context.Context, fetchPage PageFunc) ([]RawRecord, error) {
	var records []RawRecord

	cursor := ""

	for {
		page, err := f.guard.Execute(ctx, func(ctx context.Context) (*Page, error) {
			return fetchPage(ctx, cursor)
		})
		if err != nil {
			return nil, err
		}

		if page == nil {
			break
		}

		records = append(records, page.Records...)

		if page.NextCursor == "" {
			break
		}

		cursor = page.NextCursor
	}

	return records, nil
}
