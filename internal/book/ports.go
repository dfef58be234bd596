package book

import (
	"context"

	"bookdesk/internal/entity"
	"bookdesk/internal/search"
	"bookdesk/internal/state"
)

// Catalog is the read and write surface of the book store that front ends
// depend on.
type Catalog interface {
	FetchAll(ctx context.Context) state.Result[[]Book]
	FetchByID(ctx context.Context, id entity.ID) state.Result[Book]
	Create(ctx context.Context, b Book) state.Result[Book]
	Update(ctx context.Context, id entity.ID, b Book) state.Result[Book]
	Delete(ctx context.Context, id entity.ID) state.Result[entity.ID]
	Books() []Book
	Search(query string, field search.Field) []Book
}

var _ Catalog = (*Store)(nil)
