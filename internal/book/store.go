package book

import (
	"bookdesk/internal/entity"
	"bookdesk/internal/record"
	"bookdesk/internal/search"
)

const (
	Resource = "books"
	// HintKey is where the id of the last created book is remembered.
	HintKey = "lastIdBook"
)

// Store is the client-side book collection. It mirrors /books and only
// changes after the server confirms a request.
type Store struct {
	*record.Store[Book]
}

func NewStore(api record.Gateway, opts ...record.Option) *Store {
	spec := record.Spec[Book]{
		Resource: Resource,
		Noun:     "book",
		HintKey:  HintKey,
		IDOf:     func(b Book) entity.ID { return b.ID },
		SetID:    func(b *Book, id entity.ID) { b.ID = id },
		Prepare:  Prepare,
	}
	return &Store{record.NewStore(api, spec, opts...)}
}

// Books returns a copy of the collection in server order.
func (s *Store) Books() []Book { return s.Items() }

// Search filters the current collection.
func (s *Store) Search(query string, field search.Field) []Book {
	return search.Filter(s.Items(), query, field, Match)
}
