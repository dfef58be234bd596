package loan

import (
	"bookdesk/internal/entity"
	"bookdesk/internal/record"
	"bookdesk/internal/search"
)

const (
	Resource = "users"
	HintKey  = "lastIdUserBorrow"
)

// Store is the client-side loan collection backed by /users.
type Store struct {
	*record.Store[LoanRecord]
}

func NewStore(api record.Gateway, opts ...record.Option) *Store {
	spec := record.Spec[LoanRecord]{
		Resource: Resource,
		Noun:     "loan",
		HintKey:  HintKey,
		IDOf:     func(r LoanRecord) entity.ID { return r.ID },
		SetID:    func(r *LoanRecord, id entity.ID) { r.ID = id },
		Prepare:  Prepare,
	}
	return &Store{record.NewStore(api, spec, opts...)}
}

func (s *Store) Loans() []LoanRecord { return s.Items() }

func (s *Store) Search(query string, field search.Field) []LoanRecord {
	return search.Filter(s.Items(), query, field, Match)
}

// Borrowed returns the loans that include the given book code and are not
// yet returned.
func (s *Store) Borrowed(code string) []LoanRecord {
	var out []LoanRecord
	for _, r := range s.Items() {
		if r.Status == StatusReturned {
			continue
		}
		for _, c := range r.CodeBook {
			if c == code {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
