package loan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookdesk/internal/book"
	"bookdesk/internal/state"
	"bookdesk/internal/validate"
)

func sampleCatalog() []book.Book {
	return []book.Book{
		{Title: "Dune", CodeBook: "D01", Status: book.StatusAvailable},
		{Title: "Emma", CodeBook: "E01", Status: book.StatusBorrowed},
		{Title: "Dracula", CodeBook: "B03", Status: book.StatusReserved},
	}
}

func TestCheckCodes(t *testing.T) {
	tests := []struct {
		name    string
		codes   []string
		held    []string
		wantErr string
	}{
		{name: "available book", codes: []string{"D01"}},
		{name: "duplicates and blanks ignored", codes: []string{" D01", "", "D01"}},
		{name: "unknown code", codes: []string{"ZZZ"}, wantErr: "no book with code ZZZ"},
		{name: "borrowed book", codes: []string{"D01", "E01"}, wantErr: "E01 (Emma) is Borrowed"},
		{name: "reserved book", codes: []string{"B03"}, wantErr: "B03 (Dracula) is Reserved"},
		{name: "held codes stay valid", codes: []string{"E01", "B03", "D01"}, held: []string{"E01", "B03"}},
		{name: "held does not excuse unknown", codes: []string{"ZZZ"}, held: []string{"ZZZ"}, wantErr: "no book with code ZZZ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCodes(tt.codes, sampleCatalog(), tt.held...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, state.ErrInvalid)
			var fields validate.Errors
			require.True(t, errors.As(err, &fields))
			assert.Equal(t, "codeBook", fields[0].Field)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
