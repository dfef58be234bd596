package book

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookdesk/internal/search"
	"bookdesk/internal/state"
	"bookdesk/internal/testutil"
	"bookdesk/internal/validate"
)

func TestPrepare(t *testing.T) {
	tests := []struct {
		name       string
		edit       func(b *Book)
		wantFields []string
	}{
		{name: "valid", edit: func(b *Book) {}},
		{name: "valid isbn13 with dashes", edit: func(b *Book) { b.ISBN = "978-0-441-01359-3" }},
		{name: "missing author", edit: func(b *Book) { b.Author = "" }, wantFields: []string{"author"}},
		{name: "code too long", edit: func(b *Book) { b.CodeBook = "ABCD" }, wantFields: []string{"codeBook"}},
		{name: "zero year", edit: func(b *Book) { b.Year = 0 }, wantFields: []string{"year"}},
		{name: "bad isbn", edit: func(b *Book) { b.ISBN = "12345" }, wantFields: []string{"isbn"}},
		{name: "negative price", edit: func(b *Book) { b.Price = testutil.Float(-1) }, wantFields: []string{"price"}},
		{name: "unknown status", edit: func(b *Book) { b.Status = "Lost" }, wantFields: []string{"status"}},
		{
			name:       "several fields",
			edit:       func(b *Book) { b.Title = ""; b.Description = ""; b.CoverBook = "" },
			wantFields: []string{"title", "description", "coverBook"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := dune()
			tt.edit(&b)
			err := Prepare(&b)

			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, state.ErrInvalid))

			var errs validate.Errors
			require.ErrorAs(t, err, &errs)
			var fields []string
			for _, fe := range errs {
				fields = append(fields, fe.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

func TestPrepare_DefaultsStatus(t *testing.T) {
	b := dune()
	require.NoError(t, Prepare(&b))
	assert.Equal(t, StatusAvailable, b.Status)

	b.Status = StatusBorrowed
	require.NoError(t, Prepare(&b))
	assert.Equal(t, StatusBorrowed, b.Status)
}

func TestBook_JSON(t *testing.T) {
	var b Book
	err := json.Unmarshal([]byte(`{"id":"5","title":"Emma","year":"1815","price":12.5,"status":"Borrowed"}`), &b)
	require.NoError(t, err)
	assert.Equal(t, "5", b.ID.String())
	assert.Equal(t, 1815, int(b.Year))
	require.NotNil(t, b.Price)
	assert.Equal(t, 12.5, *b.Price)

	out, err := json.Marshal(Book{Title: "Dune", Year: 1965})
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"id"`)
	assert.NotContains(t, string(out), `"price"`)

	out, err = json.Marshal(Book{ID: "12", Title: "Dune"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":12`)
}

func TestMatch(t *testing.T) {
	b := Book{Author: "Frank Herbert", Title: "Dune", Status: StatusAvailable, Year: 1965, CodeBook: "D01"}

	tests := []struct {
		field search.Field
		query string
		want  bool
	}{
		{FieldAuthor, "herbert", true},
		{FieldAuthor, "dune", false},
		{FieldTitle, "dun", true},
		{FieldStatus, "avail", true},
		{FieldYear, "196", true},
		{FieldYear, "2001", false},
		{FieldCodeBook, "d01", true},
		{search.FieldAll, "d01", true},
		{search.FieldAll, "1965", true},
		{search.FieldAll, "tolkien", false},
		{"genre", "dune", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.field)+"/"+tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(b, tt.field, tt.query))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "IDR 150.000", FormatAmount(150000))
	assert.Equal(t, "IDR 1.234.567", FormatAmount(1234567))
	assert.Equal(t, "IDR 0", FormatAmount(0))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatPrice(testutil.Float(1234.5)))
	assert.Equal(t, "$9.99", FormatPrice(testutil.Float(9.99)))
	assert.Equal(t, "-$5.00", FormatPrice(testutil.Float(-5)))
	assert.Equal(t, "$0.00", FormatPrice(nil))
	assert.Equal(t, "$0.00", FormatPrice(testutil.Float(math.NaN())))
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, "green", StyleFor(StatusAvailable).Color)
	assert.Equal(t, "yellow", StyleFor(StatusBorrowed).Color)
	assert.Equal(t, "red", StyleFor(StatusReserved).Color)
	assert.Equal(t, StatusStyle{Label: "Unknown", Color: "gray"}, StyleFor("Lost"))
}
