package book

import (
	"bookdesk/internal/search"
)

const (
	FieldAuthor   search.Field = "author"
	FieldTitle    search.Field = "title"
	FieldStatus   search.Field = "status"
	FieldYear     search.Field = "year"
	FieldCodeBook search.Field = "codeBook"
)

// Fields lists the fields a book search may target.
var Fields = []search.Field{search.FieldAll, FieldAuthor, FieldTitle, FieldStatus, FieldYear, FieldCodeBook}

// Match reports whether b matches the normalized query on field.
func Match(b Book, field search.Field, q string) bool {
	switch field {
	case FieldAuthor:
		return search.Contains(b.Author, q)
	case FieldTitle:
		return search.Contains(b.Title, q)
	case FieldStatus:
		return search.Contains(string(b.Status), q)
	case FieldYear:
		return search.Contains(b.Year.String(), q)
	case FieldCodeBook:
		return search.Contains(b.CodeBook, q)
	case search.FieldAll:
		return search.Contains(b.Author, q) ||
			search.Contains(b.Title, q) ||
			search.Contains(string(b.Status), q) ||
			search.Contains(b.Year.String(), q) ||
			search.Contains(b.CodeBook, q)
	}
	return false
}
