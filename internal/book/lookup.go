package book

import (
	"strings"

	"bookdesk/internal/entity"
	"bookdesk/internal/platform/openlibrary"
)

// FillFrom copies edition metadata into the fields of b that are still
// empty. Fields the user already set are left alone.
func FillFrom(b *Book, e openlibrary.Edition) {
	if strings.TrimSpace(b.Title) == "" {
		b.Title = e.Title
		if e.Subtitle != "" {
			b.Title += ": " + e.Subtitle
		}
	}
	if strings.TrimSpace(b.Author) == "" {
		b.Author = e.AuthorNames()
	}
	if b.Year == 0 {
		if y, ok := e.Year(); ok {
			b.Year = entity.Int(y)
		}
	}
	if strings.TrimSpace(b.CoverBook) == "" {
		b.CoverBook = e.CoverURL()
	}
	if strings.TrimSpace(b.Description) == "" {
		b.Description = e.Notes
	}
	if strings.TrimSpace(b.Genre) == "" {
		b.Genre = e.Genre()
	}
}
