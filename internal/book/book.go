package book

import (
	"errors"
	"fmt"
	"strings"

	"bookdesk/internal/entity"
	"bookdesk/internal/state"
	"bookdesk/internal/validate"
)

// ErrNotFound is returned when a book is not in the local collection.
var ErrNotFound = errors.New("book not found")

type Status string

const (
	StatusAvailable Status = "Available"
	StatusBorrowed  Status = "Borrowed"
	StatusReserved  Status = "Reserved"
)

var Statuses = []Status{StatusAvailable, StatusBorrowed, StatusReserved}

// Book is one catalog entry as stored by the backend.
type Book struct {
	ID          entity.ID  `json:"id,omitempty"`
	Author      string     `json:"author" validate:"notblank"`
	Title       string     `json:"title" validate:"notblank"`
	Description string     `json:"description" validate:"notblank"`
	Year        entity.Int `json:"year" validate:"gt=0"`
	CoverBook   string     `json:"coverBook" validate:"notblank"`
	CodeBook    string     `json:"codeBook" validate:"notblank,max=3"`
	ISBN        string     `json:"isbn,omitempty" validate:"omitempty,isbn"`
	Price       *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Genre       string     `json:"genre,omitempty"`
	Status      Status     `json:"status" validate:"omitempty,oneof=Available Borrowed Reserved"`
}

// Prepare normalizes b for submission and validates it. Validation failures
// wrap state.ErrInvalid and a validate.Errors listing each field.
func Prepare(b *Book) error {
	b.Author = strings.TrimSpace(b.Author)
	b.Title = strings.TrimSpace(b.Title)
	b.CodeBook = strings.TrimSpace(b.CodeBook)
	b.ISBN = strings.TrimSpace(b.ISBN)
	if b.Status == "" {
		b.Status = StatusAvailable
	}

	if errs := validate.Struct(b); errs != nil {
		return fmt.Errorf("%w: %w", state.ErrInvalid, errs)
	}
	return nil
}
