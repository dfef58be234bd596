// Package loan keeps the client-side record of who borrowed which books.
// Loan records live under the backend's /users resource.
package loan

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bookdesk/internal/entity"
	"bookdesk/internal/state"
	"bookdesk/internal/validate"
)

type Status string

const (
	StatusReserved    Status = "reserved"
	StatusReturned    Status = "returned"
	StatusNotReturned Status = "not yet returned"
)

var Statuses = []Status{StatusReserved, StatusReturned, StatusNotReturned}

// LoanRecord is one borrowing: a borrower and the codes of the books taken.
type LoanRecord struct {
	ID          entity.ID  `json:"id,omitempty"`
	Name        string     `json:"name" validate:"notblank"`
	Gender      string     `json:"gender" validate:"notblank"`
	CodeBook    []string   `json:"codeBook" validate:"somecode"`
	LendingDate string     `json:"lendingDate" validate:"notblank"`
	ReturnDate  string     `json:"returnDate" validate:"notblank"`
	TotalBooks  int        `json:"totalBooks"`
	Status      Status     `json:"status" validate:"omitempty,oneof=reserved returned 'not yet returned'"`
	Contact     string     `json:"contact" validate:"notblank"`
	TotalDays   entity.Int `json:"totalDays,omitempty"`
}

// UnmarshalJSON also accepts the older form fields loanDate and totalItem and
// the "notreturned" status spelling.
func (r *LoanRecord) UnmarshalJSON(b []byte) error {
	type plain LoanRecord
	var aux struct {
		plain
		LoanDate  string      `json:"loanDate"`
		TotalItem *entity.Int `json:"totalItem"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = LoanRecord(aux.plain)
	if r.LendingDate == "" {
		r.LendingDate = aux.LoanDate
	}
	if r.TotalBooks == 0 && aux.TotalItem != nil {
		r.TotalBooks = int(*aux.TotalItem)
	}
	r.Status = normalizeStatus(r.Status)
	return nil
}

// normalizeStatus maps the spellings older borrow forms stored onto Statuses.
func normalizeStatus(s Status) Status {
	switch strings.ToLower(strings.Join(strings.Fields(string(s)), "")) {
	case "notreturned", "notyetreturned":
		return StatusNotReturned
	case "returned":
		return StatusReturned
	case "reserved":
		return StatusReserved
	}
	return s
}

// CountCodes returns the number of distinct non-empty codes.
func CountCodes(codes []string) int {
	return len(normalizeCodes(codes))
}

func normalizeCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Prepare normalizes r for submission: codes are deduplicated, TotalBooks is
// recomputed from them and an empty status becomes StatusNotReturned.
func Prepare(r *LoanRecord) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Gender = strings.TrimSpace(r.Gender)
	r.Contact = strings.TrimSpace(r.Contact)
	r.CodeBook = normalizeCodes(r.CodeBook)
	r.TotalBooks = len(r.CodeBook)
	if r.Status == "" {
		r.Status = StatusNotReturned
	}

	errs := validate.Struct(r)
	if lent, ok := ParseDate(r.LendingDate); ok {
		if due, ok := ParseDate(r.ReturnDate); ok {
			errs = validate.Check(errs, !due.Before(lent), "returnDate", "returnDate cannot be before lendingDate")
		}
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", state.ErrInvalid, errs)
	}
	return nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate reads the date formats the lending forms have produced.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Overdue reports whether an unreturned loan is past its return date.
func (r LoanRecord) Overdue(now time.Time) bool {
	if r.Status == StatusReturned {
		return false
	}
	due, ok := ParseDate(r.ReturnDate)
	if !ok {
		return false
	}
	return now.After(due.AddDate(0, 0, 1))
}

// StatusLabel is the badge text shown for a loan.
func StatusLabel(r LoanRecord, now time.Time) string {
	switch {
	case r.Status == StatusReturned:
		return "Returned"
	case r.Overdue(now):
		return "Overdue"
	case r.Status == StatusReserved:
		return "Reserved"
	default:
		return "Not Returned"
	}
}
