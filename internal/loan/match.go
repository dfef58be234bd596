package loan

import (
	"bookdesk/internal/search"
)

const (
	FieldName     search.Field = "name"
	FieldStatus   search.Field = "status"
	FieldCodeBook search.Field = "codeBook"
	FieldGender   search.Field = "gender"
	FieldContact  search.Field = "contact"
)

var Fields = []search.Field{search.FieldAll, FieldName, FieldStatus, FieldCodeBook, FieldGender, FieldContact}

func matchCodes(codes []string, q string) bool {
	for _, c := range codes {
		if search.Contains(c, q) {
			return true
		}
	}
	return false
}

// Match reports whether r matches the normalized query on field.
func Match(r LoanRecord, field search.Field, q string) bool {
	switch field {
	case FieldName:
		return search.Contains(r.Name, q)
	case FieldStatus:
		return search.Contains(string(r.Status), q)
	case FieldCodeBook:
		return matchCodes(r.CodeBook, q)
	case FieldGender:
		return search.Contains(r.Gender, q)
	case FieldContact:
		return search.Contains(r.Contact, q)
	case search.FieldAll:
		return search.Contains(r.Name, q) ||
			search.Contains(string(r.Status), q) ||
			matchCodes(r.CodeBook, q) ||
			search.Contains(r.Gender, q) ||
			search.Contains(r.Contact, q)
	}
	return false
}
