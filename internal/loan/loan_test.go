package loan

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookdesk/internal/search"
	"bookdesk/internal/state"
	"bookdesk/internal/validate"
)

func sampleLoan() LoanRecord {
	return LoanRecord{
		Name:        "Ana",
		Gender:      "Female",
		CodeBook:    []string{"D01", "D02"},
		LendingDate: "2024-03-01",
		ReturnDate:  "2024-03-08",
		Contact:     "0811",
	}
}

func TestCountCodes(t *testing.T) {
	assert.Equal(t, 2, CountCodes([]string{"D01", "D02"}))
	assert.Equal(t, 2, CountCodes([]string{"D01", "", " D02 ", "D01"}))
	assert.Equal(t, 0, CountCodes(nil))
	assert.Equal(t, 0, CountCodes([]string{"", "  "}))
}

func TestPrepare_RecomputesTotalBooks(t *testing.T) {
	r := sampleLoan()
	r.TotalBooks = 99

	require.NoError(t, Prepare(&r))
	assert.Equal(t, 2, r.TotalBooks)
	assert.Equal(t, StatusNotReturned, r.Status)

	r.CodeBook = []string{"D01", "", "D01", "E07"}
	require.NoError(t, Prepare(&r))
	assert.Equal(t, []string{"D01", "E07"}, r.CodeBook)
	assert.Equal(t, 2, r.TotalBooks)
}

func TestPrepare_Validation(t *testing.T) {
	tests := []struct {
		name       string
		edit       func(r *LoanRecord)
		wantFields []string
	}{
		{name: "only empty codes", edit: func(r *LoanRecord) { r.CodeBook = []string{"", " "} }, wantFields: []string{"codeBook"}},
		{name: "no codes", edit: func(r *LoanRecord) { r.CodeBook = nil }, wantFields: []string{"codeBook"}},
		{name: "missing name and contact", edit: func(r *LoanRecord) { r.Name = ""; r.Contact = " " }, wantFields: []string{"name", "contact"}},
		{name: "missing dates", edit: func(r *LoanRecord) { r.LendingDate = ""; r.ReturnDate = "" }, wantFields: []string{"lendingDate", "returnDate"}},
		{name: "unknown status", edit: func(r *LoanRecord) { r.Status = "lost" }, wantFields: []string{"status"}},
		{name: "return before lending", edit: func(r *LoanRecord) { r.ReturnDate = "2024-02-20" }, wantFields: []string{"returnDate"}},
		{name: "iso timestamps", edit: func(r *LoanRecord) {
			r.LendingDate = "2024-03-01T10:00:00.000Z"
			r.ReturnDate = "2024-03-02T10:00:00.000Z"
		}},
		{name: "multi word status", edit: func(r *LoanRecord) { r.Status = StatusNotReturned }},
		{name: "reserved", edit: func(r *LoanRecord) { r.Status = StatusReserved }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sampleLoan()
			tt.edit(&r)
			err := Prepare(&r)
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

func TestLoanRecord_LegacyFields(t *testing.T) {
	var r LoanRecord
	err := json.Unmarshal([]byte(`{
		"id": 4, "name": "Budi", "codeBook": ["E01", "B03"],
		"loanDate": "2024-02-01", "returnDate": "2024-02-08", "totalItem": 2,
		"status": "not yet returned"
	}`), &r)
	require.NoError(t, err)

	assert.Equal(t, "4", r.ID.String())
	assert.Equal(t, "2024-02-01", r.LendingDate)
	assert.Equal(t, 2, r.TotalBooks)
	assert.Equal(t, StatusNotReturned, r.Status)

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"lendingDate":"2024-02-01"`)
	assert.NotContains(t, string(out), "loanDate")
}

func TestLoanRecord_LegacyStatusSpelling(t *testing.T) {
	for in, want := range map[string]Status{
		"notreturned":      StatusNotReturned,
		"Not Returned":     StatusNotReturned,
		"not yet returned": StatusNotReturned,
		"Returned":         StatusReturned,
		"reserved":         StatusReserved,
	} {
		var r LoanRecord
		require.NoError(t, json.Unmarshal([]byte(`{"status":"`+in+`"}`), &r))
		assert.Equal(t, want, r.Status, in)
	}

	r := sampleLoan()
	raw, err := json.Marshal(r)
	require.NoError(t, err)
	raw = []byte(strings.Replace(string(raw), `"status":""`, `"status":"notreturned"`, 1))
	var decoded LoanRecord
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NoError(t, Prepare(&decoded))
	assert.Equal(t, StatusNotReturned, decoded.Status)
}

func TestLoanRecord_CurrentFieldsWin(t *testing.T) {
	var r LoanRecord
	err := json.Unmarshal([]byte(`{"lendingDate": "2024-05-01", "loanDate": "2020-01-01", "totalBooks": 3, "totalItem": 1}`), &r)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", r.LendingDate)
	assert.Equal(t, 3, r.TotalBooks)
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-03-01", "01-03-2024", "2024/03/01", "March 1, 2024", "Mar 1, 2024", "2024-03-01T00:00:00Z", "2024-03-01T00:00:00.000Z"} {
		got, ok := ParseDate(s)
		require.True(t, ok, s)
		assert.Equal(t, 2024, got.Year(), s)
		assert.Equal(t, time.March, got.Month(), s)
		assert.Equal(t, 1, got.Day(), s)
	}

	_, ok := ParseDate("next tuesday")
	assert.False(t, ok)
	_, ok = ParseDate("")
	assert.False(t, ok)
}

func TestStatusLabel(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	r := sampleLoan()
	r.Status = StatusReturned
	assert.Equal(t, "Returned", StatusLabel(r, now))

	r.Status = StatusNotReturned
	assert.Equal(t, "Overdue", StatusLabel(r, now))

	r.ReturnDate = "2024-03-20"
	assert.Equal(t, "Not Returned", StatusLabel(r, now))

	r.Status = StatusReserved
	assert.Equal(t, "Reserved", StatusLabel(r, now))
}

func TestMatch(t *testing.T) {
	r := sampleLoan()
	r.Status = StatusNotReturned

	assert.True(t, Match(r, FieldName, "an"))
	assert.True(t, Match(r, FieldCodeBook, "d02"))
	assert.False(t, Match(r, FieldCodeBook, "e"))
	assert.True(t, Match(r, FieldStatus, "not yet"))
	assert.True(t, Match(r, FieldGender, "fem"))
	assert.True(t, Match(r, FieldContact, "081"))
	assert.True(t, Match(r, search.FieldAll, "d01"))
	assert.False(t, Match(r, search.FieldAll, "zzz"))
	assert.False(t, Match(r, "isbn", "d01"))
}
