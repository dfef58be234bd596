package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a server-assigned record identity. json-server hands out numeric ids
// in older releases and string ids in newer ones, so both wire forms decode.
type ID string

// IsZero reports whether the id has not been assigned by the server yet.
func (id ID) IsZero() bool { return id == "" }

func (id ID) String() string { return string(id) }

// Int returns the numeric value of the id when it is an integer.
func (id ID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MarshalJSON writes the id as a JSON number only when that number prints
// back to the same text, so ids like "007" or "+7" stay strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int(); ok {
		if num := strconv.FormatInt(n, 10); num == string(id) {
			return []byte(num), nil
		}
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// ParseID converts user input into an ID.
func ParseID(s string) (ID, error) {
	if s == "" {
		return "", fmt.Errorf("empty id")
	}
	return ID(s), nil
}
