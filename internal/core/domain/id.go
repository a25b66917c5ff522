package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a remote entity identifier. The API emits numeric ids; ID keeps them
// as text so string and numeric payloads decode alike.
type ID string

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool { return id == "" }

func (id ID) String() string { return string(id) }

// MarshalJSON writes canonical integer ids as JSON numbers. Anything else,
// "007" or "+5" included, stays a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON number, string or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}
