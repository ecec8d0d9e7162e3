// ABOUTME: Scalar JSON types tolerant of the backend's mixed encodings
// ABOUTME: ID and Decimal accept either a JSON string or a JSON number

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a record. Some endpoints send numeric ids, others strings.
type ID string

// UnmarshalJSON accepts "12", 12 and null
func (id *ID) UnmarshalJSON(data []byte) error {
	s, err := scalarString(data)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	*id = ID(s)
	return nil
}

// MarshalJSON writes canonical integer ids as numbers. Anything else,
// including "007" and "+5", stays a string so the output is valid JSON.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string {
	return string(id)
}

// Int returns the numeric value of id, or 0 when it is not an integer
func (id ID) Int() int {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0
	}
	return n
}

// Decimal is a money amount kept in its wire text, e.g. "120000.00"
type Decimal string

// UnmarshalJSON accepts "120000.00", 120000 and null
func (d *Decimal) UnmarshalJSON(data []byte) error {
	s, err := scalarString(data)
	if err != nil {
		return fmt.Errorf("invalid decimal: %w", err)
	}
	*d = Decimal(s)
	return nil
}

// Float64 parses the amount; unparsable amounts are 0
func (d Decimal) Float64() float64 {
	f, err := strconv.ParseFloat(string(d), 64)
	if err != nil {
		return 0
	}
	return f
}

func (d Decimal) String() string {
	return string(d)
}

func scalarString(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
