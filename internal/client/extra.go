// ABOUTME: Order-preserving open JSON object used for a product's extra info
// ABOUTME: Values stay raw JSON; no schema is imposed on them

package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ExtraInfo is a JSON object whose key order survives a decode/encode round trip.
// The zero value is an empty object.
type ExtraInfo struct {
	keys   []string
	values map[string]json.RawMessage
}

// ParseExtraInfo parses user-entered JSON text. Blank input is an empty object.
func ParseExtraInfo(text string) (*ExtraInfo, error) {
	e := &ExtraInfo{}
	if len(bytes.TrimSpace([]byte(text))) == 0 {
		return e, nil
	}
	if err := json.Unmarshal([]byte(text), e); err != nil {
		return nil, err
	}
	return e, nil
}

// Set stores value under key, keeping the key's original position on overwrite
func (e *ExtraInfo) Set(key string, value json.RawMessage) {
	if e.values == nil {
		e.values = make(map[string]json.RawMessage)
	}
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

// Get returns the raw JSON stored under key
func (e *ExtraInfo) Get(key string) (json.RawMessage, bool) {
	if e == nil {
		return nil, false
	}
	v, ok := e.values[key]
	return v, ok
}

// Keys returns the keys in document order
func (e *ExtraInfo) Keys() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.keys...)
}

// Len returns the number of keys
func (e *ExtraInfo) Len() int {
	if e == nil {
		return 0
	}
	return len(e.keys)
}

// MarshalJSON writes the object with keys in document order
func (e ExtraInfo) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range e.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(e.values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object token by token to keep key order; null
// decodes as an empty object
func (e *ExtraInfo) UnmarshalJSON(data []byte) error {
	e.keys = nil
	e.values = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("extra info must be a JSON object")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		e.Set(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// String returns the compact JSON text
func (e *ExtraInfo) String() string {
	if e == nil {
		return "{}"
	}
	data, _ := e.MarshalJSON()
	return string(data)
}

// Indent returns the object as indented JSON for editing
func (e *ExtraInfo) Indent() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(e.String()), "", "  "); err != nil {
		return e.String()
	}
	return buf.String()
}
