package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Message is one decoded server line: a JSON object whose fields are
// typed on access.
type Message struct {
	fields map[string]json.RawMessage
}

// Decode parses one line. The line must hold a single JSON object. A
// top-level error field is reported as ErrServerError before anything else
// is looked at.
func Decode(line []byte) (*Message, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] != '{' {
		return nil, fmt.Errorf("%w: %s", ErrBadJSON, line)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadJSON, line)
	}

	m := &Message{fields: fields}
	if m.Has(FieldError) {
		text, err := m.String(FieldError)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrServerError, text)
	}
	return m, nil
}

// raw returns a field's bytes; JSON null counts as absent.
func (m *Message) raw(key string) (json.RawMessage, bool) {
	v, ok := m.fields[key]
	if !ok || string(v) == "null" {
		return nil, false
	}
	return v, true
}

// Has reports whether key is present and not null.
func (m *Message) Has(key string) bool {
	_, ok := m.raw(key)
	return ok
}

func missing(key string) error {
	return fmt.Errorf("%w '%s'", ErrMissingField, key)
}

func mismatched(key string) error {
	return fmt.Errorf("%w for key '%s'", ErrFieldType, key)
}

// parseInt accepts JSON integers only; fractions and exponents are rejected.
func parseInt(v json.RawMessage) (int, bool) {
	n, err := strconv.Atoi(string(v))
	return n, err == nil
}

// Int returns a required integer field.
func (m *Message) Int(key string) (int, error) {
	v, ok := m.raw(key)
	if !ok {
		return 0, missing(key)
	}
	n, ok := parseInt(v)
	if !ok {
		return 0, mismatched(key)
	}
	return n, nil
}

// String returns a required string field.
func (m *Message) String(key string) (string, error) {
	v, ok := m.raw(key)
	if !ok {
		return "", missing(key)
	}
	var s string
	if v[0] != '"' || json.Unmarshal(v, &s) != nil {
		return "", mismatched(key)
	}
	return s, nil
}

// Ints returns a required array field whose elements must all be integers.
func (m *Message) Ints(key string) ([]int, error) {
	v, ok := m.raw(key)
	if !ok {
		return nil, missing(key)
	}
	var elems []json.RawMessage
	if v[0] != '[' || json.Unmarshal(v, &elems) != nil {
		return nil, mismatched(key)
	}

	out := make([]int, len(elems))
	for i, e := range elems {
		n, ok := parseInt(e)
		if !ok {
			return nil, fmt.Errorf("%w: '%s[%d]' is not an integer", ErrFieldType, key, i)
		}
		out[i] = n
	}
	return out, nil
}

// Op returns the required operation tag.
func (m *Message) Op() (string, error) {
	return m.String(FieldOp)
}

// Sequence returns the animation sequence of a put, read from FieldSequence
// or, when that is absent, FieldSequenceAlias.
func (m *Message) Sequence() ([]int, error) {
	if !m.Has(FieldSequence) && m.Has(FieldSequenceAlias) {
		return m.Ints(FieldSequenceAlias)
	}
	return m.Ints(FieldSequence)
}
