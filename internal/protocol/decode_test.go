package protocol

import (
	"errors"
	"slices"
	"testing"
)

func TestDecodeBadJSON(t *testing.T) {
	lines := []string{
		"",
		"not json",
		"[1, 2]",
		"null",
		`"op"`,
		`{"op": "put"`,
		`{"op": "put"} {"op": "move"}`,
	}

	for _, line := range lines {
		if _, err := Decode([]byte(line)); !errors.Is(err, ErrBadJSON) {
			t.Errorf("Decode(%q) error = %v, expected ErrBadJSON", line, err)
		}
	}
}

func TestDecodeErrorFieldFirst(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{`{"error":"bad state"}`, ErrServerError},
		{`{"op":"put","id":1,"error":"bad state"}`, ErrServerError},
		{`{"whoami":3,"games":[],"error":"full"}`, ErrServerError},
		{`{"error":42}`, ErrFieldType},
	}

	for _, tc := range tests {
		_, err := Decode([]byte(tc.line))
		if !errors.Is(err, tc.want) {
			t.Errorf("Decode(%s) error = %v, expected %v", tc.line, err, tc.want)
		}
	}
}

func TestMessageFields(t *testing.T) {
	m, err := Decode([]byte(`{"op":"put","id":5,"x":-3,"f":1.5,"s":"x","seq":[1,2],"bad":[1,"a"],"n":null}` + "\n"))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	if op, err := m.Op(); err != nil || op != "put" {
		t.Errorf("Op() = %q, %v", op, err)
	}
	if id, err := m.Int(FieldID); err != nil || id != 5 {
		t.Errorf("Int(id) = %d, %v", id, err)
	}
	if x, err := m.Int(FieldX); err != nil || x != -3 {
		t.Errorf("Int(x) = %d, %v", x, err)
	}
	if seq, err := m.Sequence(); err != nil || !slices.Equal(seq, []int{1, 2}) {
		t.Errorf("Sequence() = %v, %v", seq, err)
	}

	errTests := []struct {
		name string
		get  func() error
		want error
	}{
		{"missing int", func() error { _, err := m.Int(FieldY); return err }, ErrMissingField},
		{"null is missing", func() error { _, err := m.Int("n"); return err }, ErrMissingField},
		{"float is not int", func() error { _, err := m.Int("f"); return err }, ErrFieldType},
		{"string is not int", func() error { _, err := m.Int("s"); return err }, ErrFieldType},
		{"int is not string", func() error { _, err := m.String(FieldID); return err }, ErrFieldType},
		{"int is not array", func() error { _, err := m.Ints(FieldID); return err }, ErrFieldType},
		{"mixed array", func() error { _, err := m.Ints("bad"); return err }, ErrFieldType},
		{"missing array", func() error { _, err := m.Ints(FieldGames); return err }, ErrMissingField},
	}

	for _, tc := range errTests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.get(); !errors.Is(err, tc.want) {
				t.Errorf("error = %v, expected %v", err, tc.want)
			}
		})
	}
}

func TestSequenceAlias(t *testing.T) {
	m, err := Decode([]byte(`{"sequence":[3]}`))
	if err != nil {
		t.Fatal(err)
	}
	if seq, err := m.Sequence(); err != nil || !slices.Equal(seq, []int{3}) {
		t.Errorf("Sequence() = %v, %v", seq, err)
	}

	m, err = Decode([]byte(`{"seq":[1],"sequence":[3]}`))
	if err != nil {
		t.Fatal(err)
	}
	if seq, _ := m.Sequence(); !slices.Equal(seq, []int{1}) {
		t.Errorf("seq should win over its alias, got %v", seq)
	}

	m, _ = Decode([]byte(`{}`))
	if _, err := m.Sequence(); !errors.Is(err, ErrMissingField) {
		t.Errorf("Sequence() error = %v, expected ErrMissingField", err)
	}
}
