package eventloop

import (
	"errors"
	"strings"
	"testing"
)

func collect(t *testing.T, b *LineBuffer, chunks ...string) ([]string, error) {
	t.Helper()
	var lines []string
	emit := func(line []byte) error {
		lines = append(lines, string(line))
		return nil
	}
	for _, c := range chunks {
		if err := b.Feed([]byte(c), emit); err != nil {
			return lines, err
		}
	}
	return lines, nil
}

func TestLineBufferSplits(t *testing.T) {
	tests := []struct {
		name    string
		chunks  []string
		want    []string
		pending int
	}{
		{"single line", []string{"{\"a\":1}\n"}, []string{`{"a":1}`}, 0},
		{"two lines one chunk", []string{"a\nb\n"}, []string{"a", "b"}, 0},
		{"short read carried over", []string{"ab", "c\nd"}, []string{"abc"}, 1},
		{"byte at a time", []string{"x", "y", "\n"}, []string{"xy"}, 0},
		{"empty line", []string{"\n"}, []string{""}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewLineBuffer(512)
			got, err := collect(t, b, tc.chunks...)
			if err != nil {
				t.Fatalf("Feed() failed: %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tc.want, "|") {
				t.Errorf("lines = %q, expected %q", got, tc.want)
			}
			if b.Pending() != tc.pending {
				t.Errorf("Pending() = %d, expected %d", b.Pending(), tc.pending)
			}
		})
	}
}

func TestLineBufferLimit(t *testing.T) {
	// 510 bytes plus the newline is the longest line a 512 byte buffer takes.
	b := NewLineBuffer(512)
	long := strings.Repeat("x", 510)
	got, err := collect(t, b, long[:300], long[300:]+"\n")
	if err != nil {
		t.Fatalf("510 byte line rejected: %v", err)
	}
	if len(got) != 1 || len(got[0]) != 510 {
		t.Errorf("expected one 510 byte line, got %d lines", len(got))
	}

	b = NewLineBuffer(512)
	if _, err := collect(t, b, strings.Repeat("x", 511)+"\n"); !errors.Is(err, ErrLineOverflow) {
		t.Errorf("511 byte line error = %v, expected ErrLineOverflow", err)
	}

	b = NewLineBuffer(512)
	if _, err := collect(t, b, strings.Repeat("x", 400), strings.Repeat("y", 111)); !errors.Is(err, ErrLineOverflow) {
		t.Errorf("unterminated 511 bytes error = %v, expected ErrLineOverflow", err)
	}
}

func TestLineBufferEmitError(t *testing.T) {
	b := NewLineBuffer(64)
	stop := errors.New("stop")
	calls := 0
	err := b.Feed([]byte("a\nb\n"), func([]byte) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("Feed() = %v after %d calls, expected stop after 1", err, calls)
	}
}
