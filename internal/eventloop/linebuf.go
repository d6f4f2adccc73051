package eventloop

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrLineOverflow is returned when a server line does not fit the buffer.
var ErrLineOverflow = errors.New("eventloop: buffer overflow detected")

// LineBuffer splits a byte stream into newline-terminated lines, carrying
// an unterminated tail over to the next Feed. A line may hold at most
// size-1 bytes including its newline.
type LineBuffer struct {
	buf []byte
	n   int
}

// NewLineBuffer creates a buffer of the given size.
func NewLineBuffer(size int) *LineBuffer {
	return &LineBuffer{buf: make([]byte, size)}
}

// Pending returns the number of carried-over bytes.
func (b *LineBuffer) Pending() int {
	return b.n
}

// Feed appends chunk and calls emit for every completed line, without its
// newline. The slice passed to emit is only valid during the call.
func (b *LineBuffer) Feed(chunk []byte, emit func(line []byte) error) error {
	limit := len(b.buf) - 1
	for len(chunk) > 0 {
		i := bytes.IndexByte(chunk, '\n')
		if i < 0 {
			if b.n+len(chunk) >= limit {
				return b.overflow(chunk)
			}
			b.n += copy(b.buf[b.n:], chunk)
			return nil
		}
		if b.n+i >= limit {
			return b.overflow(chunk[:i])
		}

		line := chunk[:i]
		if b.n > 0 {
			b.n += copy(b.buf[b.n:], line)
			line = b.buf[:b.n]
		}
		b.n = 0
		if err := emit(line); err != nil {
			return err
		}
		chunk = chunk[i+1:]
	}
	return nil
}

func (b *LineBuffer) overflow(tail []byte) error {
	head := append(b.buf[:b.n:b.n], tail...)
	if len(head) > 64 {
		head = head[:64]
	}
	b.n = 0
	return fmt.Errorf("%w: %q...", ErrLineOverflow, head)
}
