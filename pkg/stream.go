package pkg

import (
	"fmt"

	"github.com/gravestench/nitrogfx/internal/bits"
)

// reader walks a fully buffered resource. It tracks its own position so that
// short reads and leftover bytes are detected before the bit reader is asked
// for data it does not have.
type reader struct {
	stream *bits.Reader
	size   int
	pos    int
}

func newReader(data []byte) *reader {
	return &reader{
		stream: bits.NewReader(data),
		size:   len(data),
	}
}

func (r *reader) remaining() int {
	return r.size - r.pos
}

func (r *reader) advance(n int) error {
	if n < 0 || n > r.remaining() {
		return fmt.Errorf("reading %d bytes at offset %#x with %d left: %w", n, r.pos, r.remaining(), ErrTruncated)
	}

	r.pos += n

	return nil
}

// need fails unless n more bytes are available. Counts taken from headers go
// through here before anything is allocated for them.
func (r *reader) need(n int, what string) error {
	if n < 0 || n > r.remaining() {
		return fmt.Errorf("%s needs %d bytes at offset %#x with %d left: %w", what, n, r.pos, r.remaining(), ErrTruncated)
	}

	return nil
}

func (r *reader) u8() (byte, error) {
	if err := r.advance(1); err != nil {
		return 0, err
	}

	return r.stream.Byte()
}

func (r *reader) u16() (uint16, error) {
	if err := r.advance(2); err != nil {
		return 0, err
	}

	return r.stream.Uint16()
}

func (r *reader) u32() (uint32, error) {
	if err := r.advance(4); err != nil {
		return 0, err
	}

	return r.stream.Uint32()
}

func (r *reader) bytes(n int) ([]byte, error) {
	if err := r.advance(n); err != nil {
		return nil, err
	}

	return r.stream.Bytes(n)
}

func (r *reader) skip(n int) error {
	_, err := r.bytes(n)

	return err
}

func (r *reader) expectEOF(after Tag) error {
	if n := r.remaining(); n > 0 {
		return fmt.Errorf("%d bytes after %s section: %w", n, after, ErrTrailingData)
	}

	return nil
}
