/*
Package lz decodes the back-reference compression wrapped around Nitro
graphics resources.

A compressed stream starts with the marker byte 0x11 and a 24-bit
little-endian decoded length. The body is a sequence of groups: a flag byte
whose bits, most significant first, say whether each following item is a
literal byte (0) or a back-reference token (1). The high nibble of a token's
first byte selects its width:

	0     3 bytes  length 0x11..0x110,   offset 1..0x1000
	1     4 bytes  length 0x111..0x10110, offset 1..0x1000
	2..f  2 bytes  length nibble+1,      offset 1..0x1000

Copies are made one byte at a time, so a token may read bytes it has just
written. Decoding ends the moment the declared length is reached, even in
the middle of a token or a flag group.

Streams with any other first byte are stored raw and are returned unchanged.
*/
package lz

import (
	"errors"
	"fmt"
	"io"

	"github.com/gravestench/nitrogfx/internal/bits"
)

// Marker is the first byte of a compressed stream.
const Marker = 0x11

var (
	ErrTruncated     = errors.New("lz: unexpected end of compressed data")
	ErrInvalidOffset = errors.New("lz: back-reference before start of output")
	ErrTrailingData  = errors.New("lz: trailing bytes after compressed data")
)

// IsCompressed reports whether data starts with the compression marker.
func IsCompressed(data []byte) bool {
	return len(data) > 0 && data[0] == Marker
}

// Decompress returns the decoded contents of data. Raw data is copied through
// untouched, marker byte included.
func Decompress(data []byte) ([]byte, error) {
	src := newSource(data)

	marker, err := src.next()
	if err != nil {
		return nil, err
	}

	if marker != Marker {
		out := make([]byte, len(data))
		copy(out, data)

		return out, nil
	}

	d := &decoder{src: src}

	return d.decode()
}

// DecompressFrom buffers r and decompresses it.
func DecompressFrom(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return Decompress(data)
}

type source struct {
	stream *bits.Reader
	size   int
	pos    int
}

func newSource(data []byte) *source {
	return &source{
		stream: bits.NewReader(data),
		size:   len(data),
	}
}

func (s *source) next() (byte, error) {
	if s.pos >= s.size {
		return 0, fmt.Errorf("at offset %#x: %w", s.pos, ErrTruncated)
	}

	s.pos++

	return s.stream.Byte()
}

type decoder struct {
	src  *source
	size int
	out  []byte
}

func (d *decoder) done() bool {
	return len(d.out) == d.size
}

func (d *decoder) decode() ([]byte, error) {
	const sizeBytes = 3

	for shift := 0; shift < sizeBytes*8; shift += 8 {
		b, err := d.src.next()
		if err != nil {
			return nil, fmt.Errorf("reading decoded size: %w", err)
		}

		d.size |= int(b) << shift
	}

	d.out = make([]byte, 0, d.size)

	for !d.done() {
		flags, err := d.src.next()
		if err != nil {
			return nil, fmt.Errorf("reading flags: %w", err)
		}

		for bit := 7; bit >= 0 && !d.done(); bit-- {
			if flags>>bit&1 == 0 {
				err = d.literal()
			} else {
				err = d.backReference()
			}

			if err != nil {
				return nil, err
			}
		}
	}

	if left := d.src.size - d.src.pos; left > 0 {
		return nil, fmt.Errorf("%d bytes after %d decoded: %w", left, d.size, ErrTrailingData)
	}

	return d.out, nil
}

func (d *decoder) literal() error {
	b, err := d.src.next()
	if err != nil {
		return fmt.Errorf("reading literal: %w", err)
	}

	d.out = append(d.out, b)

	return nil
}

func (d *decoder) backReference() error {
	var (
		token [4]byte
		have  int
	)

	// read fills token up to n bytes
	read := func(n int) error {
		for ; have < n; have++ {
			b, err := d.src.next()
			if err != nil {
				return fmt.Errorf("reading back-reference: %w", err)
			}

			token[have] = b
		}

		return nil
	}

	if err := read(2); err != nil {
		return err
	}

	var length, offset int

	switch token[0] >> 4 {
	case 0:
		if err := read(3); err != nil {
			return err
		}

		length = int(token[0])<<4 + int(token[1])>>4 + 0x11
		offset = int(token[1]&0xf)<<8 + int(token[2]) + 1
	case 1:
		if err := read(4); err != nil {
			return err
		}

		length = int(token[0]&0xf)<<12 + int(token[1])<<4 + int(token[2])>>4 + 0x111
		offset = int(token[2]&0xf)<<8 + int(token[3]) + 1
	default:
		length = int(token[0]>>4) + 1
		offset = int(token[0]&0xf)<<8 + int(token[1]) + 1
	}

	if offset > len(d.out) {
		return fmt.Errorf("offset %d with %d bytes decoded: %w", offset, len(d.out), ErrInvalidOffset)
	}

	start := len(d.out) - offset

	for idx := 0; idx < length && !d.done(); idx++ {
		d.out = append(d.out, d.out[start+idx])
	}

	return nil
}
