// Package bits reads little-endian fields through a bitstream reader.
//
// Every bitstream reader in a process shares a single scratch buffer for the
// bits it pulls from the underlying stream, so reads from all Readers are
// serialised on one lock.
package bits

import (
	"sync"

	"github.com/gravestench/bitstream"
)

var mu sync.Mutex

// Reader reads fields from an in-memory buffer.
type Reader struct {
	stream *bitstream.Reader
}

func NewReader(data []byte) *Reader {
	return &Reader{stream: bitstream.ReaderFromBytes(data...)}
}

func (r *Reader) Byte() (byte, error) {
	mu.Lock()
	defer mu.Unlock()

	return r.stream.Next(1).Bytes().AsByte()
}

func (r *Reader) Uint16() (uint16, error) {
	mu.Lock()
	defer mu.Unlock()

	return r.stream.Next(2).Bytes().AsUInt16()
}

func (r *Reader) Uint32() (uint32, error) {
	mu.Lock()
	defer mu.Unlock()

	return r.stream.Next(4).Bytes().AsUInt32()
}

// Bytes reads n bytes. A zero count returns an empty slice without touching
// the stream.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}

	mu.Lock()
	defer mu.Unlock()

	return r.stream.Next(n).Bytes().AsBytes()
}
