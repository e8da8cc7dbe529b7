package bits

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_LittleEndianFields(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	b, err := r.Byte()
	require.NoError(t, err)
	assert.Equal(t, byte(1), b)

	v16, err := r.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0302), v16)

	v32, err := r.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x07060504), v32)

	empty, err := r.Bytes(0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	rest, err := r.Bytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{8, 9, 10}, rest)
}

func TestReader_HighBitsSurvive(t *testing.T) {
	r := NewReader([]byte{0xff, 0xff, 0xff, 0xff})

	v, err := r.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xffffffff), v)
}

func TestReader_Concurrent(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for n := 0; n < 50; n++ {
				r := NewReader(data)

				for i := range data {
					b, err := r.Byte()
					if !assert.NoError(t, err) || !assert.Equal(t, byte(i), b) {
						return
					}
				}
			}
		}()
	}

	wg.Wait()
}
