package pkg

import (
	"fmt"
)

// DecodeTilemap decodes an uncompressed NSCR screen resource.
func DecodeTilemap(data []byte) (*Tilemap, error) {
	m := &Tilemap{}
	stream := newReader(data)

	var err error

	if m.Header, err = stream.expectFileHeader(TagNSCR); err != nil {
		return nil, fmt.Errorf("decoding header: %w", err)
	}

	if err = m.decodeSCRN(stream); err != nil {
		return nil, fmt.Errorf("decoding screen data: %w", err)
	}

	if err = stream.expectEOF(TagSCRN); err != nil {
		return nil, err
	}

	return m, nil
}

// TileRef is one tilemap entry.
type TileRef struct {
	ID      uint16
	Palette uint8
}

// Tilemap is a decoded NSCR resource. Width and Height count tiles.
type Tilemap struct {
	Header    FileHeader
	Width     int
	Height    int
	ColorMode uint16
	DataSize  uint32
	Map       []TileRef
}

// At returns the entry for tile column x and row y.
func (m *Tilemap) At(x, y int) TileRef {
	return m.Map[y*m.Width+x]
}

func (m *Tilemap) decodeSCRN(stream *reader) error {
	const (
		idMask       = 0x0fff
		paletteShift = 12
		mapEntrySize = 2
	)

	if _, err := stream.expectChunk(TagSCRN); err != nil {
		return err
	}

	pixelWidth, err := stream.u16()
	if err != nil {
		return err
	}

	pixelHeight, err := stream.u16()
	if err != nil {
		return err
	}

	m.Width, m.Height = int(pixelWidth)/tileSide, int(pixelHeight)/tileSide

	if m.ColorMode, err = stream.u16(); err != nil {
		return err
	}

	format, err := stream.u16()
	if err != nil {
		return err
	}

	if err = expectSupported(TagSCRN.String(), "format", uint16(0), format); err != nil {
		return err
	}

	if m.DataSize, err = stream.u32(); err != nil {
		return err
	}

	count := m.Width * m.Height

	if err = stream.need(count*mapEntrySize, fmt.Sprintf("%d map entries", count)); err != nil {
		return err
	}

	m.Map = make([]TileRef, count)

	for idx := range m.Map {
		entry, err := stream.u16()
		if err != nil {
			return fmt.Errorf("map entry %d: %w", idx, err)
		}

		m.Map[idx] = TileRef{
			ID:      entry & idMask,
			Palette: uint8(entry >> paletteShift),
		}
	}

	return nil
}
