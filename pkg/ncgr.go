package pkg

import (
	"fmt"
)

const (
	tileSide   = 8
	tilePixels = tileSide * tileSide

	// canonicalTilesetWidth is the grid width assumed when the header
	// dimensions disagree with the stored tile data.
	canonicalTilesetWidth = 32
)

// DecodeTileset decodes an uncompressed NCGR tile graphics resource.
func DecodeTileset(data []byte) (*Tileset, error) {
	ts := &Tileset{}
	stream := newReader(data)

	var err error

	if ts.Header, err = stream.expectFileHeader(TagNCGR); err != nil {
		return nil, fmt.Errorf("decoding header: %w", err)
	}

	if err = ts.decodeCHAR(stream); err != nil {
		return nil, fmt.Errorf("decoding character data: %w", err)
	}

	if err = ts.decodeCPOS(stream); err != nil {
		return nil, fmt.Errorf("decoding character position: %w", err)
	}

	if err = stream.expectEOF(TagCHAR); err != nil {
		return nil, err
	}

	return ts, nil
}

// Tile is an 8x8 block of palette indices in row-major order.
type Tile [tilePixels]byte

// Tileset is a decoded NCGR resource.
type Tileset struct {
	Header FileHeader

	// Width and Height give the tile grid. When Recounted is set the header
	// dimensions were stale and the grid was rebuilt 32 tiles wide from the
	// stored data size.
	Width, Height int
	Recounted     bool

	Mapping uint32
	Tiles   []Tile
}

func (ts *Tileset) decodeCHAR(stream *reader) error {
	const (
		supportedDepth = 8
		gfxDataOffset  = 24
	)

	chunk := TagCHAR.String()

	if _, err := stream.expectChunk(TagCHAR); err != nil {
		return err
	}

	tilesY, err := stream.u16()
	if err != nil {
		return err
	}

	tilesX, err := stream.u16()
	if err != nil {
		return err
	}

	rawDepth, err := stream.u32()
	if err != nil {
		return err
	}

	depth, err := bitDepth(chunk, rawDepth)
	if err != nil {
		return err
	}

	if err = expectSupported(chunk, "bit depth", supportedDepth, depth); err != nil {
		return err
	}

	if ts.Mapping, err = stream.u32(); err != nil {
		return err
	}

	kind, err := stream.u32()
	if err != nil {
		return err
	}

	if err = expectSupported(chunk, "storage kind", uint32(0), kind); err != nil {
		return err
	}

	dataSize, err := stream.u32()
	if err != nil {
		return err
	}

	offset, err := stream.u32()
	if err != nil {
		return err
	}

	if err = expect(chunk, "data offset", uint32(gfxDataOffset), offset); err != nil {
		return err
	}

	ts.Width, ts.Height = int(tilesX), int(tilesY)

	count := ts.Width * ts.Height

	if stored := int(dataSize >> 6); stored != count {
		if stored%canonicalTilesetWidth != 0 {
			return &FormatError{
				Chunk:    chunk,
				Field:    "stored tile count",
				Expected: fmt.Sprintf("multiple of %d", canonicalTilesetWidth),
				Actual:   stored,
			}
		}

		count = stored
		ts.Width, ts.Height = canonicalTilesetWidth, stored/canonicalTilesetWidth
		ts.Recounted = true
	}

	if err = stream.need(count*tilePixels, fmt.Sprintf("%d tiles", count)); err != nil {
		return err
	}

	ts.Tiles = make([]Tile, count)

	for idx := range ts.Tiles {
		pixels, err := stream.bytes(tilePixels)
		if err != nil {
			return fmt.Errorf("tile %d: %w", idx, err)
		}

		copy(ts.Tiles[idx][:], pixels)
	}

	return nil
}

// decodeCPOS consumes the optional trailing position section.
func (ts *Tileset) decodeCPOS(stream *reader) error {
	const cposSize = 0x10

	chunk := TagCPOS.String()

	header, ok, err := stream.optionalChunk()
	if err != nil || !ok {
		return err
	}

	if err = expect(chunk, "magic", TagCPOS, header.Magic); err != nil {
		return err
	}

	if err = expect(chunk, "section size", uint32(cposSize), header.Size); err != nil {
		return err
	}

	reserved, err := stream.u32()
	if err != nil {
		return err
	}

	if err = expect(chunk, "reserved", uint32(0), reserved); err != nil {
		return err
	}

	width, err := stream.u16()
	if err != nil {
		return err
	}

	if err = expect(chunk, "width", ts.Width, int(width)); err != nil {
		return err
	}

	height, err := stream.u16()
	if err != nil {
		return err
	}

	return expect(chunk, "height", ts.Height, int(height))
}
