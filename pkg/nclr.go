package pkg

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math"
)

// DecodePalette decodes an uncompressed NCLR palette resource.
func DecodePalette(data []byte, opts ...Option) (*Palette, error) {
	o := newOptions(opts)
	p := &Palette{}
	stream := newReader(data)

	var err error

	if p.Header, err = stream.expectFileHeader(TagNCLR); err != nil {
		return nil, fmt.Errorf("decoding header: %w", err)
	}

	colorData, err := p.decodePLTT(stream)
	if err != nil {
		return nil, fmt.Errorf("decoding color data: %w", err)
	}

	if err = p.decodePCMP(stream); err != nil {
		return nil, fmt.Errorf("decoding palette index: %w", err)
	}

	if err = stream.expectEOF(TagPCMP); err != nil {
		return nil, err
	}

	p.Palettes = splitColorTables(colorData, p.BitDepth, o.alpha)

	if err = expect(TagPCMP.String(), "palette count", len(p.Indices), len(p.Palettes)); err != nil {
		return nil, err
	}

	return p, nil
}

// Palette is a decoded NCLR resource: one or more colour tables.
type Palette struct {
	Header   FileHeader
	BitDepth int
	Palettes []ColorTable

	// Indices is the PCMP table. It is kept for inspection only.
	Indices []uint16
}

// ColorTable is an ordered list of colours addressed by pixel index.
type ColorTable []color.NRGBA

// Palette returns the table as a color.Palette for use with image.Paletted.
func (t ColorTable) Palette() color.Palette {
	p := make(color.Palette, len(t))

	for idx := range t {
		p[idx] = t[idx]
	}

	return p
}

// ColorsPerTable is the number of entries in each table at the palette's bit depth.
func (p *Palette) ColorsPerTable() int {
	return 1 << p.BitDepth
}

func (p *Palette) decodePLTT(stream *reader) ([]byte, error) {
	const (
		plttOverhead      = chunkHeaderSize + 16
		paletteDataOffset = 16
	)

	chunk := TagPLTT.String()

	header, err := stream.expectChunk(TagPLTT)
	if err != nil {
		return nil, err
	}

	rawDepth, err := stream.u32()
	if err != nil {
		return nil, err
	}

	if p.BitDepth, err = bitDepth(chunk, rawDepth); err != nil {
		return nil, err
	}

	external, err := stream.u32()
	if err != nil {
		return nil, err
	}

	if err = expectSupported(chunk, "external palette flag", true, external != 0); err != nil {
		return nil, err
	}

	dataSize, err := stream.u32()
	if err != nil {
		return nil, err
	}

	dataOffset, err := stream.u32()
	if err != nil {
		return nil, err
	}

	if err = expect(chunk, "data offset", uint32(paletteDataOffset), dataOffset); err != nil {
		return nil, err
	}

	if err = expect(chunk, "section size", dataSize+plttOverhead, header.Size); err != nil {
		return nil, err
	}

	return stream.bytes(int(dataSize))
}

func (p *Palette) decodePCMP(stream *reader) error {
	const (
		pcmpOverhead     = chunkHeaderSize + 8
		indexTableOffset = 8
	)

	chunk := TagPCMP.String()

	header, err := stream.expectChunk(TagPCMP)
	if err != nil {
		return err
	}

	count, err := stream.u16()
	if err != nil {
		return err
	}

	// 0xBEEF filler
	if _, err = stream.u16(); err != nil {
		return err
	}

	offset, err := stream.u32()
	if err != nil {
		return err
	}

	if err = expect(chunk, "index table offset", uint32(indexTableOffset), offset); err != nil {
		return err
	}

	if err = expect(chunk, "section size", uint32(count)*2+pcmpOverhead, header.Size); err != nil {
		return err
	}

	p.Indices = make([]uint16, count)

	for idx := range p.Indices {
		if p.Indices[idx], err = stream.u16(); err != nil {
			return err
		}
	}

	return nil
}

// splitColorTables cuts the colour data into whole tables. A partial table
// at the end is dropped.
func splitColorTables(data []byte, depth int, alpha AlphaMode) []ColorTable {
	const bytesPerColor = 2

	numColors := 1 << depth
	stride := numColors * bytesPerColor

	tables := make([]ColorTable, 0, len(data)/stride)

	for start := 0; start+stride <= len(data); start += stride {
		table := make(ColorTable, numColors)

		for idx := range table {
			packed := binary.LittleEndian.Uint16(data[start+idx*bytesPerColor:])
			table[idx] = unpackColor(packed, alpha)
		}

		tables = append(tables, table)
	}

	return tables
}

// unpackColor expands a packed colour, laid out as ABBBBBGGGGGRRRRR.
func unpackColor(packed uint16, alpha AlphaMode) color.NRGBA {
	c := color.NRGBA{
		R: uint8(packed&0x1f) << 3,
		G: uint8(packed>>5&0x1f) << 3,
		B: uint8(packed>>10&0x1f) << 3,
		A: math.MaxUint8,
	}

	if alpha == AlphaFromFlag {
		c.A = uint8(packed>>15) * math.MaxUint8
	}

	return c
}
