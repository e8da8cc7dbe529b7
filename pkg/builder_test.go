package pkg

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// builder assembles little-endian resource fixtures.
type builder struct {
	buf bytes.Buffer
}

func (b *builder) raw(data ...byte) *builder {
	b.buf.Write(data)
	return b
}

func (b *builder) u16(values ...uint16) *builder {
	for _, v := range values {
		_ = binary.Write(&b.buf, binary.LittleEndian, v)
	}
	return b
}

func (b *builder) u32(values ...uint32) *builder {
	for _, v := range values {
		_ = binary.Write(&b.buf, binary.LittleEndian, v)
	}
	return b
}

func (b *builder) tag(t Tag) *builder {
	return b.u32(uint32(t))
}

func (b *builder) fileHeader(magic Tag, sections uint16) *builder {
	return b.tag(magic).u16(0xfeff, 0x0100).u32(0).u16(16, sections)
}

func (b *builder) bytes() []byte {
	return b.buf.Bytes()
}

func paletteFile(rawDepth uint32, colors []uint16, count int) []byte {
	b := &builder{}
	dataSize := uint32(len(colors) * 2)

	b.fileHeader(TagNCLR, 2)
	b.tag(TagPLTT).u32(dataSize+0x18, rawDepth, 1, dataSize, 16)
	b.u16(colors...)
	b.tag(TagPCMP).u32(uint32(count*2 + 16)).u16(uint16(count), 0xbeef).u32(8)

	for idx := 0; idx < count; idx++ {
		b.u16(uint16(idx))
	}

	return b.bytes()
}

type tilesetFixture struct {
	tilesX, tilesY uint16
	rawDepth       uint32
	kind           uint32
	offset         uint32
	tiles          []Tile
	cpos           bool
	cposW, cposH   uint16
}

func newTilesetFixture(tilesX, tilesY uint16, tiles ...Tile) tilesetFixture {
	return tilesetFixture{tilesX: tilesX, tilesY: tilesY, rawDepth: 4, offset: 24, tiles: tiles}
}

func (f tilesetFixture) bytes() []byte {
	b := &builder{}
	dataSize := uint32(len(f.tiles) * tilePixels)

	b.fileHeader(TagNCGR, 1)
	b.tag(TagCHAR).u32(dataSize+0x20).u16(f.tilesY, f.tilesX).u32(f.rawDepth, 0, f.kind, dataSize, f.offset)

	for idx := range f.tiles {
		b.raw(f.tiles[idx][:]...)
	}

	if f.cpos {
		b.tag(TagCPOS).u32(0x10, 0).u16(f.cposW, f.cposH)
	}

	return b.bytes()
}

func solidTile(idx byte) (t Tile) {
	for px := range t {
		t[px] = idx
	}
	return t
}

func tilemapFile(pixelW, pixelH, format uint16, entries ...uint16) []byte {
	b := &builder{}

	b.fileHeader(TagNSCR, 1)
	b.tag(TagSCRN).u32(uint32(0x14+len(entries)*2)).u16(pixelW, pixelH, 0, format).u32(uint32(len(entries) * 2))
	b.u16(entries...)

	return b.bytes()
}

type cellFixture struct {
	attrs uint16
	oam   [][3]uint16
}

type cellBankFixture struct {
	cells       []cellFixture
	bankAttrs   uint16
	constants   [5]uint32
	padding     int
	labels      []string
	withLabels  bool
	withUEXT    bool
	uextPayload uint32
}

func newCellBankFixture(cells ...cellFixture) cellBankFixture {
	return cellBankFixture{
		cells:      cells,
		constants:  [5]uint32{24, 2, 0, 0, 0},
		withLabels: true,
		withUEXT:   true,
	}
}

func (f cellBankFixture) bytes() []byte {
	b := &builder{}

	oamBytes := 0
	for _, c := range f.cells {
		oamBytes += len(c.oam) * 6
	}

	cebkSize := chunkHeaderSize + 24 + len(f.cells)*8 + oamBytes + f.padding

	b.fileHeader(TagNCER, 3)
	b.tag(TagCEBK).u32(uint32(cebkSize)).u16(uint16(len(f.cells)), f.bankAttrs).u32(f.constants[:]...)

	offset := 0
	for _, c := range f.cells {
		b.u16(uint16(len(c.oam)), c.attrs).u32(uint32(offset))
		offset += len(c.oam) * 6
	}

	for _, c := range f.cells {
		for _, o := range c.oam {
			b.u16(o[0], o[1], o[2])
		}
	}

	b.raw(make([]byte, f.padding)...)

	if f.withLabels {
		block := strings.Join(f.labels, "\x00") + "\x00\x00\x00"
		b.tag(TagLABL).u32(uint32(chunkHeaderSize + len(f.cells)*4 + len(block)))

		pos := 0
		for idx := range f.cells {
			b.u32(uint32(pos))
			if idx < len(f.labels) {
				pos += len(f.labels[idx]) + 1
			}
		}

		b.raw([]byte(block)...)
	}

	if f.withUEXT {
		b.tag(TagUEXT).u32(0x0c, f.uextPayload)
	}

	return b.bytes()
}
