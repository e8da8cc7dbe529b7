package pkg

import (
	"bytes"
	"fmt"
)

// DecodeCells decodes an uncompressed NCER cell resource.
func DecodeCells(data []byte, opts ...Option) (*CellBank, error) {
	o := newOptions(opts)
	bank := &CellBank{}
	stream := newReader(data)

	var err error

	if bank.Header, err = stream.expectFileHeader(TagNCER); err != nil {
		return nil, fmt.Errorf("decoding header: %w", err)
	}

	if err = bank.decodeCEBK(stream); err != nil {
		return nil, fmt.Errorf("decoding cell bank: %w", err)
	}

	if err = bank.decodeTrailer(stream, o.sections); err != nil {
		return nil, fmt.Errorf("decoding trailer: %w", err)
	}

	return bank, nil
}

// CellBank is a decoded NCER resource.
type CellBank struct {
	Header FileHeader
	Cells  []Cell

	// Labels holds one name per cell, or nil when the label section was
	// absent and tolerated.
	Labels []string
}

// Cell is one sprite, assembled from hardware objects.
type Cell struct {
	Attributes uint16
	OAM        []OamEntry
}

// ObjMode is the rendering mode of an object.
type ObjMode uint8

const (
	ObjModeNormal ObjMode = iota
	ObjModeSemiTransparent
	ObjModeWindow
	ObjModeBitmap
)

// OamEntry is one decoded object attribute record.
type OamEntry struct {
	Y, X int

	RotateScale bool
	DoubleSize  bool // only with RotateScale
	Disabled    bool // only without RotateScale

	Mode      ObjMode
	Mosaic    bool
	Colors256 bool
	Shape     uint8

	Matrix       uint8 // only with RotateScale
	HFlip, VFlip bool  // only without RotateScale

	Size     uint8
	Char     uint16
	Priority uint8
	Palette  uint8
}

func decodeOamEntry(attr0, attr1, attr2 uint16) OamEntry {
	e := OamEntry{
		Y:           int(int8(attr0 & 0xff)),
		X:           signExtend9(attr1 & 0x1ff),
		RotateScale: attr0&(1<<8) != 0,
		Mode:        ObjMode(attr0 >> 10 & 0x3),
		Mosaic:      attr0&(1<<12) != 0,
		Colors256:   attr0&(1<<13) != 0,
		Shape:       uint8(attr0 >> 14),
		Size:        uint8(attr1 >> 14),
		Char:        attr2 & 0x3ff,
		Priority:    uint8(attr2 >> 10 & 0x3),
		Palette:     uint8(attr2 >> 12),
	}

	if e.RotateScale {
		e.DoubleSize = attr0&(1<<9) != 0
		e.Matrix = uint8(attr1 >> 9 & 0x1f)
	} else {
		e.Disabled = attr0&(1<<9) != 0
		e.HFlip = attr1&(1<<12) != 0
		e.VFlip = attr1&(1<<13) != 0
	}

	return e
}

func signExtend9(v uint16) int {
	if v&0x100 != 0 {
		return int(v) - 0x200
	}

	return int(v)
}

// objDimensions is indexed by shape then size.
var objDimensions = [3][4][2]int{
	{{8, 8}, {16, 16}, {32, 32}, {64, 64}}, // square
	{{16, 8}, {32, 8}, {32, 16}, {64, 32}}, // horizontal
	{{8, 16}, {8, 32}, {16, 32}, {32, 64}}, // vertical
}

// Dimensions returns the object's size in pixels, or zero for the
// prohibited shape.
func (e OamEntry) Dimensions() (w, h int) {
	if int(e.Shape) >= len(objDimensions) {
		return 0, 0
	}

	d := objDimensions[e.Shape][e.Size&0x3]

	return d[0], d[1]
}

func (bank *CellBank) decodeCEBK(stream *reader) error {
	const (
		cellDataOffset     = 24
		supportedMapping   = 2
		oamAttributeFields = 3
		oamEntrySize       = oamAttributeFields * 2
		cellDescriptorSize = 8
	)

	chunk := TagCEBK.String()
	start := stream.pos

	header, err := stream.expectChunk(TagCEBK)
	if err != nil {
		return err
	}

	numCells, err := stream.u16()
	if err != nil {
		return err
	}

	bankAttributes, err := stream.u16()
	if err != nil {
		return err
	}

	if err = expectSupported(chunk, "bank attributes", uint16(0), bankAttributes); err != nil {
		return err
	}

	checks := []struct {
		field       string
		want        uint32
		unsupported bool
	}{
		{"cell data offset", cellDataOffset, false},
		{"mapping mode", supportedMapping, true},
		{"VRAM transfer offset", 0, true},
		{"reserved", 0, false},
		{"user extended offset", 0, true},
	}

	for _, check := range checks {
		got, err := stream.u32()
		if err != nil {
			return err
		}

		if got != check.want {
			return &FormatError{
				Chunk:       chunk,
				Field:       check.field,
				Expected:    check.want,
				Actual:      got,
				Unsupported: check.unsupported,
			}
		}
	}

	if err = stream.need(int(numCells)*cellDescriptorSize, fmt.Sprintf("%d cell descriptors", numCells)); err != nil {
		return err
	}

	bank.Cells = make([]Cell, numCells)
	entryCounts := make([]uint16, numCells)

	for idx := range bank.Cells {
		if entryCounts[idx], err = stream.u16(); err != nil {
			return err
		}

		if bank.Cells[idx].Attributes, err = stream.u16(); err != nil {
			return err
		}

		// OAM data offset; records are read back to back instead
		if _, err = stream.u32(); err != nil {
			return err
		}
	}

	var attrs [oamAttributeFields]uint16

	for idx := range bank.Cells {
		cell := &bank.Cells[idx]

		if err = stream.need(int(entryCounts[idx])*oamEntrySize, fmt.Sprintf("cell %d objects", idx)); err != nil {
			return err
		}

		cell.OAM = make([]OamEntry, entryCounts[idx])

		for entry := range cell.OAM {
			for field := range attrs {
				if attrs[field], err = stream.u16(); err != nil {
					return fmt.Errorf("cell %d object %d: %w", idx, entry, err)
				}
			}

			cell.OAM[entry] = decodeOamEntry(attrs[0], attrs[1], attrs[2])
		}
	}

	// the section is padded to its declared size
	end := start + int(header.Size)
	if stream.pos > end {
		return &FormatError{Chunk: chunk, Field: "section size", Expected: stream.pos - start, Actual: header.Size}
	}

	return stream.skip(end - stream.pos)
}

func (bank *CellBank) decodeTrailer(stream *reader, policy SectionPolicy) error {
	header, ok, err := stream.optionalChunk()
	if err != nil {
		return err
	}

	if ok && header.Magic == TagLABL {
		if err = bank.decodeLABL(stream, header); err != nil {
			return fmt.Errorf("decoding labels: %w", err)
		}

		if header, ok, err = stream.optionalChunk(); err != nil {
			return err
		}
	} else {
		if ok && header.Magic != TagUEXT {
			return expect(TagLABL.String(), "magic", TagLABL, header.Magic)
		}

		if err = missing(TagLABL, policy); err != nil {
			return err
		}
	}

	if !ok {
		return missing(TagUEXT, policy)
	}

	if err = expect(TagUEXT.String(), "magic", TagUEXT, header.Magic); err != nil {
		return err
	}

	if err = decodeUEXT(stream, header); err != nil {
		return fmt.Errorf("decoding user extension: %w", err)
	}

	return stream.expectEOF(TagUEXT)
}

func missing(tag Tag, policy SectionPolicy) error {
	if policy == SectionsLenient {
		return nil
	}

	return fmt.Errorf("%s: %w", tag, ErrSectionMissing)
}

func (bank *CellBank) decodeLABL(stream *reader, header ChunkHeader) error {
	const offsetSize = 4

	chunk := TagLABL.String()

	tableSize := len(bank.Cells) * offsetSize
	blockSize := int(header.Size) - chunkHeaderSize - tableSize

	if blockSize < 0 {
		return &FormatError{Chunk: chunk, Field: "section size", Expected: fmt.Sprintf(">= %d", chunkHeaderSize+tableSize), Actual: header.Size}
	}

	// string offsets, one per cell
	if err := stream.skip(tableSize); err != nil {
		return err
	}

	block, err := stream.bytes(blockSize)
	if err != nil {
		return err
	}

	labels := make([]string, 0, len(bank.Cells))

	for _, name := range bytes.Split(block, []byte{0}) {
		if len(name) > 0 {
			labels = append(labels, string(name))
		}
	}

	if err = expect(chunk, "label count", len(bank.Cells), len(labels)); err != nil {
		return err
	}

	bank.Labels = labels

	return nil
}

func decodeUEXT(stream *reader, header ChunkHeader) error {
	const uextSize = 0x0c

	chunk := TagUEXT.String()

	if err := expect(chunk, "section size", uint32(uextSize), header.Size); err != nil {
		return err
	}

	reserved, err := stream.u32()
	if err != nil {
		return err
	}

	return expect(chunk, "reserved", uint32(0), reserved)
}

// Label returns the name of cell idx, or "" when labels are absent.
func (bank *CellBank) Label(idx int) string {
	if idx < 0 || idx >= len(bank.Labels) {
		return ""
	}

	return bank.Labels[idx]
}
