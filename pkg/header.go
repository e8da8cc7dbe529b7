package pkg

import (
	"fmt"
)

// Tag is a four character section identifier. Tags are compared as the
// little-endian u32 found on disk, so the bytes of "NCLR" are stored as "RLCN".
type Tag uint32

const (
	TagNCLR Tag = 0x4e434c52
	TagPLTT Tag = 0x504c5454
	TagPCMP Tag = 0x50434d50

	TagNCGR Tag = 0x4e434752
	TagCHAR Tag = 0x43484152
	TagCPOS Tag = 0x43504f53

	TagNSCR Tag = 0x4e534352
	TagSCRN Tag = 0x5343524e

	TagNCER Tag = 0x4e434552
	TagCEBK Tag = 0x4345424b
	TagLABL Tag = 0x4c41424c
	TagUEXT Tag = 0x55455854
)

func (t Tag) String() string {
	b := []byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}

	for _, c := range b {
		if c < ' ' || c > '~' {
			return fmt.Sprintf("%#08x", uint32(t))
		}
	}

	return string(b)
}

// FileHeader is the 16 byte header opening every resource file.
type FileHeader struct {
	Magic        Tag
	ByteOrder    uint16
	Version      uint16
	FileSize     uint32
	HeaderSize   uint16
	SectionCount uint16
}

// ChunkHeader opens every section inside a resource file. Size counts the
// header itself.
type ChunkHeader struct {
	Magic Tag
	Size  uint32
}

const chunkHeaderSize = 8

// ReadFileHeader decodes the header at the start of an already decompressed
// resource without validating its magic.
func ReadFileHeader(data []byte) (FileHeader, error) {
	return newReader(data).fileHeader()
}

func (r *reader) fileHeader() (h FileHeader, err error) {
	magic, err := r.u32()
	if err != nil {
		return h, err
	}

	h.Magic = Tag(magic)

	if h.ByteOrder, err = r.u16(); err != nil {
		return h, err
	}

	if h.Version, err = r.u16(); err != nil {
		return h, err
	}

	if h.FileSize, err = r.u32(); err != nil {
		return h, err
	}

	if h.HeaderSize, err = r.u16(); err != nil {
		return h, err
	}

	h.SectionCount, err = r.u16()

	return h, err
}

func (r *reader) expectFileHeader(want Tag) (FileHeader, error) {
	h, err := r.fileHeader()
	if err != nil {
		return h, err
	}

	return h, expect(want.String(), "magic", want, h.Magic)
}

func (r *reader) chunkHeader() (h ChunkHeader, err error) {
	magic, err := r.u32()
	if err != nil {
		return h, err
	}

	h.Magic = Tag(magic)
	h.Size, err = r.u32()

	return h, err
}

func (r *reader) expectChunk(want Tag) (ChunkHeader, error) {
	h, err := r.chunkHeader()
	if err != nil {
		return h, err
	}

	return h, expect(want.String(), "magic", want, h.Magic)
}

// optionalChunk reads the next section header, reporting false when the
// buffer is exhausted.
func (r *reader) optionalChunk() (ChunkHeader, bool, error) {
	if r.remaining() == 0 {
		return ChunkHeader{}, false, nil
	}

	h, err := r.chunkHeader()

	return h, err == nil, err
}

// bitDepth decodes the 1<<(n-1) encoding used by palette and tile sections.
func bitDepth(chunk string, raw uint32) (int, error) {
	switch raw {
	case 3:
		return 4, nil
	case 4:
		return 8, nil
	}

	return 0, &FormatError{Chunk: chunk, Field: "bit depth field", Expected: "3 or 4", Actual: raw}
}
