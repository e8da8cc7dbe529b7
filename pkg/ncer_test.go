package pkg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOamEntry(t *testing.T) {
	t.Run("flipped", func(t *testing.T) {
		e := decodeOamEntry(0x60f0, 0x91f8, 0x3805)

		assert.Equal(t, OamEntry{
			Y:         -16,
			X:         -8,
			Colors256: true,
			Shape:     1,
			HFlip:     true,
			Size:      2,
			Char:      5,
			Priority:  2,
			Palette:   3,
		}, e)

		w, h := e.Dimensions()
		assert.Equal(t, 32, w)
		assert.Equal(t, 16, h)
	})

	t.Run("rotate and scale", func(t *testing.T) {
		e := decodeOamEntry(0x0310|2<<10|1<<12, 0x3e20, 0)

		assert.True(t, e.RotateScale)
		assert.True(t, e.DoubleSize)
		assert.False(t, e.Disabled)
		assert.Equal(t, uint8(0x1f), e.Matrix)
		assert.False(t, e.HFlip)
		assert.False(t, e.VFlip)
		assert.Equal(t, 16, e.Y)
		assert.Equal(t, 32, e.X)
		assert.Equal(t, ObjModeWindow, e.Mode)
		assert.True(t, e.Mosaic)
	})

	t.Run("disabled", func(t *testing.T) {
		e := decodeOamEntry(1<<9, 1<<13, 0)

		assert.True(t, e.Disabled)
		assert.False(t, e.DoubleSize)
		assert.True(t, e.VFlip)
		assert.Equal(t, uint8(0), e.Matrix)
	})

	t.Run("prohibited shape", func(t *testing.T) {
		w, h := decodeOamEntry(3<<14, 0, 0).Dimensions()
		assert.Zero(t, w)
		assert.Zero(t, h)
	})
}

func twoCells() cellBankFixture {
	f := newCellBankFixture(
		cellFixture{attrs: 0x0001, oam: [][3]uint16{{0x60f0, 0x91f8, 0x3805}}},
		cellFixture{attrs: 0x0002, oam: [][3]uint16{{0x0000, 0x0000, 0x0001}, {0x0008, 0x0008, 0x0002}}},
	)
	f.labels = []string{"idle", "walk"}

	return f
}

func TestDecodeCells(t *testing.T) {
	bank, err := DecodeCells(twoCells().bytes())
	require.NoError(t, err)

	assert.Equal(t, TagNCER, bank.Header.Magic)
	require.Len(t, bank.Cells, 2)

	assert.Equal(t, uint16(1), bank.Cells[0].Attributes)
	require.Len(t, bank.Cells[0].OAM, 1)
	assert.Equal(t, -16, bank.Cells[0].OAM[0].Y)

	assert.Equal(t, uint16(2), bank.Cells[1].Attributes)
	require.Len(t, bank.Cells[1].OAM, 2)
	assert.Equal(t, uint16(2), bank.Cells[1].OAM[1].Char)
	assert.Equal(t, 8, bank.Cells[1].OAM[1].X)

	assert.Equal(t, []string{"idle", "walk"}, bank.Labels)
	assert.Equal(t, "walk", bank.Label(1))
	assert.Equal(t, "", bank.Label(2))
}

func TestDecodeCells_SectionPadding(t *testing.T) {
	f := twoCells()
	f.padding = 2

	bank, err := DecodeCells(f.bytes())
	require.NoError(t, err)
	assert.Len(t, bank.Cells, 2)
}

func TestDecodeCells_Empty(t *testing.T) {
	f := newCellBankFixture()

	bank, err := DecodeCells(f.bytes())
	require.NoError(t, err)
	assert.Empty(t, bank.Cells)
	assert.Empty(t, bank.Labels)
}

func TestDecodeCells_MissingSections(t *testing.T) {
	tests := []struct {
		name       string
		withLabels bool
		withUEXT   bool
		strictErr  bool
		labels     []string
	}{
		{name: "all present", withLabels: true, withUEXT: true, labels: []string{"idle", "walk"}},
		{name: "no labels", withUEXT: true, strictErr: true},
		{name: "no user extension", withLabels: true, strictErr: true, labels: []string{"idle", "walk"}},
		{name: "neither", strictErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := twoCells()
			f.withLabels, f.withUEXT = tt.withLabels, tt.withUEXT

			_, err := DecodeCells(f.bytes())
			if tt.strictErr {
				assert.ErrorIs(t, err, ErrSectionMissing)
			} else {
				assert.NoError(t, err)
			}

			bank, err := DecodeCells(f.bytes(), WithSectionPolicy(SectionsLenient))
			require.NoError(t, err)
			assert.Len(t, bank.Cells, 2)
			assert.Equal(t, tt.labels, bank.Labels)
		})
	}
}

func TestDecodeCells_Errors(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(f *cellBankFixture)
		extra       []byte
		target      error
		unsupported bool
	}{
		{
			name:        "extended bank attributes",
			mutate:      func(f *cellBankFixture) { f.bankAttrs = 1 },
			target:      ErrUnsupported,
			unsupported: true,
		},
		{
			name:   "cell data offset",
			mutate: func(f *cellBankFixture) { f.constants[0] = 28 },
			target: ErrFormat,
		},
		{
			name:        "mapping mode",
			mutate:      func(f *cellBankFixture) { f.constants[1] = 1 },
			target:      ErrUnsupported,
			unsupported: true,
		},
		{
			name:        "VRAM transfer",
			mutate:      func(f *cellBankFixture) { f.constants[2] = 0x40 },
			target:      ErrUnsupported,
			unsupported: true,
		},
		{
			name:   "reserved field",
			mutate: func(f *cellBankFixture) { f.constants[3] = 1 },
			target: ErrFormat,
		},
		{
			name:        "user extended offset",
			mutate:      func(f *cellBankFixture) { f.constants[4] = 1 },
			target:      ErrUnsupported,
			unsupported: true,
		},
		{
			name:   "label count",
			mutate: func(f *cellBankFixture) { f.labels = f.labels[:1] },
			target: ErrFormat,
		},
		{
			name:   "user extension payload",
			mutate: func(f *cellBankFixture) { f.uextPayload = 1 },
			target: ErrFormat,
		},
		{
			name:   "trailing data",
			extra:  []byte{0},
			target: ErrTrailingData,
		},
		{
			name:   "unexpected section",
			mutate: func(f *cellBankFixture) { f.withLabels, f.withUEXT = false, false },
			extra:  []byte("XXXX\x08\x00\x00\x00"),
			target: ErrFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := twoCells()
			if tt.mutate != nil {
				tt.mutate(&f)
			}

			_, err := DecodeCells(append(f.bytes(), tt.extra...))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.unsupported, errors.Is(err, ErrUnsupported))
		})
	}
}

func TestDecodeCells_Truncated(t *testing.T) {
	data := twoCells().bytes()

	// cut inside the object records
	_, err := DecodeCells(data[:16+32+16+8])
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeCells_ObjectCountExceedsData(t *testing.T) {
	b := &builder{}
	b.fileHeader(TagNCER, 1)
	b.tag(TagCEBK).u32(0x28).u16(1, 0).u32(24, 2, 0, 0, 0)
	b.u16(0xffff, 0).u32(0)

	_, err := DecodeCells(b.bytes())
	assert.ErrorIs(t, err, ErrTruncated)
	assert.ErrorContains(t, err, "cell 0 objects")
}
