package nitrogfx

import (
	"image"

	"github.com/gravestench/nitrogfx/pkg"
	"github.com/gravestench/nitrogfx/pkg/lz"
)

type (
	Palette       = pkg.Palette
	ColorTable    = pkg.ColorTable
	Tileset       = pkg.Tileset
	Tile          = pkg.Tile
	Tilemap       = pkg.Tilemap
	TileRef       = pkg.TileRef
	CellBank      = pkg.CellBank
	Cell          = pkg.Cell
	OamEntry      = pkg.OamEntry
	Tag           = pkg.Tag
	FileHeader    = pkg.FileHeader
	Option        = pkg.Option
	AlphaMode     = pkg.AlphaMode
	SectionPolicy = pkg.SectionPolicy
	FormatError   = pkg.FormatError
)

// PaletteFromBytes decodes an NCLR file, compressed or not.
func PaletteFromBytes(fileData []byte, opts ...Option) (*Palette, error) {
	data, err := lz.Decompress(fileData)
	if err != nil {
		return nil, err
	}

	return pkg.DecodePalette(data, opts...)
}

// TilesetFromBytes decodes an NCGR file, compressed or not.
func TilesetFromBytes(fileData []byte) (*Tileset, error) {
	data, err := lz.Decompress(fileData)
	if err != nil {
		return nil, err
	}

	return pkg.DecodeTileset(data)
}

// TilemapFromBytes decodes an NSCR file, compressed or not.
func TilemapFromBytes(fileData []byte) (*Tilemap, error) {
	data, err := lz.Decompress(fileData)
	if err != nil {
		return nil, err
	}

	return pkg.DecodeTilemap(data)
}

// CellsFromBytes decodes an NCER file, compressed or not.
func CellsFromBytes(fileData []byte, opts ...Option) (*CellBank, error) {
	data, err := lz.Decompress(fileData)
	if err != nil {
		return nil, err
	}

	return pkg.DecodeCells(data, opts...)
}

// Compose renders a tilemap into an image using the given tileset and palette.
func Compose(m *Tilemap, ts *Tileset, p *Palette) (*image.NRGBA, error) {
	return pkg.Compose(m, ts, p)
}

// WithAlpha sets how palette colours derive their alpha.
func WithAlpha(mode AlphaMode) Option {
	return pkg.WithAlpha(mode)
}

// WithSectionPolicy sets how a cell bank without LABL or UEXT is treated.
func WithSectionPolicy(policy SectionPolicy) Option {
	return pkg.WithSectionPolicy(policy)
}
