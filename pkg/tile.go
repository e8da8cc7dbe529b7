package pkg

import (
	"image"
	"image/color"
	"math"
)

var _ image.PalettedImage = &TileImage{}

// TileImage presents a tile through one colour table.
type TileImage struct {
	tile  *Tile
	table ColorTable
}

// Image binds the tile to a colour table.
func (t *Tile) Image(table ColorTable) *TileImage {
	return &TileImage{tile: t, table: table}
}

func (ti *TileImage) ColorModel() color.Model {
	return ti.table.Palette()
}

func (ti *TileImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, tileSide, tileSide)
}

func (ti *TileImage) ColorIndexAt(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}.In(ti.Bounds())) {
		return 0
	}

	return ti.tile[y*tileSide+x]
}

func (ti *TileImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(ti.Bounds())) {
		return color.Transparent
	}

	idx := int(ti.ColorIndexAt(x, y))
	if idx >= len(ti.table) {
		return color.Transparent
	}

	return ti.table[idx]
}

// GrayscaleTable returns a table mapping every index to a grey of the same
// intensity, for viewing tiles without a palette resource.
func GrayscaleTable(numColors int) ColorTable {
	table := make(ColorTable, numColors)

	step := 1
	if numColors > 1 && numColors < 256 {
		step = 255 / (numColors - 1)
	}

	for idx := range table {
		v := uint8(idx * step)
		table[idx] = color.NRGBA{R: v, G: v, B: v, A: math.MaxUint8}
	}

	return table
}
