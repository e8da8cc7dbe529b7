package pkg

import (
	"image"
	"image/draw"
)

// Compose renders a tilemap through its tileset and palette. Every pixel is a
// direct table lookup; nothing is blended.
func Compose(m *Tilemap, ts *Tileset, p *Palette) (*image.NRGBA, error) {
	if len(m.Map) != m.Width*m.Height {
		return nil, &FormatError{Chunk: TagSCRN.String(), Field: "map length", Expected: m.Width * m.Height, Actual: len(m.Map)}
	}

	img := image.NewNRGBA(image.Rect(0, 0, m.Width*tileSide, m.Height*tileSide))

	for idx, ref := range m.Map {
		tx, ty := idx%m.Width, idx/m.Width

		if int(ref.ID) >= len(ts.Tiles) {
			return nil, &ReferenceError{X: tx, Y: ty, What: "tile", Index: int(ref.ID), Limit: len(ts.Tiles)}
		}

		if int(ref.Palette) >= len(p.Palettes) {
			return nil, &ReferenceError{X: tx, Y: ty, What: "palette", Index: int(ref.Palette), Limit: len(p.Palettes)}
		}

		tile, table := &ts.Tiles[ref.ID], p.Palettes[ref.Palette]

		for px, colorIdx := range tile {
			if int(colorIdx) >= len(table) {
				return nil, &ReferenceError{X: tx, Y: ty, What: "color", Index: int(colorIdx), Limit: len(table)}
			}

			img.SetNRGBA(tx*tileSide+px%tileSide, ty*tileSide+px/tileSide, table[colorIdx])
		}
	}

	return img, nil
}

// Sheet lays every tile of a tileset out on its own grid using one colour
// table. Indices outside the table come out transparent.
func Sheet(ts *Tileset, table ColorTable) *image.NRGBA {
	w, h := ts.Width, ts.Height
	if w*h < len(ts.Tiles) {
		w, h = canonicalTilesetWidth, (len(ts.Tiles)+canonicalTilesetWidth-1)/canonicalTilesetWidth
	}

	img := image.NewNRGBA(image.Rect(0, 0, w*tileSide, h*tileSide))

	for idx := range ts.Tiles {
		at := image.Pt(idx%w*tileSide, idx/w*tileSide)
		tile := ts.Tiles[idx].Image(table)

		draw.Draw(img, tile.Bounds().Add(at), tile, image.Point{}, draw.Src)
	}

	return img
}
