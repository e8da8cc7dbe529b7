package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/image/draw"

	"github.com/gravestench/nitrogfx/pkg"
)

type renderJob struct {
	palette, tileset, tilemap string
	output                    string
	scale                     int
}

func render(job renderJob, opts []pkg.Option, logger zerolog.Logger) error {
	paletteRes, err := loadResource(job.palette)
	if err != nil {
		return err
	}

	palette, err := paletteRes.palette(opts)
	if err != nil {
		return err
	}

	tilesetRes, err := loadResource(job.tileset)
	if err != nil {
		return err
	}

	tileset, err := tilesetRes.tileset()
	if err != nil {
		return err
	}

	if tileset.Recounted {
		logger.Warn().Str("file", job.tileset).Msg("tileset header dimensions disagree with its data, using a 32 tile wide grid")
	}

	tilemapRes, err := loadResource(job.tilemap)
	if err != nil {
		return err
	}

	tilemap, err := tilemapRes.tilemap()
	if err != nil {
		return err
	}

	logger.Debug().
		Int("palettes", len(palette.Palettes)).
		Int("tiles", len(tileset.Tiles)).
		Int("width", tilemap.Width).
		Int("height", tilemap.Height).
		Msg("decoded")

	img, err := pkg.Compose(tilemap, tileset, palette)
	if err != nil {
		return fmt.Errorf("composing: %w", err)
	}

	return writePNG(job.output, scaleImage(img, job.scale), logger)
}

// renderSheet writes every tile of a tileset using one colour table, or a
// grey ramp when no palette is given.
func renderSheet(tilesetPath, palettePath string, table int, output string, scale int, opts []pkg.Option, logger zerolog.Logger) error {
	tilesetRes, err := loadResource(tilesetPath)
	if err != nil {
		return err
	}

	tileset, err := tilesetRes.tileset()
	if err != nil {
		return err
	}

	colors := pkg.GrayscaleTable(256)

	if palettePath != "" {
		paletteRes, err := loadResource(palettePath)
		if err != nil {
			return err
		}

		palette, err := paletteRes.palette(opts)
		if err != nil {
			return err
		}

		if table < 0 || table >= len(palette.Palettes) {
			return fmt.Errorf("%s: palette %d out of range [0,%d)", palettePath, table, len(palette.Palettes))
		}

		colors = palette.Palettes[table]
	}

	return writePNG(output, scaleImage(pkg.Sheet(tileset, colors), scale), logger)
}

func scaleImage(src *image.NRGBA, scale int) image.Image {
	if scale <= 1 {
		return src
	}

	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	return dst
}

func writePNG(path string, img image.Image, logger zerolog.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	b := img.Bounds()
	logger.Info().Str("file", path).Int("width", b.Dx()).Int("height", b.Dy()).Msg("wrote image")

	return f.Close()
}
