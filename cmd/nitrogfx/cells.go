package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/gravestench/nitrogfx/pkg"
	"github.com/gravestench/nitrogfx/pkg/lz"
)

func printCells(w io.Writer, bank *pkg.CellBank) {
	for idx, cell := range bank.Cells {
		name := bank.Label(idx)
		if name == "" {
			name = "-"
		}

		fmt.Fprintf(w, "cell %d %s attrs=%#04x objects=%d\n", idx, name, cell.Attributes, len(cell.OAM))

		for _, obj := range cell.OAM {
			width, height := obj.Dimensions()

			fmt.Fprintf(w, "  (%d,%d) %dx%d char=%d pal=%d prio=%d", obj.X, obj.Y, width, height, obj.Char, obj.Palette, obj.Priority)

			switch {
			case obj.RotateScale:
				fmt.Fprintf(w, " matrix=%d", obj.Matrix)
				if obj.DoubleSize {
					fmt.Fprint(w, " double")
				}
			case obj.Disabled:
				fmt.Fprint(w, " disabled")
			default:
				if obj.HFlip {
					fmt.Fprint(w, " hflip")
				}
				if obj.VFlip {
					fmt.Fprint(w, " vflip")
				}
			}

			fmt.Fprintln(w)
		}
	}
}

func decompressFile(in, out string, logger zerolog.Logger) error {
	fileData, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	data, err := lz.Decompress(fileData)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	if !lz.IsCompressed(fileData) {
		logger.Warn().Str("file", in).Msg("input is not compressed, copying as is")
	}

	logger.Info().Str("file", out).Int("in", len(fileData)).Int("out", len(data)).Msg("decompressed")

	return os.WriteFile(out, data, 0o644)
}
