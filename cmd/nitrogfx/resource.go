package main

import (
	"fmt"
	"os"

	"github.com/gravestench/nitrogfx/pkg"
	"github.com/gravestench/nitrogfx/pkg/lz"
)

// resource is a file read from disk and decompressed.
type resource struct {
	path       string
	compressed bool
	header     pkg.FileHeader
	data       []byte
}

func loadResource(path string) (*resource, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data, err := lz.Decompress(fileData)
	if err != nil {
		return nil, fmt.Errorf("%s: decompressing: %w", path, err)
	}

	header, err := pkg.ReadFileHeader(data)
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", path, err)
	}

	return &resource{
		path:       path,
		compressed: lz.IsCompressed(fileData),
		header:     header,
		data:       data,
	}, nil
}

func (r *resource) palette(opts []pkg.Option) (*pkg.Palette, error) {
	p, err := pkg.DecodePalette(r.data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}

	return p, nil
}

func (r *resource) tileset() (*pkg.Tileset, error) {
	ts, err := pkg.DecodeTileset(r.data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}

	return ts, nil
}

func (r *resource) tilemap() (*pkg.Tilemap, error) {
	m, err := pkg.DecodeTilemap(r.data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}

	return m, nil
}

func (r *resource) cells(opts []pkg.Option) (*pkg.CellBank, error) {
	bank, err := pkg.DecodeCells(r.data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}

	return bank, nil
}

// summary decodes the resource by its magic and describes it in one line.
func (r *resource) summary(opts []pkg.Option) (string, error) {
	switch r.header.Magic {
	case pkg.TagNCLR:
		p, err := r.palette(opts)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s palette: %d tables of %d colors", p.Header.Magic, len(p.Palettes), p.ColorsPerTable()), nil
	case pkg.TagNCGR:
		ts, err := r.tileset()
		if err != nil {
			return "", err
		}

		s := fmt.Sprintf("%s tileset: %d tiles, %dx%d grid", ts.Header.Magic, len(ts.Tiles), ts.Width, ts.Height)
		if ts.Recounted {
			s += " (recounted from data size)"
		}

		return s, nil
	case pkg.TagNSCR:
		m, err := r.tilemap()
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s tilemap: %dx%d tiles", m.Header.Magic, m.Width, m.Height), nil
	case pkg.TagNCER:
		bank, err := r.cells(opts)
		if err != nil {
			return "", err
		}

		objects := 0
		for _, cell := range bank.Cells {
			objects += len(cell.OAM)
		}

		return fmt.Sprintf("%s cells: %d cells, %d objects, %d labels", bank.Header.Magic, len(bank.Cells), objects, len(bank.Labels)), nil
	}

	return "", fmt.Errorf("%s: unknown resource magic %s", r.path, r.header.Magic)
}
