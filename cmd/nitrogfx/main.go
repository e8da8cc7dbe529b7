package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/gravestench/nitrogfx/pkg"
)

const defaultConfigFile = "nitrogfx.toml"

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// setup loads the config and applies any decode flags given on the command line.
func setup(c *cli.Context) (*Config, []pkg.Option, zerolog.Logger, error) {
	logger := newLogger(c.Bool("verbose"))

	cfg, err := LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, logger, err
	}

	if c.IsSet("alpha") {
		cfg.Decode.Alpha = c.String("alpha")
	}

	if c.IsSet("sections") {
		cfg.Decode.Sections = c.String("sections")
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, nil, logger, err
	}

	return cfg, opts, logger, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "nitrogfx"
	app.Usage = "decode Nitro palette, tile, screen and cell resources"
	app.Version = "0.1.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"NITROGFX_CONFIG"},
			Value:   defaultConfigFile,
			Usage:   "path to TOML config",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.StringFlag{
			Name:  "alpha",
			Usage: "palette alpha: opaque or flag",
		},
		&cli.StringFlag{
			Name:  "sections",
			Usage: "missing cell sections: strict or lenient",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:  "render",
			Usage: "Compose a tilemap into a PNG",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "nclr", Usage: "palette `FILE`", Required: true},
				&cli.StringFlag{Name: "ncgr", Usage: "tileset `FILE`", Required: true},
				&cli.StringFlag{Name: "nscr", Usage: "tilemap `FILE`", Required: true},
				&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output PNG `FILE`", Required: true},
				&cli.IntFlag{Name: "scale", Usage: "integer upscale factor"},
			},
			Action: func(c *cli.Context) error {
				cfg, opts, logger, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				scale := cfg.Render.Scale
				if c.IsSet("scale") {
					scale = c.Int("scale")
				}

				job := renderJob{
					palette: c.String("nclr"),
					tileset: c.String("ncgr"),
					tilemap: c.String("nscr"),
					output:  c.String("output"),
					scale:   scale,
				}

				if err := render(job, opts, logger); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "sheet",
			Usage:     "Write every tile of a tileset to a PNG",
			ArgsUsage: "NCGR",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "nclr", Usage: "palette `FILE`, grey ramp when omitted"},
				&cli.IntFlag{Name: "table", Usage: "colour table index"},
				&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output PNG `FILE`", Required: true},
				&cli.IntFlag{Name: "scale", Usage: "integer upscale factor"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, opts, logger, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				scale := cfg.Render.Scale
				if c.IsSet("scale") {
					scale = c.Int("scale")
				}

				err = renderSheet(c.Args().First(), c.String("nclr"), c.Int("table"), c.String("output"), scale, opts, logger)
				if err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "info",
			Usage:     "Summarise resource files",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "workers", Usage: "number of files decoded at once"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, opts, logger, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				workers := cfg.Info.Workers
				if c.IsSet("workers") {
					workers = c.Int("workers")
				}

				lines, err := describeFiles(c.Args().Slice(), workers, opts, logger)
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, line := range lines {
					fmt.Fprintln(c.App.Writer, line)
				}

				return nil
			},
		},
		{
			Name:      "cells",
			Usage:     "List the cells and objects of an NCER file",
			ArgsUsage: "NCER",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				_, opts, _, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				res, err := loadResource(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				bank, err := res.cells(opts)
				if err != nil {
					return cli.Exit(err, 1)
				}

				printCells(c.App.Writer, bank)

				return nil
			},
		},
		{
			Name:      "decompress",
			Usage:     "Write the decompressed contents of a file",
			ArgsUsage: "IN OUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				_, _, logger, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := decompressFile(c.Args().Get(0), c.Args().Get(1), logger); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger := newLogger(false)
		logger.Fatal().Err(err).Msg("")
	}
}
