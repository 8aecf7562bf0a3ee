package main

import (
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/redwoodmap/internal/config"
	"github.com/woozymasta/redwoodmap/internal/geo"
	"github.com/woozymasta/redwoodmap/internal/logger"
	"github.com/woozymasta/redwoodmap/internal/mapdoc"
	"github.com/woozymasta/redwoodmap/internal/preview"
	"github.com/woozymasta/redwoodmap/internal/render"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"  description:"Optional YAML file overriding the built-in regions and map settings"`
	Output     string `short:"o" long:"out"     description:"Output HTML file" default:"show_redwood_areas.html"`
	Preview    string `short:"P" long:"preview" description:"Also write a WebP preview of the regions to this path"`
	Minify     bool   `short:"m" long:"minify"  description:"Minify the HTML output"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	if err := run(opts, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("Failed to create map")
	}
}

// run builds the map document from the configuration, saves it and
// reports completion to stdout. No file is written if any stage fails.
func run(opts Options, stdout io.Writer) error {
	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			return fmt.Errorf("load configuration %s: %w", opts.ConfigFile, err)
		}
	}

	fc, err := geo.BuildFeatures(cfg.Regions)
	if err != nil {
		return err
	}

	log.Debug().
		Int("regions", len(fc.Features)).
		Str("crs", fc.CRS).
		Msg("Region geometry built")

	doc, err := mapdoc.Build(cfg.View, cfg.BaseLayers, fc, cfg.Legend, mapdoc.FixedStyle(cfg.Style))
	if err != nil {
		return fmt.Errorf("assemble map document: %w", err)
	}

	// the preview is encoded before anything touches the disk
	var previewData []byte
	if opts.Preview != "" {
		popts := preview.DefaultOptions()
		popts.Style = cfg.Style
		if previewData, err = preview.Render(fc, popts); err != nil {
			return fmt.Errorf("render preview: %w", err)
		}
	}

	if err := render.Write(doc, opts.Output, render.Options{Title: cfg.Title, Minify: opts.Minify}); err != nil {
		return err
	}

	if previewData != nil {
		if err := preview.Save(opts.Preview, previewData); err != nil {
			if rmErr := os.Remove(opts.Output); rmErr != nil {
				log.Error().Err(rmErr).Str("path", opts.Output).Msg("Failed to remove map after preview failure")
			}
			return fmt.Errorf("write preview %s: %w", opts.Preview, err)
		}
	}

	return render.Report(stdout, opts.Output)
}
