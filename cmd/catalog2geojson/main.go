package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/woozymasta/redwoodmap/internal/config"
	"github.com/woozymasta/redwoodmap/internal/geo"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	ConfigFile string `short:"c" long:"config" description:"YAML configuration with regions. Built-in regions if empty"`
	Output     string `short:"o" long:"out"    description:"Output file path. Writes to stdout if empty"`
	Format     string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
}

// yamlFeature mirrors a GeoJSON feature for YAML output.
type yamlFeature struct {
	Type       string         `yaml:"type"`
	Properties map[string]any `yaml:"properties"`
	Geometry   struct {
		Type        string        `yaml:"type"`
		Coordinates [][][]float64 `yaml:"coordinates"`
	} `yaml:"geometry"`
}

type yamlCollection struct {
	Type     string        `yaml:"type"`
	Features []yamlFeature `yaml:"features"`
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

	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
	}

	fc, err := geo.BuildFeatures(cfg.Regions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building regions: %v\n", err)
		os.Exit(1)
	}

	// marshal
	var outputData []byte
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(toYAML(fc))
	} else {
		outputData, err = json.MarshalIndent(fc.GeoJSON(), "", "  ")
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, outputData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully exported %d regions to %s (format: %s)\n", len(fc.Features), opts.Output, opts.Format)
	} else {
		fmt.Println(string(outputData))
	}
}

func toYAML(fc geo.FeatureCollection) yamlCollection {
	out := yamlCollection{
		Type:     "FeatureCollection",
		Features: make([]yamlFeature, 0, len(fc.Features)),
	}

	for _, f := range fc.Features {
		yf := yamlFeature{
			Type:       "Feature",
			Properties: map[string]any{"name": f.Name},
		}
		yf.Geometry.Type = "Polygon"
		for _, ring := range f.Polygon {
			coords := make([][]float64, 0, len(ring))
			for _, p := range ring {
				coords = append(coords, []float64{p[0], p[1]})
			}
			yf.Geometry.Coordinates = append(yf.Geometry.Coordinates, coords)
		}
		out.Features = append(out.Features, yf)
	}

	return out
}
