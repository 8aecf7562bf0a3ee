// Package config handles configuration loading and the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/woozymasta/redwoodmap/internal/catalog"
	"github.com/woozymasta/redwoodmap/internal/mapdoc"

	"gopkg.in/yaml.v3"
)

// DefaultOutput is the file written when no output path is given.
const DefaultOutput = "show_redwood_areas.html"

// DefaultLegend is the legend markup fixed to the bottom left corner.
const DefaultLegend = `<div style="position: fixed; bottom: 50px; left: 50px; z-index: 1000; padding: 10px; background-color: white; border: 2px solid grey; border-radius: 5px;">
    <h4>Legend</h4>
    <p><span style="color: green;">████</span> Redwood Areas</p>
</div>`

// ErrDuplicateRegion is returned when two regions share a name.
var ErrDuplicateRegion = errors.New("duplicate region name")

// Config represents the root configuration file structure.
// Fields absent from a loaded file keep their default values.
type Config struct {
	Title      string             `yaml:"title,omitempty"`
	Legend     string             `yaml:"legend,omitempty"`
	View       mapdoc.View        `yaml:"view"`
	Style      mapdoc.Style       `yaml:"style"`
	BaseLayers []mapdoc.BaseLayer `yaml:"base_layers"`
	Regions    []catalog.Region   `yaml:"regions"`
}

// Default returns the built-in redwood map configuration.
func Default() *Config {
	return &Config{
		Title:  "Redwood Areas",
		Legend: DefaultLegend,
		View: mapdoc.View{
			Center: mapdoc.LatLng{Lat: 41.6, Lon: -124.0},
			Zoom:   7,
		},
		Style: mapdoc.DefaultStyle(),
		BaseLayers: []mapdoc.BaseLayer{
			{Source: "Esri.WorldImagery", Name: "Satellite Imagery", Attribution: "Esri World Imagery"},
			{Source: "OpenStreetMap", Name: "OpenStreetMap"},
		},
		Regions: catalog.Default(),
	}
}

// Load reads and parses the YAML configuration file from the specified path
// on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML configuration on top of the defaults.
// Fields absent from the document keep their default values, so a partial
// view or style section only overrides what it sets. Lists given in the
// document replace the default lists entirely.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks for problems the later stages would not report clearly.
// Region geometry is checked when features are built.
func (c *Config) Validate() error {
	if err := c.View.Validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Regions))
	for _, r := range c.Regions {
		if seen[r.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateRegion, r.Name)
		}
		seen[r.Name] = true
	}

	return nil
}
