// Package mapdoc assembles an interactive map document: base tile layers,
// styled region overlays with tooltips, a legend and a layer control.
//
// A Document is built by sequential additions and then sealed. Once sealed
// (the renderer seals every document it serializes) further additions fail
// with ErrSealed.
package mapdoc

import (
	"errors"
	"fmt"

	"github.com/woozymasta/redwoodmap/internal/geo"
)

var (
	// ErrSealed is returned when modifying a document after serialization.
	ErrSealed = errors.New("map document is sealed")

	// ErrInvalidView is returned for an out of range center or zoom.
	ErrInvalidView = errors.New("invalid map view")

	// ErrNoBaseLayers is returned when building a document without tiles.
	ErrNoBaseLayers = errors.New("at least one base layer is required")

	// ErrDuplicateOverlay is returned when two overlays share a name.
	ErrDuplicateOverlay = errors.New("duplicate overlay name")

	// ErrDuplicateBaseLayer is returned when two base layers share a name.
	ErrDuplicateBaseLayer = errors.New("duplicate base layer name")

	// ErrNoTileSource is returned for a base layer without a source.
	ErrNoTileSource = errors.New("base layer has no tile source")
)

// State is the lifecycle state of a Document.
type State int

const (
	// Building documents accept additions.
	Building State = iota
	// Sealed documents are read-only.
	Sealed
)

func (s State) String() string {
	if s == Sealed {
		return "sealed"
	}
	return "building"
}

// LatLng is a geographic position in degrees.
type LatLng struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

// View is the initial map viewport.
type View struct {
	Center LatLng `yaml:"center" json:"center"`
	Zoom   int    `yaml:"zoom" json:"zoom"`
}

// Validate checks the center is a WGS84 position and the zoom is positive.
func (v View) Validate() error {
	if v.Center.Lat < -90 || v.Center.Lat > 90 || v.Center.Lon < -180 || v.Center.Lon > 180 {
		return fmt.Errorf("%w: center %v,%v out of range", ErrInvalidView, v.Center.Lat, v.Center.Lon)
	}
	if v.Zoom <= 0 {
		return fmt.Errorf("%w: zoom must be > 0, got %d", ErrInvalidView, v.Zoom)
	}

	return nil
}

// BaseLayer is a mutually exclusive background tile layer.
type BaseLayer struct {
	// Source is a provider name (see ResolveProvider) or a URL template.
	Source      string `yaml:"source" json:"-"`
	Name        string `yaml:"name" json:"name"`
	Attribution string `yaml:"attribution,omitempty" json:"attribution"`
	URL         string `yaml:"-" json:"url"`
	MaxZoom     int    `yaml:"max_zoom,omitempty" json:"maxZoom,omitempty"`
	Default     bool   `yaml:"default,omitempty" json:"default"`
}

// resolve fills URL, attribution and max zoom from a known provider.
// Explicit values in the layer win over provider defaults.
func (l BaseLayer) resolve() BaseLayer {
	if l.Name == "" {
		l.Name = l.Source
	}

	p, ok := ResolveProvider(l.Source)
	if !ok {
		l.URL = l.Source
		return l
	}

	l.URL = p.URL
	if l.Attribution == "" {
		l.Attribution = p.Attribution
	}
	if l.MaxZoom == 0 {
		l.MaxZoom = p.MaxZoom
	}

	return l
}

// Overlay is a rendered region polygon.
type Overlay struct {
	Name    string
	Tooltip string
	Style   Style
	Feature geo.Feature
}

// Legend is a static markup element fixed to the viewport.
type Legend struct {
	HTML string
}

// LayerControl lists base layers and overlays for the user to toggle.
type LayerControl struct {
	BaseLayers []string
	Overlays   []string
	Collapsed  bool
}

// Document is a map under construction.
type Document struct {
	view       View
	baseLayers []BaseLayer
	overlays   []Overlay
	names      map[string]struct{}
	baseNames  map[string]struct{}
	legend     *Legend
	control    *LayerControl
	state      State
}

// New creates an empty document in the Building state.
func New(view View) (*Document, error) {
	if err := view.Validate(); err != nil {
		return nil, err
	}

	return &Document{
		view:      view,
		names:     make(map[string]struct{}),
		baseNames: make(map[string]struct{}),
	}, nil
}

// AddBaseLayer appends a tile layer. The first layer added is the one shown
// by default, later layers are hidden whatever their Default flag says.
// A layer without a name is labeled by its source; labels must be unique.
func (d *Document) AddBaseLayer(l BaseLayer) error {
	if d.state == Sealed {
		return ErrSealed
	}
	if l.Source == "" {
		return fmt.Errorf("%w: %q", ErrNoTileSource, l.Name)
	}

	l = l.resolve()
	if _, dup := d.baseNames[l.Name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateBaseLayer, l.Name)
	}

	d.baseNames[l.Name] = struct{}{}
	l.Default = len(d.baseLayers) == 0
	d.baseLayers = append(d.baseLayers, l)

	return nil
}

// AddOverlay appends a region polygon drawn above earlier overlays,
// with a tooltip equal to the feature name.
func (d *Document) AddOverlay(f geo.Feature, style Style) error {
	if d.state == Sealed {
		return ErrSealed
	}
	if _, dup := d.names[f.Name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateOverlay, f.Name)
	}

	d.names[f.Name] = struct{}{}
	d.overlays = append(d.overlays, Overlay{
		Name:    f.Name,
		Tooltip: f.Name,
		Style:   style,
		Feature: f,
	})

	return nil
}

// SetLegend sets the legend markup. The markup is trusted and embedded as is.
func (d *Document) SetLegend(html string) error {
	if d.state == Sealed {
		return ErrSealed
	}

	d.legend = &Legend{HTML: html}
	return nil
}

// AddLayerControl attaches the layer switcher.
func (d *Document) AddLayerControl(collapsed bool) error {
	if d.state == Sealed {
		return ErrSealed
	}

	d.control = &LayerControl{Collapsed: collapsed}
	return nil
}

// Seal moves the document to the Sealed state. Sealing twice is a no-op.
func (d *Document) Seal() {
	d.state = Sealed
}

// State returns the lifecycle state.
func (d *Document) State() State {
	return d.state
}

// View returns the initial viewport.
func (d *Document) View() View {
	return d.view
}

// BaseLayers returns a copy of the base layers in insertion order.
func (d *Document) BaseLayers() []BaseLayer {
	return append([]BaseLayer(nil), d.baseLayers...)
}

// Overlays returns a copy of the overlays in drawing order.
func (d *Document) Overlays() []Overlay {
	return append([]Overlay(nil), d.overlays...)
}

// Legend returns the legend, if one was set.
func (d *Document) Legend() (Legend, bool) {
	if d.legend == nil {
		return Legend{}, false
	}
	return *d.legend, true
}

// LayerControl returns the layer control, if attached, listing every
// base layer and overlay currently in the document.
func (d *Document) LayerControl() (LayerControl, bool) {
	if d.control == nil {
		return LayerControl{}, false
	}

	c := LayerControl{
		Collapsed:  d.control.Collapsed,
		BaseLayers: make([]string, 0, len(d.baseLayers)),
		Overlays:   make([]string, 0, len(d.overlays)),
	}
	for _, l := range d.baseLayers {
		c.BaseLayers = append(c.BaseLayers, l.Name)
	}
	for _, o := range d.overlays {
		c.Overlays = append(c.Overlays, o.Name)
	}

	return c, true
}
