// Package render serializes map documents into self-contained HTML files.
package render

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"text/template"

	"github.com/woozymasta/redwoodmap/internal/geo"
	"github.com/woozymasta/redwoodmap/internal/mapdoc"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	minjson "github.com/tdewolff/minify/v2/json"
)

const (
	leafletCSS = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	leafletJS  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"

	// regionsScriptAttr marks the GeoJSON block read back by ExtractFeatures.
	regionsScriptAttr = `id="map-regions"`
)

//go:embed templates/map.html.tpl
var pageTemplate string

var tmpl = template.Must(template.New("map").Parse(pageTemplate))

// Options controls serialization.
type Options struct {
	Title  string
	Minify bool
}

// PageData is the template input.
type PageData struct {
	Title      string
	LeafletCSS string
	LeafletJS  string
	Legend     string
	Setup      string
	Regions    string
}

type setupLayer struct {
	mapdoc.BaseLayer
	Label string `json:"label"`
}

type setupOverlay struct {
	Label   string       `json:"label"`
	Tooltip string       `json:"tooltip"`
	Style   mapdoc.Style `json:"style"`
}

type setupControl struct {
	Collapsed bool `json:"collapsed"`
}

type setup struct {
	Center     mapdoc.LatLng  `json:"center"`
	Zoom       int            `json:"zoom"`
	BaseLayers []setupLayer   `json:"baseLayers"`
	Overlays   []setupOverlay `json:"overlays"`
	Control    *setupControl  `json:"control,omitempty"`
}

// Render produces the HTML for a document. The output contains no
// timestamps, so equal documents render to equal bytes.
func Render(doc *mapdoc.Document, opts Options) ([]byte, error) {
	view := doc.View()
	s := setup{
		Center:     view.Center,
		Zoom:       view.Zoom,
		BaseLayers: []setupLayer{},
		Overlays:   []setupOverlay{},
	}

	for _, l := range doc.BaseLayers() {
		s.BaseLayers = append(s.BaseLayers, setupLayer{BaseLayer: l, Label: html.EscapeString(l.Name)})
	}

	fc := geo.FeatureCollection{CRS: geo.CRS}
	for _, o := range doc.Overlays() {
		fc.Features = append(fc.Features, o.Feature)
		s.Overlays = append(s.Overlays, setupOverlay{
			Label:   html.EscapeString(o.Name),
			Tooltip: html.EscapeString(o.Tooltip),
			Style:   o.Style,
		})
	}

	if c, ok := doc.LayerControl(); ok {
		s.Control = &setupControl{Collapsed: c.Collapsed}
	}

	setupJSON, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal map setup: %w", err)
	}

	regionsJSON, err := json.Marshal(fc.GeoJSON())
	if err != nil {
		return nil, fmt.Errorf("marshal regions: %w", err)
	}

	data := PageData{
		Title:      html.EscapeString(opts.Title),
		LeafletCSS: leafletCSS,
		LeafletJS:  leafletJS,
		Setup:      string(setupJSON),
		Regions:    string(regionsJSON),
	}
	if legend, ok := doc.Legend(); ok {
		data.Legend = legend.HTML
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	if !opts.Minify {
		return buf.Bytes(), nil
	}

	out, err := newMinifier().Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("minify html: %w", err)
	}

	return out, nil
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	m.AddFuncRegexp(regexp.MustCompile("[/+]json$"), minjson.Minify)
	m.Add("text/html", &minhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})

	return m
}
