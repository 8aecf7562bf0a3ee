package server

import (
	"encoding/json"
	"fmt"
	"hash/fnv"

	"github.com/woozymasta/redwoodmap/internal/config"
	"github.com/woozymasta/redwoodmap/internal/geo"
	"github.com/woozymasta/redwoodmap/internal/mapdoc"
	"github.com/woozymasta/redwoodmap/internal/preview"
	"github.com/woozymasta/redwoodmap/internal/render"

	"github.com/rs/zerolog/log"
)

// asset is a prerendered response body with its validator.
type asset struct {
	Body        []byte
	ETag        string
	ContentType string
}

func newAsset(body []byte, contentType string) asset {
	h := fnv.New64a()
	_, _ = h.Write(body)

	return asset{
		Body:        body,
		ETag:        fmt.Sprintf(`"%x-%x"`, len(body), h.Sum64()),
		ContentType: contentType,
	}
}

// ServerContext holds the rendered map served by the handlers.
// Everything is rendered once at startup, handlers only write bytes.
type ServerContext struct {
	Index   asset
	Regions asset
	Preview asset
}

// Options controls how the served document is rendered.
type Options struct {
	Minify  bool
	Preview bool
}

// NewServerContext renders the configured map, its GeoJSON and optionally
// a WebP preview.
func NewServerContext(cfg *config.Config, opts Options) (*ServerContext, error) {
	log.Info().Int("regions", len(cfg.Regions)).Msg("Initializing server context")

	fc, err := geo.BuildFeatures(cfg.Regions)
	if err != nil {
		return nil, err
	}

	doc, err := mapdoc.Build(cfg.View, cfg.BaseLayers, fc, cfg.Legend, mapdoc.FixedStyle(cfg.Style))
	if err != nil {
		return nil, err
	}
	doc.Seal()

	page, err := render.Render(doc, render.Options{Title: cfg.Title, Minify: opts.Minify})
	if err != nil {
		return nil, err
	}

	regions, err := json.Marshal(fc.GeoJSON())
	if err != nil {
		return nil, fmt.Errorf("marshal regions: %w", err)
	}

	s := &ServerContext{
		Index:   newAsset(page, "text/html; charset=utf-8"),
		Regions: newAsset(regions, "application/geo+json"),
	}

	if opts.Preview {
		popts := preview.DefaultOptions()
		popts.Style = cfg.Style

		data, err := preview.Render(fc, popts)
		if err != nil {
			return nil, fmt.Errorf("render preview: %w", err)
		}
		s.Preview = newAsset(data, "image/webp")
	}

	log.Info().
		Int("overlays", len(doc.Overlays())).
		Int("index_bytes", len(page)).
		Bool("preview", opts.Preview).
		Msg("Server context initialized successfully")

	return s, nil
}
