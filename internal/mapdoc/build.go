package mapdoc

import (
	"fmt"

	"github.com/woozymasta/redwoodmap/internal/geo"
)

// Build assembles a complete document: base layers in the given order with
// the first one visible, one overlay per feature, the legend and an
// expanded layer control. A nil style falls back to DefaultStyle.
func Build(view View, baseLayers []BaseLayer, fc geo.FeatureCollection, legend string, style StyleFunc) (*Document, error) {
	if len(baseLayers) == 0 {
		return nil, ErrNoBaseLayers
	}
	if style == nil {
		style = FixedStyle(DefaultStyle())
	}

	doc, err := New(view)
	if err != nil {
		return nil, err
	}

	for _, l := range baseLayers {
		if err := doc.AddBaseLayer(l); err != nil {
			return nil, err
		}
	}

	for _, f := range fc.Features {
		if err := doc.AddOverlay(f, style(f.Name)); err != nil {
			return nil, fmt.Errorf("add overlay: %w", err)
		}
	}

	if err := doc.SetLegend(legend); err != nil {
		return nil, err
	}
	if err := doc.AddLayerControl(false); err != nil {
		return nil, err
	}

	return doc, nil
}
