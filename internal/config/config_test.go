package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/redwoodmap/internal/catalog"
	"github.com/woozymasta/redwoodmap/internal/mapdoc"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, mapdoc.LatLng{Lat: 41.6, Lon: -124.0}, cfg.View.Center)
	assert.Equal(t, 7, cfg.View.Zoom)
	require.Len(t, cfg.BaseLayers, 2)
	assert.Equal(t, "Satellite Imagery", cfg.BaseLayers[0].Name)
	assert.Equal(t, catalog.Names(catalog.Default()), catalog.Names(cfg.Regions))
	assert.Contains(t, cfg.Legend, "Redwood Areas")
}

func TestParseOverridesRegions(t *testing.T) {
	cfg, err := Parse([]byte(`
title: Test Map
regions:
  - name: Square
    boundary: [[0, 0], [1, 0], [1, 1], [0, 1]]
style:
  fill_color: red
  color: black
  weight: 1
  fill_opacity: 0.5
`))
	require.NoError(t, err)

	assert.Equal(t, "Test Map", cfg.Title)
	require.Len(t, cfg.Regions, 1)
	assert.Equal(t, "Square", cfg.Regions[0].Name)
	assert.Equal(t, []orb.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, cfg.Regions[0].Boundary)
	assert.Equal(t, mapdoc.Style{FillColor: "red", Color: "black", Weight: 1, FillOpacity: 0.5}, cfg.Style)

	// untouched sections keep defaults
	assert.Equal(t, Default().View, cfg.View)
	assert.Equal(t, Default().BaseLayers, cfg.BaseLayers)
}

func TestParseBaseLayers(t *testing.T) {
	cfg, err := Parse([]byte(`
base_layers:
  - source: OpenStreetMap
    name: Streets
  - source: https://tiles.example.com/{z}/{x}/{y}.png
    name: Custom
    attribution: Example
    max_zoom: 12
view:
  center: {lat: 37.2, lon: -122.2}
  zoom: 10
`))
	require.NoError(t, err)

	require.Len(t, cfg.BaseLayers, 2)
	assert.Equal(t, "Streets", cfg.BaseLayers[0].Name)
	assert.Equal(t, 12, cfg.BaseLayers[1].MaxZoom)
	assert.Equal(t, mapdoc.View{Center: mapdoc.LatLng{Lat: 37.2, Lon: -122.2}, Zoom: 10}, cfg.View)
}

func TestParsePartialSections(t *testing.T) {
	cfg, err := Parse([]byte("view: {zoom: 9}\nstyle: {fill_color: red}\n"))
	require.NoError(t, err)

	assert.Equal(t, mapdoc.View{Center: Default().View.Center, Zoom: 9}, cfg.View)

	want := mapdoc.DefaultStyle()
	want.FillColor = "red"
	assert.Equal(t, want, cfg.Style)
}

func TestParsePartialCenter(t *testing.T) {
	cfg, err := Parse([]byte("view: {center: {lat: 37.2}}\n"))
	require.NoError(t, err)

	assert.Equal(t, mapdoc.LatLng{Lat: 37.2, Lon: -124.0}, cfg.View.Center)
	assert.Equal(t, 7, cfg.View.Zoom)
}

func TestParseErrors(t *testing.T) {
	t.Run("duplicate region", func(t *testing.T) {
		_, err := Parse([]byte(`
regions:
  - name: A
    boundary: [[0, 0], [1, 0], [1, 1]]
  - name: A
    boundary: [[0, 0], [2, 0], [2, 2]]
`))
		assert.ErrorIs(t, err, ErrDuplicateRegion)
	})

	t.Run("bad view", func(t *testing.T) {
		_, err := Parse([]byte("view: {center: {lat: 10, lon: 10}, zoom: 0}"))
		assert.ErrorIs(t, err, mapdoc.ErrInvalidView)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("regions: [oops"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: From File\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "From File", cfg.Title)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
