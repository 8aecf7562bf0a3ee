// Package geo builds polygon geometries from catalog regions.
package geo

import (
	"errors"
	"fmt"

	"github.com/woozymasta/redwoodmap/internal/catalog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// CRS is the only coordinate reference system features are expressed in.
const CRS = "EPSG:4326"

// minRingPoints is the smallest boundary that still encloses an area.
const minRingPoints = 3

// ErrInvalidGeometry is matched by every InvalidGeometryError.
var ErrInvalidGeometry = errors.New("invalid geometry")

// InvalidGeometryError reports a region whose boundary cannot form a polygon.
type InvalidGeometryError struct {
	Region string
	Points int
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("region %q: boundary has %d points, need at least %d", e.Region, e.Points, minRingPoints)
}

// Is makes errors.Is(err, ErrInvalidGeometry) succeed.
func (e *InvalidGeometryError) Is(target error) bool {
	return target == ErrInvalidGeometry
}

// Feature is a named polygon.
type Feature struct {
	Name    string
	Polygon orb.Polygon
}

// VertexCount returns the number of distinct boundary points,
// not counting the closing point.
func (f Feature) VertexCount() int {
	if len(f.Polygon) == 0 {
		return 0
	}

	return len(f.Polygon[0]) - 1
}

// FeatureCollection is an ordered set of features sharing one CRS.
type FeatureCollection struct {
	CRS      string
	Features []Feature
}

// BuildFeatures converts regions into polygons, preserving region order
// and point order. The ring is closed by repeating the first point.
func BuildFeatures(regions []catalog.Region) (FeatureCollection, error) {
	fc := FeatureCollection{
		CRS:      CRS,
		Features: make([]Feature, 0, len(regions)),
	}

	for _, r := range regions {
		if len(r.Boundary) < minRingPoints {
			return FeatureCollection{}, &InvalidGeometryError{Region: r.Name, Points: len(r.Boundary)}
		}

		ring := make(orb.Ring, 0, len(r.Boundary)+1)
		ring = append(ring, r.Boundary...)
		ring = append(ring, r.Boundary[0])

		fc.Features = append(fc.Features, Feature{
			Name:    r.Name,
			Polygon: orb.Polygon{ring},
		})
	}

	return fc, nil
}

// Names returns feature names in collection order.
func (fc FeatureCollection) Names() []string {
	names := make([]string, 0, len(fc.Features))
	for _, f := range fc.Features {
		names = append(names, f.Name)
	}

	return names
}

// Bound returns the bounding box enclosing every feature.
// An empty collection yields an empty bound at the origin.
func (fc FeatureCollection) Bound() orb.Bound {
	if len(fc.Features) == 0 {
		return orb.Bound{}
	}

	b := fc.Features[0].Polygon.Bound()
	for _, f := range fc.Features[1:] {
		b = b.Union(f.Polygon.Bound())
	}

	return b
}

// GeoJSON converts a single feature into GeoJSON with a "name" property.
func (f Feature) GeoJSON() *geojson.Feature {
	gf := geojson.NewFeature(f.Polygon)
	gf.Properties["name"] = f.Name

	return gf
}

// GeoJSON converts the collection into a GeoJSON feature collection.
func (fc FeatureCollection) GeoJSON() *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	for _, f := range fc.Features {
		out.Append(f.GeoJSON())
	}

	return out
}
