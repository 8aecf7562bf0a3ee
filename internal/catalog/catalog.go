// Package catalog holds the named regions rendered on the map.
package catalog

import "github.com/paulmach/orb"

// Region is a named area bounded by a simple polygon ring.
// The ring is implicitly closed, the first point is not repeated at the end.
type Region struct {
	Name     string      `yaml:"name" json:"name"`
	Boundary []orb.Point `yaml:"boundary" json:"boundary"` // [Lon, Lat]
}

// Default returns the approximate redwood forest areas.
// Coordinates are rough bounding boxes, not surveyed park boundaries.
// Each call returns a fresh copy so callers may modify it freely.
func Default() []Region {
	return []Region{
		{
			Name: "Redwood National and State Parks",
			Boundary: []orb.Point{
				{-124.1, 41.7}, {-123.9, 41.7}, {-123.9, 41.3}, {-124.1, 41.3},
			},
		},
		{
			Name: "Prairie Creek Redwoods State Park",
			Boundary: []orb.Point{
				{-124.05, 41.45}, {-123.95, 41.45}, {-123.95, 41.35}, {-124.05, 41.35},
			},
		},
		{
			Name: "Jedediah Smith Redwoods State Park",
			Boundary: []orb.Point{
				{-124.15, 41.85}, {-124.05, 41.85}, {-124.05, 41.75}, {-124.15, 41.75},
			},
		},
		{
			Name: "Del Norte Coast Redwoods State Park",
			Boundary: []orb.Point{
				{-124.15, 41.65}, {-124.05, 41.65}, {-124.05, 41.55}, {-124.15, 41.55},
			},
		},
		{
			Name: "Big Basin Redwoods State Park",
			Boundary: []orb.Point{
				{-122.25, 37.25}, {-122.15, 37.25}, {-122.15, 37.15}, {-122.25, 37.15},
			},
		},
	}
}

// Names returns region names in catalog order.
func Names(regions []Region) []string {
	names := make([]string, 0, len(regions))
	for _, r := range regions {
		names = append(names, r.Name)
	}

	return names
}
