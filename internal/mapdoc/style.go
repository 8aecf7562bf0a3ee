package mapdoc

// Style holds Leaflet path options for an overlay.
type Style struct {
	FillColor   string  `yaml:"fill_color" json:"fillColor"`
	Color       string  `yaml:"color" json:"color"`
	Weight      float64 `yaml:"weight" json:"weight"`
	FillOpacity float64 `yaml:"fill_opacity" json:"fillOpacity"`
}

// StyleFunc maps an overlay name to its style. It must be pure.
type StyleFunc func(name string) Style

// DefaultStyle is green fill with a thin blue border.
func DefaultStyle() Style {
	return Style{
		FillColor:   "green",
		Color:       "blue",
		Weight:      2,
		FillOpacity: 0.1,
	}
}

// FixedStyle returns a StyleFunc giving every overlay the same style.
func FixedStyle(s Style) StyleFunc {
	return func(string) Style { return s }
}
