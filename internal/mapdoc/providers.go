package mapdoc

import "strings"

// Provider is a well known tile source.
type Provider struct {
	URL         string
	Attribution string
	MaxZoom     int
}

// providers maps provider names to tile sources.
// Names are matched case-insensitively by ResolveProvider.
var providers = map[string]Provider{
	"openstreetmap": {
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
		MaxZoom:     19,
	},
	"esri.worldimagery": {
		URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
		Attribution: "Esri World Imagery",
		MaxZoom:     18,
	},
}

// ResolveProvider returns the tile source for a provider name.
func ResolveProvider(name string) (Provider, bool) {
	p, ok := providers[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}
