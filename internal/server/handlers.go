// Package server serves a rendered map document over HTTP.
package server

import (
	"net/http"
)

// Handler returns the routes wrapped in the request logger.
func (s *ServerContext) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/regions.geojson", s.HandleRegions)
	mux.HandleFunc("/preview.webp", s.HandlePreview)
	mux.HandleFunc("/", s.HandleIndex)

	return RequestLogger(mux)
}

// HandleIndex serves the map document.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.serveAsset(w, r, s.Index)
}

// HandleRegions serves the region overlays as GeoJSON.
func (s *ServerContext) HandleRegions(w http.ResponseWriter, r *http.Request) {
	s.serveAsset(w, r, s.Regions)
}

// HandlePreview serves the WebP preview when it was rendered.
func (s *ServerContext) HandlePreview(w http.ResponseWriter, r *http.Request) {
	if len(s.Preview.Body) == 0 {
		http.NotFound(w, r)
		return
	}

	s.serveAsset(w, r, s.Preview)
}

// serveAsset writes a prerendered body honoring If-None-Match.
func (s *ServerContext) serveAsset(w http.ResponseWriter, r *http.Request, a asset) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if match := r.Header.Get("If-None-Match"); match == a.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("ETag", a.ETag)
	w.Header().Set("Cache-Control", "public, no-cache")

	if r.Method == http.MethodHead {
		return
	}

	// Ignoring error as we cannot handle client disconnects
	_, _ = w.Write(a.Body)
}
