package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/woozymasta/redwoodmap/internal/catalog"
	"github.com/woozymasta/redwoodmap/internal/config"
	"github.com/woozymasta/redwoodmap/internal/render"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/suite"
)

type ServerSuite struct {
	suite.Suite
	srv     *ServerContext
	handler http.Handler
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupSuite() {
	srv, err := NewServerContext(config.Default(), Options{Minify: true, Preview: true})
	s.Require().NoError(err)

	s.srv = srv
	s.handler = srv.Handler()
}

func (s *ServerSuite) get(path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerSuite) TestIndex() {
	rec := s.get("/", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	s.NotEmpty(rec.Header().Get("ETag"))

	fc, err := render.ExtractFeatures(rec.Body.Bytes())
	s.Require().NoError(err)
	s.Len(fc.Features, len(catalog.Default()))
}

func (s *ServerSuite) TestIndexNotModified() {
	etag := s.get("/", nil).Header().Get("ETag")

	rec := s.get("/", http.Header{"If-None-Match": {etag}})
	s.Equal(http.StatusNotModified, rec.Code)
	s.Zero(rec.Body.Len())
}

func (s *ServerSuite) TestRegions() {
	rec := s.get("/regions.geojson", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("application/geo+json", rec.Header().Get("Content-Type"))

	fc, err := geojson.UnmarshalFeatureCollection(rec.Body.Bytes())
	s.Require().NoError(err)
	s.Require().Len(fc.Features, 5)
	for i, name := range catalog.Names(catalog.Default()) {
		s.Equal(name, fc.Features[i].Properties.MustString("name"))
	}
}

func (s *ServerSuite) TestPreview() {
	rec := s.get("/preview.webp", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("image/webp", rec.Header().Get("Content-Type"))
	s.Equal("RIFF", rec.Body.String()[:4])
}

func (s *ServerSuite) TestPreviewDisabled() {
	srv, err := NewServerContext(config.Default(), Options{})
	s.Require().NoError(err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview.webp", nil))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerSuite) TestUnknownPath() {
	s.Equal(http.StatusNotFound, s.get("/favicon.ico", nil).Code)
}

func (s *ServerSuite) TestMethodNotAllowed() {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	s.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func (s *ServerSuite) TestInvalidConfig() {
	cfg := config.Default()
	cfg.Regions = append(cfg.Regions, catalog.Region{Name: "broken"})

	_, err := NewServerContext(cfg, Options{})
	s.Error(err)
}
