// Package preview rasterizes region polygons into a small WebP thumbnail.
// Coordinates are scaled linearly from the collection bounds onto the
// image, no map projection is applied.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/woozymasta/redwoodmap/internal/geo"
	"github.com/woozymasta/redwoodmap/internal/mapdoc"

	"github.com/chai2010/webp"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"
)

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("no features to draw")

// Options controls the preview raster.
type Options struct {
	Style   mapdoc.Style
	Width   int
	Height  int
	Padding int     // pixels kept free around the drawing
	Quality float32 // WebP quality, 0..100
}

// DefaultOptions returns a 512x512 preview in the default overlay style.
func DefaultOptions() Options {
	return Options{
		Style:   mapdoc.DefaultStyle(),
		Width:   512,
		Height:  512,
		Padding: 16,
		Quality: 85,
	}
}

// Draw rasterizes the features onto a white canvas.
func Draw(fc geo.FeatureCollection, opts Options) (*image.RGBA, error) {
	if len(fc.Features) == 0 {
		return nil, ErrEmpty
	}
	if opts.Width <= 2*opts.Padding || opts.Height <= 2*opts.Padding {
		return nil, fmt.Errorf("preview size %dx%d too small for padding %d", opts.Width, opts.Height, opts.Padding)
	}

	fill, err := parseColor(opts.Style.FillColor, opts.Style.FillOpacity)
	if err != nil {
		return nil, fmt.Errorf("fill color: %w", err)
	}
	stroke, err := parseColor(opts.Style.Color, 1)
	if err != nil {
		return nil, fmt.Errorf("border color: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	proj := newProjection(fc.Bound(), opts)
	for _, f := range fc.Features {
		for _, ring := range f.Polygon {
			fillRing(dst, proj, ring, fill)
			if opts.Style.Weight > 0 {
				strokeRing(dst, proj, ring, float32(opts.Style.Weight), stroke)
			}
		}
	}

	return dst, nil
}

// Encode writes img as lossy WebP.
func Encode(w io.Writer, img image.Image, quality float32) error {
	return webp.Encode(w, img, &webp.Options{Lossless: false, Quality: quality})
}

// Render draws the features and encodes them as WebP in memory.
func Render(fc geo.FeatureCollection, opts Options) ([]byte, error) {
	img, err := Draw(fc, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, opts.Quality); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteFile draws the features and saves them as WebP at path.
// Encoding happens before the file is created, so a failure leaves no file.
func WriteFile(path string, fc geo.FeatureCollection, opts Options) error {
	data, err := Render(fc, opts)
	if err != nil {
		return err
	}

	return Save(path, data)
}

// Save writes an encoded preview to path, removing the file again if the
// write does not complete.
func Save(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			if rmErr := os.Remove(path); rmErr != nil {
				log.Error().Err(rmErr).Str("path", path).Msg("Failed to remove partial preview")
			}
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}

	log.Debug().
		Str("path", path).
		Int("bytes", len(data)).
		Msg("Preview written")

	return nil
}

// projection maps lon/lat onto pixels keeping the aspect ratio.
type projection struct {
	bound         orb.Bound
	scale         float64
	offX, offY    float64
	width, height int
}

func newProjection(b orb.Bound, opts Options) projection {
	const minSpan = 1e-9

	spanX := math.Max(b.Max[0]-b.Min[0], minSpan)
	spanY := math.Max(b.Max[1]-b.Min[1], minSpan)

	innerW := float64(opts.Width - 2*opts.Padding)
	innerH := float64(opts.Height - 2*opts.Padding)
	scale := math.Min(innerW/spanX, innerH/spanY)

	return projection{
		bound:  b,
		scale:  scale,
		offX:   float64(opts.Padding) + (innerW-spanX*scale)/2,
		offY:   float64(opts.Padding) + (innerH-spanY*scale)/2,
		width:  opts.Width,
		height: opts.Height,
	}
}

func (p projection) point(pt orb.Point) (float32, float32) {
	x := p.offX + (pt[0]-p.bound.Min[0])*p.scale
	y := p.offY + (p.bound.Max[1]-pt[1])*p.scale
	return float32(x), float32(y)
}

func fillRing(dst draw.Image, proj projection, ring orb.Ring, c color.Color) {
	if len(ring) < 3 {
		return
	}

	r := vector.NewRasterizer(proj.width, proj.height)
	x, y := proj.point(ring[0])
	r.MoveTo(x, y)
	for _, pt := range ring[1:] {
		x, y = proj.point(pt)
		r.LineTo(x, y)
	}
	r.ClosePath()
	r.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// strokeRing draws every edge as a quad of the given pixel width.
func strokeRing(dst draw.Image, proj projection, ring orb.Ring, width float32, c color.Color) {
	src := image.NewUniform(c)
	half := width / 2

	for i := 0; i+1 < len(ring); i++ {
		x0, y0 := proj.point(ring[i])
		x1, y1 := proj.point(ring[i+1])

		dx, dy := x1-x0, y1-y0
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*half, dx/length*half

		r := vector.NewRasterizer(proj.width, proj.height)
		r.MoveTo(x0+nx, y0+ny)
		r.LineTo(x1+nx, y1+ny)
		r.LineTo(x1-nx, y1-ny)
		r.LineTo(x0-nx, y0-ny)
		r.ClosePath()
		r.Draw(dst, dst.Bounds(), src, image.Point{})
	}
}

// parseColor accepts CSS color names and #rgb / #rrggbb hex values.
func parseColor(s string, opacity float64) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	var c color.RGBA
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return nil, fmt.Errorf("invalid hex color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		c = color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
	default:
		named, ok := colornames.Map[s]
		if !ok {
			return nil, fmt.Errorf("unknown color %q", s)
		}
		c = named
	}

	opacity = math.Max(0, math.Min(1, opacity))

	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(opacity * 255))}, nil
}
