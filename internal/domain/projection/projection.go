// Package projection converts geographic positions to screen pixels.
package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/ruckc/clusterkraf/internal/domain/geo"
)

// ErrProjection signals a position that cannot be projected.
var ErrProjection = errors.New("projection failed")

// ScreenPoint is a position in screen pixels.
type ScreenPoint struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean pixel distance to o.
func (p ScreenPoint) DistanceTo(o ScreenPoint) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Projection maps a geographic position to screen coordinates.
type Projection interface {
	ToScreen(pos geo.LatLng) (ScreenPoint, error)
}

// Func adapts a plain function to Projection.
type Func func(pos geo.LatLng) (ScreenPoint, error)

// ToScreen calls f.
func (f Func) ToScreen(pos geo.LatLng) (ScreenPoint, error) { return f(pos) }

// Default map settings (Google Maps / OSM tiles).
const (
	DefaultTileSize = 256
	MaxZoom         = 21
)

// WebMercator projects onto spherical mercator world pixels for a zoom level.
// The world is TileSize * 2^Zoom pixels wide; (0,0) is the north-west corner.
type WebMercator struct {
	Zoom     int
	TileSize int
}

// NewWebMercator creates a projection, clamping zoom to [0, MaxZoom].
func NewWebMercator(zoom, tileSize int) WebMercator {
	return WebMercator{Zoom: zoom, TileSize: tileSize}.normalized()
}

// normalized clamps zoom to [0, MaxZoom] and defaults a non-positive tile size.
// Struct literals go through it too, via WorldSize.
func (m WebMercator) normalized() WebMercator {
	if m.Zoom < 0 {
		m.Zoom = 0
	}
	if m.Zoom > MaxZoom {
		m.Zoom = MaxZoom
	}
	if m.TileSize <= 0 {
		m.TileSize = DefaultTileSize
	}
	return m
}

// WorldSize returns the width (and height) of the world in pixels.
func (m WebMercator) WorldSize() float64 {
	m = m.normalized()
	return float64(m.TileSize) * float64(uint(1)<<uint(m.Zoom))
}

// ToScreen returns world pixel coordinates for pos.
func (m WebMercator) ToScreen(pos geo.LatLng) (ScreenPoint, error) {
	if !pos.Valid() {
		return ScreenPoint{}, fmt.Errorf("%w: coordinates out of range %s", ErrProjection, pos)
	}
	x, y := mercator(pos)
	size := m.WorldSize()
	return ScreenPoint{X: x * size, Y: y * size}, nil
}

// mercator maps lon/lat to spherical mercator in the [0..1] range.
func mercator(pos geo.LatLng) (float64, float64) {
	x := pos.Lon/360.0 + 0.5
	sin := math.Sin(pos.Lat * math.Pi / 180.0)
	y := 0.5 - 0.25*math.Log((1+sin)/(1-sin))/math.Pi
	if y < 0 {
		y = 0
	}
	if y > 1 {
		y = 1
	}
	return x, y
}
