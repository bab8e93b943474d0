package cluster

import (
	"errors"
	"fmt"

	"github.com/ruckc/clusterkraf/internal/domain/geo"
	"github.com/ruckc/clusterkraf/internal/domain/projection"
)

// point holds a geographic position and its lazily projected screen position.
type point struct {
	geoPosition    geo.LatLng
	screenPosition *projection.ScreenPoint
}

// GeoPosition returns the geographic position.
func (p *point) GeoPosition() geo.LatLng { return p.geoPosition }

// setGeoPosition moves the point; the cached screen position no longer applies.
func (p *point) setGeoPosition(pos geo.LatLng) {
	p.geoPosition = pos
	p.screenPosition = nil
}

// ScreenPosition returns the cached screen position, projecting on first use.
// Nothing is cached when the projection fails; the error always matches
// projection.ErrProjection.
func (p *point) ScreenPosition(proj projection.Projection) (projection.ScreenPoint, error) {
	if p.screenPosition != nil {
		return *p.screenPosition, nil
	}
	sp, err := proj.ToScreen(p.geoPosition)
	if err != nil {
		if errors.Is(err, projection.ErrProjection) {
			return projection.ScreenPoint{}, fmt.Errorf("screen position of %s: %w", p.geoPosition, err)
		}
		return projection.ScreenPoint{}, fmt.Errorf("%w: screen position of %s: %w", projection.ErrProjection, p.geoPosition, err)
	}
	p.screenPosition = &sp
	return sp, nil
}

// HasScreenPosition reports whether a screen position is cached.
func (p *point) HasScreenPosition() bool { return p.screenPosition != nil }

// ClearScreenPosition drops the cached screen position.
func (p *point) ClearScreenPosition() { p.screenPosition = nil }

// Positioned is anything with a geographic and a screen position.
type Positioned interface {
	GeoPosition() geo.LatLng
	ScreenPosition(proj projection.Projection) (projection.ScreenPoint, error)
}

// PixelDistance returns the screen distance between a and b.
func PixelDistance(a, b Positioned, proj projection.Projection) (float64, error) {
	pa, err := a.ScreenPosition(proj)
	if err != nil {
		return 0, err
	}
	pb, err := b.ScreenPosition(proj)
	if err != nil {
		return 0, err
	}
	return pa.DistanceTo(pb), nil
}
