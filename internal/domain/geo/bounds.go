package geo

import "github.com/paulmach/orb"

// Bounds is the smallest lat/lon rectangle covering a set of positions.
type Bounds struct {
	bound orb.Bound
}

// NewBounds creates bounds from its south-west and north-east corners.
func NewBounds(southWest, northEast LatLng) Bounds {
	return Bounds{bound: orb.Bound{Min: southWest.Point(), Max: northEast.Point()}}
}

// NorthEast returns the corner with the largest latitude and longitude.
func (b Bounds) NorthEast() LatLng { return FromPoint(b.bound.Max) }

// SouthWest returns the corner with the smallest latitude and longitude.
func (b Bounds) SouthWest() LatLng { return FromPoint(b.bound.Min) }

// Center returns the midpoint of the box: the average of the corner
// latitudes and the average of the corner longitudes.
func (b Bounds) Center() LatLng {
	ne, sw := b.NorthEast(), b.SouthWest()
	return LatLng{
		Lat: (ne.Lat + sw.Lat) / 2,
		Lon: (ne.Lon + sw.Lon) / 2,
	}
}

// Contains reports whether the position lies inside the box, edges included.
func (b Bounds) Contains(l LatLng) bool {
	return b.bound.Contains(l.Point())
}

// Radius returns the great-circle distance from the center to the north-east corner.
func (b Bounds) Radius() float64 {
	return Haversine(b.Center(), b.NorthEast())
}

// Bound exposes the underlying orb bound (GeoJSON bbox output).
func (b Bounds) Bound() orb.Bound { return b.bound }

// BoundsBuilder folds positions into a running min/max extent.
// The zero value is an empty builder.
type BoundsBuilder struct {
	bound  orb.Bound
	seeded bool
}

// NewBoundsBuilder returns a builder with no positions included.
func NewBoundsBuilder() *BoundsBuilder {
	return &BoundsBuilder{}
}

// Include extends the extent to cover l.
func (bb *BoundsBuilder) Include(l LatLng) *BoundsBuilder {
	p := l.Point()
	if !bb.seeded {
		bb.bound = p.Bound()
		bb.seeded = true
		return bb
	}
	bb.bound = bb.bound.Extend(p)
	return bb
}

// Empty reports whether nothing was included yet.
func (bb *BoundsBuilder) Empty() bool { return !bb.seeded }

// Build returns the accumulated bounds. An empty builder yields the zero box.
func (bb *BoundsBuilder) Build() Bounds {
	return Bounds{bound: bb.bound}
}
