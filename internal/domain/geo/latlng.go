package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
const EarthRadiusMeters = 6_371_000.0

// LatLng is a geographic position in degrees.
type LatLng struct {
	Lat float64
	Lon float64
}

// NewLatLng creates a position from latitude and longitude in degrees.
func NewLatLng(lat, lon float64) LatLng {
	return LatLng{Lat: lat, Lon: lon}
}

// FromPoint converts an orb point (x=lon, y=lat) to a LatLng.
func FromPoint(p orb.Point) LatLng {
	return LatLng{Lat: p.Lat(), Lon: p.Lon()}
}

// Point returns the position as an orb point (x=lon, y=lat).
func (l LatLng) Point() orb.Point {
	return orb.Point{l.Lon, l.Lat}
}

// Valid reports whether latitude is in [-90,90] and longitude in [-180,180].
func (l LatLng) Valid() bool {
	return ValidateCoordinates(l.Lat, l.Lon)
}

func (l LatLng) String() string {
	return fmt.Sprintf("(%g,%g)", l.Lat, l.Lon)
}

// Haversine returns the great-circle distance in meters between two positions.
func Haversine(a, b LatLng) float64 {
	lat1r := a.Lat * math.Pi / 180
	lat2r := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
