// Package points loads input points from GeoJSON.
package points

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/ruckc/clusterkraf/internal/domain/cluster"
	"github.com/ruckc/clusterkraf/internal/domain/geo"
)

// ErrInvalidFeature signals a feature that cannot become an input point.
var ErrInvalidFeature = errors.New("invalid feature")

// Load reads a GeoJSON FeatureCollection of Point features from path.
func Load(path string) ([]*cluster.InputPoint, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read points %s: %w", path, err)
	}
	return Parse(data)
}

// Parse converts a GeoJSON FeatureCollection into input points.
// The feature id (or its index when absent) becomes the point ID and the
// feature properties become the point tag.
func Parse(data []byte) ([]*cluster.InputPoint, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse points: %w", err)
	}

	out := make([]*cluster.InputPoint, 0, len(fc.Features))
	seen := make(map[string]bool, len(fc.Features))
	for i, f := range fc.Features {
		p, err := fromFeature(i, f)
		if err != nil {
			return nil, err
		}
		if seen[p.ID()] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidFeature, p.ID())
		}
		seen[p.ID()] = true
		out = append(out, p)
	}
	return out, nil
}

func fromFeature(i int, f *geojson.Feature) (*cluster.InputPoint, error) {
	pt, ok := f.Geometry.(orb.Point)
	if !ok {
		return nil, fmt.Errorf("%w: feature %d is not a Point", ErrInvalidFeature, i)
	}
	pos := geo.FromPoint(pt)
	if !pos.Valid() {
		return nil, fmt.Errorf("%w: feature %d has coordinates out of range %s", ErrInvalidFeature, i, pos)
	}
	return cluster.NewInputPoint(featureID(i, f), pos, map[string]any(f.Properties)), nil
}

func featureID(i int, f *geojson.Feature) string {
	switch id := f.ID.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	return strconv.Itoa(i)
}

// Set is a loaded, read-only collection of input points.
type Set []*cluster.InputPoint

// Count returns the number of points in the set.
func (s Set) Count() int { return len(s) }
