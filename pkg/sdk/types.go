package clusterkraf

import (
	"github.com/ruckc/clusterkraf/internal/domain/cluster"
	"github.com/ruckc/clusterkraf/internal/domain/geo"
	"github.com/ruckc/clusterkraf/internal/domain/projection"
	clusteringuc "github.com/ruckc/clusterkraf/internal/usecase/clustering"
)

type (
	// LatLng is a geographic position in degrees.
	LatLng = geo.LatLng
	// Bounds is the lat/lon box covering a cluster point's members.
	Bounds = geo.Bounds
	// InputPoint is one raw data item to be clustered.
	InputPoint = cluster.InputPoint
	// ClusterPoint is a group of input points drawn as one marker.
	ClusterPoint = cluster.ClusterPoint
	// Transition pairs an animation origin with its destination cluster point.
	Transition = clusteringuc.Transition
	// Projection maps positions to screen pixels.
	Projection = projection.Projection
	// ProjectionFunc adapts a plain function to Projection.
	ProjectionFunc = projection.Func
	// ScreenPoint is a position in screen pixels.
	ScreenPoint = projection.ScreenPoint
)

// NewLatLng creates a position from latitude and longitude in degrees.
func NewLatLng(lat, lon float64) LatLng { return geo.NewLatLng(lat, lon) }

// NewInputPoint creates an input point. tag is an opaque caller payload.
func NewInputPoint(id string, pos LatLng, tag any) *InputPoint {
	return cluster.NewInputPoint(id, pos, tag)
}
