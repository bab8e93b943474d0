package cluster

import "github.com/ruckc/clusterkraf/internal/domain/geo"

// InputPoint is one raw data item to be clustered.
// Identity is the pointer: two InputPoints with equal fields are distinct members.
type InputPoint struct {
	point
	id  string
	tag any
}

// NewInputPoint creates an input point. tag is an opaque caller payload.
func NewInputPoint(id string, pos geo.LatLng, tag any) *InputPoint {
	return &InputPoint{point: point{geoPosition: pos}, id: id, tag: tag}
}

// ID returns the caller-assigned identifier.
func (p *InputPoint) ID() string { return p.id }

// Tag returns the caller payload.
func (p *InputPoint) Tag() any { return p.tag }

