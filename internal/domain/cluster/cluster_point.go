package cluster

import (
	"fmt"

	"github.com/ruckc/clusterkraf/internal/domain/geo"
	"github.com/ruckc/clusterkraf/internal/domain/projection"
)

// ClusterPoint represents one or more InputPoints grouped by pixel proximity.
//
// Members keep insertion order and are mirrored in a set for O(1) lookups.
// The geographic position is the representative position shown on the map.
// A ClusterPoint is built by a single clustering pass and is not safe for
// concurrent mutation. Use New or NewWithOverride; a zero value has no
// members and sits at (0,0).
type ClusterPoint struct {
	point
	opts       Options
	transition bool

	members   []*InputPoint
	memberSet map[*InputPoint]struct{}

	bounds *geo.Bounds
}

// New creates a cluster point seeded with one input point and projects its
// screen position immediately.
func New(seed *InputPoint, proj projection.Projection, transition bool, opts Options) (*ClusterPoint, error) {
	c, err := newClusterPoint(seed, transition, opts)
	if err != nil {
		return nil, err
	}
	if _, err := c.ScreenPosition(proj); err != nil {
		return nil, fmt.Errorf("new cluster point: %w", err)
	}
	return c, nil
}

// NewWithOverride is New with the representative position forced to override,
// regardless of policy. Used for transition endpoints that sit between members.
func NewWithOverride(
	seed *InputPoint, proj projection.Projection, transition bool, opts Options, override geo.LatLng,
) (*ClusterPoint, error) {
	c, err := newClusterPoint(seed, transition, opts)
	if err != nil {
		return nil, err
	}
	c.setGeoPosition(override)
	if _, err := c.ScreenPosition(proj); err != nil {
		return nil, fmt.Errorf("new cluster point: %w", err)
	}
	return c, nil
}

func newClusterPoint(seed *InputPoint, transition bool, opts Options) (*ClusterPoint, error) {
	if seed == nil {
		return nil, ErrNoSeed
	}
	c := &ClusterPoint{
		point:      point{geoPosition: seed.GeoPosition()},
		opts:       opts,
		transition: transition,
		memberSet:  make(map[*InputPoint]struct{}),
	}
	c.Add(seed)
	return c, nil
}

// Add appends p to the members. Under centroid policy the representative
// position moves to the midpoint of the updated bounds.
// Adding a point that is already a member (or nil) is a no-op and returns false.
func (c *ClusterPoint) Add(p *InputPoint) bool {
	if p == nil {
		return false
	}
	if _, ok := c.memberSet[p]; ok {
		return false
	}
	if c.memberSet == nil {
		c.memberSet = make(map[*InputPoint]struct{})
	}
	c.members = append(c.members, p)
	c.memberSet[p] = struct{}{}
	c.bounds = nil

	if c.opts.ShownAtCentroid {
		c.setGeoPosition(c.Bounds().Center())
	}
	return true
}

// Bounds returns the smallest box containing every member's position.
// Computed on first use after a membership change and cached.
func (c *ClusterPoint) Bounds() geo.Bounds {
	if c.bounds == nil {
		var bb geo.BoundsBuilder
		for _, m := range c.members {
			bb.Include(m.GeoPosition())
		}
		b := bb.Build()
		c.bounds = &b
	}
	return *c.bounds
}

// PointAt returns the member at index in insertion order.
func (c *ClusterPoint) PointAt(index int) (*InputPoint, error) {
	if index < 0 || index >= len(c.members) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(c.members))
	}
	return c.members[index], nil
}

// Points returns a copy of the members in insertion order.
func (c *ClusterPoint) Points() []*InputPoint {
	out := make([]*InputPoint, len(c.members))
	copy(out, c.members)
	return out
}

// Size returns the number of members.
func (c *ClusterPoint) Size() int { return len(c.members) }

// Contains reports whether p is a member.
func (c *ClusterPoint) Contains(p *InputPoint) bool {
	_, ok := c.memberSet[p]
	return ok
}

// IsTransition reports whether this cluster point only exists for an animation.
func (c *ClusterPoint) IsTransition() bool { return c.transition }

// Options returns the policy the cluster point was built with.
func (c *ClusterPoint) Options() Options { return c.opts }

// ClearScreenPosition drops the cached screen position of the cluster point
// and of every member, since members may be drawn individually when expanded.
func (c *ClusterPoint) ClearScreenPosition() {
	c.point.ClearScreenPosition()
	for _, m := range c.members {
		m.ClearScreenPosition()
	}
}
