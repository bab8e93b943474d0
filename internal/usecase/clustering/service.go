package clustering

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ruckc/clusterkraf/internal/domain/cluster"
	"github.com/ruckc/clusterkraf/internal/domain/geo"
	"github.com/ruckc/clusterkraf/internal/domain/projection"
	"github.com/ruckc/clusterkraf/internal/metrics"
)

// DefaultPixelDistance is the screen distance below which points are grouped.
const DefaultPixelDistance = 25

// cancelCheckEvery is how many points are processed between context checks.
const cancelCheckEvery = 256

// Service runs clustering passes: it decides membership and builds
// ClusterPoints. Passes are serialized because input points cache their
// screen position and are shared between passes.
type Service struct {
	opts          cluster.Options
	pixelDistance float64
	logger        *zap.Logger
	mu            sync.Mutex
}

// New creates a Service. pixelDistance <= 0 falls back to DefaultPixelDistance.
func New(opts cluster.Options, pixelDistance float64, logger *zap.Logger) *Service {
	if pixelDistance <= 0 {
		pixelDistance = DefaultPixelDistance
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{opts: opts, pixelDistance: pixelDistance, logger: logger}
}

// Options returns the policy applied to every cluster point.
func (s *Service) Options() cluster.Options { return s.opts }

// PixelDistance returns the grouping radius in pixels.
func (s *Service) PixelDistance() float64 { return s.pixelDistance }

// Cluster groups points greedily in input order: a point joins the first
// cluster point whose screen position is within the pixel distance,
// otherwise it seeds a new one. Screen positions of the input points are
// recomputed for proj.
func (s *Service) Cluster(
	ctx context.Context, points []*cluster.InputPoint, proj projection.Projection,
) ([]*cluster.ClusterPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	clusters, err := s.cluster(ctx, points, proj)
	duration := time.Since(start)

	if err != nil {
		metrics.ClusteringPassesTotal.WithLabelValues("error").Inc()
		s.logger.Warn("Clustering pass failed",
			zap.Int("points", len(points)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.ClusteringPassesTotal.WithLabelValues("ok").Inc()
	metrics.ClusteringPassDuration.Observe(duration.Seconds())
	metrics.ClusteringInputPoints.Observe(float64(len(points)))
	metrics.ClusteringClusterPoints.Observe(float64(len(clusters)))

	s.logger.Debug("Clustering pass completed",
		zap.Int("points", len(points)),
		zap.Int("clusters", len(clusters)),
		zap.Bool("centroid", s.opts.ShownAtCentroid),
		zap.Duration("duration", duration),
	)
	return clusters, nil
}

func (s *Service) cluster(
	ctx context.Context, points []*cluster.InputPoint, proj projection.Projection,
) ([]*cluster.ClusterPoint, error) {
	for _, p := range points {
		if p != nil {
			p.ClearScreenPosition()
		}
	}

	var clusters []*cluster.ClusterPoint
	for i, p := range points {
		if p == nil {
			continue
		}
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("clustering canceled: %w", err)
			}
		}

		target, err := s.nearest(clusters, p, proj)
		if err != nil {
			return nil, err
		}
		if target != nil {
			target.Add(p)
			continue
		}

		c, err := cluster.New(p, proj, false, s.opts)
		if err != nil {
			return nil, fmt.Errorf("seed cluster point %q: %w", p.ID(), err)
		}
		clusters = append(clusters, c)
	}
	return clusters, nil
}

// nearest returns the first cluster point within the pixel distance of p.
func (s *Service) nearest(
	clusters []*cluster.ClusterPoint, p *cluster.InputPoint, proj projection.Projection,
) (*cluster.ClusterPoint, error) {
	for _, c := range clusters {
		d, err := cluster.PixelDistance(c, p, proj)
		if err != nil {
			return nil, fmt.Errorf("distance from %q: %w", p.ID(), err)
		}
		if d <= s.pixelDistance {
			return c, nil
		}
	}
	return nil, nil
}

// Transitions builds the animation origins between two generations of
// cluster points. For every previous cluster point and every current cluster
// point that share members, a transition cluster point is built from the
// shared members and pinned to the previous cluster point's position.
func (s *Service) Transitions(
	ctx context.Context, prev, curr []*cluster.ClusterPoint, proj projection.Projection,
) ([]Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner := make(map[*cluster.InputPoint]*cluster.ClusterPoint)
	for _, c := range curr {
		for _, m := range c.Points() {
			owner[m] = c
		}
	}

	// Transition origins never move after construction.
	pinned := s.opts
	pinned.ShownAtCentroid = false

	var out []Transition
	for _, p := range prev {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("transitions canceled: %w", err)
		}

		origins := make(map[*cluster.ClusterPoint]*cluster.ClusterPoint)
		var order []*cluster.ClusterPoint
		for _, m := range p.Points() {
			dest, ok := owner[m]
			if !ok {
				continue
			}
			if origin, ok := origins[dest]; ok {
				origin.Add(m)
				continue
			}
			origin, err := cluster.NewWithOverride(m, proj, true, pinned, p.GeoPosition())
			if err != nil {
				return nil, fmt.Errorf("transition origin: %w", err)
			}
			origins[dest] = origin
			order = append(order, dest)
		}
		for _, dest := range order {
			out = append(out, Transition{Origin: origins[dest], Destination: dest})
		}
	}

	metrics.ClusteringTransitionsTotal.Add(float64(len(out)))
	s.logger.Debug("Transitions built",
		zap.Int("previous", len(prev)),
		zap.Int("current", len(curr)),
		zap.Int("transitions", len(out)),
	)
	return out, nil
}

// Probe clusters a single synthetic point at zoom 0 to verify the pass works.
func (s *Service) Probe(ctx context.Context) error {
	probe := []*cluster.InputPoint{cluster.NewInputPoint("probe", geo.NewLatLng(0, 0), nil)}
	clusters, err := s.Cluster(ctx, probe, projection.NewWebMercator(0, projection.DefaultTileSize))
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	if len(clusters) != 1 || clusters[0].Size() != 1 {
		return fmt.Errorf("probe: expected one cluster point, got %d", len(clusters))
	}
	return nil
}
