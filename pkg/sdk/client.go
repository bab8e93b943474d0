package clusterkraf

import (
	"context"
	"fmt"
	"time"

	"github.com/ruckc/clusterkraf/internal/domain/cluster"
	"github.com/ruckc/clusterkraf/internal/domain/projection"
	clusteringuc "github.com/ruckc/clusterkraf/internal/usecase/clustering"
)

// Client runs clustering passes with a fixed policy.
// Calls are serialized; cluster points returned by one call are owned by the caller.
type Client struct {
	svc      *clusteringuc.Service
	tileSize int
	obs      *observer
}

// New creates a Client.
func New(opts ...Option) (*Client, error) {
	cfg := clientConfig{
		pixelDistance: clusteringuc.DefaultPixelDistance,
		tileSize:      projection.DefaultTileSize,
	}
	for _, o := range opts {
		o.apply(&cfg)
	}
	if cfg.pixelDistance <= 0 {
		return nil, fmt.Errorf("clusterkraf: pixel distance must be positive, got %g", cfg.pixelDistance)
	}
	if cfg.tileSize <= 0 {
		return nil, fmt.Errorf("clusterkraf: tile size must be positive, got %d", cfg.tileSize)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	svc := clusteringuc.New(
		cluster.Options{ShownAtCentroid: cfg.shownAtCentroid},
		cfg.pixelDistance,
		obs.logger,
	)
	return &Client{svc: svc, tileSize: cfg.tileSize, obs: obs}, nil
}

// Cluster groups points as seen at a web mercator zoom level.
func (c *Client) Cluster(ctx context.Context, points []*InputPoint, zoom int) ([]*ClusterPoint, error) {
	return c.ClusterWith(ctx, points, c.Projection(zoom))
}

// ClusterWith groups points under a caller-supplied projection.
func (c *Client) ClusterWith(ctx context.Context, points []*InputPoint, proj Projection) ([]*ClusterPoint, error) {
	start := time.Now()
	clusters, err := c.svc.Cluster(ctx, points, proj)
	c.obs.observe("cluster", start, err)
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	return clusters, nil
}

// Transitions clusters points at both zoom levels and pairs the cluster
// points of fromZoom with the ones they turn into at toZoom.
func (c *Client) Transitions(ctx context.Context, points []*InputPoint, fromZoom, toZoom int) ([]Transition, error) {
	start := time.Now()
	out, err := c.transitions(ctx, points, fromZoom, toZoom)
	c.obs.observe("transitions", start, err)
	return out, err
}

func (c *Client) transitions(ctx context.Context, points []*InputPoint, fromZoom, toZoom int) ([]Transition, error) {
	prev, err := c.svc.Cluster(ctx, points, c.Projection(fromZoom))
	if err != nil {
		return nil, fmt.Errorf("transitions: cluster zoom %d: %w", fromZoom, err)
	}
	proj := c.Projection(toZoom)
	curr, err := c.svc.Cluster(ctx, points, proj)
	if err != nil {
		return nil, fmt.Errorf("transitions: cluster zoom %d: %w", toZoom, err)
	}
	out, err := c.svc.Transitions(ctx, prev, curr, proj)
	if err != nil {
		return nil, fmt.Errorf("transitions: %w", err)
	}
	return out, nil
}

// Projection returns the web mercator projection the client uses at zoom.
func (c *Client) Projection(zoom int) Projection {
	return projection.NewWebMercator(zoom, c.tileSize)
}
