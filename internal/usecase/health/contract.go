package health

import "context"

// PointCounter reports how many input points are loaded.
type PointCounter interface {
	Count() int
}

// ClusteringProber runs a minimal clustering pass.
type ClusteringProber interface {
	Probe(ctx context.Context) error
}
