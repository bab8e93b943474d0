package clustering

import "github.com/ruckc/clusterkraf/internal/domain/cluster"

// Transition pairs an animation origin with the cluster point it moves into.
// Origin is a transition cluster point holding the members shared by a
// previous cluster point and Destination, placed at the previous position.
type Transition struct {
	Origin      *cluster.ClusterPoint
	Destination *cluster.ClusterPoint
}
