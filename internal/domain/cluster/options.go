package cluster

// Options is the clustering policy shared by every ClusterPoint of a pass.
// It is a value: each cluster point keeps its own copy.
type Options struct {
	// ShownAtCentroid places a cluster at the midpoint of its members' bounds
	// instead of at the position of its first member.
	ShownAtCentroid bool
}
