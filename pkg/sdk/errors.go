package clusterkraf

import (
	"github.com/ruckc/clusterkraf/internal/domain/cluster"
	"github.com/ruckc/clusterkraf/internal/domain/projection"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrProjection      = projection.ErrProjection
	ErrIndexOutOfRange = cluster.ErrIndexOutOfRange
	ErrNoSeed          = cluster.ErrNoSeed
)
