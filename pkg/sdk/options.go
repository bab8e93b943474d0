package clusterkraf

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	shownAtCentroid bool
	pixelDistance   float64
	tileSize        int

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithCentroid draws cluster points at the midpoint of their members' bounds
// instead of at their first member.
func WithCentroid() Option {
	return optionFunc(func(c *clientConfig) {
		c.shownAtCentroid = true
	})
}

// WithPixelDistance sets the screen distance below which points are grouped.
// Default: 25.
func WithPixelDistance(px float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.pixelDistance = px
	})
}

// WithTileSize sets the map tile size in pixels used by zoom-based calls.
// Default: 256.
func WithTileSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.tileSize = size
	})
}

// WithLogger enables structured logging. Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
