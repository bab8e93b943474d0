package chi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/paulmach/orb/geojson"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ruckc/clusterkraf/internal/domain/cluster"
	"github.com/ruckc/clusterkraf/internal/domain/projection"
	clusteringuc "github.com/ruckc/clusterkraf/internal/usecase/clustering"
	healthuc "github.com/ruckc/clusterkraf/internal/usecase/health"
)

const geoJSONContentType = "application/geo+json"

// Clusterer runs clustering passes.
type Clusterer interface {
	Cluster(ctx context.Context, points []*cluster.InputPoint, proj projection.Projection) ([]*cluster.ClusterPoint, error)
	Transitions(
		ctx context.Context, prev, curr []*cluster.ClusterPoint, proj projection.Projection,
	) ([]clusteringuc.Transition, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server serves cluster points for a fixed set of input points.
type Server struct {
	clustering Clusterer
	health     HealthChecker
	points     []*cluster.InputPoint
	tileSize   int
	maxZoom    int
	logger     *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	clustering Clusterer, health HealthChecker,
	points []*cluster.InputPoint, tileSize, maxZoom int, logger *zap.Logger,
) *Server {
	if maxZoom <= 0 || maxZoom > projection.MaxZoom {
		maxZoom = projection.MaxZoom
	}
	return &Server{
		clustering: clustering,
		health:     health,
		points:     points,
		tileSize:   tileSize,
		maxZoom:    maxZoom,
		logger:     logger,
	}
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/clusters", s.GetClusters)
		r.Get("/transitions", s.GetTransitions)
	})
}

// GetClusters handles GET /v1/clusters?zoom=Z.
func (s *Server) GetClusters(w http.ResponseWriter, r *http.Request) {
	zoom, err := s.zoomParam(r, "zoom")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	clusters, err := s.clustering.Cluster(r.Context(), s.points, s.projection(zoom))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	fc := geojson.NewFeatureCollection()
	for _, c := range clusters {
		fc.Append(clusterFeature(c))
	}
	writeJSONType(w, http.StatusOK, geoJSONContentType, fc)
}

// GetTransitions handles GET /v1/transitions?from=Z1&to=Z2.
func (s *Server) GetTransitions(w http.ResponseWriter, r *http.Request) {
	from, err := s.zoomParam(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	to, err := s.zoomParam(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	prev, err := s.clustering.Cluster(ctx, s.points, s.projection(from))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	proj := s.projection(to)
	curr, err := s.clustering.Cluster(ctx, s.points, proj)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	transitions, err := s.clustering.Transitions(ctx, prev, curr, proj)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	fc := geojson.NewFeatureCollection()
	for _, t := range transitions {
		f := clusterFeature(t.Origin)
		dest := t.Destination.GeoPosition()
		f.Properties["destination"] = []float64{dest.Lon, dest.Lat}
		f.Properties["destination_size"] = t.Destination.Size()
		fc.Append(f)
	}
	writeJSONType(w, http.StatusOK, geoJSONContentType, fc)
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Points int               `json:"points"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles GET /health. A degraded report answers 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Points: report.Points, Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) projection(zoom int) projection.Projection {
	return projection.NewWebMercator(zoom, s.tileSize)
}

func (s *Server) zoomParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("query parameter %q is required", name)
	}
	zoom, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter %q must be an integer", name)
	}
	if zoom < 0 || zoom > s.maxZoom {
		return 0, fmt.Errorf("query parameter %q must be between 0 and %d", name, s.maxZoom)
	}
	return zoom, nil
}

func clusterFeature(c *cluster.ClusterPoint) *geojson.Feature {
	bounds := c.Bounds()
	f := geojson.NewFeature(c.GeoPosition().Point())
	f.BBox = geojson.NewBBox(bounds.Bound())

	ids := make([]string, 0, c.Size())
	for _, p := range c.Points() {
		ids = append(ids, p.ID())
	}
	f.Properties["size"] = c.Size()
	f.Properties["transition"] = c.IsTransition()
	f.Properties["member_ids"] = ids
	f.Properties["radius_m"] = bounds.Radius()
	return f
}
