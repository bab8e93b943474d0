package cluster

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ruckc/clusterkraf/internal/domain/geo"
	"github.com/ruckc/clusterkraf/internal/domain/projection"
)

// --- Fakes ---

// countingProjection maps lon/lat straight to x/y and counts calls per position.
type countingProjection struct {
	calls map[geo.LatLng]int
	total int
	err   error
}

func newCountingProjection() *countingProjection {
	return &countingProjection{calls: make(map[geo.LatLng]int)}
}

func (p *countingProjection) ToScreen(pos geo.LatLng) (projection.ScreenPoint, error) {
	p.total++
	p.calls[pos]++
	if p.err != nil {
		return projection.ScreenPoint{}, p.err
	}
	return projection.ScreenPoint{X: pos.Lon, Y: pos.Lat}, nil
}

var (
	centroid   = Options{ShownAtCentroid: true}
	firstPoint = Options{ShownAtCentroid: false}
)

func input(id string, lat, lon float64) *InputPoint {
	return NewInputPoint(id, geo.NewLatLng(lat, lon), nil)
}

func mustNew(t *testing.T, seed *InputPoint, opts Options) *ClusterPoint {
	t.Helper()
	c, err := New(seed, newCountingProjection(), false, opts)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	return c
}

// --- Construction ---

func TestNew_Seed(t *testing.T) {
	seed := input("a", 10, 10)
	proj := newCountingProjection()

	c, err := New(seed, proj, true, firstPoint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
	if !c.Contains(seed) {
		t.Error("seed must be a member")
	}
	if !c.IsTransition() {
		t.Error("IsTransition() = false, want true")
	}
	if c.GeoPosition() != seed.GeoPosition() {
		t.Errorf("GeoPosition() = %v, want %v", c.GeoPosition(), seed.GeoPosition())
	}
	if !c.HasScreenPosition() {
		t.Error("screen position must be computed at construction")
	}
	if proj.total != 1 {
		t.Errorf("projection calls = %d, want 1", proj.total)
	}
}

func TestNew_NilSeed(t *testing.T) {
	_, err := New(nil, newCountingProjection(), false, centroid)
	if !errors.Is(err, ErrNoSeed) {
		t.Fatalf("expected ErrNoSeed, got %v", err)
	}
	_, err = NewWithOverride(nil, newCountingProjection(), false, centroid, geo.NewLatLng(0, 0))
	if !errors.Is(err, ErrNoSeed) {
		t.Fatalf("expected ErrNoSeed, got %v", err)
	}
}

func TestNew_ProjectionError(t *testing.T) {
	proj := newCountingProjection()
	proj.err = projection.ErrProjection

	_, err := New(input("a", 10, 10), proj, false, firstPoint)
	if !errors.Is(err, projection.ErrProjection) {
		t.Fatalf("expected ErrProjection, got %v", err)
	}
}

func TestNew_ForeignProjectionErrorWrapped(t *testing.T) {
	boom := errors.New("tile not loaded")
	proj := newCountingProjection()
	proj.err = boom

	_, err := New(input("a", 1, 1), proj, false, firstPoint)
	if !errors.Is(err, projection.ErrProjection) {
		t.Fatalf("expected ErrProjection, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("cause lost: %v", err)
	}

	ip := input("b", 2, 2)
	if _, err := ip.ScreenPosition(proj); !errors.Is(err, projection.ErrProjection) || !errors.Is(err, boom) {
		t.Fatalf("ScreenPosition: expected ErrProjection wrapping cause, got %v", err)
	}
	if ip.HasScreenPosition() {
		t.Error("failed projection must not be cached")
	}
}

func TestAdd_ZeroValue(t *testing.T) {
	var c ClusterPoint
	a := input("a", 10, 10)
	if !c.Add(a) {
		t.Fatal("Add on zero value should succeed")
	}
	if c.Add(a) {
		t.Error("duplicate Add on zero value should return false")
	}
	if c.Size() != 1 || !c.Contains(a) {
		t.Errorf("Size() = %d, Contains = %v", c.Size(), c.Contains(a))
	}
}

func TestNewWithOverride_AlwaysWins(t *testing.T) {
	override := geo.NewLatLng(5, 5)
	for _, opts := range []Options{centroid, firstPoint} {
		t.Run(fmt.Sprintf("centroid=%v", opts.ShownAtCentroid), func(t *testing.T) {
			proj := newCountingProjection()
			c, err := NewWithOverride(input("a", 10, 10), proj, true, opts, override)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.GeoPosition() != override {
				t.Errorf("GeoPosition() = %v, want %v", c.GeoPosition(), override)
			}
			sp, _ := c.ScreenPosition(proj)
			if sp != (projection.ScreenPoint{X: 5, Y: 5}) {
				t.Errorf("screen position = %v, want projection of override", sp)
			}
			if proj.calls[override] != 1 {
				t.Errorf("override projected %d times, want 1", proj.calls[override])
			}
		})
	}
}

// --- Add ---

func TestAdd_CentroidScenario(t *testing.T) {
	c := mustNew(t, input("a", 10, 10), centroid)
	c.Add(input("b", 20, 20))

	b := c.Bounds()
	if b.NorthEast() != geo.NewLatLng(20, 20) {
		t.Errorf("NorthEast() = %v, want (20,20)", b.NorthEast())
	}
	if b.SouthWest() != geo.NewLatLng(10, 10) {
		t.Errorf("SouthWest() = %v, want (10,10)", b.SouthWest())
	}
	if c.GeoPosition() != geo.NewLatLng(15, 15) {
		t.Errorf("GeoPosition() = %v, want (15,15)", c.GeoPosition())
	}
}

func TestAdd_FirstPointScenario(t *testing.T) {
	c := mustNew(t, input("a", 10, 10), firstPoint)
	c.Add(input("b", 20, 20))

	if c.GeoPosition() != geo.NewLatLng(10, 10) {
		t.Errorf("GeoPosition() = %v, want (10,10)", c.GeoPosition())
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
}

func TestAdd_FirstPointNeverMoves(t *testing.T) {
	c := mustNew(t, input("seed", 1, 2), firstPoint)
	for i := 0; i < 20; i++ {
		c.Add(input(fmt.Sprintf("p%d", i), float64(i*3-30), float64(60-i*7)))
		if c.GeoPosition() != geo.NewLatLng(1, 2) {
			t.Fatalf("after add %d GeoPosition() = %v", i, c.GeoPosition())
		}
	}
}

func TestAdd_CentroidTracksBounds(t *testing.T) {
	c := mustNew(t, input("seed", 0, 0), centroid)
	points := []*InputPoint{
		input("a", 12, -40),
		input("b", -33, 5),
		input("c", 48, 17),
		input("d", 3, 90),
	}
	for _, p := range points {
		c.Add(p)
		minLat, maxLat, minLon, maxLon := extent(c.Points())
		want := geo.NewLatLng((maxLat+minLat)/2, (maxLon+minLon)/2)
		if c.GeoPosition() != want {
			t.Fatalf("after %s GeoPosition() = %v, want %v", p.ID(), c.GeoPosition(), want)
		}
	}
}

func TestAdd_MembershipCount(t *testing.T) {
	seed := input("seed", 0, 0)
	c := mustNew(t, seed, centroid)

	const n = 15
	added := []*InputPoint{seed}
	for i := 0; i < n; i++ {
		p := input(fmt.Sprintf("p%d", i), float64(i), float64(-i))
		if !c.Add(p) {
			t.Fatalf("Add(%s) = false", p.ID())
		}
		added = append(added, p)
	}

	if c.Size() != n+1 {
		t.Fatalf("Size() = %d, want %d", c.Size(), n+1)
	}
	for i, p := range added {
		if !c.Contains(p) {
			t.Errorf("Contains(%s) = false", p.ID())
		}
		got, err := c.PointAt(i)
		if err != nil || got != p {
			t.Errorf("PointAt(%d) = %v, %v; want %s", i, got, err, p.ID())
		}
	}

	// Same coordinates, different identity.
	if c.Contains(input("p0", 0, 0)) {
		t.Error("Contains must compare identity, not position")
	}
	if c.Contains(nil) {
		t.Error("Contains(nil) = true")
	}
}

func TestAdd_DuplicateIsNoop(t *testing.T) {
	seed := input("seed", 10, 10)
	c := mustNew(t, seed, centroid)
	p := input("p", 20, 20)

	if !c.Add(p) {
		t.Fatal("first Add should succeed")
	}
	if c.Add(p) {
		t.Error("second Add of the same point should return false")
	}
	if c.Add(seed) {
		t.Error("re-adding the seed should return false")
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
	if len(c.memberSet) != len(c.members) {
		t.Errorf("set/list out of sync: %d vs %d", len(c.memberSet), len(c.members))
	}
}

func TestAdd_Nil(t *testing.T) {
	c := mustNew(t, input("seed", 10, 10), centroid)
	if c.Add(nil) {
		t.Error("Add(nil) should return false")
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestAdd_CentroidClearsScreenPosition(t *testing.T) {
	proj := newCountingProjection()
	c, err := New(input("a", 10, 10), proj, false, centroid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Add(input("b", 20, 20))
	if c.HasScreenPosition() {
		t.Fatal("moving the representative position must clear the screen position")
	}
	sp, err := c.ScreenPosition(proj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sp != (projection.ScreenPoint{X: 15, Y: 15}) {
		t.Errorf("ScreenPosition() = %v, want (15,15)", sp)
	}
}

// --- Bounds ---

func TestBounds_MatchesExtent(t *testing.T) {
	c := mustNew(t, input("seed", -12.5, 44), firstPoint)
	c.Add(input("a", 7, -3))
	c.Add(input("b", 30.25, 100))
	c.Add(input("c", -60, 12))

	minLat, maxLat, minLon, maxLon := extent(c.Points())
	b := c.Bounds()
	if b.SouthWest() != geo.NewLatLng(minLat, minLon) {
		t.Errorf("SouthWest() = %v, want (%v,%v)", b.SouthWest(), minLat, minLon)
	}
	if b.NorthEast() != geo.NewLatLng(maxLat, maxLon) {
		t.Errorf("NorthEast() = %v, want (%v,%v)", b.NorthEast(), maxLat, maxLon)
	}
}

func TestBounds_CachedUntilAdd(t *testing.T) {
	c := mustNew(t, input("seed", 1, 1), firstPoint)
	c.Add(input("a", 2, 2))

	first := c.Bounds()
	second := c.Bounds()
	if first != second {
		t.Fatalf("Bounds() not stable: %v vs %v", first, second)
	}
	cached := c.bounds
	if cached == nil {
		t.Fatal("Bounds() must populate the cache")
	}
	_ = c.Bounds()
	if c.bounds != cached {
		t.Fatal("Bounds() rebuilt a valid cache")
	}

	c.Add(input("b", 3, 3))
	if c.bounds != nil {
		t.Fatal("Add must invalidate cached bounds")
	}
	if c.Bounds().NorthEast() != geo.NewLatLng(3, 3) {
		t.Errorf("NorthEast() = %v, want (3,3)", c.Bounds().NorthEast())
	}
	if c.bounds == nil || c.bounds == cached {
		t.Fatal("Bounds() after Add must rebuild the cache")
	}
}

func TestBounds_CentroidLeavesCachePopulated(t *testing.T) {
	c := mustNew(t, input("seed", 1, 1), centroid)
	c.Add(input("a", 2, 2))
	cached := c.bounds
	if cached == nil {
		t.Fatal("centroid add must leave the bounds cached")
	}

	_ = c.Bounds()
	if c.bounds != cached {
		t.Fatalf("Bounds() after centroid add rebuilt the cache")
	}
}

// --- PointAt ---

func TestPointAt_OutOfRange(t *testing.T) {
	c := mustNew(t, input("seed", 1, 1), firstPoint)
	for _, idx := range []int{-1, 1, 100} {
		p, err := c.PointAt(idx)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("PointAt(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}
		if p != nil {
			t.Errorf("PointAt(%d) returned %v, want nil", idx, p)
		}
	}
}

func TestPoints_ReturnsCopy(t *testing.T) {
	c := mustNew(t, input("seed", 1, 1), firstPoint)
	pts := c.Points()
	pts[0] = input("other", 0, 0)

	got, _ := c.PointAt(0)
	if got.ID() != "seed" {
		t.Error("mutating Points() result leaked into cluster point")
	}
}

// --- Screen position ---

func TestClearScreenPosition_ClearsMembers(t *testing.T) {
	proj := newCountingProjection()
	a := input("a", 10, 10)
	b := input("b", 20, 20)

	c, err := New(a, proj, false, firstPoint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Add(b)
	for _, m := range c.Points() {
		if _, err := m.ScreenPosition(proj); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	before := proj.total

	// Cached: no new projections.
	_, _ = c.ScreenPosition(proj)
	_, _ = a.ScreenPosition(proj)
	_, _ = b.ScreenPosition(proj)
	if proj.total != before {
		t.Fatalf("cached reads projected %d times", proj.total-before)
	}

	c.ClearScreenPosition()
	if c.HasScreenPosition() || a.HasScreenPosition() || b.HasScreenPosition() {
		t.Fatal("ClearScreenPosition must clear the cluster and every member")
	}

	_, _ = c.ScreenPosition(proj)
	_, _ = a.ScreenPosition(proj)
	_, _ = b.ScreenPosition(proj)
	if proj.total != before+3 {
		t.Fatalf("after clear expected 3 projections, got %d", proj.total-before)
	}

	// Idempotent.
	c.ClearScreenPosition()
	c.ClearScreenPosition()
	if c.HasScreenPosition() {
		t.Fatal("ClearScreenPosition not idempotent")
	}
}

func TestScreenPosition_ErrorNotCached(t *testing.T) {
	proj := newCountingProjection()
	p := input("a", 10, 10)

	proj.err = errors.New("boom")
	if _, err := p.ScreenPosition(proj); err == nil {
		t.Fatal("expected error")
	}
	if p.HasScreenPosition() {
		t.Fatal("failed projection must not be cached")
	}

	proj.err = nil
	sp, err := p.ScreenPosition(proj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sp != (projection.ScreenPoint{X: 10, Y: 10}) {
		t.Errorf("ScreenPosition() = %v", sp)
	}
}

func TestPixelDistance(t *testing.T) {
	proj := newCountingProjection()
	a := input("a", 0, 0)
	b := input("b", 4, 3)
	d, err := PixelDistance(a, b, proj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 5 {
		t.Fatalf("PixelDistance = %f, want 5", d)
	}
}

func TestInputPoint_Accessors(t *testing.T) {
	tag := map[string]any{"name": "Kourion"}
	p := NewInputPoint("kourion", geo.NewLatLng(34.6642, 32.8828), tag)
	if p.ID() != "kourion" {
		t.Errorf("ID() = %q", p.ID())
	}
	if p.Tag().(map[string]any)["name"] != "Kourion" {
		t.Errorf("Tag() = %v", p.Tag())
	}
	if p.GeoPosition() != geo.NewLatLng(34.6642, 32.8828) {
		t.Errorf("GeoPosition() = %v", p.GeoPosition())
	}
}

func extent(points []*InputPoint) (minLat, maxLat, minLon, maxLon float64) {
	for i, p := range points {
		pos := p.GeoPosition()
		if i == 0 {
			minLat, maxLat, minLon, maxLon = pos.Lat, pos.Lat, pos.Lon, pos.Lon
			continue
		}
		minLat = min(minLat, pos.Lat)
		maxLat = max(maxLat, pos.Lat)
		minLon = min(minLon, pos.Lon)
		maxLon = max(maxLon, pos.Lon)
	}
	return minLat, maxLat, minLon, maxLon
}
