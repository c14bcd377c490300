package collision

import (
	"math"

	"github.com/golang/geo/r2"
)

// ExcludeSet holds the piece ids whose footprints a ray may pass through -
// the union of whatever the two ray endpoints are standing on. It is built
// per (source, target) pair; the sets involved are tiny so linear scans
// beat a map here.
type ExcludeSet struct {
	A []string
	B []string
}

// Has returns whether the given piece id is excluded. Safe on a nil set.
func (e *ExcludeSet) Has(id string) bool {
	if e == nil {
		return false
	}
	for _, v := range e.A {
		if v == id {
			return true
		}
	}
	for _, v := range e.B {
		if v == id {
			return true
		}
	}
	return false
}

// SegmentBlocked samples the segment from-to at arc length increments of
// step & reports whether anything blocks it. At every sample, walls are
// tested before footprints: a wall crossing a jointly occupied footprint
// must still block.
//
// If the segment is shorter than step we sample just the two endpoints,
// which also guards the degenerate zero length segment.
func (s *Store) SegmentBlocked(from, to r2.Point, step float64, excluded *ExcludeSet) bool {
	if len(s.bodies) == 0 {
		return false
	}

	d := to.Sub(from)
	length := math.Hypot(d.X, d.Y)

	n := 1
	if step > 0 && length > step {
		n = int(math.Ceil(length / step))
	}

	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		p := r2.Point{X: from.X + d.X*t, Y: from.Y + d.Y*t}

		if s.Intersects(p, RoleWall, nil) {
			return true
		}
		if s.Intersects(p, RoleFootprint, excluded) {
			return true
		}
	}
	return false
}
