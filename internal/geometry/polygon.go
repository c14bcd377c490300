package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Polygon is carved out of the board by an ordered set of world-space
// vertices, the last vertex forming an edge back to the first.
// Containment uses the even-odd ray casting rule, so self-intersecting
// polygons behave sensibly (if oddly).
type Polygon struct {
	Points []r2.Point
}

// Contains reports whether p falls inside the polygon (boundary inclusive).
// We cast a ray in a fixed direction from the test point & count edge
// crossings - odd means inside.
func (pg Polygon) Contains(p r2.Point) bool {
	if len(pg.Points) < 3 {
		return false
	}

	start := len(pg.Points) - 1
	contains := intersectsWithRaycast(p, pg.Points[start], pg.Points[0])

	for i := 1; i < len(pg.Points); i++ {
		a, b := pg.Points[i-1], pg.Points[i]
		if onSegment(p, a, b) {
			return true
		}
		if intersectsWithRaycast(p, a, b) {
			contains = !contains
		}
	}
	if onSegment(p, pg.Points[start], pg.Points[0]) {
		return true
	}

	return contains
}

// Bounds returns the highest & lowest x & y values of the vertices.
func (pg Polygon) Bounds() r2.Rect {
	return r2.RectFromPoints(pg.Points...)
}

// intersectsWithRaycast returns whether a ray cast in +x from point crosses
// the edge start-end.
func intersectsWithRaycast(point, start, end r2.Point) bool {
	// ensure start has the lower y so we only handle half the cases
	if start.Y > end.Y {
		start, end = end, start
	}

	// nudge the ray off vertices so we never count an endpoint twice
	for point.Y == start.Y || point.Y == end.Y {
		point.Y = math.Nextafter(point.Y, math.Inf(1))
	}

	if point.Y < start.Y || point.Y > end.Y {
		return false
	}
	if start.Y == end.Y { // horizontal edge, ray runs parallel
		return false
	}

	// x of the edge at the ray's height
	x := start.X + (point.Y-start.Y)*(end.X-start.X)/(end.Y-start.Y)
	return x > point.X
}

// onSegment returns whether p sits on the segment a-b within float noise.
func onSegment(p, a, b r2.Point) bool {
	const eps = 1e-9

	d := b.Sub(a)
	ap := p.Sub(a)

	cross := d.X*ap.Y - d.Y*ap.X
	lenSq := d.X*d.X + d.Y*d.Y
	if cross*cross > eps*eps*lenSq {
		return false
	}

	dot := ap.X*d.X + ap.Y*d.Y
	return dot >= -eps && dot <= lenSq+eps
}
