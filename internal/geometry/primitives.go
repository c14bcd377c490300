package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// All containment tests are boundary-inclusive: a point sitting exactly on
// a primitive's edge counts as inside. This keeps repeated runs over the
// same data deterministic regardless of float noise at the edges.

// Box is an axis-aligned rectangle in its local frame, spanning (0,0) to
// (W,H), carried into world space by T.
type Box struct {
	W, H float64
	T    Transform
}

// Contains tests the world point against the local frame box.
func (b Box) Contains(p r2.Point) bool {
	l := b.T.ToLocal(p)
	return l.X >= 0 && l.X <= b.W && l.Y >= 0 && l.Y <= b.H
}

// Bounds returns the world-space AABB of the (possibly rotated) box.
func (b Box) Bounds() r2.Rect {
	return r2.RectFromPoints(
		b.T.ToWorld(r2.Point{X: 0, Y: 0}),
		b.T.ToWorld(r2.Point{X: b.W, Y: 0}),
		b.T.ToWorld(r2.Point{X: b.W, Y: b.H}),
		b.T.ToWorld(r2.Point{X: 0, Y: b.H}),
	)
}

// OrientedBox is a rectangle given by centre, half extents & angle in
// world space. Wall segments become thin oriented boxes - length along the
// segment, width the declared wall thickness.
type OrientedBox struct {
	Centre r2.Point
	HalfL  float64 // half length, along Angle
	HalfW  float64 // half width, perpendicular
	Angle  float64 // radians
}

// OrientedBoxFromSegment builds the thin box covering segment a-b with the
// given thickness. The segment endpoints are expected in world space, so
// any piece rotation / mirror has already been applied to them.
func OrientedBoxFromSegment(a, b r2.Point, thickness float64) OrientedBox {
	d := b.Sub(a)
	return OrientedBox{
		Centre: r2.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2},
		HalfL:  d.Norm() / 2,
		HalfW:  thickness / 2,
		Angle:  math.Atan2(d.Y, d.X),
	}
}

// Contains tests p by rotating it back into the box frame.
func (o OrientedBox) Contains(p r2.Point) bool {
	d := p.Sub(o.Centre)
	sin, cos := math.Sincos(-o.Angle)
	x := d.X*cos - d.Y*sin
	y := d.X*sin + d.Y*cos
	return math.Abs(x) <= o.HalfL && math.Abs(y) <= o.HalfW
}

// Bounds returns the world-space AABB of the oriented box.
func (o OrientedBox) Bounds() r2.Rect {
	sin, cos := math.Sincos(o.Angle)
	ex := math.Abs(o.HalfL*cos) + math.Abs(o.HalfW*sin)
	ey := math.Abs(o.HalfL*sin) + math.Abs(o.HalfW*cos)
	return r2.RectFromPoints(
		r2.Point{X: o.Centre.X - ex, Y: o.Centre.Y - ey},
		r2.Point{X: o.Centre.X + ex, Y: o.Centre.Y + ey},
	)
}

// Circle in world space.
type Circle struct {
	Centre r2.Point
	Radius float64
}

// Contains compares squared distances, saving the sqrt.
func (c Circle) Contains(p r2.Point) bool {
	d := p.Sub(c.Centre)
	return d.X*d.X+d.Y*d.Y <= c.Radius*c.Radius
}

// Bounds returns the world-space AABB of the circle.
func (c Circle) Bounds() r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: c.Centre.X - c.Radius, Y: c.Centre.Y - c.Radius},
		r2.Point{X: c.Centre.X + c.Radius, Y: c.Centre.Y + c.Radius},
	)
}
