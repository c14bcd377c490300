package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// MirrorAxis selects which local axis (if any) a shape is reflected over
// before it is rotated & translated into world space.
type MirrorAxis uint8

const (
	MirrorNone MirrorAxis = iota
	MirrorHorizontal
	MirrorVertical
)

// Transform maps a piece's local shape frame into board ("world") space.
// Order of operations is mirror, rotate about the piece anchor, translate.
// The anchor (Position) is the shape's reference corner - local (0,0).
type Transform struct {
	Position r2.Point
	Rotation float64 // degrees, positive is clockwise (y axis points down)
	Mirror   MirrorAxis
}

// ToWorld applies the forward transform to a local point.
func (t Transform) ToWorld(p r2.Point) r2.Point {
	switch t.Mirror {
	case MirrorHorizontal:
		p.X = -p.X
	case MirrorVertical:
		p.Y = -p.Y
	}

	sin, cos := math.Sincos(t.Rotation * math.Pi / 180)
	return r2.Point{
		X: t.Position.X + p.X*cos - p.Y*sin,
		Y: t.Position.Y + p.X*sin + p.Y*cos,
	}
}

// ToLocal reverses ToWorld exactly (translate, unrotate, unmirror).
// Used for containment tests so shapes can be tested in their local frame.
func (t Transform) ToLocal(p r2.Point) r2.Point {
	p = p.Sub(t.Position)

	sin, cos := math.Sincos(-t.Rotation * math.Pi / 180)
	p = r2.Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}

	switch t.Mirror {
	case MirrorHorizontal:
		p.X = -p.X
	case MirrorVertical:
		p.Y = -p.Y
	}
	return p
}
