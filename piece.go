package deployhelper

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/wn-mitch/deploy-helper/internal/geometry"
)

var (
	// ErrUnknownShapeKind means a layout carried a shape kind we don't
	// recognise. We fail fast rather than silently contribute no geometry,
	// which would read as "always visible" & mask authoring mistakes.
	ErrUnknownShapeKind = fmt.Errorf("unknown shape kind")

	// ErrMalformedPolygon means a polygon shape had fewer than 3 points.
	ErrMalformedPolygon = fmt.Errorf("polygon requires at least 3 points")
)

// Point is a board coordinate in inches. Origin is the top-left corner of
// the board, x runs right, y runs down.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// r2 converts to the world-space vector type the internal packages use.
func (p Point) r2() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// Mirror names an optional reflection applied to a piece's shapes before
// rotation.
type Mirror string

const (
	MirrorNone       Mirror = ""
	MirrorHorizontal Mirror = "horizontal"
	MirrorVertical   Mirror = "vertical"
)

// ShapeKind discriminates the Shape union.
type ShapeKind string

const (
	KindRectangle ShapeKind = "rectangle"
	KindPolygon   ShapeKind = "polygon"
	KindCircle    ShapeKind = "circle"
	KindWall      ShapeKind = "wall"
)

// Shape is one geometric element of a terrain piece, in the piece's local
// frame. Which fields matter depends on Kind:
//   - rectangle: Width, Height (anchored at local (0,0), extending +x +y)
//   - polygon:   Points (ordered, local coordinates)
//   - circle:    Radius (centred on the piece anchor)
//   - wall:      Start, End, Thickness (a zero interior segment)
//
// A wall has no interior - it is never a footprint, only a blocker.
type Shape struct {
	Kind ShapeKind `json:"kind" yaml:"kind"`

	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`

	Points []Point `json:"points,omitempty" yaml:"points,omitempty"`

	Radius float64 `json:"radius,omitempty" yaml:"radius,omitempty"`

	Start     Point   `json:"start,omitempty" yaml:"start,omitempty"`
	End       Point   `json:"end,omitempty" yaml:"end,omitempty"`
	Thickness float64 `json:"thickness,omitempty" yaml:"thickness,omitempty"`
}

// validate rejects shapes we cannot build geometry for.
func (s *Shape) validate() error {
	switch s.Kind {
	case KindRectangle, KindCircle, KindWall:
		return nil
	case KindPolygon:
		if len(s.Points) < 3 {
			return fmt.Errorf("%w: got %d", ErrMalformedPolygon, len(s.Points))
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownShapeKind, s.Kind)
	}
}

// TerrainPiece is one piece of terrain as handed to us by the layout
// provider. Shapes[0] is the footprint - the steppable base a model can
// stand on; Shapes[1:] are structural walls that always block line of
// sight. If Shapes[0] is itself a wall the piece has no footprint at all.
// Only pieces with Blocking true participate in any query.
type TerrainPiece struct {
	ID       string  `json:"id" yaml:"id"`
	Shapes   []Shape `json:"shapes" yaml:"shapes"`
	Position Point   `json:"position" yaml:"position"`
	Rotation float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"` // degrees
	Mirror   Mirror  `json:"mirror,omitempty" yaml:"mirror,omitempty"`
	Blocking bool    `json:"blocking" yaml:"blocking"`
	Height   float64 `json:"height,omitempty" yaml:"height,omitempty"` // inches, informational
}

// Validate checks every shape of the piece at construction time.
func (p *TerrainPiece) Validate() error {
	for i := range p.Shapes {
		if err := p.Shapes[i].validate(); err != nil {
			return fmt.Errorf("piece %s shape %d: %w", p.ID, i, err)
		}
	}
	return nil
}

// ValidatePieces validates a whole layout's worth of pieces.
func ValidatePieces(pieces []*TerrainPiece) error {
	for _, p := range pieces {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Footprint returns the piece's footprint shape, or nil if the piece has
// none (no shapes, or a wall in the footprint slot).
func (p *TerrainPiece) Footprint() *Shape {
	if len(p.Shapes) == 0 || p.Shapes[0].Kind == KindWall {
		return nil
	}
	return &p.Shapes[0]
}

// transform builds the local-to-world transform for this piece.
func (p *TerrainPiece) transform() geometry.Transform {
	m := geometry.MirrorNone
	switch p.Mirror {
	case MirrorHorizontal:
		m = geometry.MirrorHorizontal
	case MirrorVertical:
		m = geometry.MirrorVertical
	}
	return geometry.Transform{
		Position: p.Position.r2(),
		Rotation: p.Rotation,
		Mirror:   m,
	}
}
