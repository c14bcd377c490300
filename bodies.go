package deployhelper

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/wn-mitch/deploy-helper/internal/collision"
	"github.com/wn-mitch/deploy-helper/internal/geometry"
)

// origin is local (0,0), the piece anchor.
var origin = r2.Point{}

// buildBodies converts blocking pieces into world-space collision bodies.
// Shape index 0 becomes a footprint body - unless it is a wall shape, in
// which case the piece has no footprint & the shape blocks like any other
// wall. All remaining shapes become wall bodies.
//
// Output order follows input order exactly; no incidental reordering.
func buildBodies(pieces []*TerrainPiece) ([]collision.Body, error) {
	bodies := []collision.Body{}

	for _, p := range pieces {
		if !p.Blocking {
			continue
		}
		t := p.transform()

		for i := range p.Shapes {
			s := &p.Shapes[i]

			role := collision.RoleWall
			if i == 0 && s.Kind != KindWall {
				role = collision.RoleFootprint
			}

			prim, err := shapePrimitive(s, t)
			if err != nil {
				return nil, fmt.Errorf("piece %s shape %d: %w", p.ID, i, err)
			}

			bodies = append(bodies, collision.Body{
				PieceID: p.ID,
				Role:    role,
				Prim:    prim,
			})
		}
	}

	return bodies, nil
}

// shapePrimitive builds the world-space primitive for one shape under the
// owning piece's transform.
func shapePrimitive(s *Shape, t geometry.Transform) (collision.Primitive, error) {
	switch s.Kind {
	case KindRectangle:
		return geometry.Box{W: s.Width, H: s.Height, T: t}, nil

	case KindPolygon:
		if len(s.Points) < 3 {
			return nil, ErrMalformedPolygon
		}
		pg := geometry.Polygon{}
		for _, pt := range s.Points {
			pg.Points = append(pg.Points, t.ToWorld(pt.r2()))
		}
		return pg, nil

	case KindCircle:
		return geometry.Circle{Centre: t.ToWorld(origin), Radius: s.Radius}, nil

	case KindWall:
		return geometry.OrientedBoxFromSegment(
			t.ToWorld(s.Start.r2()),
			t.ToWorld(s.End.r2()),
			s.Thickness,
		), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShapeKind, s.Kind)
	}
}
