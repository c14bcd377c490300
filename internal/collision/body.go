package collision

import (
	"github.com/golang/geo/r2"
)

// Role says what a body means for line of sight queries.
// Footprints are steppable bases that only block when neither ray endpoint
// stands on them; walls block unconditionally.
type Role uint8

const (
	RoleFootprint Role = iota
	RoleWall
)

// String for logging / debug output.
func (r Role) String() string {
	if r == RoleWall {
		return "wall"
	}
	return "footprint"
}

// Primitive is any world-space geometric body we can point-test.
// Implementations live in internal/geometry.
type Primitive interface {
	Contains(p r2.Point) bool
	Bounds() r2.Rect
}

// Body is a world-space primitive tagged with the piece it came from
// and what role it plays. One store holds both roles - queries filter.
type Body struct {
	PieceID string
	Role    Role
	Prim    Primitive
}
