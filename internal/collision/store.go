package collision

import (
	"math"

	"github.com/boljen/go-bitmap"
	"github.com/golang/geo/r2"
)

// bucketsPerAxis caps the index grid so tiny bucket sizes can't blow up
// memory on a large board.
const bucketsPerAxis = 64

// Store is a read-only set of collision bodies behind a uniform-grid
// spatial index keyed by body world bounds. Built once per analysis run &
// never mutated, so it is safe to share between workers without locking.
type Store struct {
	bodies []Body

	bounds     r2.Rect
	cellW      float64
	cellH      float64
	cols, rows int

	// body indices per bucket, row major
	buckets [][]int

	// one occupancy plane per role so role-filtered queries can skip
	// buckets that hold only the other kind of body
	occupied [2]bitmap.Bitmap
}

// NewStore indexes the given bodies. The body slice is retained; callers
// must not mutate it afterwards. Output depends only on input order, so two
// builds over the same list behave identically.
func NewStore(bodies []Body) *Store {
	s := &Store{bodies: bodies}

	if len(bodies) == 0 {
		return s
	}

	s.bounds = bodies[0].Prim.Bounds()
	for _, b := range bodies[1:] {
		s.bounds = s.bounds.Union(b.Prim.Bounds())
	}

	s.cols = bucketsPerAxis
	s.rows = bucketsPerAxis
	s.cellW = s.bounds.X.Length() / float64(s.cols)
	s.cellH = s.bounds.Y.Length() / float64(s.rows)
	if s.cellW <= 0 {
		s.cellW = 1
	}
	if s.cellH <= 0 {
		s.cellH = 1
	}

	s.buckets = make([][]int, s.cols*s.rows)
	s.occupied[RoleFootprint] = bitmap.New(s.cols * s.rows)
	s.occupied[RoleWall] = bitmap.New(s.cols * s.rows)

	for i, b := range bodies {
		bnds := b.Prim.Bounds()
		c0, r0 := s.bucketCoords(r2.Point{X: bnds.X.Lo, Y: bnds.Y.Lo})
		c1, r1 := s.bucketCoords(r2.Point{X: bnds.X.Hi, Y: bnds.Y.Hi})

		for row := r0; row <= r1; row++ {
			for col := c0; col <= c1; col++ {
				at := row*s.cols + col
				s.buckets[at] = append(s.buckets[at], i)
				s.occupied[b.Role].Set(at, true)
			}
		}
	}

	return s
}

// Len returns the number of indexed bodies.
func (s *Store) Len() int {
	return len(s.bodies)
}

// CountRole returns the number of bodies carrying the given role.
func (s *Store) CountRole(role Role) int {
	n := 0
	for _, b := range s.bodies {
		if b.Role == role {
			n++
		}
	}
	return n
}

// bucketCoords clamps a world point into index grid coordinates.
func (s *Store) bucketCoords(p r2.Point) (int, int) {
	col := int(math.Floor((p.X - s.bounds.X.Lo) / s.cellW))
	row := int(math.Floor((p.Y - s.bounds.Y.Lo) / s.cellH))

	if col < 0 {
		col = 0
	} else if col >= s.cols {
		col = s.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= s.rows {
		row = s.rows - 1
	}
	return col, row
}

// Intersects reports whether any body of the given role contains p.
// Bodies whose piece id is in excluded are skipped - this is how standing
// on a footprint makes that footprint transparent. Walls are expected to be
// queried with a nil exclusion set.
func (s *Store) Intersects(p r2.Point, role Role, excluded *ExcludeSet) bool {
	if len(s.bodies) == 0 || !s.bounds.ContainsPoint(p) {
		return false
	}

	col, row := s.bucketCoords(p)
	at := row*s.cols + col
	if !s.occupied[role].Get(at) {
		return false
	}

	for _, i := range s.buckets[at] {
		b := s.bodies[i]
		if b.Role != role {
			continue
		}
		if excluded.Has(b.PieceID) {
			continue
		}
		if b.Prim.Contains(p) {
			return true
		}
	}
	return false
}
