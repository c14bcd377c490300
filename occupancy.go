package deployhelper

import (
	"github.com/wn-mitch/deploy-helper/internal/collision"
)

// occupancyDetector answers which blocking pieces' footprints contain a
// given point. Wall footprints never match (there is nothing to stand on).
// The detector itself is read-only after construction; the optional cache
// is only used for the analysis run's source points, which repeat across
// every cell evaluation.
type occupancyDetector struct {
	footprints []collision.Body
	cache      map[Point][]string
}

// newOccupancyDetector builds footprint geometry for the blocking pieces.
// Invalid shapes are skipped here - validation happens before any analysis
// run, so this path only ever sees shapes we can build.
func newOccupancyDetector(pieces []*TerrainPiece) *occupancyDetector {
	o := &occupancyDetector{
		footprints: []collision.Body{},
		cache:      map[Point][]string{},
	}

	for _, p := range pieces {
		if !p.Blocking {
			continue
		}
		fp := p.Footprint()
		if fp == nil {
			continue
		}
		prim, err := shapePrimitive(fp, p.transform())
		if err != nil {
			continue
		}
		o.footprints = append(o.footprints, collision.Body{
			PieceID: p.ID,
			Role:    collision.RoleFootprint,
			Prim:    prim,
		})
	}

	return o
}

// at returns the ids of pieces whose footprint contains p.
// Not safe for concurrent use - workers use atUncached.
func (o *occupancyDetector) at(p Point) []string {
	if ids, ok := o.cache[p]; ok {
		return ids
	}
	ids := o.atUncached(p)
	o.cache[p] = ids
	return ids
}

// atUncached computes occupancy without touching the cache, so concurrent
// cell workers can call it freely.
func (o *occupancyDetector) atUncached(p Point) []string {
	var ids []string
	world := p.r2()
	for _, b := range o.footprints {
		if b.Prim.Contains(world) {
			ids = append(ids, b.PieceID)
		}
	}
	return ids
}

// OccupiedBy returns the ids of blocking pieces whose footprint contains
// the given point. Pieces whose first shape is a wall are never reported.
func OccupiedBy(point Point, pieces []*TerrainPiece) []string {
	return newOccupancyDetector(pieces).atUncached(point)
}
