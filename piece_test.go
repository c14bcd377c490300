package deployhelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeValidation(t *testing.T) {
	ok := []Shape{
		{Kind: KindRectangle, Width: 4, Height: 2},
		{Kind: KindCircle, Radius: 3},
		{Kind: KindWall, Start: Point{}, End: Point{X: 5}, Thickness: 0.5},
		{Kind: KindPolygon, Points: []Point{{}, {X: 4}, {X: 2, Y: 3}}},
	}
	for _, s := range ok {
		assert.NoError(t, s.validate(), "kind %s", s.Kind)
	}

	bad := Shape{Kind: "hexagon"}
	assert.ErrorIs(t, bad.validate(), ErrUnknownShapeKind)

	thin := Shape{Kind: KindPolygon, Points: []Point{{}, {X: 4}}}
	assert.ErrorIs(t, thin.validate(), ErrMalformedPolygon)
}

func TestPieceValidateNamesTheShape(t *testing.T) {
	p := &TerrainPiece{
		ID: "ruin-1",
		Shapes: []Shape{
			{Kind: KindRectangle, Width: 4, Height: 2},
			{Kind: "blob"},
		},
	}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ruin-1")
	assert.Contains(t, err.Error(), "shape 1")
}

func TestFootprint(t *testing.T) {
	withBase := &TerrainPiece{Shapes: []Shape{
		{Kind: KindRectangle, Width: 4, Height: 2},
		{Kind: KindWall, End: Point{X: 4}, Thickness: 0.5},
	}}
	require.NotNil(t, withBase.Footprint())
	assert.Equal(t, KindRectangle, withBase.Footprint().Kind)

	// a wall in the footprint slot means there is nothing to stand on
	wallFirst := &TerrainPiece{Shapes: []Shape{
		{Kind: KindWall, End: Point{X: 4}, Thickness: 0.5},
	}}
	assert.Nil(t, wallFirst.Footprint())

	empty := &TerrainPiece{}
	assert.Nil(t, empty.Footprint())
}

func TestBuildBodiesRoles(t *testing.T) {
	pieces := []*TerrainPiece{
		{
			ID: "ruin",
			Shapes: []Shape{
				{Kind: KindRectangle, Width: 10, Height: 6},
				{Kind: KindWall, End: Point{X: 10}, Thickness: 0.5},
				{Kind: KindCircle, Radius: 1},
			},
			Blocking: true,
		},
		{
			ID:       "barricade",
			Shapes:   []Shape{{Kind: KindWall, End: Point{X: 6}, Thickness: 0.5}},
			Blocking: true,
		},
		{
			ID:       "cosmetic",
			Shapes:   []Shape{{Kind: KindRectangle, Width: 2, Height: 2}},
			Blocking: false,
		},
	}

	bodies, err := buildBodies(pieces)
	require.NoError(t, err)
	require.Len(t, bodies, 4, "non-blocking pieces contribute nothing")

	// ruin: footprint + two walls (the non-first circle is structural)
	assert.Equal(t, "ruin", bodies[0].PieceID)
	assert.Equal(t, "footprint", bodies[0].Role.String())
	assert.Equal(t, "wall", bodies[1].Role.String())
	assert.Equal(t, "wall", bodies[2].Role.String())

	// a wall in the footprint slot is a wall body, not a footprint
	assert.Equal(t, "barricade", bodies[3].PieceID)
	assert.Equal(t, "wall", bodies[3].Role.String())
}
