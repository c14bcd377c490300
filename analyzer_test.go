package deployhelper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSources = []Point{
	{X: 6, Y: 0}, {X: 10, Y: 0}, {X: 15, Y: 0}, {X: 20, Y: 0}, {X: 24, Y: 0},
}

func testConfig() AnalysisConfig {
	return AnalysisConfig{
		BoardWidth:  30,
		BoardHeight: 20,
		Resolution:  1,
		Step:        0.25,
	}
}

func rectPiece(id string, x, y, w, h float64) *TerrainPiece {
	return &TerrainPiece{
		ID:       id,
		Shapes:   []Shape{{Kind: KindRectangle, Width: w, Height: h}},
		Position: Point{X: x, Y: y},
		Blocking: true,
	}
}

func analyze(t *testing.T, pieces []*TerrainPiece, sources []Point) *VisibilityGrid {
	t.Helper()
	grid, err := NewAnalyzer(testConfig()).Analyze(context.Background(), pieces, sources)
	require.NoError(t, err)
	return grid
}

func TestEmptyBoardAllDanger(t *testing.T) {
	// no terrain, 5 sources along y=0: every ray is clear
	grid := analyze(t, nil, testSources)

	cell := grid.CellAt(15, 10)
	require.NotNil(t, cell)
	assert.Equal(t, Danger, cell.Class)
	assert.Equal(t, 1, cell.SourcesTested, "early exit on the first clear ray")

	st := Summarize(grid)
	assert.Equal(t, st.TotalCells, st.DangerCells)
	assert.Zero(t, st.SafeCells)
}

func TestShadowedCellIsSafe(t *testing.T) {
	// one 12x6 blocking rectangle at (9,4) fully shadows (15,14)
	pieces := []*TerrainPiece{rectPiece("crate", 9, 4, 12, 6)}
	grid := analyze(t, pieces, testSources)

	cell := grid.CellAt(15, 14)
	require.NotNil(t, cell)
	assert.Equal(t, Safe, cell.Class)
	assert.Equal(t, len(testSources), cell.SourcesTested, "all sources tested before safe")
}

func TestStandingOnFootprintSeesAcrossIt(t *testing.T) {
	// target is inside the footprint: the ray crosses the footprint but
	// the footprint is excluded at the target end
	pieces := []*TerrainPiece{rectPiece("ruin", 10, 7, 10, 6)}
	grid, err := NewAnalyzer(testConfig()).Analyze(context.Background(), pieces, []Point{{X: 15, Y: 0}})
	require.NoError(t, err)

	cell := grid.CellAt(15, 10)
	require.NotNil(t, cell)
	assert.Equal(t, Danger, cell.Class)
}

func TestWallOverridesFootprintTransparency(t *testing.T) {
	// same footprint, plus a wall shape crossing between the source
	// projection & the target: the wall blocks regardless of occupancy
	ruin := rectPiece("ruin", 10, 7, 10, 6)
	ruin.Shapes = append(ruin.Shapes, Shape{
		Kind:      KindWall,
		Start:     Point{X: 2, Y: 1},
		End:       Point{X: 8, Y: 1},
		Thickness: 0.5,
	})
	grid, err := NewAnalyzer(testConfig()).Analyze(context.Background(), []*TerrainPiece{ruin}, []Point{{X: 15, Y: 0}})
	require.NoError(t, err)

	cell := grid.CellAt(15, 10)
	require.NotNil(t, cell)
	assert.Equal(t, Safe, cell.Class)
}

func TestNonBlockingPiecesIgnored(t *testing.T) {
	cosmetic := rectPiece("scatter", 0, 0, 30, 20)
	cosmetic.Blocking = false

	grid := analyze(t, []*TerrainPiece{cosmetic}, testSources)
	st := Summarize(grid)
	assert.Equal(t, st.TotalCells, st.DangerCells, "non-blocking terrain must not occlude anything")
}

func TestStatsIdentities(t *testing.T) {
	pieces := []*TerrainPiece{rectPiece("crate", 9, 4, 12, 6)}
	grid := analyze(t, pieces, testSources)

	st := Summarize(grid)
	assert.Equal(t, grid.Rows*grid.Columns, st.TotalCells)
	assert.Equal(t, st.TotalCells, st.DangerCells+st.SafeCells, "no unanalyzed cells in a completed grid")
	assert.InDelta(t, 100, st.DangerPercentage+st.SafePercentage, 1e-9)
	assert.Positive(t, st.SafeCells, "the crate must shadow something")
}

func TestDeterminism(t *testing.T) {
	pieces := []*TerrainPiece{
		rectPiece("crate", 9, 4, 12, 6),
		{
			ID:       "silo",
			Shapes:   []Shape{{Kind: KindCircle, Radius: 3}},
			Position: Point{X: 24, Y: 12},
			Blocking: true,
		},
	}

	a := analyze(t, pieces, testSources)
	b := analyze(t, pieces, testSources)

	require.Equal(t, a.Rows, b.Rows)
	require.Equal(t, a.Columns, b.Columns)
	for r := 0; r < a.Rows; r++ {
		for c := 0; c < a.Columns; c++ {
			assert.Equal(t, a.Cells[r][c].Class, b.Cells[r][c].Class, "cell %d,%d", r, c)
		}
	}
}

func TestAddingTerrainOnlyRemovesDanger(t *testing.T) {
	before := analyze(t, nil, testSources)
	after := analyze(t, []*TerrainPiece{rectPiece("crate", 9, 4, 12, 6)}, testSources)

	for r := 0; r < before.Rows; r++ {
		for c := 0; c < before.Columns; c++ {
			if before.Cells[r][c].Class == Safe {
				assert.Equal(t, Safe, after.Cells[r][c].Class,
					"adding terrain must never turn a safe cell into danger (%d,%d)", r, c)
			}
		}
	}
}

func TestAddingSourcesOnlyAddsDanger(t *testing.T) {
	pieces := []*TerrainPiece{rectPiece("crate", 9, 4, 12, 6)}
	few := analyze(t, pieces, testSources[:2])
	all := analyze(t, pieces, testSources)

	for r := 0; r < few.Rows; r++ {
		for c := 0; c < few.Columns; c++ {
			if few.Cells[r][c].Class == Danger {
				assert.Equal(t, Danger, all.Cells[r][c].Class,
					"adding sources must never turn a danger cell safe (%d,%d)", r, c)
			}
		}
	}
}

func TestNoSourcesMeansAllSafe(t *testing.T) {
	grid := analyze(t, nil, nil)
	st := Summarize(grid)
	assert.Equal(t, st.TotalCells, st.SafeCells)
}

func TestProgressReporting(t *testing.T) {
	var got []int
	cfg := testConfig()
	cfg.Workers = 1
	cfg.Progress = ProgressFunc(func(pct int) { got = append(got, pct) })

	_, err := NewAnalyzer(cfg).Analyze(context.Background(), nil, testSources)
	require.NoError(t, err)

	require.NotEmpty(t, got)
	assert.Equal(t, 100, got[len(got)-1], "completion reported at 100")
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i], got[i-1], "progress must be monotone")
	}
}

func TestCancellationReturnsPartialGrid(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	grid, err := NewAnalyzer(testConfig()).Analyze(ctx, nil, testSources)
	require.Error(t, err)
	require.NotNil(t, grid, "an aborted run still returns the best-effort grid")
	assert.True(t, grid.Partial)
}

func TestTimeoutHonoured(t *testing.T) {
	cfg := testConfig()
	cfg.Timeout = time.Nanosecond
	cfg.Step = 0.01 // plenty of work

	grid, err := NewAnalyzer(cfg).Analyze(context.Background(), []*TerrainPiece{rectPiece("crate", 9, 4, 12, 6)}, testSources)
	require.Error(t, err)
	require.NotNil(t, grid)
	assert.True(t, grid.Partial)
}

func TestInvalidPiecesFailFast(t *testing.T) {
	bad := &TerrainPiece{
		ID:       "bad",
		Shapes:   []Shape{{Kind: "blob"}},
		Blocking: true,
	}
	grid, err := NewAnalyzer(testConfig()).Analyze(context.Background(), []*TerrainPiece{bad}, testSources)
	require.ErrorIs(t, err, ErrUnknownShapeKind)
	assert.Nil(t, grid)
}

func TestAnalyzerLifecycle(t *testing.T) {
	a := NewAnalyzer(testConfig())

	_, _, ok := a.Result()
	assert.False(t, ok, "no result while idle")

	_, err := a.Analyze(context.Background(), nil, testSources)
	require.NoError(t, err)

	grid, stats, ok := a.Result()
	require.True(t, ok)
	require.NotNil(t, grid)
	require.NotNil(t, stats)

	a.Clear()
	_, _, ok = a.Result()
	assert.False(t, ok, "clear returns the analyzer to idle")
}
