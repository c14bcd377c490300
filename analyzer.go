package deployhelper

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wn-mitch/deploy-helper/internal/collision"
)

var (
	// ErrAnalysisRunning means Analyze was called while a run was already
	// in flight on the same Analyzer.
	ErrAnalysisRunning = fmt.Errorf("analysis already running")
)

// runState tracks the analyzer lifecycle: Idle -> Running -> Completed,
// with Clear returning to Idle. There is no paused or partially committed
// state; a run completes with a full grid or is abandoned entirely.
type runState uint8

const (
	stateIdle runState = iota
	stateRunning
	stateCompleted
)

// Analyzer runs terrain-aware visibility sweeps: given the opponent's
// deployment-zone sample points & the table's terrain, it classifies every
// cell of the board as danger (visible from at least one source) or safe
// (hidden from all of them).
type Analyzer struct {
	cfg AnalysisConfig
	log *zap.Logger

	mu    sync.Mutex
	state runState
	grid  *VisibilityGrid
	stats *VisibilityStats
}

// NewAnalyzer creates an Analyzer with the given configuration.
func NewAnalyzer(cfg AnalysisConfig) *Analyzer {
	cfg = cfg.withDefaults()
	return &Analyzer{cfg: cfg, log: cfg.Logger}
}

// Result returns the grid & stats of the last completed run, if any.
func (a *Analyzer) Result() (*VisibilityGrid, *VisibilityStats, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != stateCompleted {
		return nil, nil, false
	}
	return a.grid, a.stats, true
}

// Clear discards any completed result & returns the analyzer to idle.
func (a *Analyzer) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateRunning {
		return
	}
	a.grid = nil
	a.stats = nil
	a.state = stateIdle
}

// Analyze sweeps the whole board. For every cell it asks: can any source
// point see this cell's centre? One clear ray is enough to mark the cell
// danger & stop testing further sources.
//
// The collision system is built once up front & shared read-only between
// row workers, so no locking happens inside the sweep. Cancellation is
// checked per cell; an aborted run returns the best-effort grid
// completed so far, marked Partial, together with the context error.
func (a *Analyzer) Analyze(ctx context.Context, pieces []*TerrainPiece, sources []Point) (*VisibilityGrid, error) {
	a.mu.Lock()
	if a.state == stateRunning {
		a.mu.Unlock()
		return nil, ErrAnalysisRunning
	}
	a.state = stateRunning
	a.grid = nil
	a.stats = nil
	a.mu.Unlock()

	grid, err := a.run(ctx, pieces, sources)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.state = stateIdle
		return grid, err
	}
	a.grid = grid
	a.stats = Summarize(grid)
	a.state = stateCompleted
	return grid, nil
}

func (a *Analyzer) run(ctx context.Context, pieces []*TerrainPiece, sources []Point) (*VisibilityGrid, error) {
	started := time.Now()

	if err := ValidatePieces(pieces); err != nil {
		return nil, err
	}

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	bodies, err := buildBodies(pieces)
	if err != nil {
		return nil, err
	}
	store := collision.NewStore(bodies)

	// source points repeat across every cell, cache their occupancy once
	occ := newOccupancyDetector(pieces)
	srcOcc := make([][]string, len(sources))
	for i, src := range sources {
		srcOcc[i] = occ.at(src)
	}

	res := a.cfg.Resolution
	cols := int(math.Ceil(a.cfg.BoardWidth / res))
	rows := int(math.Ceil(a.cfg.BoardHeight / res))

	a.log.Debug("collision system built",
		zap.Int("bodies", store.Len()),
		zap.Int("footprints", store.CountRole(collision.RoleFootprint)),
		zap.Int("walls", store.CountRole(collision.RoleWall)),
		zap.Int("columns", cols),
		zap.Int("rows", rows),
		zap.Int("sources", len(sources)),
	)

	grid := &VisibilityGrid{
		ID:         uuid.NewString(),
		Cells:      make([][]GridCell, rows),
		Resolution: res,
		Columns:    cols,
		Rows:       rows,
		CreatedAt:  started,
	}
	for r := 0; r < rows; r++ {
		grid.Cells[r] = make([]GridCell, cols)
	}

	prog := newProgressReporter(a.cfg.Progress, rows*cols)

	g, gctx := errgroup.WithContext(ctx)
	workers := a.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g.SetLimit(workers)

	for r := 0; r < rows; r++ {
		row := r
		g.Go(func() error {
			for col := 0; col < cols; col++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				a.classifyCell(&grid.Cells[row][col], row, col, store, occ, sources, srcOcc)
			}
			prog.add(cols)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		grid.Partial = true
		a.log.Warn("analysis aborted", zap.String("grid", grid.ID), zap.Error(err))
		return grid, fmt.Errorf("analysis aborted: %w", err)
	}

	prog.done()

	st := Summarize(grid)
	a.log.Info("analysis complete",
		zap.String("grid", grid.ID),
		zap.Int("cells", st.TotalCells),
		zap.Int("danger", st.DangerCells),
		zap.Int("safe", st.SafeCells),
		zap.Duration("took", time.Since(started)),
	)

	return grid, nil
}

// classifyCell evaluates one cell against every source, early-exiting on
// the first clear ray. The exclusion set is the union of the source's &
// the cell's own occupied footprints, computed per (source, cell) pair -
// standing on a footprint lets you see across it, but a structural wall on
// the same piece still blocks.
func (a *Analyzer) classifyCell(cell *GridCell, row, col int, store *collision.Store, occ *occupancyDetector, sources []Point, srcOcc [][]string) {
	res := a.cfg.Resolution
	centre := Point{
		X: float64(col)*res + res/2,
		Y: float64(row)*res + res/2,
	}

	cell.Column = col
	cell.Row = row
	cell.Centre = centre

	cellOcc := occ.atUncached(centre)

	cell.Class = Safe
	for i, src := range sources {
		excl := collision.ExcludeSet{A: srcOcc[i], B: cellOcc}
		if !store.SegmentBlocked(src.r2(), centre.r2(), a.cfg.Step, &excl) {
			cell.Class = Danger
			cell.SourcesTested = i + 1
			return
		}
	}
	cell.SourcesTested = len(sources)
}

// progressReporter serialises coarse progress callbacks from row workers.
// Reports roughly every tenth of the total & keeps percentages monotone.
type progressReporter struct {
	mu       sync.Mutex
	sink     ProgressSink
	total    int
	finished int
	lastPct  int
}

func newProgressReporter(sink ProgressSink, total int) *progressReporter {
	return &progressReporter{sink: sink, total: total, lastPct: -1}
}

// add records n more finished cells.
func (p *progressReporter) add(n int) {
	if p.sink == nil || p.total == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.finished += n
	pct := p.finished * 100 / p.total
	pct -= pct % 10 // coarse steps only
	if pct > p.lastPct {
		p.lastPct = pct
		p.sink.Progress(pct)
	}
}

// done reports completion at 100 regardless of rounding.
func (p *progressReporter) done() {
	if p.sink == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastPct < 100 {
		p.lastPct = 100
		p.sink.Progress(100)
	}
}
