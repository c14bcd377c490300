package deployhelper

import (
	"encoding/json"
	"os"
	"time"

	"github.com/boljen/go-bitmap"
)

// CellClass is the line-of-sight classification of one grid cell.
type CellClass uint8

const (
	// Unanalyzed only appears in a grid that was cleared, never run, or
	// abandoned part way through.
	Unanalyzed CellClass = iota

	// Danger - visible from at least one source point.
	Danger

	// Safe - hidden from every source point.
	Safe
)

// String for display / debug output.
func (c CellClass) String() string {
	switch c {
	case Danger:
		return "danger"
	case Safe:
		return "safe"
	}
	return "unanalyzed"
}

// GridCell is one cell of the visibility sweep.
type GridCell struct {
	Column int       `json:"column"`
	Row    int       `json:"row"`
	Centre Point     `json:"centre"`
	Class  CellClass `json:"class"`

	// SourcesTested counts how many sources were evaluated before the
	// cell classified - early exit means this is often < len(sources).
	SourcesTested int `json:"sourcesTested"`
}

// VisibilityGrid is the classified board produced by one analysis run.
// Immutable once produced; a new run allocates a fresh grid.
type VisibilityGrid struct {
	// ID uniquely identifies the run that produced this grid.
	ID string `json:"id"`

	// Cells indexed [row][column].
	Cells [][]GridCell `json:"cells"`

	Resolution float64   `json:"resolution"`
	Columns    int       `json:"columns"`
	Rows       int       `json:"rows"`
	CreatedAt  time.Time `json:"createdAt"`

	// Partial marks a best-effort grid from an aborted run; some cells
	// will still be Unanalyzed.
	Partial bool `json:"partial,omitempty"`
}

// CellAt returns the cell containing the given board point, or nil if the
// point falls outside the grid.
func (g *VisibilityGrid) CellAt(x, y float64) *GridCell {
	col := int(x / g.Resolution)
	row := int(y / g.Resolution)
	if col < 0 || col >= g.Columns || row < 0 || row >= g.Rows {
		return nil
	}
	return &g.Cells[row][col]
}

// DangerMask returns a row-major bit plane with one bit per cell, set where
// the cell classified danger. Handy for compact overlay consumers.
func (g *VisibilityGrid) DangerMask() bitmap.Bitmap {
	bm := bitmap.New(g.Rows * g.Columns)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			if g.Cells[r][c].Class == Danger {
				bm.Set(r*g.Columns+c, true)
			}
		}
	}
	return bm
}

// JSON returns the grid as json.
func (g *VisibilityGrid) JSON() ([]byte, error) {
	return json.Marshal(g)
}

// SaveJSON writes a json file to the given path.
func (g *VisibilityGrid) SaveJSON(fpath string) error {
	data, err := g.JSON()
	if err != nil {
		return err
	}
	return os.WriteFile(fpath, data, 0644)
}

// VisibilityStats summarises a grid. Derived data - never mutated
// independently of the grid it came from.
type VisibilityStats struct {
	TotalCells  int `json:"totalCells"`
	DangerCells int `json:"dangerCells"`
	SafeCells   int `json:"safeCells"`

	DangerPercentage float64 `json:"dangerPercentage"`
	SafePercentage   float64 `json:"safePercentage"`
}

// Summarize counts danger / safe cells in a single pass.
func Summarize(g *VisibilityGrid) *VisibilityStats {
	st := &VisibilityStats{TotalCells: g.Rows * g.Columns}

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			switch g.Cells[r][c].Class {
			case Danger:
				st.DangerCells++
			case Safe:
				st.SafeCells++
			}
		}
	}

	if st.TotalCells > 0 {
		st.DangerPercentage = float64(st.DangerCells) / float64(st.TotalCells) * 100
		st.SafePercentage = float64(st.SafeCells) / float64(st.TotalCells) * 100
	}
	return st
}
