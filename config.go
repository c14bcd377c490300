package deployhelper

import (
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBoardWidth / DefaultBoardHeight are a standard tournament
	// board in inches.
	DefaultBoardWidth  = 60.0
	DefaultBoardHeight = 44.0

	// DefaultResolution is the grid cell edge length in inches.
	DefaultResolution = 1.0

	// DefaultStep is the ray sampling increment in inches. Fractional-inch
	// scale, deliberately independent of the grid resolution.
	DefaultStep = 0.25
)

// AnalysisConfig holds configuration for a visibility analysis run.
// Zero values fall back to sane defaults, so the empty config works.
type AnalysisConfig struct {
	// Board dimensions in inches.
	BoardWidth  float64
	BoardHeight float64

	// Resolution is the cell edge length in inches.
	// Callers are expected to clamp this to whatever physical range their
	// surface allows before handing it over.
	Resolution float64

	// Step is the arc-length increment between ray samples (inches).
	Step float64

	// Workers caps the number of concurrent row workers.
	// Defaults to the number of CPUs.
	Workers int

	// Timeout bounds the whole run. 0 means no deadline - the context
	// passed to Analyze can still cancel.
	// Cost scales with columns x rows x sources x (segment length / Step),
	// so long runs on dense boards are entirely possible.
	Timeout time.Duration

	// Progress receives coarse 0-100 percentages - roughly every tenth of
	// the total cells, and always 100 on completion. Optional.
	Progress ProgressSink

	// Logger for structured diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// withDefaults returns a copy with unset fields filled in.
func (c AnalysisConfig) withDefaults() AnalysisConfig {
	if c.BoardWidth <= 0 {
		c.BoardWidth = DefaultBoardWidth
	}
	if c.BoardHeight <= 0 {
		c.BoardHeight = DefaultBoardHeight
	}
	if c.Resolution <= 0 {
		c.Resolution = DefaultResolution
	}
	if c.Step <= 0 {
		c.Step = DefaultStep
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}
