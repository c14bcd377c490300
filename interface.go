package deployhelper

// ProgressSink receives coarse progress while a sweep runs.
// We only have one question for the consumer:
// - are you still interested in 0-100 updates?
// Implementations must tolerate being called from analysis goroutines;
// updates are serialised & monotonically non-decreasing, with a final 100
// reported at completion regardless of rounding.
type ProgressSink interface {
	Progress(pct int)
}

// ProgressFunc adapts a plain function to a ProgressSink.
type ProgressFunc func(pct int)

// Progress calls f.
func (f ProgressFunc) Progress(pct int) {
	f(pct)
}
