package zoompan

import (
	"fmt"
	"time"
)

// tickOutcome records which branch a tick took.
type tickOutcome uint8

const (
	tickHeld     tickOutcome = iota // no pointer: previous transform reused
	tickAnchored                    // zoom anchored at the cursor, drag folded in
	tickAnimated                    // reset animation in control
)

func (o tickOutcome) String() string {
	switch o {
	case tickHeld:
		return "held"
	case tickAnchored:
		return "anchored"
	case tickAnimated:
		return "animated"
	default:
		return "unknown"
	}
}

// tickStats holds per-tick metrics. Only populated when debug mode is on.
type tickStats struct {
	tick      uint64
	outcome   tickOutcome
	wheel     int
	dragX     float64
	dragY     float64
	panning   bool
	zoom      float64
	transform Transform
	elapsed   time.Duration
}

// debugLog prints one line per tick to the debug output.
func (e *Engine) debugLog(s tickStats) {
	if !e.debug.Load() || e.debugOut == nil {
		return
	}
	_, _ = fmt.Fprintf(e.debugOut,
		"[zoompan] tick %d: %s | wheel: %d | drag: (%.1f, %.1f) panning=%t | zoom: %.4g | %s | %v\n",
		s.tick, s.outcome, s.wheel, s.dragX, s.dragY, s.panning, s.zoom, s.transform, s.elapsed)
}

// debugLogStats prints the scheduler totals when it stops.
func (s *Scheduler) debugLogStats() {
	if !s.engine.debug.Load() || s.engine.debugOut == nil {
		return
	}
	st := s.Stats()
	_, _ = fmt.Fprintf(s.engine.debugOut,
		"[zoompan] scheduler stopped: ticks: %d | skipped: %d | last: %v | max: %v\n",
		st.Ticks, st.Skipped, st.LastTick, st.MaxTick)
}
