package zoompan

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// PointerSource reports the cursor position in viewport pixels. ok is false
// when the cursor is outside the viewport. The engine samples it once per
// tick.
type PointerSource interface {
	Pointer() (x, y float64, ok bool)
}

// PointerFunc adapts a function to the PointerSource interface.
type PointerFunc func() (x, y float64, ok bool)

// Pointer calls f.
func (f PointerFunc) Pointer() (float64, float64, bool) { return f() }

// ViewState is a copy of the engine state at one point in time.
type ViewState struct {
	// Current is the transform presented by the last tick. It is also the
	// base of the next tick's anchor computation.
	Current Transform
	// Zoom is the running zoom factor after the last tick.
	Zoom float64
	// PendingDragX and PendingDragY are pan deltas (pixels) not yet folded in.
	PendingDragX, PendingDragY float64
	// Dragging is true while a panning session is open.
	Dragging bool
	// Pointer is the last reported cursor position; valid when PointerOK.
	Pointer   Vec2
	PointerOK bool
	// PendingWheel is the number of wheel events waiting for the next tick.
	PendingWheel int
	// Tick counts completed ticks.
	Tick uint64
	// Animating is true while a ResetView animation runs.
	Animating bool
}

// inbox is the pending input written by the input actor and drained by the
// tick. Every field is guarded by Engine.inMu.
type inbox struct {
	wheel     []float64
	dragX     float64
	dragY     float64
	pointer   Vec2
	pointerOK bool
	reset     bool
}

// inputSnapshot is what a tick takes out of the inbox.
type inputSnapshot struct {
	wheel     []float64
	dragX     float64
	dragY     float64
	panning   bool
	pointer   Vec2
	pointerOK bool
	reset     bool
}

// Engine integrates asynchronous pan and zoom input into one transform per
// tick. Input methods may be called from any goroutine; Tick is normally
// driven by a Scheduler.
type Engine struct {
	cfg    Config
	source PointerSource
	home   Transform

	inMu sync.Mutex
	in   inbox
	drag *DragAccumulator

	// ticking admits a single tick at a time.
	ticking  atomic.Bool
	wheelBuf []float64

	mu      sync.RWMutex
	current Transform
	zoom    float64
	ticks   uint64
	anim    *resetAnim

	debug    atomic.Bool
	debugOut io.Writer
}

// Option configures an Engine.
type Option func(*Engine) error

// WithInitialTransform starts the view at t instead of the identity. ResetView
// returns to it. The running zoom starts at t.ScaleX.
func WithInitialTransform(t Transform) Option {
	return func(e *Engine) error {
		if !(t.ScaleX > 0) || !(t.ScaleY > 0) {
			return fmt.Errorf("initial transform: scale must be positive, got (%v, %v)", t.ScaleX, t.ScaleY)
		}
		e.home = t
		return nil
	}
}

// WithPointerSource makes the engine sample src each tick instead of using
// the positions reported through SetPointer and ClearPointer.
func WithPointerSource(src PointerSource) Option {
	return func(e *Engine) error {
		e.source = src
		return nil
	}
}

// WithDebugOutput redirects debug stats (default stderr).
func WithDebugOutput(w io.Writer) Option {
	return func(e *Engine) error {
		e.debugOut = w
		return nil
	}
}

// NewEngine validates cfg and returns an engine at the identity transform
// (or the WithInitialTransform value) with zoom equal to its scale.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:      cfg,
		home:     Identity(),
		drag:     NewDragAccumulator(cfg.PanButton),
		debugOut: os.Stderr,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.current = e.home
	e.zoom = clampZoom(e.home.ScaleX, cfg.MinZoom, cfg.MaxZoom)
	e.debug.Store(cfg.Debug)
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetDebugMode enables or disables per-tick stats on the debug output.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug.Store(enabled)
}

// --- Input ---

// Wheel queues one wheel rotation. Rotations queued between two ticks are
// applied in arrival order on the next tick. Non-finite values are ignored.
func (e *Engine) Wheel(rotation float64) {
	if math.IsNaN(rotation) || math.IsInf(rotation, 0) {
		return
	}
	e.inMu.Lock()
	e.in.wheel = append(e.in.wheel, rotation)
	e.inMu.Unlock()
}

// Press starts a drag session at (x, y). See DragAccumulator.Press for the
// button arbitration rules.
func (e *Engine) Press(x, y float64, button MouseButton) {
	e.inMu.Lock()
	e.drag.Press(x, y, button)
	e.inMu.Unlock()
}

// Move reports the pointer at (x, y) while a button is held. Deltas of a
// panning session accumulate until the next tick consumes them; deltas of
// any other session are discarded.
func (e *Engine) Move(x, y float64) {
	e.inMu.Lock()
	dx, dy := e.drag.Move(x, y)
	if e.drag.Panning() {
		e.in.dragX += dx
		e.in.dragY += dy
	}
	e.inMu.Unlock()
}

// Release ends the drag session. Deltas already accumulated are still
// applied on the next tick.
func (e *Engine) Release() {
	e.inMu.Lock()
	e.drag.Release()
	e.inMu.Unlock()
}

// ReleaseButton ends the drag session if it belongs to button. Hosts that
// track several buttons use it so that letting go of a button that lost
// arbitration does not end the pan.
func (e *Engine) ReleaseButton(button MouseButton) {
	e.inMu.Lock()
	e.drag.ReleaseButton(button)
	e.inMu.Unlock()
}

// SetPointer records the cursor position inside the viewport.
func (e *Engine) SetPointer(x, y float64) {
	e.inMu.Lock()
	e.in.pointer = Vec2{X: x, Y: y}
	e.in.pointerOK = true
	e.inMu.Unlock()
}

// ClearPointer records that the cursor left the viewport.
func (e *Engine) ClearPointer() {
	e.inMu.Lock()
	e.in.pointerOK = false
	e.inMu.Unlock()
}

// ResetView animates the view back to its initial transform over
// Config.ResetDuration. Any later wheel or pan input cancels the animation.
func (e *Engine) ResetView() {
	e.inMu.Lock()
	e.in.reset = true
	e.inMu.Unlock()
}

// takeInput copies the inbox and clears what the tick consumes in the same
// critical section. Drag deltas are only consumed when a pointer position
// is available; otherwise they wait for the tick in which it returns. Deltas
// left over from a session that closed before the tick are dropped.
func (e *Engine) takeInput() inputSnapshot {
	var srcX, srcY float64
	var srcOK bool
	if e.source != nil {
		srcX, srcY, srcOK = e.source.Pointer()
	}

	e.inMu.Lock()
	defer e.inMu.Unlock()

	s := inputSnapshot{
		wheel:   append(e.wheelBuf[:0], e.in.wheel...),
		panning: e.drag.Panning(),
		reset:   e.in.reset,
	}
	e.wheelBuf = s.wheel
	e.in.wheel = e.in.wheel[:0]
	e.in.reset = false

	if e.source != nil {
		s.pointer = Vec2{X: srcX, Y: srcY}
		s.pointerOK = srcOK
	} else {
		s.pointer = e.in.pointer
		s.pointerOK = e.in.pointerOK
	}
	if s.pointerOK {
		if s.panning {
			s.dragX, s.dragY = e.in.dragX, e.in.dragY
		}
		e.in.dragX, e.in.dragY = 0, 0
	}
	return s
}

// --- Tick ---

// Tick runs one integration step and returns the transform to present. It
// returns false without doing anything if another tick is in progress.
//
// With a pointer, the running zoom is anchored at the cursor against the
// transform presented on the previous tick, and pending pan deltas of an
// open pan session are added in scene units of the new zoom. Without a
// pointer, or when the result would not be finite, the previous transform is
// presented unchanged. A running reset animation advances regardless of the
// pointer.
func (e *Engine) Tick() (Transform, bool) {
	if !e.ticking.CompareAndSwap(false, true) {
		return e.Current(), false
	}
	defer e.ticking.Store(false)

	var start time.Time
	debug := e.debug.Load()
	if debug {
		start = time.Now()
	}

	in := e.takeInput()

	e.mu.Lock()
	zoom := e.zoom
	for _, r := range in.wheel {
		zoom = ApplyWheel(zoom, r, e.cfg.ZoomStep, e.cfg.MinZoom, e.cfg.MaxZoom)
	}

	if e.anim != nil && (len(in.wheel) > 0 || in.dragX != 0 || in.dragY != 0) {
		e.anim = nil
	}
	if in.reset {
		e.startReset()
	}

	var outcome tickOutcome
	switch {
	case e.anim != nil:
		next, done := e.anim.step(float32(e.cfg.TickPeriod.Seconds()))
		if done {
			e.anim = nil
		}
		e.current = next
		e.zoom = clampZoom(next.ScaleX, e.cfg.MinZoom, e.cfg.MaxZoom)
		outcome = tickAnimated
	case in.reset:
		// Zero-duration reset: startReset already snapped to home.
		outcome = tickAnimated
	case in.pointerOK:
		next := SolveAnchor(e.current, in.pointer.X, in.pointer.Y, zoom, zoom)
		if in.dragX != 0 || in.dragY != 0 {
			next = next.Translate(in.dragX/zoom, in.dragY/zoom)
		}
		if !next.finite() {
			// overflowed; keep the previous transform and zoom
			outcome = tickHeld
			break
		}
		e.current = next
		e.zoom = zoom
		outcome = tickAnchored
	default:
		e.zoom = zoom
		outcome = tickHeld
	}
	e.ticks++
	result := e.current
	stats := tickStats{
		tick:      e.ticks,
		outcome:   outcome,
		wheel:     len(in.wheel),
		dragX:     in.dragX,
		dragY:     in.dragY,
		panning:   in.panning,
		zoom:      e.zoom,
		transform: result,
	}
	e.mu.Unlock()

	if debug {
		stats.elapsed = time.Since(start)
		e.debugLog(stats)
	}
	return result, true
}

// startReset begins the reset animation, or snaps to home when the
// configured duration is zero. Caller holds e.mu.
func (e *Engine) startReset() {
	if e.cfg.ResetDuration <= 0 || e.current == e.home {
		e.anim = nil
		e.current = e.home
		e.zoom = clampZoom(e.home.ScaleX, e.cfg.MinZoom, e.cfg.MaxZoom)
		return
	}
	e.anim = newResetAnim(e.current, e.home, float32(e.cfg.ResetDuration.Seconds()))
}

// --- Readers ---

// Current returns the transform presented by the most recent tick.
func (e *Engine) Current() Transform {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Zoom returns the running zoom factor after the most recent tick.
func (e *Engine) Zoom() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.zoom
}

// State returns a consistent copy of the engine and pending input state.
func (e *Engine) State() ViewState {
	e.mu.RLock()
	vs := ViewState{
		Current:   e.current,
		Zoom:      e.zoom,
		Tick:      e.ticks,
		Animating: e.anim != nil,
	}
	e.mu.RUnlock()

	e.inMu.Lock()
	vs.PendingDragX = e.in.dragX
	vs.PendingDragY = e.in.dragY
	vs.Dragging = e.drag.Panning()
	vs.Pointer = e.in.pointer
	vs.PointerOK = e.in.pointerOK
	vs.PendingWheel = len(e.in.wheel)
	e.inMu.Unlock()
	return vs
}
