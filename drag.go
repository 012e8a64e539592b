package zoompan

// DragSession is the state of one press-drag-release gesture. It exists only
// between a press and the matching release.
type DragSession struct {
	// ID numbers sessions in the order they were opened, starting at 1.
	ID uint32
	// AnchorX and AnchorY are the pointer pixel coordinates of the last
	// press or move.
	AnchorX, AnchorY float64
	// Button is the button captured at press time. It does not change for
	// the lifetime of the session.
	Button MouseButton
}

// DragAccumulator tracks press/move/release and reports pixel deltas between
// successive pointer positions. Only sessions started with the pan button
// count as panning. It is not safe for concurrent use; the engine guards it
// with its inbox lock.
type DragAccumulator struct {
	panButton MouseButton
	session   *DragSession
	nextID    uint32
}

// NewDragAccumulator returns an accumulator that pans with panButton.
func NewDragAccumulator(panButton MouseButton) *DragAccumulator {
	return &DragAccumulator{panButton: panButton}
}

// PanButton returns the button that starts a panning session.
func (d *DragAccumulator) PanButton() MouseButton {
	return d.panButton
}

// priority ranks buttons for gesture arbitration. The pan button outranks
// all others; the remaining buttons are equal.
func (d *DragAccumulator) priority(b MouseButton) int {
	if b == d.panButton {
		return 1
	}
	return 0
}

// Press opens a session at (x, y) for button. If a session with a different
// button is active, the press only takes over when it has a higher priority;
// otherwise it is ignored and Press returns false. Pressing the same button
// again re-anchors the session.
func (d *DragAccumulator) Press(x, y float64, button MouseButton) bool {
	if s := d.session; s != nil && s.Button != button {
		if d.priority(button) <= d.priority(s.Button) {
			return false
		}
	}
	d.nextID++
	d.session = &DragSession{ID: d.nextID, AnchorX: x, AnchorY: y, Button: button}
	return true
}

// Move returns the pixel delta since the previous press or move and moves
// the anchor to (x, y). Without an active session the delta is zero.
func (d *DragAccumulator) Move(x, y float64) (dx, dy float64) {
	s := d.session
	if s == nil {
		return 0, 0
	}
	dx = x - s.AnchorX
	dy = y - s.AnchorY
	s.AnchorX = x
	s.AnchorY = y
	return dx, dy
}

// Release closes the active session, if any.
func (d *DragAccumulator) Release() {
	d.session = nil
}

// ReleaseButton closes the active session only if it was opened with
// button. It reports whether a session was closed.
func (d *DragAccumulator) ReleaseButton(button MouseButton) bool {
	if d.session == nil || d.session.Button != button {
		return false
	}
	d.session = nil
	return true
}

// Dragging reports whether a session is active.
func (d *DragAccumulator) Dragging() bool {
	return d.session != nil
}

// Panning reports whether the active session was opened with the pan button.
func (d *DragAccumulator) Panning() bool {
	return d.session != nil && d.session.Button == d.panButton
}

// Session returns a copy of the active session.
func (d *DragAccumulator) Session() (DragSession, bool) {
	if d.session == nil {
		return DragSession{}, false
	}
	return *d.session, true
}
