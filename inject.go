package zoompan

// eventKind identifies a synthetic input event.
type eventKind uint8

const (
	eventPointer eventKind = iota
	eventLeave
	eventWheel
	eventPress
	eventMove
	eventRelease
	eventReset
)

// syntheticEvent is one queued input event. Coordinates are viewport pixels,
// exactly as a host would report them.
type syntheticEvent struct {
	kind     eventKind
	x, y     float64
	rotation float64
	button   MouseButton
	// chain applies the next queued event in the same frame.
	chain bool
}

// apply delivers the event to the engine through its public input methods.
func (ev syntheticEvent) apply(e *Engine) {
	switch ev.kind {
	case eventPointer:
		e.SetPointer(ev.x, ev.y)
	case eventLeave:
		e.ClearPointer()
	case eventWheel:
		e.Wheel(ev.rotation)
	case eventPress:
		e.Press(ev.x, ev.y, ev.button)
	case eventMove:
		e.SetPointer(ev.x, ev.y)
		e.Move(ev.x, ev.y)
	case eventRelease:
		e.Release()
	case eventReset:
		e.ResetView()
	}
}

// inputQueue is a FIFO of synthetic events consumed one per frame.
type inputQueue struct {
	events []syntheticEvent
}

func (q *inputQueue) push(ev syntheticEvent) {
	q.events = append(q.events, ev)
}

// pop removes and returns the oldest event.
func (q *inputQueue) pop() (syntheticEvent, bool) {
	if len(q.events) == 0 {
		return syntheticEvent{}, false
	}
	ev := q.events[0]
	copy(q.events, q.events[1:])
	q.events = q.events[:len(q.events)-1]
	return ev, true
}

// applyFrame pops one event, plus any events chained to it, and applies
// them. It reports whether anything was applied.
func (q *inputQueue) applyFrame(e *Engine) bool {
	ev, ok := q.pop()
	if !ok {
		return false
	}
	ev.apply(e)
	for ev.chain {
		if ev, ok = q.pop(); !ok {
			break
		}
		ev.apply(e)
	}
	return true
}

// pushDrag queues a full drag: press at (fromX, fromY) together with the
// first move, linearly interpolated moves ending at (toX, toY), and the
// release alone on the last frame so the final move is ticked while the
// session is still open. The sequence spans `frames` frames; the minimum
// is 2.
func (q *inputQueue) pushDrag(fromX, fromY, toX, toY float64, frames int, button MouseButton) {
	if frames < 2 {
		frames = 2
	}
	q.push(syntheticEvent{kind: eventPointer, x: fromX, y: fromY, chain: true})
	q.push(syntheticEvent{kind: eventPress, x: fromX, y: fromY, button: button, chain: true})
	moves := frames - 1
	for i := 1; i <= moves; i++ {
		t := float64(i) / float64(moves)
		q.push(syntheticEvent{
			kind: eventMove,
			x:    fromX + (toX-fromX)*t,
			y:    fromY + (toY-fromY)*t,
		})
	}
	q.push(syntheticEvent{kind: eventRelease})
}
