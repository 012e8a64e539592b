package zoompan

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action   string       `json:"action"`
	Label    string       `json:"label,omitempty"`
	X        float64      `json:"x,omitempty"`
	Y        float64      `json:"y,omitempty"`
	FromX    float64      `json:"fromX,omitempty"`
	FromY    float64      `json:"fromY,omitempty"`
	ToX      float64      `json:"toX,omitempty"`
	ToY      float64      `json:"toY,omitempty"`
	Rotation float64      `json:"rotation,omitempty"`
	Button   *MouseButton `json:"button,omitempty"`
	Frames   int          `json:"frames,omitempty"`
}

// Script is a parsed input script. The JSON form is
//
//	{"steps": [
//		{"action": "pointer", "x": 50, "y": 100},
//		{"action": "wheel", "rotation": 1},
//		{"action": "tick"},
//		{"action": "snapshot", "label": "zoomed"}
//	]}
//
// Actions: pointer, leave, wheel, press, move, release, reset and snapshot
// run immediately, so several of them can land between two ticks. tick
// (alias wait) runs "frames" ticks (default 1). drag spreads a press, moves
// and release over "frames" ticks (minimum 2). press and drag use the
// engine's pan button unless "button" is given.
type Script struct {
	steps []scriptStep
}

var scriptActions = map[string]bool{
	"pointer": true, "leave": true, "wheel": true, "press": true,
	"move": true, "release": true, "reset": true, "snapshot": true,
	"tick": true, "wait": true, "drag": true,
}

// ParseScript parses and checks a JSON input script.
func ParseScript(data []byte) (*Script, error) {
	var raw struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(raw.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range raw.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
		if st.Frames < 0 {
			return nil, fmt.Errorf("parse input script: step %d: negative frames", i)
		}
	}
	return &Script{steps: raw.Steps}, nil
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

// Snapshot is a transform captured by a "snapshot" step.
type Snapshot struct {
	Label     string
	Tick      uint64
	Transform Transform
}

// ScriptPlayer feeds a Script into an Engine one frame at a time, the same
// way a host feeds live input between scheduler ticks.
type ScriptPlayer struct {
	script    *Script
	cursor    int
	waitCount int
	queue     inputQueue
	done      bool

	// OnSnapshot, if set, receives every snapshot step as it runs.
	OnSnapshot func(Snapshot)
	snapshots  []Snapshot
}

// NewScriptPlayer returns a player positioned at the first step.
func NewScriptPlayer(script *Script) *ScriptPlayer {
	return &ScriptPlayer{script: script}
}

// Done reports whether every step has run.
func (p *ScriptPlayer) Done() bool {
	return p.done
}

// Snapshots returns the snapshots taken so far.
func (p *ScriptPlayer) Snapshots() []Snapshot {
	return p.snapshots
}

// Frame advances the script by one frame: it runs immediate steps until a
// step needs a tick, then ticks the engine once. It returns false when the
// script has finished and no tick was run.
func (p *ScriptPlayer) Frame(e *Engine) bool {
	if p.done {
		return false
	}
	if p.queue.applyFrame(e) {
		e.Tick()
		return true
	}
	if p.waitCount > 0 {
		p.waitCount--
		e.Tick()
		return true
	}

	for p.cursor < len(p.script.steps) {
		st := p.script.steps[p.cursor]
		p.cursor++

		switch st.Action {
		case "tick", "wait":
			if st.Frames > 1 {
				p.waitCount = st.Frames - 1 // this frame counts as one
			}
			e.Tick()
			return true
		case "drag":
			p.queue.pushDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, p.button(e, st))
			p.queue.applyFrame(e)
			e.Tick()
			return true
		case "snapshot":
			p.snapshot(e, st.Label)
		default:
			p.event(e, st).apply(e)
		}
	}

	p.done = true
	return false
}

// Run plays the remaining script to the end.
func (p *ScriptPlayer) Run(e *Engine) []Snapshot {
	for p.Frame(e) {
	}
	return p.snapshots
}

func (p *ScriptPlayer) snapshot(e *Engine, label string) {
	st := e.State()
	snap := Snapshot{Label: label, Tick: st.Tick, Transform: st.Current}
	p.snapshots = append(p.snapshots, snap)
	if p.OnSnapshot != nil {
		p.OnSnapshot(snap)
	}
}

func (p *ScriptPlayer) button(e *Engine, st scriptStep) MouseButton {
	if st.Button != nil {
		return *st.Button
	}
	return e.Config().PanButton
}

// event converts an immediate step into a synthetic event.
func (p *ScriptPlayer) event(e *Engine, st scriptStep) syntheticEvent {
	switch st.Action {
	case "pointer":
		return syntheticEvent{kind: eventPointer, x: st.X, y: st.Y}
	case "leave":
		return syntheticEvent{kind: eventLeave}
	case "wheel":
		return syntheticEvent{kind: eventWheel, rotation: st.Rotation}
	case "press":
		return syntheticEvent{kind: eventPress, x: st.X, y: st.Y, button: p.button(e, st)}
	case "move":
		return syntheticEvent{kind: eventMove, x: st.X, y: st.Y}
	case "release":
		return syntheticEvent{kind: eventRelease}
	default: // "reset"
		return syntheticEvent{kind: eventReset}
	}
}
