package zoompan

import (
	"strings"
	"testing"
)

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(`{
		"steps": [
			{"action": "pointer", "x": 50, "y": 100},
			{"action": "wheel", "rotation": 1},
			{"action": "wait", "frames": 3},
			{"action": "snapshot", "label": "zoomed"}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 4 {
		t.Fatalf("expected 4 steps, got %d", s.Len())
	}
	if s.steps[1].Action != "wheel" || s.steps[1].Rotation != 1 {
		t.Error("step 1 mismatch")
	}
	if s.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"invalid json", `not json`, "parse input script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "teleport"}]}`, "teleport"},
		{"negative frames", `{"steps": [{"action": "wait", "frames": -1}]}`, "negative frames"},
		{"bad button", `{"steps": [{"action": "press", "button": "thumb"}]}`, "thumb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func mustScript(t *testing.T, data string) *Script {
	t.Helper()
	s, err := ParseScript([]byte(data))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	return s
}

func TestScriptPlayerZoom(t *testing.T) {
	e := newTestEngine(t, WithInitialTransform(NewTransform(2, 50, 50)))
	p := NewScriptPlayer(mustScript(t, `{"steps": [
		{"action": "snapshot", "label": "before"},
		{"action": "pointer", "x": 50, "y": 100},
		{"action": "wheel", "rotation": 1},
		{"action": "tick"},
		{"action": "snapshot", "label": "after"}
	]}`))

	var seen []string
	p.OnSnapshot = func(s Snapshot) { seen = append(seen, s.Label) }
	snaps := p.Run(e)

	if !p.Done() {
		t.Error("player should be done")
	}
	if len(snaps) != 2 || len(seen) != 2 {
		t.Fatalf("got %d snapshots, %d callbacks; want 2", len(snaps), len(seen))
	}
	if snaps[0].Label != "before" || snaps[0].Tick != 0 {
		t.Errorf("first snapshot = %+v", snaps[0])
	}
	after := snaps[1]
	if after.Tick != 1 {
		t.Errorf("after.Tick = %d, want 1", after.Tick)
	}
	assertNear(t, "ScaleX", after.Transform.ScaleX, 2.2)
	assertNear(t, "TranslateX", after.Transform.TranslateX, 50)
	assertNear(t, "TranslateY", after.Transform.TranslateY, 45)
}

func TestScriptPlayerDrag(t *testing.T) {
	e := newTestEngine(t)
	p := NewScriptPlayer(mustScript(t, `{"steps": [
		{"action": "drag", "fromX": 10, "fromY": 10, "toX": 110, "toY": 60, "frames": 5},
		{"action": "snapshot", "label": "panned"}
	]}`))
	snaps := p.Run(e)

	if len(snaps) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snaps))
	}
	if snaps[0].Tick != 5 {
		t.Errorf("drag took %d ticks, want 5", snaps[0].Tick)
	}
	assertNear(t, "TranslateX", snaps[0].Transform.TranslateX, 100)
	assertNear(t, "TranslateY", snaps[0].Transform.TranslateY, 50)
}

func TestScriptPlayerWaitFrames(t *testing.T) {
	e := newTestEngine(t)
	p := NewScriptPlayer(mustScript(t, `{"steps": [
		{"action": "wait", "frames": 4},
		{"action": "tick"}
	]}`))

	frames := 0
	for p.Frame(e) {
		frames++
	}
	if frames != 5 {
		t.Errorf("ran %d frames, want 5", frames)
	}
	if e.State().Tick != 5 {
		t.Errorf("engine ticked %d times, want 5", e.State().Tick)
	}
	if p.Frame(e) {
		t.Error("Frame after Done should return false")
	}
}

func TestScriptPlayerExplicitButton(t *testing.T) {
	e := newTestEngine(t)
	p := NewScriptPlayer(mustScript(t, `{"steps": [
		{"action": "pointer", "x": 0, "y": 0},
		{"action": "press", "x": 0, "y": 0, "button": "left"},
		{"action": "move", "x": 40, "y": 40},
		{"action": "tick"},
		{"action": "release"},
		{"action": "press", "x": 40, "y": 40},
		{"action": "move", "x": 50, "y": 40},
		{"action": "release"},
		{"action": "tick"},
		{"action": "snapshot"}
	]}`))
	snaps := p.Run(e)
	// only the second, pan-button drag moves the view
	assertNear(t, "TranslateX", snaps[0].Transform.TranslateX, 10)
	assertNear(t, "TranslateY", snaps[0].Transform.TranslateY, 0)
}

func TestScriptPlayerReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ResetDuration = 0
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	p := NewScriptPlayer(mustScript(t, `{"steps": [
		{"action": "pointer", "x": 20, "y": 20},
		{"action": "wheel", "rotation": 3},
		{"action": "tick"},
		{"action": "leave"},
		{"action": "reset"},
		{"action": "tick"},
		{"action": "snapshot"}
	]}`))
	snaps := p.Run(e)
	if !snaps[0].Transform.Equal(Identity()) {
		t.Errorf("after reset = %v, want identity", snaps[0].Transform)
	}
}
