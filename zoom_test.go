package zoompan

import (
	"math"
	"testing"
)

func TestWheelFactor(t *testing.T) {
	assertNear(t, "r=1", WheelFactor(1, 0.1), 1.1)
	assertNear(t, "r=-1", WheelFactor(-1, 0.1), 1.1)
	assertNear(t, "r=0.25", WheelFactor(0.25, 0.1), 1.025)
	assertNear(t, "r=0", WheelFactor(0, 0.1), 1)
}

func TestApplyWheelDirection(t *testing.T) {
	in := ApplyWheel(1, 1, 0.1, 0.01, 0)
	assertNear(t, "zoom in", in, 1.1)
	out := ApplyWheel(1, -1, 0.1, 0.01, 0)
	assertNear(t, "zoom out", out, 1/1.1)
	same := ApplyWheel(2, 0, 0.1, 0.01, 0)
	assertNear(t, "zero rotation", same, 2)
}

func TestApplyWheelFloor(t *testing.T) {
	zoom := 1.0
	for i := 0; i < 200; i++ {
		zoom = ApplyWheel(zoom, -1, 0.1, 0.01, 0)
		if zoom < 0.01 {
			t.Fatalf("step %d: zoom %v below floor", i, zoom)
		}
	}
	if zoom != 0.01 {
		t.Fatalf("zoom = %v, want floor 0.01", zoom)
	}
	if again := ApplyWheel(zoom, -1, 0.1, 0.01, 0); again != 0.01 {
		t.Errorf("zoom out at floor = %v, want 0.01", again)
	}
}

func TestApplyWheelCeiling(t *testing.T) {
	zoom := 1.0
	for i := 0; i < 100; i++ {
		zoom = ApplyWheel(zoom, 3, 0.1, 0.01, 8)
	}
	if zoom != 8 {
		t.Errorf("zoom = %v, want ceiling 8", zoom)
	}
	unbounded := 1.0
	for i := 0; i < 100; i++ {
		unbounded = ApplyWheel(unbounded, 3, 0.1, 0.01, 0)
	}
	if unbounded <= 8 {
		t.Errorf("zoom without ceiling = %v, want > 8", unbounded)
	}
}

func TestSolveAnchorScenario(t *testing.T) {
	prev := NewTransform(2, 50, 50)
	next := SolveAnchor(prev, 50, 100, 2.2, 2.2)
	assertNear(t, "TranslateX", next.TranslateX, 50)
	assertNear(t, "TranslateY", next.TranslateY, 45)

	sx, sy := prev.Unapply(50, 100)
	assertNear(t, "scene x", sx, 0)
	assertNear(t, "scene y", sy, 25)

	x, y := next.Apply(sx, sy)
	assertNear(t, "anchored x", x, 50)
	assertNear(t, "anchored y", y, 100)
}

func TestSolveAnchorKeepsCursorPoint(t *testing.T) {
	prevs := []Transform{
		Identity(),
		NewTransform(2, 50, 50),
		NewTransform(0.01, -300, 12),
		{ScaleX: 3, ScaleY: 0.5, TranslateX: 1e4, TranslateY: -1e3},
	}
	cursors := []Vec2{{0, 0}, {50, 100}, {1267, 789}, {-4, 640.5}}
	multipliers := []float64{1, 1.1, 1 / 1.1, 3.7, 0.02}

	for _, prev := range prevs {
		for _, c := range cursors {
			for _, m := range multipliers {
				sceneX, sceneY := prev.Unapply(c.X, c.Y)
				next := SolveAnchor(prev, c.X, c.Y, prev.ScaleX*m, prev.ScaleY*m)
				x, y := next.Apply(sceneX, sceneY)
				tol := 1e-9 * math.Max(1, math.Max(math.Abs(c.X), math.Abs(c.Y)))
				if !approxEqual(x, c.X, tol) || !approxEqual(y, c.Y, tol) {
					t.Errorf("prev=%v cursor=%v m=%v: anchor moved to (%v, %v)", prev, c, m, x, y)
				}
			}
		}
	}
}

func TestSolveAnchorSameScaleKeepsTranslate(t *testing.T) {
	prev := NewTransform(1.5, 20, -10)
	next := SolveAnchor(prev, 300, 200, 1.5, 1.5)
	assertTransform(t, "unchanged", next, prev)
}

func TestApplyWheelOverflowKeepsZoom(t *testing.T) {
	got := ApplyWheel(1e300, 1e10, 0.1, 0.01, 0)
	if got != 1e300 {
		t.Errorf("ApplyWheel overflow = %v, want previous zoom 1e300", got)
	}
	if got := ApplyWheel(1e300, 1e10, 0.1, 0.01, 50); got != 50 {
		t.Errorf("ApplyWheel overflow with ceiling = %v, want 50", got)
	}
}
