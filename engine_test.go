package zoompan

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestNewEngineDefaults(t *testing.T) {
	e := newTestEngine(t)
	if !e.Current().Equal(Identity()) {
		t.Errorf("Current() = %v, want identity", e.Current())
	}
	if e.Zoom() != 1 {
		t.Errorf("Zoom() = %v, want 1", e.Zoom())
	}
	st := e.State()
	if st.Tick != 0 || st.PointerOK || st.Dragging || st.Animating {
		t.Errorf("unexpected initial state %+v", st)
	}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinZoom = 0
	if _, err := NewEngine(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewEngineRejectsNonPositiveInitialScale(t *testing.T) {
	if _, err := NewEngine(DefaultConfig(), WithInitialTransform(NewTransform(0, 1, 1))); err == nil {
		t.Error("expected error for zero initial scale")
	}
	if _, err := NewEngine(DefaultConfig(), WithInitialTransform(NewTransform(math.NaN(), 0, 0))); err == nil {
		t.Error("expected error for NaN initial scale")
	}
}

func TestEngineZoomAnchoredAtCursor(t *testing.T) {
	e := newTestEngine(t, WithInitialTransform(NewTransform(2, 50, 50)))
	e.SetPointer(50, 100)
	e.Wheel(1)

	got, ok := e.Tick()
	if !ok {
		t.Fatal("Tick() was skipped")
	}
	assertNear(t, "ScaleX", got.ScaleX, 2.2)
	assertNear(t, "ScaleY", got.ScaleY, 2.2)
	assertNear(t, "TranslateX", got.TranslateX, 50)
	assertNear(t, "TranslateY", got.TranslateY, 45)
	assertNear(t, "Zoom", e.Zoom(), 2.2)

	// scene point (0, 25) stays under the cursor
	x, y := got.Apply(0, 25)
	assertNear(t, "x", x, 50)
	assertNear(t, "y", y, 100)
}

func TestEnginePointerSource(t *testing.T) {
	src := PointerFunc(func() (float64, float64, bool) { return 50, 100, true })
	e := newTestEngine(t, WithInitialTransform(NewTransform(2, 50, 50)), WithPointerSource(src))
	e.SetPointer(999, 999) // ignored when a source is set
	e.Wheel(1)

	got, _ := e.Tick()
	assertNear(t, "TranslateX", got.TranslateX, 50)
	assertNear(t, "TranslateY", got.TranslateY, 45)
}

func TestEngineHoldsTransformWithoutPointer(t *testing.T) {
	e := newTestEngine(t)
	e.SetPointer(100, 100)
	e.Wheel(1)
	before, _ := e.Tick()

	e.ClearPointer()
	e.Wheel(1)
	e.Wheel(-3)
	got, _ := e.Tick()
	if !got.Equal(before) {
		t.Fatalf("transform changed without pointer: %v -> %v", before, got)
	}
	// zoom still advances so it is not lost
	assertNear(t, "Zoom", e.Zoom(), 1.1*1.1/1.3)

	e.SetPointer(100, 100)
	got, _ = e.Tick()
	assertNear(t, "ScaleX after return", got.ScaleX, 1.1*1.1/1.3)
	x, y := got.Apply(before.Unapply(100, 100))
	assertNear(t, "anchor x", x, 100)
	assertNear(t, "anchor y", y, 100)
}

func TestEngineWheelOrderMatters(t *testing.T) {
	cfg := DefaultConfig()
	down, err := NewEngine(cfg, WithInitialTransform(NewTransform(0.011, 0, 0)))
	if err != nil {
		t.Fatal(err)
	}
	down.Wheel(-2)
	down.Wheel(1)
	down.Tick()
	// floor first: 0.011/1.2 clamps to 0.01, then *1.1
	assertNear(t, "floor then up", down.Zoom(), 0.011)

	up, _ := NewEngine(cfg, WithInitialTransform(NewTransform(0.011, 0, 0)))
	up.Wheel(1)
	up.Wheel(-2)
	up.Tick()
	assertNear(t, "up then down", up.Zoom(), 0.011*1.1/1.2)
}

func TestEngineZoomFloor(t *testing.T) {
	e := newTestEngine(t)
	e.SetPointer(0, 0)
	for i := 0; i < 100; i++ {
		e.Wheel(-1)
	}
	e.Tick()
	if e.Zoom() != DefaultMinZoom {
		t.Fatalf("Zoom() = %v, want %v", e.Zoom(), DefaultMinZoom)
	}
	before := e.Current()
	e.Wheel(-1)
	got, _ := e.Tick()
	if !got.Equal(before) {
		t.Errorf("zoom out at floor changed transform: %v -> %v", before, got)
	}
}

func TestEngineCoalescedWheelMatchesSeparateTicks(t *testing.T) {
	batched := newTestEngine(t)
	batched.SetPointer(300, 200)
	batched.Wheel(1)
	batched.Wheel(1)
	batched.Wheel(1)
	got, _ := batched.Tick()

	separate := newTestEngine(t)
	separate.SetPointer(300, 200)
	for i := 0; i < 3; i++ {
		separate.Wheel(1)
		separate.Tick()
	}

	assertTransform(t, "coalesced", got, separate.Current())
	assertNear(t, "Zoom", batched.Zoom(), 1.331)
}

func TestEngineDragAppliedOnce(t *testing.T) {
	e := newTestEngine(t)
	e.SetPointer(10, 10)
	e.Press(10, 10, MouseButtonRight)
	e.Move(30, 40)

	st := e.State()
	if !st.Dragging || st.PendingDragX != 20 || st.PendingDragY != 30 {
		t.Fatalf("state before tick = %+v, want pending drag (20, 30)", st)
	}

	got, _ := e.Tick()
	assertNear(t, "TranslateX", got.TranslateX, 20)
	assertNear(t, "TranslateY", got.TranslateY, 30)
	if st := e.State(); st.PendingDragX != 0 || st.PendingDragY != 0 {
		t.Errorf("pending drag after tick = (%v, %v), want 0", st.PendingDragX, st.PendingDragY)
	}

	got, _ = e.Tick()
	assertNear(t, "TranslateX after idle tick", got.TranslateX, 20)
	assertNear(t, "TranslateY after idle tick", got.TranslateY, 30)
}

func TestEngineDragMovesPixelsAtAnyZoom(t *testing.T) {
	e := newTestEngine(t, WithInitialTransform(NewTransform(2, 0, 0)))
	e.SetPointer(0, 0)
	e.Press(0, 0, MouseButtonRight)
	e.Move(20, 30)

	got, _ := e.Tick()
	assertNear(t, "TranslateX", got.TranslateX, 20)
	assertNear(t, "TranslateY", got.TranslateY, 30)
	x, y := got.Apply(10, 10)
	assertNear(t, "x", x, 40)
	assertNear(t, "y", y, 50)
}

func TestEngineDragOtherButtonDoesNotPan(t *testing.T) {
	e := newTestEngine(t)
	e.SetPointer(0, 0)
	e.Press(0, 0, MouseButtonLeft)
	e.Move(50, 50)
	if st := e.State(); st.PendingDragX != 0 || st.Dragging {
		t.Errorf("left drag produced pan state %+v", st)
	}
	got, _ := e.Tick()
	if !got.Equal(Identity()) {
		t.Errorf("Current() = %v, want identity", got)
	}
}

func TestEngineDragRetainedWithoutPointer(t *testing.T) {
	e := newTestEngine(t)
	e.Press(0, 0, MouseButtonRight)
	e.Move(15, -5)

	got, _ := e.Tick()
	if !got.Equal(Identity()) {
		t.Fatalf("transform moved without pointer: %v", got)
	}
	if st := e.State(); st.PendingDragX != 15 || st.PendingDragY != -5 {
		t.Fatalf("pending drag = (%v, %v), want (15, -5)", st.PendingDragX, st.PendingDragY)
	}

	e.SetPointer(0, 0)
	got, _ = e.Tick()
	assertNear(t, "TranslateX", got.TranslateX, 15)
	assertNear(t, "TranslateY", got.TranslateY, -5)
}

func TestEngineDragReleasedBeforeTick(t *testing.T) {
	e := newTestEngine(t)
	e.SetPointer(0, 0)
	e.Press(0, 0, MouseButtonRight)
	e.Move(7, 9)
	e.Release()

	got, _ := e.Tick()
	if !got.Equal(Identity()) {
		t.Errorf("Current() = %v, want identity once the session closed", got)
	}
	if st := e.State(); st.PendingDragX != 0 || st.PendingDragY != 0 {
		t.Errorf("pending drag after tick = (%v, %v), want 0", st.PendingDragX, st.PendingDragY)
	}
}

func TestEngineDragDroppedWhenPointerReturnsAfterRelease(t *testing.T) {
	e := newTestEngine(t)
	e.Press(0, 0, MouseButtonRight)
	e.Move(15, -5)
	e.Tick()
	e.Release()

	e.SetPointer(0, 0)
	got, _ := e.Tick()
	if !got.Equal(Identity()) {
		t.Errorf("Current() = %v, want identity", got)
	}
}

func TestEngineConcurrentDragSumsExactlyOnce(t *testing.T) {
	e := newTestEngine(t)
	e.SetPointer(0, 0)
	e.Press(0, 0, MouseButtonRight)

	const moves = 200
	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				e.Tick()
			}
		}
	}()
	for i := 1; i <= moves; i++ {
		e.Move(float64(i), 0)
	}
	close(stop)
	wg.Wait()
	e.Tick()

	assertNear(t, "TranslateX", e.Current().TranslateX, moves)
	assertNear(t, "TranslateY", e.Current().TranslateY, 0)
}

func TestEngineTickSkippedWhileTicking(t *testing.T) {
	e := newTestEngine(t)
	e.ticking.Store(true)
	if _, ok := e.Tick(); ok {
		t.Error("Tick() should be skipped while another tick runs")
	}
	if e.State().Tick != 0 {
		t.Error("skipped tick should not be counted")
	}
	e.ticking.Store(false)
	if _, ok := e.Tick(); !ok {
		t.Error("Tick() should run once the gate is free")
	}
}

func TestEngineIgnoresNonFiniteWheel(t *testing.T) {
	e := newTestEngine(t)
	e.Wheel(math.NaN())
	e.Wheel(math.Inf(1))
	if n := e.State().PendingWheel; n != 0 {
		t.Errorf("PendingWheel = %d, want 0", n)
	}
}

func TestEngineWheelOverflowKeepsTransform(t *testing.T) {
	e := newTestEngine(t)
	e.SetPointer(100, 100)
	e.Wheel(1e308)

	got, _ := e.Tick()
	if !got.Equal(Identity()) {
		t.Fatalf("Current() = %v, want identity after overflowing zoom", got)
	}
	if e.Zoom() != 1 {
		t.Errorf("Zoom() = %v, want 1", e.Zoom())
	}

	e.SetPointer(40, 40)
	e.Wheel(-5)
	got, _ = e.Tick()
	for _, v := range []float64{got.ScaleX, got.TranslateX, got.TranslateY} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Fatalf("Current() = %v, want finite", got)
		}
	}
	assertNear(t, "Zoom", e.Zoom(), 1/1.5)
	assertNear(t, "TranslateX", got.TranslateX, (0-40)*(1/1.5)+40)
}

func TestEngineRepeatedZoomInStaysFinite(t *testing.T) {
	e := newTestEngine(t)
	e.SetPointer(100, 100)
	for i := 0; i < 10000; i++ {
		e.Wheel(1)
	}
	got, _ := e.Tick()
	for _, v := range []float64{got.ScaleX, got.ScaleY, got.TranslateX, got.TranslateY} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Fatalf("Current() = %v, want finite", got)
		}
	}
	if math.IsInf(e.Zoom(), 0) {
		t.Errorf("Zoom() = %v, want finite", e.Zoom())
	}
}

func resetEngine(t *testing.T, d time.Duration) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ResetDuration = d
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e.SetPointer(100, 100)
	e.Wheel(5)
	e.Tick()
	return e
}

func TestEngineResetAnimatesHome(t *testing.T) {
	e := resetEngine(t, 100*time.Millisecond)
	zoomed := e.Zoom()

	e.ResetView()
	got, _ := e.Tick()
	if !e.State().Animating {
		t.Fatal("expected animation after ResetView")
	}
	if got.ScaleX >= zoomed || got.ScaleX <= 1 {
		t.Errorf("first animated scale = %v, want between 1 and %v", got.ScaleX, zoomed)
	}

	for i := 0; i < 20 && e.State().Animating; i++ {
		e.Tick()
	}
	if e.State().Animating {
		t.Fatal("animation did not finish")
	}
	if !e.Current().Equal(Identity()) {
		t.Errorf("Current() = %v, want identity", e.Current())
	}
	if e.Zoom() != 1 {
		t.Errorf("Zoom() = %v, want 1", e.Zoom())
	}
}

func TestEngineResetRunsWithoutPointer(t *testing.T) {
	e := resetEngine(t, 100*time.Millisecond)
	zoomed := e.Current()
	e.ClearPointer()

	e.ResetView()
	got, _ := e.Tick()
	if got.Equal(zoomed) {
		t.Fatal("reset animation should advance while the pointer is away")
	}
	for i := 0; i < 20 && e.State().Animating; i++ {
		e.Tick()
	}
	if !e.Current().Equal(Identity()) {
		t.Errorf("Current() = %v, want identity", e.Current())
	}

	// once the animation is over the held transform is bit-identical again
	held, _ := e.Tick()
	if !held.Equal(Identity()) {
		t.Errorf("held Current() = %v, want identity", held)
	}
}

func TestEngineResetCancelledByWheel(t *testing.T) {
	e := resetEngine(t, time.Second)
	e.ResetView()
	e.Tick()
	mid := e.Zoom()

	e.Wheel(1)
	e.Tick()
	if e.State().Animating {
		t.Fatal("wheel input should cancel the reset animation")
	}
	assertNear(t, "Zoom", e.Zoom(), mid*1.1)
}

func TestEngineResetCancelledByDrag(t *testing.T) {
	e := resetEngine(t, time.Second)
	e.ResetView()
	e.Tick()

	e.Press(100, 100, MouseButtonRight)
	e.Move(110, 100)
	e.Tick()
	if e.State().Animating {
		t.Error("pan input should cancel the reset animation")
	}
}

func TestEngineResetZeroDurationSnaps(t *testing.T) {
	e := resetEngine(t, 0)
	e.ResetView()
	got, _ := e.Tick()
	if !got.Equal(Identity()) {
		t.Errorf("Current() = %v, want identity", got)
	}
	if e.State().Animating {
		t.Error("zero-duration reset should not animate")
	}
}

func TestEngineResetReturnsToInitialTransform(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ResetDuration = 0
	home := NewTransform(2, 50, 25)
	e, err := NewEngine(cfg, WithInitialTransform(home))
	if err != nil {
		t.Fatal(err)
	}
	e.SetPointer(10, 10)
	e.Wheel(-2)
	e.Tick()
	e.ResetView()
	got, _ := e.Tick()
	if !got.Equal(home) {
		t.Errorf("Current() = %v, want %v", got, home)
	}
	if e.Zoom() != 2 {
		t.Errorf("Zoom() = %v, want 2", e.Zoom())
	}
}

func TestEngineReleaseButton(t *testing.T) {
	e := newTestEngine(t)
	e.SetPointer(0, 0)
	e.Press(0, 0, MouseButtonLeft)
	e.Press(0, 0, MouseButtonRight)
	e.ReleaseButton(MouseButtonLeft)
	e.Move(12, 0)
	e.Tick()
	assertNear(t, "TranslateX", e.Current().TranslateX, 12)

	e.ReleaseButton(MouseButtonRight)
	if e.State().Dragging {
		t.Error("pan session should end with its own button")
	}
}
