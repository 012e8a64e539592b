package ecs

import (
	"context"
	"testing"
	"time"

	"github.com/phanxgames/zoompan"

	"github.com/yohamta/donburi"
)

func TestNewBridge(t *testing.T) {
	world := donburi.NewWorld()
	if NewBridge(world) == nil {
		t.Fatal("NewBridge returned nil")
	}
}

func TestBridgeFlushPublishesInOrder(t *testing.T) {
	world := donburi.NewWorld()
	bridge := NewBridge(world)

	var received []ViewEvent
	ViewEventType.Subscribe(world, func(w donburi.World, e ViewEvent) {
		received = append(received, e)
	})

	bridge.Present(zoompan.NewTransform(2, 50, 50))
	bridge.Present(zoompan.NewTransform(2.2, 50, 45))

	// Nothing reaches the world before Flush.
	ViewEventType.ProcessEvents(world)
	if len(received) != 0 {
		t.Fatalf("got %d events before Flush", len(received))
	}

	if n := bridge.Flush(); n != 2 {
		t.Fatalf("Flush() = %d, want 2", n)
	}
	ViewEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Seq != 1 || received[1].Seq != 2 {
		t.Errorf("seq = %d, %d; want 1, 2", received[0].Seq, received[1].Seq)
	}
	if !received[1].Transform.Equal(zoompan.NewTransform(2.2, 50, 45)) {
		t.Errorf("event 1 transform = %v", received[1].Transform)
	}

	if n := bridge.Flush(); n != 0 {
		t.Errorf("second Flush() = %d, want 0", n)
	}
}

func TestBridgeUpdatesViewComponents(t *testing.T) {
	world := donburi.NewWorld()
	bridge := NewBridge(world)

	follower := world.Entry(world.Create(ViewComponent))

	bridge.Present(zoompan.NewTransform(3, 10, 20))
	bridge.Present(zoompan.NewTransform(4, 30, 40))
	bridge.Flush()

	got := ViewComponent.Get(follower).Transform
	if !got.Equal(zoompan.NewTransform(4, 30, 40)) {
		t.Errorf("view = %v, want latest transform", got)
	}
}

func TestBridgeAsSchedulerRenderer(t *testing.T) {
	world := donburi.NewWorld()
	bridge := NewBridge(world)

	e, err := zoompan.NewEngine(zoompan.DefaultConfig(),
		zoompan.WithInitialTransform(zoompan.NewTransform(2, 50, 50)))
	if err != nil {
		t.Fatal(err)
	}
	e.SetPointer(50, 100)
	e.Wheel(1)

	sched := zoompan.NewScheduler(e, bridge, 2*time.Millisecond)
	sched.Start(context.Background())

	var events []ViewEvent
	ViewEventType.Subscribe(world, func(w donburi.World, ev ViewEvent) {
		events = append(events, ev)
	})

	deadline := time.Now().Add(2 * time.Second)
	for len(events) == 0 && time.Now().Before(deadline) {
		bridge.Flush()
		ViewEventType.ProcessEvents(world)
		time.Sleep(time.Millisecond)
	}
	sched.Stop()

	if len(events) == 0 {
		t.Fatal("no view events published")
	}
	want := zoompan.NewTransform(2.2, 50, 45)
	got := events[0].Transform
	if d := got.ScaleX - want.ScaleX; d > 1e-9 || d < -1e-9 {
		t.Errorf("scale = %v, want %v", got.ScaleX, want.ScaleX)
	}
	if d := got.TranslateY - want.TranslateY; d > 1e-9 || d < -1e-9 {
		t.Errorf("translateY = %v, want %v", got.TranslateY, want.TranslateY)
	}
}
