package ecs

import (
	"sync"

	"github.com/phanxgames/zoompan"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// ViewEvent is published once per presented tick.
type ViewEvent struct {
	// Seq counts presented transforms, starting at 1.
	Seq       uint64
	Transform zoompan.Transform
}

// View holds the viewport transform an entity is drawn with.
type View struct {
	Transform zoompan.Transform
}

// ViewEventType is the Donburi event type for presented transforms.
var ViewEventType = events.NewEventType[ViewEvent]()

// ViewComponent marks entities that follow the viewport.
var ViewComponent = donburi.NewComponentType[View]()

var viewQuery = donburi.NewQuery(filter.Contains(ViewComponent))

// Bridge queues transforms from the scheduler goroutine and hands them to
// a Donburi world on the game goroutine. Donburi worlds are not safe for
// concurrent use, so nothing touches the world outside Flush.
type Bridge struct {
	world donburi.World

	mu      sync.Mutex
	pending []ViewEvent
	seq     uint64
}

// NewBridge creates a Bridge publishing into world.
func NewBridge(world donburi.World) *Bridge {
	return &Bridge{world: world}
}

// Present queues t. It satisfies zoompan.Renderer.
func (b *Bridge) Present(t zoompan.Transform) {
	b.mu.Lock()
	b.seq++
	b.pending = append(b.pending, ViewEvent{Seq: b.seq, Transform: t})
	b.mu.Unlock()
}

// Flush publishes every queued transform in order and stores the newest
// in each ViewComponent. It returns the number of events published.
func (b *Bridge) Flush() int {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	if len(pending) == 0 {
		return 0
	}
	for _, ev := range pending {
		ViewEventType.Publish(b.world, ev)
	}
	latest := pending[len(pending)-1].Transform
	viewQuery.Each(b.world, func(entry *donburi.Entry) {
		ViewComponent.Get(entry).Transform = latest
	})
	return len(pending)
}
