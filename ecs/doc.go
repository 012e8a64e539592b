// Package ecs bridges the zoompan viewport engine into an ECS world.
//
// The adapter is [NewBridge]. It is a zoompan.Renderer: hand it to a
// Scheduler and every presented transform is queued. Call [Bridge.Flush]
// from the game loop to publish the queued transforms as [ViewEventType]
// events and copy the latest one into every entity carrying
// [ViewComponent].
//
// Usage:
//
//	bridge := ecs.NewBridge(world)
//	sched := zoompan.NewScheduler(engine, bridge, 0)
//	sched.Start(ctx)
//	// each frame:
//	bridge.Flush()
//	ecs.ViewEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
