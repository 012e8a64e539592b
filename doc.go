// Package zoompan turns mouse input into a pan/zoom view transform for a 2D
// viewport.
//
// Zoom is anchored at the cursor: the scene point under the cursor stays on
// the same pixel while the scale changes. Drag panning accumulates between
// frames. Input arrives asynchronously; once per tick the [Engine] folds it
// into a single [Transform] and hands that to a [Renderer].
//
// # Quick start
//
//	eng, err := zoompan.NewEngine(zoompan.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	sched := zoompan.NewScheduler(eng, renderer, 0)
//	sched.Start(ctx)
//	defer sched.Stop()
//
//	// from the UI event loop, on any goroutine:
//	eng.SetPointer(x, y)   // or ClearPointer when the cursor leaves
//	eng.Wheel(rotation)    // negative zooms out
//	eng.Press(x, y, zoompan.MouseButtonRight)
//	eng.Move(x, y)
//	eng.Release()
//
// # Transform
//
// A [Transform] maps scene to screen as screen = scale*scene + translate.
// [Transform.Compose] follows matrix chaining, so
// t.Compose(m, dx, dy) equals t * Scale(m) * Translate(dx, dy).
//
// # Ticks
//
// Each tick takes one snapshot of the pending input. Wheel rotations are
// applied in arrival order, each one multiplying the running zoom by
// 1 + |r|*[Config.ZoomStep] (dividing for r < 0) and clamping to
// [Config.MinZoom]. With a cursor position, the new transform is solved by
// [SolveAnchor] against the transform presented on the previous tick, then
// pending pan deltas are added. Without one, the previous transform is
// presented unchanged. Pan deltas are consumed exactly once.
//
// The ebitenview sub-package hosts an Engine in an Ebitengine window; the
// raster sub-package renders the reference scene headless to PNG.
package zoompan
