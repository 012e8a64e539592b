// Package narrative is a twelve-state walkthrough of how the cursor anchor is
// solved. Each state pairs a title with the view transform and, for some
// states, a highlighted pointer position. The table is pure; the host decides
// how to step through it.
package narrative

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/phanxgames/zoompan"
	"github.com/phanxgames/zoompan/scenery"
)

// States is the number of walkthrough states.
const States = 12

// Walkthrough parameters: the source view is Scale(PrevScale) followed by a
// scene-unit shift of (PrevX, PrevY); the pointer sits at (PointerX,
// PointerY) while zooming to NewScale.
const (
	PrevX     = 50.0
	PrevY     = 25.0
	PointerX  = 50.0
	PointerY  = 100.0
	PrevScale = 2.0
	NewScale  = 3.0
	// MarkerRadius is the highlight radius at scale 1.
	MarkerRadius = 5.0
)

// Highlight is a screen-space circle drawn before the view transform.
type Highlight struct {
	X, Y, Radius float64
}

// Frame is one walkthrough state.
type Frame struct {
	Index     int
	Title     string
	Transform zoompan.Transform
	Highlight *Highlight
}

// Caption returns the window title for the frame.
func (f Frame) Caption() string {
	return fmt.Sprintf("%s[Demo] State %d: %s", scenery.WindowTitle, f.Index, f.Title)
}

var titles = [States]string{
	"source state",
	"source state with subsequent relative scaling point",
	"new scaling is done",
	"initial state",
	"initial state with source state scaling",
	"initial state with source state scaling and transition",
	"place the pointer to source state",
	"unscale source state to see pointer origin offset",
	"let's place pointer to destination state",
	"and how it looks like with no scaling - to see pointer origin offset for destination state",
	"make initial state scaled by destination factor",
	"and move it to proper place",
}

// Index maps any integer, including negative ones, to a state in
// [0, States): the absolute value modulo States.
func Index(state int) int {
	i := state % States
	if i < 0 {
		i = -i
	}
	return i
}

// destShift is the scene-unit shift that keeps the pointer fixed when the
// source view is rescaled from PrevScale to NewScale.
func destShift() (float64, float64) {
	return PrevX - PointerX/PrevScale + PointerX/NewScale,
		PrevY - PointerY/PrevScale + PointerY/NewScale
}

// Step returns the frame for state, wrapped with Index.
func Step(state int) Frame {
	i := Index(state)
	f := Frame{Index: i, Title: titles[i], Transform: zoompan.Identity()}

	source := zoompan.Identity().Compose(PrevScale, PrevX, PrevY)
	ax, ay := destShift()
	dest := zoompan.Identity().Compose(NewScale, ax, ay)
	mark := func(x, y, r float64) *Highlight { return &Highlight{X: x, Y: y, Radius: r} }

	switch i {
	case 0:
		f.Transform = source
	case 1:
		f.Highlight = mark(PointerX, PointerY, MarkerRadius*PrevScale)
		f.Transform = source
	case 2:
		f.Highlight = mark(PointerX, PointerY, MarkerRadius*NewScale)
		f.Transform = dest
	case 3:
	case 4:
		f.Transform = zoompan.Identity().Scale(PrevScale, PrevScale)
	case 5:
		f.Transform = source
	case 6:
		f.Highlight = mark(PointerX, PointerY, MarkerRadius*PrevScale)
		f.Transform = source
	case 7:
		f.Highlight = mark(PointerX/PrevScale, PointerY/PrevScale, MarkerRadius)
		f.Transform = zoompan.Identity().Translate(PrevX, PrevY)
	case 8:
		f.Highlight = mark(PointerX, PointerY, MarkerRadius*NewScale)
		f.Transform = dest
	case 9:
		f.Highlight = mark(PointerX/NewScale, PointerY/NewScale, MarkerRadius)
		// dest with its scale factored back out around the origin
		tx, ty := dest.TranslateX, dest.TranslateY
		f.Transform = dest.
			Translate(-tx/NewScale, -ty/NewScale).
			Scale(1/NewScale, 1/NewScale).
			Translate(tx/NewScale, ty/NewScale)
	case 10:
		f.Transform = zoompan.Identity().Scale(NewScale, NewScale)
	case 11:
		f.Transform = dest
	}
	return f
}

// Cycler steps through the walkthrough with wheel notches. Scrolling up
// (negative rotation) advances. Safe for concurrent use.
type Cycler struct {
	state atomic.Int64
}

// Wheel moves the cycler by -rotation notches. Fractional rotations are
// truncated toward zero.
func (c *Cycler) Wheel(rotation float64) {
	if math.IsNaN(rotation) || math.IsInf(rotation, 0) {
		return
	}
	c.state.Add(-int64(rotation))
}

// Frame returns the current frame.
func (c *Cycler) Frame() Frame {
	return Step(int(c.state.Load() % States))
}
