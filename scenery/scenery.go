// Package scenery describes the reference scene shown in a zoompan viewport:
// a fixed screen-space grid with an absolute origin marker, and a small set
// of scene-space shapes that move with the view transform.
//
// Drawing goes through the [Canvas] interface so the same scene can be
// rendered by the Ebitengine host and by the headless rasterizer.
package scenery

import (
	"image/color"

	"github.com/phanxgames/zoompan"
)

const (
	// CellSize is the grid spacing in pixels.
	CellSize = 50
	// MajorLine is the spacing of the red grid lines.
	MajorLine = 5 * CellSize

	// WindowWidth and WindowHeight are the reference viewport size.
	WindowWidth  = 1268
	WindowHeight = 790
	// WindowTitle is the reference window title.
	WindowTitle = "Moving and Scaling"
)

// Palette of the reference scene.
var (
	Background    = color.RGBA{255, 255, 255, 255}
	GridMinor     = color.RGBA{192, 192, 192, 255}
	GridMajor     = color.RGBA{255, 0, 0, 255}
	AbsoluteZero  = color.RGBA{128, 128, 128, 255}
	LocalZero     = color.RGBA{0, 0, 0, 255}
	Rect1Fill     = color.RGBA{255, 237, 22, 255}
	Rect1Border   = color.RGBA{192, 192, 192, 255}
	Rect2Fill     = color.RGBA{0, 0, 255, 255}
	MarkerColor   = color.RGBA{178, 0, 0, 255}
	OverlayText   = color.RGBA{0, 0, 0, 255}
	OverlayShadow = color.RGBA{255, 255, 255, 200}
)

// Canvas is a minimal immediate-mode drawing surface in screen pixels.
// Strokes are one pixel wide.
type Canvas interface {
	Size() (w, h float64)
	Clear(clr color.Color)
	Line(x0, y0, x1, y1 float64, clr color.Color)
	FillRect(x, y, w, h float64, clr color.Color)
	StrokeRect(x, y, w, h float64, clr color.Color)
	FillEllipse(cx, cy, rx, ry float64, clr color.Color)
	// Text draws s with its top-left corner at (x, y).
	Text(x, y float64, s string, clr color.Color)
}

// ShapeKind selects how a Shape is drawn.
type ShapeKind uint8

const (
	ShapeRect ShapeKind = iota
	ShapeEllipse
)

// Shape is a scene-space primitive. For rectangles X, Y is the top-left
// corner; for ellipses it is the center and W, H are the radii. A nil Fill
// or Stroke is skipped.
type Shape struct {
	Kind   ShapeKind
	X, Y   float64
	W, H   float64
	Fill   color.Color
	Stroke color.Color
}

// Bounds returns the shape's bounding box in scene units.
func (s Shape) Bounds() zoompan.Rect {
	if s.Kind == ShapeEllipse {
		return zoompan.Rect{X: s.X - s.W, Y: s.Y - s.H, Width: 2 * s.W, Height: 2 * s.H}
	}
	return zoompan.Rect{X: s.X, Y: s.Y, Width: s.W, Height: s.H}
}

// Shapes returns the scene-space content in paint order.
func Shapes() []Shape {
	return []Shape{
		{Kind: ShapeRect, X: CellSize, Y: CellSize, W: CellSize, H: CellSize, Fill: Rect1Fill, Stroke: Rect1Border},
		{Kind: ShapeRect, X: 2 * CellSize, Y: 2 * CellSize, W: CellSize, H: CellSize, Fill: Rect2Fill},
		{Kind: ShapeEllipse, X: 0, Y: 0, W: 5, H: 5, Fill: LocalZero},
	}
}

// GridLine reports whether a grid line at offset v (pixels) is drawn and its
// color. Lines fall every CellSize pixels; those on a multiple of MajorLine
// are red.
func GridLine(v int) (color.Color, bool) {
	if v%CellSize != 0 {
		return nil, false
	}
	if v%MajorLine == 0 {
		return GridMajor, true
	}
	return GridMinor, true
}

// DrawGrid draws the screen-space grid. It does not move with the view.
func DrawGrid(c Canvas) {
	w, h := c.Size()
	for x := 0; x < int(w); x += CellSize {
		clr, _ := GridLine(x)
		c.Line(float64(x), 0, float64(x), h, clr)
	}
	for y := 0; y < int(h); y += CellSize {
		clr, _ := GridLine(y)
		c.Line(0, float64(y), w, float64(y), clr)
	}
}

// DrawShape draws s mapped through t.
func DrawShape(c Canvas, s Shape, t zoompan.Transform) {
	switch s.Kind {
	case ShapeRect:
		x, y := t.Apply(s.X, s.Y)
		w, h := s.W*t.ScaleX, s.H*t.ScaleY
		if s.Fill != nil {
			c.FillRect(x, y, w, h, s.Fill)
		}
		if s.Stroke != nil {
			c.StrokeRect(x, y, w, h, s.Stroke)
		}
	case ShapeEllipse:
		cx, cy := t.Apply(s.X, s.Y)
		if s.Fill != nil {
			c.FillEllipse(cx, cy, s.W*t.ScaleX, s.H*t.ScaleY, s.Fill)
		}
	}
}

// Draw paints the full reference scene: background, grid and absolute zero
// marker in screen space, then the scene shapes through t.
func Draw(c Canvas, t zoompan.Transform) {
	c.Clear(Background)
	DrawGrid(c)
	c.FillEllipse(0, 0, 10, 10, AbsoluteZero)
	for _, s := range Shapes() {
		DrawShape(c, s, t)
	}
}

// DrawMarker draws a filled screen-space circle used to highlight a pointer
// position.
func DrawMarker(c Canvas, x, y, r float64) {
	c.FillEllipse(x, y, r, r, MarkerColor)
}

// DrawOverlay prints text lines in the top-left corner.
func DrawOverlay(c Canvas, lines ...string) {
	const lineHeight = 16
	for i, line := range lines {
		y := 4 + float64(i*lineHeight)
		c.Text(5, y+1, line, OverlayShadow)
		c.Text(4, y, line, OverlayText)
	}
}
