package ebitenview

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/zoompan"
)

// ellipseSegments is the polygon resolution for non-circular ellipses.
const ellipseSegments = 48

var whitePixel *ebiten.Image

func white() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// GeoM converts a view transform into an Ebitengine geometry matrix.
func GeoM(t zoompan.Transform) ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(t.ScaleX, t.ScaleY)
	g.Translate(t.TranslateX, t.TranslateY)
	return g
}

// canvas implements scenery.Canvas on an *ebiten.Image.
type canvas struct {
	dst   *ebiten.Image
	verts []ebiten.Vertex
	inds  []uint16
}

func (c *canvas) Size() (float64, float64) {
	b := c.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c *canvas) Clear(clr color.Color) {
	c.dst.Fill(clr)
}

func (c *canvas) Line(x0, y0, x1, y1 float64, clr color.Color) {
	// pixel centers, so integer grid lines stay one pixel wide
	if x0 == x1 {
		x0, x1 = x0+0.5, x1+0.5
	}
	if y0 == y1 {
		y0, y1 = y0+0.5, y1+0.5
	}
	vector.StrokeLine(c.dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, true)
}

func (c *canvas) FillRect(x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), clr, true)
}

func (c *canvas) StrokeRect(x, y, w, h float64, clr color.Color) {
	vector.StrokeRect(c.dst, float32(x), float32(y), float32(w), float32(h), 1, clr, true)
}

func (c *canvas) FillEllipse(cx, cy, rx, ry float64, clr color.Color) {
	if rx == ry {
		vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(rx), clr, true)
		return
	}
	// ellipses are convex: a triangle fan around the center covers them
	r, g, b, a := clr.RGBA()
	vert := func(x, y float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: float32(r) / 0xffff, ColorG: float32(g) / 0xffff,
			ColorB: float32(b) / 0xffff, ColorA: float32(a) / 0xffff,
		}
	}
	c.verts = append(c.verts[:0], vert(cx, cy))
	c.inds = c.inds[:0]
	for i := 0; i <= ellipseSegments; i++ {
		theta := 2 * math.Pi * float64(i) / ellipseSegments
		c.verts = append(c.verts, vert(cx+rx*math.Cos(theta), cy+ry*math.Sin(theta)))
		if i > 0 {
			c.inds = append(c.inds, 0, uint16(i), uint16(i+1))
		}
	}
	c.dst.DrawTriangles(c.verts, c.inds, white(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (c *canvas) Text(x, y float64, s string, _ color.Color) {
	ebitenutil.DebugPrintAt(c.dst, s, int(x), int(y))
}
