// Package raster draws the reference scene into an in-memory image without a
// window, using the golang.org/x/image vector rasterizer, and writes PNG
// snapshots.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/phanxgames/zoompan"
	"github.com/phanxgames/zoompan/scenery"
)

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498

// Canvas implements scenery.Canvas on an *image.RGBA. All shapes are
// anti-aliased. A Canvas is not safe for concurrent use.
type Canvas struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// NewCanvas returns a w x h canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		z:   vector.NewRasterizer(w, h),
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (float64, float64) {
	b := c.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Clear fills the whole canvas with clr.
func (c *Canvas) Clear(clr color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(clr), image.Point{}, draw.Src)
}

// fill rasterizes the path built by fn and composites clr through it.
func (c *Canvas) fill(clr color.Color, fn func(z *vector.Rasterizer)) {
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.DrawOp = draw.Over
	fn(c.z)
	c.z.Draw(c.img, b, image.NewUniform(clr), image.Point{})
}

func quad(z *vector.Rasterizer, x0, y0, x1, y1, x2, y2, x3, y3 float64) {
	z.MoveTo(float32(x0), float32(y0))
	z.LineTo(float32(x1), float32(y1))
	z.LineTo(float32(x2), float32(y2))
	z.LineTo(float32(x3), float32(y3))
	z.ClosePath()
}

// Line draws a one-pixel line. Axis-aligned lines at integer offsets are
// shifted by half a pixel so they cover exactly one pixel row or column.
func (c *Canvas) Line(x0, y0, x1, y1 float64, clr color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	if dx == 0 {
		x0, x1 = x0+0.5, x1+0.5
	}
	if dy == 0 {
		y0, y1 = y0+0.5, y1+0.5
	}
	// half-width normal
	nx, ny := -dy/length*0.5, dx/length*0.5
	c.fill(clr, func(z *vector.Rasterizer) {
		quad(z, x0+nx, y0+ny, x1+nx, y1+ny, x1-nx, y1-ny, x0-nx, y0-ny)
	})
}

// FillRect fills the rectangle with top-left (x, y).
func (c *Canvas) FillRect(x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c.fill(clr, func(z *vector.Rasterizer) {
		quad(z, x, y, x+w, y, x+w, y+h, x, y+h)
	})
}

// StrokeRect outlines the rectangle with a one-pixel border centered on its
// edges.
func (c *Canvas) StrokeRect(x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c.fill(clr, func(z *vector.Rasterizer) {
		// outer ring clockwise, inner ring counter-clockwise
		quad(z, x-0.5, y-0.5, x+w+0.5, y-0.5, x+w+0.5, y+h+0.5, x-0.5, y+h+0.5)
		if w > 1 && h > 1 {
			quad(z, x+0.5, y+0.5, x+0.5, y+h-0.5, x+w-0.5, y+h-0.5, x+w-0.5, y+0.5)
		}
	})
}

// FillEllipse fills an axis-aligned ellipse.
func (c *Canvas) FillEllipse(cx, cy, rx, ry float64, clr color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	kx, ky := rx*kappa, ry*kappa
	f := func(v float64) float32 { return float32(v) }
	c.fill(clr, func(z *vector.Rasterizer) {
		z.MoveTo(f(cx+rx), f(cy))
		z.CubeTo(f(cx+rx), f(cy+ky), f(cx+kx), f(cy+ry), f(cx), f(cy+ry))
		z.CubeTo(f(cx-kx), f(cy+ry), f(cx-rx), f(cy+ky), f(cx-rx), f(cy))
		z.CubeTo(f(cx-rx), f(cy-ky), f(cx-kx), f(cy-ry), f(cx), f(cy-ry))
		z.CubeTo(f(cx+kx), f(cy-ry), f(cx+rx), f(cy-ky), f(cx+rx), f(cy))
		z.ClosePath()
	})
}

// Text draws s in the 7x13 basic font with its top-left corner at (x, y).
func (c *Canvas) Text(x, y float64, s string, clr color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(clr),
		Face: face,
		Dot:  fixed.P(int(x), int(y)+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// Renderer is a zoompan.Renderer that keeps the most recent transform and
// renders the reference scene with it on demand.
type Renderer struct {
	mu     sync.Mutex
	canvas *Canvas
	t      zoompan.Transform
	frames uint64
}

// NewRenderer returns a renderer with a w x h canvas at the identity
// transform.
func NewRenderer(w, h int) *Renderer {
	return &Renderer{canvas: NewCanvas(w, h), t: zoompan.Identity()}
}

// Present records t for the next Render.
func (r *Renderer) Present(t zoompan.Transform) {
	r.mu.Lock()
	r.t = t
	r.frames++
	r.mu.Unlock()
}

// Transform returns the last presented transform and how many have been
// presented.
func (r *Renderer) Transform() (zoompan.Transform, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.t, r.frames
}

// Render draws the scene with the last presented transform plus optional
// overlay lines and returns a copy of the result.
func (r *Renderer) Render(overlay ...string) *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	scenery.Draw(r.canvas, r.t)
	if len(overlay) > 0 {
		scenery.DrawOverlay(r.canvas, overlay...)
	}
	src := r.canvas.Image()
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}

// WritePNG encodes img to a PNG file at path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// SanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func SanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// SnapshotPath returns dir/NN_label.png for the index-th snapshot.
func SnapshotPath(dir string, index int, label string) string {
	return filepath.Join(dir, fmt.Sprintf("%02d_%s.png", index, SanitizeLabel(label)))
}
