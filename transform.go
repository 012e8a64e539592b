package zoompan

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Transform maps scene coordinates to screen coordinates:
//
//	screen = scale*scene + translate
//
// It is a value type; every method returns a new Transform. Transforms
// produced by the engine always have positive scales.
type Transform struct {
	ScaleX, ScaleY         float64
	TranslateX, TranslateY float64
}

// Identity returns the transform with scale 1 and no translation.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// NewTransform returns a uniformly scaled transform translated by (tx, ty).
func NewTransform(scale, tx, ty float64) Transform {
	return Transform{ScaleX: scale, ScaleY: scale, TranslateX: tx, TranslateY: ty}
}

// Apply maps a scene point to the screen: scale first, then translate.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.ScaleX*x + t.TranslateX, t.ScaleY*y + t.TranslateY
}

// Unapply maps a screen point back to the scene.
func (t Transform) Unapply(sx, sy float64) (float64, float64) {
	return (sx - t.TranslateX) / t.ScaleX, (sy - t.TranslateY) / t.ScaleY
}

// Inverse returns the screen-to-scene transform. Scales must be non-zero.
func (t Transform) Inverse() Transform {
	return Transform{
		ScaleX:     1 / t.ScaleX,
		ScaleY:     1 / t.ScaleY,
		TranslateX: -t.TranslateX / t.ScaleX,
		TranslateY: -t.TranslateY / t.ScaleY,
	}
}

// Multiply returns t * other: other is applied first, then t.
func (t Transform) Multiply(other Transform) Transform {
	return Transform{
		ScaleX:     t.ScaleX * other.ScaleX,
		ScaleY:     t.ScaleY * other.ScaleY,
		TranslateX: t.ScaleX*other.TranslateX + t.TranslateX,
		TranslateY: t.ScaleY*other.TranslateY + t.TranslateY,
	}
}

// Scale returns t * Scale(mx, my).
func (t Transform) Scale(mx, my float64) Transform {
	return Transform{
		ScaleX:     t.ScaleX * mx,
		ScaleY:     t.ScaleY * my,
		TranslateX: t.TranslateX,
		TranslateY: t.TranslateY,
	}
}

// Translate returns t * Translate(dx, dy). The delta is in scene units, so
// the screen translation moves by scale*delta.
func (t Transform) Translate(dx, dy float64) Transform {
	return Transform{
		ScaleX:     t.ScaleX,
		ScaleY:     t.ScaleY,
		TranslateX: t.TranslateX + t.ScaleX*dx,
		TranslateY: t.TranslateY + t.ScaleY*dy,
	}
}

// Compose chains a uniform scale by m followed by a scene-unit translation,
// in matrix order:
//
//	t * Scale(m) * Translate(dx, dy)
//
// which yields scale s*m and translate t + s*m*d.
func (t Transform) Compose(m, dx, dy float64) Transform {
	return t.Scale(m, m).Translate(dx, dy)
}

// Equal reports whether both transforms are bit-identical.
func (t Transform) Equal(other Transform) bool {
	return t == other
}

func (t Transform) finite() bool {
	for _, v := range [4]float64{t.ScaleX, t.ScaleY, t.TranslateX, t.TranslateY} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Matrix returns the transform as a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func (t Transform) Matrix() [6]float64 {
	return [6]float64{t.ScaleX, 0, 0, t.ScaleY, t.TranslateX, t.TranslateY}
}

// Aff3 returns the transform in the row-major layout used by x/image.
func (t Transform) Aff3() f64.Aff3 {
	return f64.Aff3{
		t.ScaleX, 0, t.TranslateX,
		0, t.ScaleY, t.TranslateY,
	}
}

// String formats the transform for logs and the debug overlay.
func (t Transform) String() string {
	return fmt.Sprintf("scale(%.4g, %.4g) translate(%.4g, %.4g)",
		t.ScaleX, t.ScaleY, t.TranslateX, t.TranslateY)
}
