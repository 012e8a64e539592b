package zoompan

import "math"

const (
	// DefaultZoomStep is the wheel sensitivity: one notch changes the zoom
	// by 10%.
	DefaultZoomStep = 0.1
	// DefaultMinZoom is the zoom floor. Zoom never reaches zero.
	DefaultMinZoom = 0.01
)

// WheelFactor converts a wheel rotation (fractional values allowed) into a
// multiplicative zoom factor of 1 + |r|*step.
func WheelFactor(r, step float64) float64 {
	return 1 + math.Abs(r)*step
}

// ApplyWheel folds one wheel rotation into zoom. A negative rotation zooms
// out (divides by the factor), anything else zooms in. The result is clamped
// to minZoom, and to maxZoom when maxZoom > 0. A step that would overflow
// leaves zoom unchanged.
func ApplyWheel(zoom, r, step, minZoom, maxZoom float64) float64 {
	f := WheelFactor(r, step)
	next := zoom * f
	if r < 0 {
		next = zoom / f
	}
	if math.IsInf(next, 0) || math.IsNaN(next) {
		return clampZoom(zoom, minZoom, maxZoom)
	}
	return clampZoom(next, minZoom, maxZoom)
}

func clampZoom(zoom, minZoom, maxZoom float64) float64 {
	if zoom < minZoom || math.IsNaN(zoom) {
		zoom = minZoom
	}
	if maxZoom > 0 && zoom > maxZoom {
		zoom = maxZoom
	}
	return zoom
}

// SolveAnchor returns the transform with scales (scaleX, scaleY) whose
// translation keeps the scene point under the cursor (x, y) on the same
// pixel it occupied under prev. Per axis:
//
//	scene = (x - t_prev) / s_prev
//	t_new = x - s_new*scene = (t_prev - x) * (s_new / s_prev) + x
//
// prev must be the transform presented on the previous tick; solving against
// a transform already modified during the current tick drifts the anchor.
func SolveAnchor(prev Transform, x, y, scaleX, scaleY float64) Transform {
	return Transform{
		ScaleX:     scaleX,
		ScaleY:     scaleY,
		TranslateX: (prev.TranslateX-x)*(scaleX/prev.ScaleX) + x,
		TranslateY: (prev.TranslateY-y)*(scaleY/prev.ScaleY) + y,
	}
}
