package zoompan

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// resetAnim holds the tweens that carry the view back to its home transform.
// Scale and translation are tweened independently; the animation is done
// once all of them report completion.
type resetAnim struct {
	scaleX, scaleY *gween.Tween
	tx, ty         *gween.Tween
	target         Transform
}

func newResetAnim(from, to Transform, seconds float32) *resetAnim {
	return &resetAnim{
		scaleX: gween.New(float32(from.ScaleX), float32(to.ScaleX), seconds, ease.OutCubic),
		scaleY: gween.New(float32(from.ScaleY), float32(to.ScaleY), seconds, ease.OutCubic),
		tx:     gween.New(float32(from.TranslateX), float32(to.TranslateX), seconds, ease.OutCubic),
		ty:     gween.New(float32(from.TranslateY), float32(to.TranslateY), seconds, ease.OutCubic),
		target: to,
	}
}

// step advances all tweens by dt seconds. On the final step it returns the
// exact target rather than the float32 tween value.
func (a *resetAnim) step(dt float32) (Transform, bool) {
	sx, doneSX := a.scaleX.Update(dt)
	sy, doneSY := a.scaleY.Update(dt)
	tx, doneTX := a.tx.Update(dt)
	ty, doneTY := a.ty.Update(dt)
	if doneSX && doneSY && doneTX && doneTY {
		return a.target, true
	}
	t := Transform{
		ScaleX:     float64(sx),
		ScaleY:     float64(sy),
		TranslateX: float64(tx),
		TranslateY: float64(ty),
	}
	// float32 rounding on extreme zoom-out must not break the positive
	// scale invariant.
	if t.ScaleX <= 0 || t.ScaleY <= 0 {
		return a.target, true
	}
	return t, false
}
