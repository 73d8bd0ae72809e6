package game

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Garsondee/jigsaw/internal/jigsaw"
)

// settleSeconds is how long the finished picture takes to glide into place.
const settleSeconds = 0.8

// settleAnim tweens the finished picture from where the board was when the
// last piece locked to the default centered layout.
type settleAnim struct {
	tweens [4]*gween.Tween
	rect   jigsaw.Rect
	done   bool
}

func newSettle(from, to jigsaw.Rect, duration float32, fn ease.TweenFunc) *settleAnim {
	return &settleAnim{
		tweens: [4]*gween.Tween{
			gween.New(float32(from.X), float32(to.X), duration, fn),
			gween.New(float32(from.Y), float32(to.Y), duration, fn),
			gween.New(float32(from.Width), float32(to.Width), duration, fn),
			gween.New(float32(from.Height), float32(to.Height), duration, fn),
		},
		rect: from,
	}
}

// Update advances the animation by dt seconds and returns the current rect.
func (a *settleAnim) Update(dt float32) jigsaw.Rect {
	if a.done {
		return a.rect
	}
	var vals [4]float64
	allDone := true
	for i, tw := range a.tweens {
		v, finished := tw.Update(dt)
		vals[i] = float64(v)
		if !finished {
			allDone = false
		}
	}
	a.rect = jigsaw.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
	a.done = allDone
	return a.rect
}

// Rect returns the last computed rect.
func (a *settleAnim) Rect() jigsaw.Rect { return a.rect }

// Done reports whether the animation reached its end.
func (a *settleAnim) Done() bool { return a.done }
