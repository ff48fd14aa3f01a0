package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// transition eases a pose from one Transform to another. A single 0..1 tween drives
// both eye and target so they arrive together.
type transition struct {
	progress *gween.Tween
	from     look.Transform
	to       look.Transform
}

func newTransition(from, to look.Transform, duration float32, fn ease.TweenFunc) *transition {
	if fn == nil {
		fn = ease.InOutQuad
	}
	return &transition{
		progress: gween.New(0, 1, duration, fn),
		from:     from,
		to:       to,
	}
}

// update advances the transition by dt seconds and returns the eased pose.
func (t *transition) update(dt float32) (look.Transform, bool) {
	s, done := t.progress.Update(dt)
	if done {
		return t.to, true
	}
	return t.from.Lerp(t.to, s), false
}
