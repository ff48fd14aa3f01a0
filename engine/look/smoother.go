package look

import (
	"fmt"

	"github.com/chewxy/math32"
)

// ReferenceRate is the tick rate, in ticks per second, at which a Smoother keeps
// exactly `weight` of its previous output each tick. Other rates scale the decay
// exponent by elapsed time so the lag feels the same at any frame rate.
const ReferenceRate float32 = 60

// Smoother is an exponential-decay filter over Transforms.
// The zero value is not usable; create one with NewSmoother.
type Smoother struct {
	weight float32
	lag    Transform
	seeded bool
}

// NewSmoother creates a Smoother with the given lag weight.
// Panics if weight is outside [0, 1).
//
// Parameters:
//   - weight: smoothing strength, 0 disables smoothing and values near 1 lag heavily
//
// Returns:
//   - *Smoother: an unseeded smoother
func NewSmoother(weight float32) *Smoother {
	s := &Smoother{}
	s.SetWeight(weight)
	return s
}

// Weight returns the lag weight.
func (s *Smoother) Weight() float32 {
	return s.weight
}

// SetWeight changes the lag weight without touching the lag value.
// Panics if weight is outside [0, 1).
func (s *Smoother) SetWeight(weight float32) {
	if !(weight >= 0 && weight < 1) {
		panic(fmt.Sprintf("look: smoothing weight %v outside [0, 1)", weight))
	}
	s.weight = weight
}

// Lag returns the last smoothed output and whether the smoother has been seeded.
func (s *Smoother) Lag() (Transform, bool) {
	return s.lag, s.seeded
}

// Reset drops the lag value so the next Smooth call passes its input through.
func (s *Smoother) Reset() {
	s.lag = Transform{}
	s.seeded = false
}

// Smooth blends raw into the retained lag value and returns the result.
// The first call after creation or Reset returns raw unchanged. Later calls move
// each of eye and target toward raw by 1 - weight^(dt*ReferenceRate), which never
// overshoots. Non-positive dt leaves the lag value where it is.
//
// Parameters:
//   - raw: the unsmoothed pose for this tick
//   - dt: elapsed time since the previous call in seconds
//
// Returns:
//   - Transform: the smoothed pose
func (s *Smoother) Smooth(raw Transform, dt float32) Transform {
	if !s.seeded {
		s.lag = raw
		s.seeded = true
		return raw
	}
	if dt <= 0 {
		return s.lag
	}
	lead := 1 - math32.Pow(s.weight, dt*ReferenceRate)
	s.lag = s.lag.Lerp(raw, lead)
	return s.lag
}
