package controller

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/go-gl/mathgl/mgl32"
)

// minZoomFactor keeps a single wheel sample from collapsing or inverting the radius.
const minZoomFactor float32 = 0.05

// Orbit configures a third-person camera that orbits around its target.
// Holding LeftControl while moving the pointer orbits, dragging with the right button
// moves the target in the view plane, and the wheel zooms.
type Orbit struct {
	// Enabled allows the controller to change the pose.
	Enabled bool `yaml:"enabled"`

	// MouseRotateSensitivity converts pixels of pointer motion to orbit radians.
	MouseRotateSensitivity mgl32.Vec2 `yaml:"mouse_rotate_sensitivity"`

	// MouseTranslateSensitivity converts pixels of pointer motion to target movement.
	MouseTranslateSensitivity mgl32.Vec2 `yaml:"mouse_translate_sensitivity"`

	// MouseWheelZoomSensitivity is the fractional radius change per wheel unit.
	MouseWheelZoomSensitivity float32 `yaml:"mouse_wheel_zoom_sensitivity"`

	// MinRadius bounds the zoomed eye-to-target distance from below. 0 disables the bound.
	MinRadius float32 `yaml:"min_radius"`

	// MaxRadius bounds the zoomed eye-to-target distance from above. 0 disables the bound.
	MaxRadius float32 `yaml:"max_radius"`

	// SmoothingWeight is the rig's smoothing lag weight in [0, 1).
	SmoothingWeight float32 `yaml:"smoothing_weight"`
}

var _ Controller = Orbit{}

// DefaultOrbit returns an enabled, unbounded orbit configuration with the stock sensitivities.
//
// Returns:
//   - Orbit: the default configuration
func DefaultOrbit() Orbit {
	return Orbit{
		Enabled:                   true,
		MouseRotateSensitivity:    mgl32.Vec2{0.006, 0.006},
		MouseTranslateSensitivity: mgl32.Vec2{0.008, 0.008},
		MouseWheelZoomSensitivity: 0.15,
		SmoothingWeight:           0.8,
	}
}

func (c Orbit) Style() Style {
	return StyleOrbit
}

func (c Orbit) IsEnabled() bool {
	return c.Enabled
}

func (c Orbit) Smoothing() float32 {
	return c.SmoothingWeight
}

func (c Orbit) Validate() error {
	if c.MinRadius < 0 || c.MaxRadius < 0 {
		return fmt.Errorf("controller: orbit radius bounds (%v, %v) must not be negative", c.MinRadius, c.MaxRadius)
	}
	if c.MinRadius > 0 && c.MaxRadius > 0 && c.MinRadius > c.MaxRadius {
		return fmt.Errorf("controller: orbit min radius %v exceeds max radius %v", c.MinRadius, c.MaxRadius)
	}
	return validateWeight(StyleOrbit, c.SmoothingWeight)
}

func (c Orbit) MapInput(frame input.Frame, _ look.Transform) []Event {
	if !c.Enabled {
		return nil
	}

	var events []Event
	if delta := frame.MotionDelta(); delta != (mgl32.Vec2{}) {
		if frame.Pressed(common.KeyLeftControl) {
			events = append(events, OrbitEvent{Delta: scale2(c.MouseRotateSensitivity, delta)})
		}
		if frame.ButtonPressed(common.MouseButtonRight) {
			events = append(events, TranslateTargetEvent{Delta: scale2(c.MouseTranslateSensitivity, delta)})
		}
	}

	scalar := float32(1)
	for _, y := range frame.Wheel {
		scalar *= max(1+y*c.MouseWheelZoomSensitivity, minZoomFactor)
	}
	if scalar != 1 {
		events = append(events, ZoomEvent{Scalar: scalar})
	}
	return events
}

func (c Orbit) Reduce(pose look.Transform, basis look.Basis, events []Event) look.Transform {
	if !c.Enabled {
		return pose
	}

	// Angles are measured from the target toward the eye since the eye is what moves.
	angles := look.AnglesFromVector(pose.LookDirection().Mul(-1))
	radius := pose.Radius()
	radiusScalar := float32(1)

	for _, ev := range events {
		switch e := ev.(type) {
		case OrbitEvent:
			angles.AddYaw(-e.Delta.X())
			angles.AddPitch(e.Delta.Y())
		case TranslateTargetEvent:
			right := basis.Right.Mul(-1)
			pose.Target = pose.Target.Add(right.Mul(e.Delta.X())).Add(basis.Up.Mul(e.Delta.Y()))
		case ZoomEvent:
			radiusScalar *= e.Scalar
		}
	}

	angles.AssertNotLookingUp()

	pose.Eye = pose.Target.Add(angles.UnitVector().Mul(c.clampRadius(radiusScalar * radius)))
	return pose
}

// clampRadius applies the configured radius bounds, ignoring unset (zero) bounds.
func (c Orbit) clampRadius(r float32) float32 {
	if c.MinRadius > 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius > 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}
	return r
}
