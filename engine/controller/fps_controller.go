package controller

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/go-gl/mathgl/mgl32"
)

// Fps configures a first-person fly camera.
// Mouse motion turns the view; W/A/S/D move along and across the look direction and
// Space/LeftShift move along world up. The target is re-derived each tick so the rig
// keeps its look direction and eye-to-target distance.
type Fps struct {
	// Enabled allows the controller to change the pose.
	Enabled bool `yaml:"enabled"`

	// MouseRotateSensitivity converts pixels of pointer motion to radians (X = yaw, Y = pitch).
	MouseRotateSensitivity mgl32.Vec2 `yaml:"mouse_rotate_sensitivity"`

	// TranslateSensitivity is the distance moved per tick while a movement key is held.
	TranslateSensitivity float32 `yaml:"translate_sensitivity"`

	// SmoothingWeight is the rig's smoothing lag weight in [0, 1).
	SmoothingWeight float32 `yaml:"smoothing_weight"`
}

var _ Controller = Fps{}

// DefaultFps returns an enabled first-person configuration with the stock sensitivities.
//
// Returns:
//   - Fps: the default configuration
func DefaultFps() Fps {
	return Fps{
		Enabled:                true,
		MouseRotateSensitivity: mgl32.Vec2{0.002, 0.002},
		TranslateSensitivity:   0.5,
		SmoothingWeight:        0.9,
	}
}

func (c Fps) Style() Style {
	return StyleFps
}

func (c Fps) IsEnabled() bool {
	return c.Enabled
}

func (c Fps) Smoothing() float32 {
	return c.SmoothingWeight
}

func (c Fps) Validate() error {
	if c.TranslateSensitivity < 0 {
		return fmt.Errorf("controller: fps translate sensitivity %v is negative", c.TranslateSensitivity)
	}
	return validateWeight(StyleFps, c.SmoothingWeight)
}

func (c Fps) MapInput(frame input.Frame, pose look.Transform) []Event {
	if !c.Enabled {
		return nil
	}

	var events []Event
	if delta := frame.MotionDelta(); delta != (mgl32.Vec2{}) {
		events = append(events, RotateEvent{Delta: scale2(c.MouseRotateSensitivity, delta)})
	}

	forward := pose.LookDirection()
	right := forward.Cross(worldUp)
	for _, m := range []struct {
		key common.Key
		dir mgl32.Vec3
	}{
		{common.KeyW, forward},
		{common.KeyA, right.Mul(-1)},
		{common.KeyS, forward.Mul(-1)},
		{common.KeyD, right},
		{common.KeySpace, worldUp},
		{common.KeyLeftShift, worldUp.Mul(-1)},
	} {
		if frame.Pressed(m.key) {
			events = append(events, TranslateEyeEvent{Delta: m.dir.Mul(c.TranslateSensitivity)})
		}
	}
	return events
}

func (c Fps) Reduce(pose look.Transform, _ look.Basis, events []Event) look.Transform {
	if !c.Enabled {
		return pose
	}

	angles := look.AnglesFromVector(pose.LookDirection())

	for _, ev := range events {
		switch e := ev.(type) {
		case RotateEvent:
			angles.AddYaw(-e.Delta.X())
			angles.AddPitch(-e.Delta.Y())
		case TranslateEyeEvent:
			// Translates up/down (Y) left/right (X) and forward/back (Z).
			pose.Eye = pose.Eye.Add(e.Delta)
		}
	}

	angles.AssertNotLookingUp()

	// Moving the eye along the look axis changes the distance to the target.
	radius := pose.Radius()
	pose.Target = pose.Eye.Add(angles.UnitVector().Mul(radius))
	return pose
}
