package controller

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Unreal configures an editor-viewport camera.
//
//   - left drag: turn (X) and walk along the ground plane (Y)
//   - right drag: look around; W/S walk and A/D/Q/E pan while held
//   - middle drag, or left+right drag: pan along the ground-plane right axis and world up
//   - wheel: walk forward/back
//
// Movement never changes height unless it is a pan, and the target is re-derived so
// the eye-to-target distance is kept.
type Unreal struct {
	// Enabled allows the controller to change the pose.
	Enabled bool `yaml:"enabled"`

	// RotateSensitivity converts pixels of pointer motion to radians (X = yaw, Y = pitch).
	RotateSensitivity mgl32.Vec2 `yaml:"rotate_sensitivity"`

	// MouseTranslateSensitivity converts pixels of pointer motion to distance for walking and panning.
	MouseTranslateSensitivity mgl32.Vec2 `yaml:"mouse_translate_sensitivity"`

	// WheelTranslateSensitivity is the distance walked per wheel unit.
	WheelTranslateSensitivity float32 `yaml:"wheel_translate_sensitivity"`

	// KeyboardMoveSensitivity is the distance moved per tick while a movement key is held.
	KeyboardMoveSensitivity float32 `yaml:"keyboard_move_sensitivity"`

	// SmoothingWeight is the rig's smoothing lag weight in [0, 1).
	SmoothingWeight float32 `yaml:"smoothing_weight"`
}

var _ Controller = Unreal{}

// DefaultUnreal returns an enabled editor-viewport configuration with the stock sensitivities.
//
// Returns:
//   - Unreal: the default configuration
func DefaultUnreal() Unreal {
	return Unreal{
		Enabled:                   true,
		RotateSensitivity:         mgl32.Vec2{0.002, 0.002},
		MouseTranslateSensitivity: mgl32.Vec2{0.02, 0.02},
		WheelTranslateSensitivity: 0.5,
		KeyboardMoveSensitivity:   0.2,
		SmoothingWeight:           0.7,
	}
}

func (c Unreal) Style() Style {
	return StyleUnreal
}

func (c Unreal) IsEnabled() bool {
	return c.Enabled
}

func (c Unreal) Smoothing() float32 {
	return c.SmoothingWeight
}

func (c Unreal) Validate() error {
	if c.KeyboardMoveSensitivity < 0 {
		return fmt.Errorf("controller: unreal keyboard move sensitivity %v is negative", c.KeyboardMoveSensitivity)
	}
	return validateWeight(StyleUnreal, c.SmoothingWeight)
}

func (c Unreal) MapInput(frame input.Frame, _ look.Transform) []Event {
	if !c.Enabled {
		return nil
	}

	left := frame.ButtonPressed(common.MouseButtonLeft)
	right := frame.ButtonPressed(common.MouseButtonRight)
	middle := frame.ButtonPressed(common.MouseButtonMiddle)

	var events []Event
	if delta := frame.MotionDelta(); delta != (mgl32.Vec2{}) {
		switch {
		case middle || (left && right):
			// Screen Y grows downward; dragging up pans up.
			events = append(events, PanEvent{Delta: scale2(c.MouseTranslateSensitivity, mgl32.Vec2{delta.X(), -delta.Y()})})
		case right:
			events = append(events, RotateEvent{Delta: scale2(c.RotateSensitivity, delta)})
		case left:
			events = append(events, LocomotionEvent{Delta: mgl32.Vec2{
				c.RotateSensitivity.X() * delta.X(),
				-c.MouseTranslateSensitivity.Y() * delta.Y(),
			}})
		}
	}

	if wheel := frame.WheelDelta(); wheel != 0 {
		events = append(events, LocomotionEvent{Delta: mgl32.Vec2{0, wheel * c.WheelTranslateSensitivity}})
	}

	if right {
		step := c.KeyboardMoveSensitivity
		var walk float32
		var pan mgl32.Vec2
		if frame.Pressed(common.KeyW) {
			walk += step
		}
		if frame.Pressed(common.KeyS) {
			walk -= step
		}
		if frame.Pressed(common.KeyD) {
			pan[0] += step
		}
		if frame.Pressed(common.KeyA) {
			pan[0] -= step
		}
		if frame.Pressed(common.KeyE) {
			pan[1] += step
		}
		if frame.Pressed(common.KeyQ) {
			pan[1] -= step
		}
		if walk != 0 {
			events = append(events, LocomotionEvent{Delta: mgl32.Vec2{0, walk}})
		}
		if pan != (mgl32.Vec2{}) {
			events = append(events, PanEvent{Delta: pan})
		}
	}
	return events
}

func (c Unreal) Reduce(pose look.Transform, _ look.Basis, events []Event) look.Transform {
	if !c.Enabled {
		return pose
	}

	angles := look.AnglesFromVector(pose.LookDirection())
	radius := pose.Radius()

	for _, ev := range events {
		switch e := ev.(type) {
		case LocomotionEvent:
			angles.AddYaw(-e.Delta.X())
			forward, _ := groundAxes(angles.Yaw())
			pose.Eye = pose.Eye.Add(forward.Mul(e.Delta.Y()))
		case RotateEvent:
			angles.AddYaw(-e.Delta.X())
			angles.AddPitch(-e.Delta.Y())
		case PanEvent:
			_, right := groundAxes(angles.Yaw())
			pose.Eye = pose.Eye.Add(right.Mul(e.Delta.X())).Add(worldUp.Mul(e.Delta.Y()))
		}
	}

	angles.AssertNotLookingUp()

	pose.Target = pose.Eye.Add(angles.UnitVector().Mul(radius))
	return pose
}

// groundAxes returns the horizontal forward and right unit vectors for a yaw angle.
func groundAxes(yaw float32) (forward, right mgl32.Vec3) {
	s, c := math32.Sin(yaw), math32.Cos(yaw)
	return mgl32.Vec3{s, 0, c}, mgl32.Vec3{-c, 0, s}
}
