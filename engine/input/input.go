// Package input collects raw device input between ticks and hands it to camera
// rigs as a Frame. Platform windows feed a Recorder from their callbacks; the tick
// loop drains it once per tick.
package input

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Frame is the raw input observed during one tick.
// Keys and Buttons hold what is down at the end of the tick. Motion and Wheel hold
// every sample received during the tick in arrival order.
type Frame struct {
	// Keys maps key codes to their pressed state.
	Keys map[common.Key]bool

	// Buttons maps mouse buttons to their pressed state.
	Buttons map[common.MouseButton]bool

	// Motion holds pointer-motion deltas in pixels.
	Motion []mgl32.Vec2

	// Wheel holds vertical scroll deltas (positive = away from the user).
	Wheel []float32
}

// Pressed reports whether key k is held.
func (f Frame) Pressed(k common.Key) bool {
	return f.Keys[k]
}

// ButtonPressed reports whether mouse button b is held.
func (f Frame) ButtonPressed(b common.MouseButton) bool {
	return f.Buttons[b]
}

// MotionDelta returns the sum of all pointer-motion samples in the frame.
//
// Returns:
//   - mgl32.Vec2: combined pointer motion in pixels
func (f Frame) MotionDelta() mgl32.Vec2 {
	var sum mgl32.Vec2
	for _, m := range f.Motion {
		sum = sum.Add(m)
	}
	return sum
}

// WheelDelta returns the sum of all scroll samples in the frame.
//
// Returns:
//   - float32: combined scroll delta
func (f Frame) WheelDelta() float32 {
	var sum float32
	for _, w := range f.Wheel {
		sum += w
	}
	return sum
}

// Empty reports whether the frame carries no held input and no samples.
func (f Frame) Empty() bool {
	for _, down := range f.Keys {
		if down {
			return false
		}
	}
	for _, down := range f.Buttons {
		if down {
			return false
		}
	}
	return len(f.Motion) == 0 && len(f.Wheel) == 0
}
